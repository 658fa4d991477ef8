package services

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Media is one catalogue entry.
type Media struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	MediaType      string    `json:"mediaType"`
	ReleaseYear    int       `json:"releaseYear"`
	Genres         []string  `json:"genres"`
	AgeRestriction int       `json:"ageRestriction"`
	CreatorID      int       `json:"creatorId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MediaInput carries the writable fields of a media entry.
type MediaInput struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	MediaType      string   `json:"mediaType" validate:"required,oneof=movie series game"`
	ReleaseYear    int      `json:"releaseYear" validate:"gte=0"`
	Genres         []string `json:"genres"`
	AgeRestriction int      `json:"ageRestriction" validate:"gte=0"`
}

// Sort orders accepted by MediaFilter.SortBy.
const (
	SortByID    = "id"
	SortByTitle = "title"
	SortByYear  = "year"
)

// MediaFilter narrows a search. Zero values mean "no filter".
type MediaFilter struct {
	Title          string
	Genre          string
	MediaType      string
	ReleaseYear    *int
	AgeRestriction *int
	SortBy         string
}

// Matches reports whether m passes every set filter. Title and genre match by
// case-insensitive substring, media type by case-insensitive equality.
func (f MediaFilter) Matches(m Media) bool {
	if f.Title != "" && !containsFold(m.Title, f.Title) {
		return false
	}
	if f.Genre != "" {
		found := false
		for _, g := range m.Genres {
			if containsFold(g, f.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MediaType != "" && !strings.EqualFold(m.MediaType, f.MediaType) {
		return false
	}
	if f.ReleaseYear != nil && m.ReleaseYear != *f.ReleaseYear {
		return false
	}
	if f.AgeRestriction != nil && m.AgeRestriction != *f.AgeRestriction {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// MediaRepository persists media entries.
type MediaRepository interface {
	Create(m Media) (Media, error)
	FindByID(id int) (Media, bool, error)
	Update(m Media) error
	Delete(id int) (bool, error)
	Search(filter MediaFilter) ([]Media, error)
}

// MemoryMediaRepository is a MediaRepository backed by a map. Ids are
// assigned monotonically and never reused.
type MemoryMediaRepository struct {
	mu      sync.RWMutex
	nextID  int
	entries map[int]Media
}

// NewMemoryMediaRepository creates an empty repository
func NewMemoryMediaRepository() *MemoryMediaRepository {
	return &MemoryMediaRepository{entries: make(map[int]Media)}
}

// Create assigns an id and stores m.
func (r *MemoryMediaRepository) Create(m Media) (Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.ID = r.nextID
	m.Genres = cloneStrings(m.Genres)
	r.entries[m.ID] = m
	return m, nil
}

// FindByID returns the entry with the given id.
func (r *MemoryMediaRepository) FindByID(id int) (Media, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.entries[id]
	if !ok {
		return Media{}, false, nil
	}
	m.Genres = cloneStrings(m.Genres)
	return m, true, nil
}

// Update replaces an existing entry. Updating an unknown id is a no-op.
func (r *MemoryMediaRepository) Update(m Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[m.ID]; !ok {
		return nil
	}
	m.Genres = cloneStrings(m.Genres)
	r.entries[m.ID] = m
	return nil
}

// Delete removes an entry and reports whether it existed.
func (r *MemoryMediaRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, nil
	}
	delete(r.entries, id)
	return true, nil
}

// Search returns the matching entries in the filter's sort order.
func (r *MemoryMediaRepository) Search(filter MediaFilter) ([]Media, error) {
	r.mu.RLock()
	result := make([]Media, 0, len(r.entries))
	for _, m := range r.entries {
		if filter.Matches(m) {
			m.Genres = cloneStrings(m.Genres)
			result = append(result, m)
		}
	}
	r.mu.RUnlock()

	sortMedia(result, filter.SortBy)
	return result, nil
}

func sortMedia(media []Media, sortBy string) {
	var less func(a, b Media) bool
	switch strings.ToLower(sortBy) {
	case SortByTitle:
		less = func(a, b Media) bool { return a.Title < b.Title }
	case SortByYear:
		less = func(a, b Media) bool { return a.ReleaseYear < b.ReleaseYear }
	default:
		less = func(a, b Media) bool { return false }
	}

	sort.SliceStable(media, func(i, j int) bool {
		if less(media[i], media[j]) {
			return true
		}
		if less(media[j], media[i]) {
			return false
		}
		return media[i].ID < media[j].ID
	})
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
