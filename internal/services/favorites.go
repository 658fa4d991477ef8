package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "mrp/internal/errors"
)

// Favorite marks one media entry as a user's favorite.
type Favorite struct {
	MediaID   int       `json:"mediaId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteStore keeps each user's favorites in insertion order.
type FavoriteStore struct {
	mu     sync.RWMutex
	byUser map[int][]Favorite
}

// NewFavoriteStore creates an empty store
func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{byUser: make(map[int][]Favorite)}
}

// Add records f for userID. It reports false when the media entry is already
// a favorite.
func (s *FavoriteStore) Add(userID int, f Favorite) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byUser[userID] {
		if existing.MediaID == f.MediaID {
			return false
		}
	}
	s.byUser[userID] = append(s.byUser[userID], f)
	return true
}

// Remove deletes a favorite and reports whether it existed.
func (s *FavoriteStore) Remove(userID, mediaID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i, f := range list {
		if f.MediaID == mediaID {
			s.byUser[userID] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a user's favorites, newest first. The result is never nil.
func (s *FavoriteStore) List(userID int) []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byUser[userID]
	out := make([]Favorite, len(list))
	for i, f := range list {
		out[len(list)-1-i] = f
	}
	return out
}

// FavoriteService lets a user mark existing media entries as favorites.
type FavoriteService struct {
	favorites *FavoriteStore
	media     MediaRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewFavoriteService creates a new favorite service. media must be the
// repository the media service writes to.
func NewFavoriteService(favorites *FavoriteStore, media MediaRepository, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		media:     media,
		now:       time.Now,
		logger:    logger.With(slog.String("service", "favorites")),
	}
}

// List returns the media ids a user marked, newest first.
func (s *FavoriteService) List(ctx context.Context, userID int) []int {
	favorites := s.favorites.List(userID)
	ids := make([]int, len(favorites))
	for i, f := range favorites {
		ids[i] = f.MediaID
	}
	return ids
}

// Add marks mediaID as a favorite of userID. The entry must exist; marking
// it twice yields ErrAlreadyFavorite.
func (s *FavoriteService) Add(ctx context.Context, userID, mediaID int) error {
	if mediaID <= 0 {
		return ErrInvalidMediaID
	}

	_, ok, err := s.media.FindByID(mediaID)
	if err != nil {
		return apperrors.Internal("failed to load media", err)
	}
	if !ok {
		return ErrMediaNotFound
	}

	if !s.favorites.Add(userID, Favorite{MediaID: mediaID, CreatedAt: s.now().UTC()}) {
		return ErrAlreadyFavorite
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.Int("user_id", userID),
		slog.Int("media_id", mediaID))
	return nil
}

// Remove unmarks mediaID.
func (s *FavoriteService) Remove(ctx context.Context, userID, mediaID int) error {
	if mediaID <= 0 {
		return ErrInvalidMediaID
	}
	if !s.favorites.Remove(userID, mediaID) {
		return ErrFavoriteNotFound
	}

	s.logger.InfoContext(ctx, "favorite removed",
		slog.Int("user_id", userID),
		slog.Int("media_id", mediaID))
	return nil
}
