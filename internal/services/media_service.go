package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "mrp/internal/errors"
)

// MediaService implements the media catalogue rules: any authenticated user
// may create and read entries, only the creator may change or remove one.
type MediaService struct {
	repo   MediaRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo MediaRepository, logger *slog.Logger) *MediaService {
	return &MediaService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With(slog.String("service", "media")),
	}
}

// Create stores a new entry owned by creatorID.
func (s *MediaService) Create(ctx context.Context, creatorID int, in MediaInput) (Media, error) {
	m := applyInput(Media{CreatorID: creatorID, CreatedAt: s.now().UTC()}, in)

	created, err := s.repo.Create(m)
	if err != nil {
		return Media{}, apperrors.Internal("failed to create media", err)
	}

	s.logger.InfoContext(ctx, "media created",
		slog.Int("media_id", created.ID),
		slog.Int("creator_id", creatorID))
	return created, nil
}

// Get returns one entry or ErrMediaNotFound.
func (s *MediaService) Get(ctx context.Context, id int) (Media, error) {
	m, ok, err := s.repo.FindByID(id)
	if err != nil {
		return Media{}, apperrors.Internal("failed to load media", err)
	}
	if !ok {
		return Media{}, ErrMediaNotFound
	}
	return m, nil
}

// Update overwrites the writable fields of an entry. Only its creator may do
// so.
func (s *MediaService) Update(ctx context.Context, userID, id int, in MediaInput) (Media, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Media{}, err
	}
	if existing.CreatorID != userID {
		s.logger.WarnContext(ctx, "media update by non-creator",
			slog.Int("media_id", id),
			slog.Int("user_id", userID))
		return Media{}, ErrNotCreatorUpdate
	}

	updated := applyInput(existing, in)
	if err := s.repo.Update(updated); err != nil {
		return Media{}, apperrors.Internal("failed to update media", err)
	}
	return updated, nil
}

// Delete removes an entry. Only its creator may do so.
func (s *MediaService) Delete(ctx context.Context, userID, id int) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatorID != userID {
		s.logger.WarnContext(ctx, "media delete by non-creator",
			slog.Int("media_id", id),
			slog.Int("user_id", userID))
		return ErrNotCreatorDelete
	}

	deleted, err := s.repo.Delete(id)
	if err != nil {
		return apperrors.Internal("failed to delete media", err)
	}
	if !deleted {
		return ErrMediaNotFound
	}

	s.logger.InfoContext(ctx, "media deleted", slog.Int("media_id", id))
	return nil
}

// Search lists the entries matching filter.
func (s *MediaService) Search(ctx context.Context, filter MediaFilter) ([]Media, error) {
	result, err := s.repo.Search(filter)
	if err != nil {
		return nil, apperrors.Internal("failed to search media", err)
	}
	return result, nil
}

// FilterFromQuery builds a MediaFilter from query parameters. Blank values
// and unparsable numbers are ignored.
func FilterFromQuery(query map[string]string) MediaFilter {
	return MediaFilter{
		Title:          strings.TrimSpace(query["title"]),
		Genre:          strings.TrimSpace(query["genre"]),
		MediaType:      strings.TrimSpace(query["mediaType"]),
		ReleaseYear:    parseOptionalInt(query["releaseYear"]),
		AgeRestriction: parseOptionalInt(query["ageRestriction"]),
		SortBy:         strings.TrimSpace(query["sortBy"]),
	}
}

func parseOptionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func applyInput(m Media, in MediaInput) Media {
	m.Title = in.Title
	m.Description = in.Description
	m.MediaType = strings.ToLower(in.MediaType)
	m.ReleaseYear = in.ReleaseYear
	m.Genres = cloneStrings(in.Genres)
	m.AgeRestriction = in.AgeRestriction
	return m
}
