package services

import (
	"context"
	"log/slog"
	"strings"
)

// UserProfile is the public view of an account.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileInput carries the writable profile fields.
type ProfileInput struct {
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

// UserFavorites lists a user's favorites with their timestamps.
type UserFavorites struct {
	UserID    int        `json:"userId"`
	Favorites []Favorite `json:"favorites"`
}

// UserService serves the signed-in user's own profile.
type UserService struct {
	users     *UserStore
	favorites *FavoriteStore
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(users *UserStore, favorites *FavoriteStore, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		favorites: favorites,
		logger:    logger.With(slog.String("service", "users")),
	}
}

// Profile returns the profile of userID.
func (s *UserService) Profile(ctx context.Context, userID int) (UserProfile, error) {
	u, ok := s.users.FindByID(userID)
	if !ok {
		return UserProfile{}, ErrUserNotFound
	}
	return profileOf(u), nil
}

// UpdateProfile replaces the writable profile fields. An empty email clears
// it.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, in ProfileInput) (UserProfile, error) {
	u, ok := s.users.UpdateEmail(userID, strings.TrimSpace(in.Email))
	if !ok {
		return UserProfile{}, ErrUserNotFound
	}

	s.logger.InfoContext(ctx, "profile updated", slog.Int("user_id", userID))
	return profileOf(u), nil
}

// Favorites returns the favorites of userID, newest first.
func (s *UserService) Favorites(ctx context.Context, userID int) UserFavorites {
	return UserFavorites{UserID: userID, Favorites: s.favorites.List(userID)}
}

func profileOf(u User) UserProfile {
	return UserProfile{ID: u.ID, Username: u.Username, Email: u.Email}
}
