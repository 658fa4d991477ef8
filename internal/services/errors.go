package services

import (
	"errors"

	apperrors "mrp/internal/errors"
)

// Service errors
var (
	// ErrUsernameTaken is returned by Register for a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrAlreadyFavorite is returned by FavoriteService.Add for a repeated
	// favorite. The favorites controller answers it with 409.
	ErrAlreadyFavorite = errors.New("already in favorites")

	ErrInvalidCredentials = apperrors.Unauthenticated("Invalid credentials")
	ErrPasswordTooLong    = apperrors.InvalidInput("password must be at most 72 bytes")
	ErrMediaNotFound      = apperrors.NotFound("Media not found")
	ErrInvalidMediaID     = apperrors.InvalidInput("Invalid media id")
	ErrFavoriteNotFound   = apperrors.NotFound("Favorite not found")
	ErrUserNotFound       = apperrors.NotFound("User not found")
	ErrNotCreatorUpdate   = apperrors.Forbidden("Only creator can update this entry")
	ErrNotCreatorDelete   = apperrors.Forbidden("Only creator can delete this entry")
)
