// Package services holds the business logic behind the HTTP controllers:
// user registration and login, bearer token bookkeeping, the media
// catalogue, favorites and the user's own profile.
//
// Services are constructed once at startup and shared by every concurrent
// request. Each store guards its own state; callers never lock.
//
// Failures are returned as typed errors from mrp/internal/errors so the
// dispatcher can translate them without knowing which service raised them.
// The exceptions are ErrUsernameTaken and ErrAlreadyFavorite, which their
// controllers answer themselves with 409 Conflict.
package services
