package http

import (
	"errors"
	"log/slog"

	"mrp/internal/services"
)

// FavoriteController serves /favorite. Every endpoint requires a bearer
// token.
type FavoriteController struct {
	service *services.FavoriteService
	authn   *services.Authenticator
	routes  *Routes
	logger  *slog.Logger
}

// NewFavoriteController creates a new favorite controller
func NewFavoriteController(service *services.FavoriteService, authn *services.Authenticator, logger *slog.Logger) *FavoriteController {
	c := &FavoriteController{
		service: service,
		authn:   authn,
		logger:  logger.With(slog.String("controller", "favorites")),
	}
	c.routes = NewRoutes().
		Get("/favorite", c.list).
		Post("/favorite/media/{id:int}", c.add).
		Delete("/favorite/media/{id:int}", c.remove)
	return c
}

// Handle implements Controller
func (c *FavoriteController) Handle(req *Request) (*Response, error) {
	return c.routes.Dispatch(req)
}

// list handles GET /favorite
func (c *FavoriteController) list(req *Request, _ Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}
	return OKJSON(c.service.List(req.Context(), user.ID)), nil
}

// add handles POST /favorite/media/{id}
func (c *FavoriteController) add(req *Request, params Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}
	mediaID, err := params.Int("id")
	if err != nil {
		return nil, services.ErrInvalidMediaID
	}

	if err := c.service.Add(req.Context(), user.ID, mediaID); err != nil {
		if errors.Is(err, services.ErrAlreadyFavorite) {
			c.logger.WarnContext(req.Context(), "favorite already present",
				slog.Int("user_id", user.ID),
				slog.Int("media_id", mediaID))
			return ErrorJSON(StatusConflict, "Already in favorites"), nil
		}
		return nil, err
	}
	return MessageJSON("Favorite added"), nil
}

// remove handles DELETE /favorite/media/{id}
func (c *FavoriteController) remove(req *Request, params Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}
	mediaID, err := params.Int("id")
	if err != nil {
		return nil, services.ErrInvalidMediaID
	}

	if err := c.service.Remove(req.Context(), user.ID, mediaID); err != nil {
		return nil, err
	}
	return MessageJSON("Favorite removed"), nil
}
