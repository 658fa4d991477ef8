package http

import (
	"log/slog"

	"mrp/internal/services"
)

// MediaController serves /media. Every endpoint requires a bearer token.
type MediaController struct {
	service *services.MediaService
	authn   *services.Authenticator
	routes  *Routes
	logger  *slog.Logger
}

// NewMediaController creates a new media controller
func NewMediaController(service *services.MediaService, authn *services.Authenticator, logger *slog.Logger) *MediaController {
	c := &MediaController{
		service: service,
		authn:   authn,
		logger:  logger.With(slog.String("controller", "media")),
	}
	c.routes = NewRoutes().
		Get("/media", c.search).
		Post("/media", c.create).
		Get("/media/{id:int}", c.get).
		Put("/media/{id:int}", c.update).
		Delete("/media/{id:int}", c.delete)
	return c
}

// Handle implements Controller
func (c *MediaController) Handle(req *Request) (*Response, error) {
	return c.routes.Dispatch(req)
}

func (c *MediaController) user(req *Request) (services.User, error) {
	return c.authn.UserFromAuthorization(req.Authorization())
}

// search handles GET /media
func (c *MediaController) search(req *Request, _ Params) (*Response, error) {
	if _, err := c.user(req); err != nil {
		return nil, err
	}

	filter := services.FilterFromQuery(req.QueryParams())
	result, err := c.service.Search(req.Context(), filter)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(req.Context(), "media search",
		slog.String("sort_by", filter.SortBy),
		slog.Int("results", len(result)))
	return OKJSON(result), nil
}

// create handles POST /media
func (c *MediaController) create(req *Request, _ Params) (*Response, error) {
	user, err := c.user(req)
	if err != nil {
		return nil, err
	}

	var in services.MediaInput
	if err := DecodeJSON(req, &in); err != nil {
		return nil, err
	}

	m, err := c.service.Create(req.Context(), user.ID, in)
	if err != nil {
		return nil, err
	}
	return JSON(StatusCreated, m), nil
}

// get handles GET /media/{id}
func (c *MediaController) get(req *Request, params Params) (*Response, error) {
	if _, err := c.user(req); err != nil {
		return nil, err
	}
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}

	m, err := c.service.Get(req.Context(), id)
	if err != nil {
		return nil, err
	}
	return OKJSON(m), nil
}

// update handles PUT /media/{id}
func (c *MediaController) update(req *Request, params Params) (*Response, error) {
	user, err := c.user(req)
	if err != nil {
		return nil, err
	}
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}

	var in services.MediaInput
	if err := DecodeJSON(req, &in); err != nil {
		return nil, err
	}

	m, err := c.service.Update(req.Context(), user.ID, id, in)
	if err != nil {
		return nil, err
	}
	return OKJSON(m), nil
}

// delete handles DELETE /media/{id}
func (c *MediaController) delete(req *Request, params Params) (*Response, error) {
	user, err := c.user(req)
	if err != nil {
		return nil, err
	}
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}

	if err := c.service.Delete(req.Context(), user.ID, id); err != nil {
		return nil, err
	}
	return MessageJSON("Media deleted"), nil
}
