package http

import (
	"mrp/internal/services"
)

// UserController serves the signed-in user's own resources under /users.
type UserController struct {
	service *services.UserService
	authn   *services.Authenticator
	routes  *Routes
}

// NewUserController creates a new user controller
func NewUserController(service *services.UserService, authn *services.Authenticator) *UserController {
	c := &UserController{service: service, authn: authn}
	c.routes = NewRoutes().
		Get("/users/profile", c.profile).
		Put("/users/profile", c.updateProfile).
		Get("/users/favorites", c.favorites)
	return c
}

// Handle implements Controller
func (c *UserController) Handle(req *Request) (*Response, error) {
	return c.routes.Dispatch(req)
}

func (c *UserController) profile(req *Request, _ Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}

	p, err := c.service.Profile(req.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return OKJSON(p), nil
}

func (c *UserController) updateProfile(req *Request, _ Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}

	var in services.ProfileInput
	if err := DecodeJSON(req, &in); err != nil {
		return nil, err
	}

	p, err := c.service.UpdateProfile(req.Context(), user.ID, in)
	if err != nil {
		return nil, err
	}
	return OKJSON(p), nil
}

func (c *UserController) favorites(req *Request, _ Params) (*Response, error) {
	user, err := c.authn.UserFromAuthorization(req.Authorization())
	if err != nil {
		return nil, err
	}
	return OKJSON(c.service.Favorites(req.Context(), user.ID)), nil
}
