package http

import (
	"errors"
	"log/slog"

	"mrp/internal/services"
)

// AuthController serves /auth: registration, login and logout.
type AuthController struct {
	service *services.AuthService
	routes  *Routes
	logger  *slog.Logger
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=4"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// NewAuthController creates a new auth controller
func NewAuthController(service *services.AuthService, logger *slog.Logger) *AuthController {
	c := &AuthController{
		service: service,
		logger:  logger.With(slog.String("controller", "auth")),
	}
	c.routes = NewRoutes().
		Post("/auth/register", c.register).
		Post("/auth/login", c.login).
		Post("/auth/logout", c.logout)
	return c
}

// Handle implements Controller
func (c *AuthController) Handle(req *Request) (*Response, error) {
	return c.routes.Dispatch(req)
}

// register handles POST /auth/register
func (c *AuthController) register(req *Request, _ Params) (*Response, error) {
	var body registerRequest
	if err := DecodeJSON(req, &body); err != nil {
		return nil, err
	}

	if _, err := c.service.Register(req.Context(), body.Username, body.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.logger.WarnContext(req.Context(), "registration with taken username",
				slog.String("username", body.Username))
			return ErrorJSON(StatusConflict, "Username already exists"), nil
		}
		return nil, err
	}
	return MessageJSON("User registered"), nil
}

// login handles POST /auth/login
func (c *AuthController) login(req *Request, _ Params) (*Response, error) {
	var body loginRequest
	if err := DecodeJSON(req, &body); err != nil {
		return nil, err
	}

	token, err := c.service.Login(req.Context(), body.Username, body.Password)
	if err != nil {
		return nil, err
	}
	return OKJSON(tokenResponse{Token: token}), nil
}

// logout handles POST /auth/logout
func (c *AuthController) logout(req *Request, _ Params) (*Response, error) {
	if err := c.service.Logout(req.Context(), req.Authorization()); err != nil {
		return nil, err
	}
	return MessageJSON("Logged out"), nil
}
