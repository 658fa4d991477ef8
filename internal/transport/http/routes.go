package http

import (
	"strconv"
	"strings"

	apperrors "mrp/internal/errors"
)

// AnyMethod registers a handler for every method on a pattern.
const AnyMethod = "*"

// Params holds the path segments bound by a pattern's {name} placeholders.
type Params map[string]string

// Get returns a bound segment, or "".
func (p Params) Get(name string) string {
	return p[name]
}

// Int parses a bound segment as an int. Overflowing digits are reported as
// invalid input.
func (p Params) Int(name string) (int, error) {
	n, err := strconv.Atoi(p[name])
	if err != nil {
		return 0, apperrors.InvalidInputf("invalid %s", name)
	}
	return n, nil
}

// HandlerFunc handles one (pattern, method) pair inside a controller.
type HandlerFunc func(req *Request, params Params) (*Response, error)

// Routes is the sub-router a controller uses for the paths under its prefix.
// Patterns are tried in registration order. Each pattern is a slash-separated
// list of segments: a literal, {name} for any non-empty segment, or
// {name:int} for an all-digit segment.
//
// The first pattern that matches the path and has a handler for the method
// wins. A path that matches only with other methods yields MethodNotAllowed;
// a path that matches nothing yields NotFound.
type Routes struct {
	routes []*patternRoute
}

type patternRoute struct {
	pattern  string
	segments []segment
	handlers map[string]HandlerFunc
}

type segment struct {
	literal string
	param   string
	digits  bool
}

// NewRoutes creates an empty sub-router
func NewRoutes() *Routes {
	return &Routes{}
}

// Add registers h for method on pattern. Registering a second method on an
// existing pattern keeps the pattern's original position.
func (rs *Routes) Add(method, pattern string, h HandlerFunc) *Routes {
	if h == nil {
		panic("routes: nil handler for " + method + " " + pattern)
	}
	for _, r := range rs.routes {
		if r.pattern == pattern {
			r.handlers[method] = h
			return rs
		}
	}
	rs.routes = append(rs.routes, &patternRoute{
		pattern:  pattern,
		segments: parsePattern(pattern),
		handlers: map[string]HandlerFunc{method: h},
	})
	return rs
}

// Get registers a GET handler
func (rs *Routes) Get(pattern string, h HandlerFunc) *Routes {
	return rs.Add("GET", pattern, h)
}

// Post registers a POST handler
func (rs *Routes) Post(pattern string, h HandlerFunc) *Routes {
	return rs.Add("POST", pattern, h)
}

// Put registers a PUT handler
func (rs *Routes) Put(pattern string, h HandlerFunc) *Routes {
	return rs.Add("PUT", pattern, h)
}

// Delete registers a DELETE handler
func (rs *Routes) Delete(pattern string, h HandlerFunc) *Routes {
	return rs.Add("DELETE", pattern, h)
}

// Handle makes Routes usable directly as a Controller.
func (rs *Routes) Handle(req *Request) (*Response, error) {
	return rs.Dispatch(req)
}

// Dispatch finds the handler for req and calls it.
func (rs *Routes) Dispatch(req *Request) (*Response, error) {
	pathSegments := strings.Split(req.Path(), "/")

	pathMatched := false
	for _, r := range rs.routes {
		params, ok := r.match(pathSegments)
		if !ok {
			continue
		}
		pathMatched = true

		h, ok := r.handlers[req.Method()]
		if !ok {
			h, ok = r.handlers[AnyMethod]
		}
		if ok {
			return h(req, params)
		}
	}

	if pathMatched {
		return nil, apperrors.ErrMethodNotAllowed
	}
	return nil, apperrors.ErrRouteNotFound
}

func parsePattern(pattern string) []segment {
	parts := strings.Split(pattern, "/")
	segments := make([]segment, len(parts))
	for i, part := range parts {
		isVariable := len(part) >= 2 && part[0] == '{' && part[len(part)-1] == '}'
		if !isVariable {
			segments[i] = segment{literal: part}
			continue
		}
		name, constraint, _ := strings.Cut(part[1:len(part)-1], ":")
		segments[i] = segment{param: name, digits: constraint == "int"}
	}
	return segments
}

func (r *patternRoute) match(pathSegments []string) (Params, bool) {
	if len(pathSegments) != len(r.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range r.segments {
		value := pathSegments[i]
		if seg.param == "" {
			if seg.literal != value {
				return nil, false
			}
			continue
		}
		if value == "" || (seg.digits && !allDigits(value)) {
			return nil, false
		}
		if params == nil {
			params = make(Params)
		}
		params[seg.param] = value
	}
	return params, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
