package http

import (
	"sort"
	"strings"
)

// Route is one entry of the router's table.
type Route struct {
	Prefix     string
	Controller Controller
}

// Router maps path prefixes to controllers. It is populated with Register
// before serving starts and only read afterwards, so Resolve takes no lock.
type Router struct {
	controllers map[string]Controller
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{controllers: make(map[string]Controller)}
}

// Register maps prefix to c. A trailing slash on the prefix is ignored and a
// repeated prefix replaces the earlier controller. Register must not be called
// once the router is serving requests.
func (r *Router) Register(prefix string, c Controller) {
	if c == nil {
		panic("router: nil controller for prefix " + prefix)
	}
	if !strings.HasPrefix(prefix, "/") {
		panic("router: prefix must start with '/': " + prefix)
	}
	r.controllers[normalizePrefix(prefix)] = c
}

// Resolve returns the controller owning path.
func (r *Router) Resolve(path string) (Controller, bool) {
	route, ok := r.Match(path)
	return route.Controller, ok
}

// Match returns the route owning path. A prefix owns a path equal to it or
// continuing with '/' after it; among several owners the longest prefix wins,
// so /media2 never resolves to /media.
func (r *Router) Match(path string) (Route, bool) {
	candidate := path
	for {
		if c, ok := r.controllers[candidate]; ok {
			return Route{Prefix: candidate, Controller: c}, true
		}
		i := strings.LastIndexByte(candidate, '/')
		if i <= 0 {
			break
		}
		candidate = candidate[:i]
	}
	return Route{}, false
}

// Routes returns the table sorted by prefix.
func (r *Router) Routes() []Route {
	routes := make([]Route, 0, len(r.controllers))
	for prefix, c := range r.controllers {
		routes = append(routes, Route{Prefix: prefix, Controller: c})
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Prefix < routes[j].Prefix
	})
	return routes
}

// Len returns the number of registered prefixes
func (r *Router) Len() int {
	return len(r.controllers)
}

func normalizePrefix(prefix string) string {
	trimmed := strings.TrimRight(prefix, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
