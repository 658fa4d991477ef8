// Package http implements the request-handling core of the media rating
// platform: the normalized request and response model, the prefix router,
// the per-controller sub-router, the failure translator, and the dispatcher
// that ties them to net/http.
//
// # Request Flow
//
// A request flows through these steps:
//
//	net/http → chi (RequestID, RealIP) → Dispatcher.ServeHTTP
//	                                          ↓
//	       FromHTTP → Router.Match → Controller.Handle → Routes.Dispatch → handler
//	                                          ↓
//	       Response, or error → TranslateError → Response
//	                                          ↓
//	       Content-Type, Content-Length, status, body
//
// # Controllers
//
// A controller owns one path prefix and receives the original, unstripped
// request. Controllers built on Routes declare their shapes up front:
//
//	routes := NewRoutes().
//	    Get("/media", c.search).
//	    Get("/media/{id:int}", c.get)
//
// Handlers return typed errors from mrp/internal/errors and never write to
// the transport themselves.
//
// # Error Handling
//
// Every failure body has the shape {"error": "<message>"}:
//
//	InvalidInput               400
//	Unauthenticated            401
//	NotFound                   404
//	MethodNotAllowed/Forbidden 405
//	anything else              500
//
// Panics inside a controller are recovered by the dispatcher and answered
// with 500; the stack goes to the log, never to the client.
//
// # Testing
//
// Controllers are tested end to end through the Dispatcher with httptest
// and real in-memory services.
package http
