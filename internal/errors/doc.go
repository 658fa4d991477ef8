// Package errors defines the failure taxonomy shared by controllers, services
// and the dispatcher.
//
// Controllers and services return *Error values built with the kind
// constructors (InvalidInput, Unauthenticated, Forbidden, MethodNotAllowed,
// NotFound, Internal). The transport layer classifies any returned error with
// KindOf, which follows wrapped chains:
//
//	if err := svc.Update(ctx, id, dto); err != nil {
//	    return nil, fmt.Errorf("update media %d: %w", id, err)
//	}
//
// Errors that carry no kind are treated as unclassified server failures.
package errors
