package http

import (
	"errors"
	"fmt"
	"strings"

	apperrors "mrp/internal/errors"
)

const (
	defaultNotFoundMessage         = "Not found"
	defaultMethodNotAllowedMessage = "Method not allowed"
)

// TranslateError maps a failure to its response. It is the only place where
// failure kinds become status codes:
//
//	InvalidInput               400
//	Unauthenticated            401
//	NotFound                   404
//	MethodNotAllowed/Forbidden 405
//	anything else              500
//
// Every body is {"error": "<message>"}. TranslateError is pure, safe for
// concurrent use, and never panics.
func TranslateError(err error) (resp *Response) {
	defer func() {
		if recover() != nil {
			resp = ErrorJSON(StatusInternalServerError, string(apperrors.KindInternal))
		}
	}()

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindInvalidInput:
			return ErrorJSON(StatusBadRequest, appErr.Message)
		case apperrors.KindUnauthenticated:
			return ErrorJSON(StatusUnauthorized, appErr.Message)
		case apperrors.KindMethodNotAllowed, apperrors.KindForbidden:
			return ErrorJSON(StatusMethodNotAllowed, messageOrDefault(appErr.Message, defaultMethodNotAllowedMessage))
		case apperrors.KindNotFound:
			return ErrorJSON(StatusNotFound, messageOrDefault(appErr.Message, defaultNotFoundMessage))
		default:
			return ErrorJSON(StatusInternalServerError, messageOrDefault(appErr.Message, kindLabel(appErr)))
		}
	}

	if err == nil {
		return ErrorJSON(StatusInternalServerError, string(apperrors.KindInternal))
	}
	return ErrorJSON(StatusInternalServerError, messageOrDefault(err.Error(), typeLabel(err)))
}

func messageOrDefault(message, def string) string {
	if strings.TrimSpace(message) == "" {
		return def
	}
	return message
}

func kindLabel(err *apperrors.Error) string {
	if err.Kind == "" {
		return string(apperrors.KindInternal)
	}
	return string(err.Kind)
}

// typeLabel is the bare type name of err: no package path, no pointer.
func typeLabel(err error) string {
	name := strings.TrimLeft(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return string(apperrors.KindInternal)
	}
	return name
}
