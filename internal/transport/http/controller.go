package http

// Controller owns one registered path prefix. Handle receives the original,
// unstripped request and either returns a response or an error for the
// dispatcher to translate. Controllers are shared across concurrent requests.
type Controller interface {
	Handle(req *Request) (*Response, error)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(req *Request) (*Response, error)

// Handle calls f(req).
func (f ControllerFunc) Handle(req *Request) (*Response, error) {
	return f(req)
}

// JSON serializes v with the given status. A value that cannot be serialized
// becomes a 500 error body.
func JSON(status Status, v any) *Response {
	body, err := marshalJSON(v)
	if err != nil {
		return ErrorJSON(StatusInternalServerError, "Failed to render JSON")
	}
	return NewResponse(status).SetContentType(ContentTypeJSON).SetBody(body)
}

// OKJSON is JSON with 200 OK.
func OKJSON(v any) *Response {
	return JSON(StatusOK, v)
}

// ErrorJSON builds the {"error": message} body used by the error translator,
// so controller-written errors look identical to translated ones.
func ErrorJSON(status Status, message string) *Response {
	body, err := marshalJSON(errorBody{Error: message})
	if err != nil {
		body = fallbackErrorBody
	}
	return NewResponse(status).SetContentType(ContentTypeJSON).SetBody(body)
}

// MessageJSON is a 200 {"message": message} acknowledgement.
func MessageJSON(message string) *Response {
	return OKJSON(messageBody{Message: message})
}

// Text builds a text/plain response.
func Text(status Status, s string) *Response {
	return NewResponse(status).SetContentType(ContentTypeText).SetText(s)
}
