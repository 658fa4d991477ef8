package http

// Response is what a controller hands back to the dispatcher. The body is
// kept as bytes so binary payloads are written untouched.
type Response struct {
	status      Status
	contentType ContentType
	body        []byte
}

// NewResponse creates a response with the given status and no body.
func NewResponse(status Status) *Response {
	return &Response{status: status}
}

// Status returns the response status; an unset status reads as 200 OK.
func (r *Response) Status() Status {
	if r.status == 0 {
		return StatusOK
	}
	return r.status
}

// SetStatus sets the status and returns r for chaining.
func (r *Response) SetStatus(status Status) *Response {
	r.status = status
	return r
}

// ContentType returns the body's MIME type, text/plain when never set.
func (r *Response) ContentType() ContentType {
	if r.contentType == "" {
		return ContentTypeText
	}
	return r.contentType
}

// SetContentType sets the content type and returns r for chaining.
func (r *Response) SetContentType(ct ContentType) *Response {
	r.contentType = ct
	return r
}

// Body returns the raw body bytes; nil when no body was set.
func (r *Response) Body() []byte {
	return r.body
}

// SetBody stores b as the body without copying.
func (r *Response) SetBody(b []byte) *Response {
	r.body = b
	return r
}

// SetText stores s as a UTF-8 body.
func (r *Response) SetText(s string) *Response {
	r.body = []byte(s)
	return r
}

// Text returns the body interpreted as UTF-8.
func (r *Response) Text() string {
	return string(r.body)
}

// ContentLength is the number of body bytes that will be written; zero for
// an absent body.
func (r *Response) ContentLength() int {
	return len(r.body)
}
