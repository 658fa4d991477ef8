package http

// ContentType is the MIME type of a response body.
type ContentType string

const (
	ContentTypeText ContentType = "text/plain"
	ContentTypeJSON ContentType = "application/json"
)

// MIME returns the header value for the content type
func (c ContentType) MIME() string {
	return string(c)
}
