package http

import (
	"context"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Request is the normalized view of one inbound call. It is immutable after
// construction and is never shared between requests.
type Request struct {
	ctx     context.Context
	method  string
	path    string
	headers map[string]string
	query   map[string]string
	body    *string
}

// NewRequest builds a Request from transport primitives. It never rejects
// input: malformed query pairs keep their raw text and unknown charsets fall
// back to UTF-8. An empty body yields an absent body, not an empty string.
func NewRequest(method, path, rawQuery string, header map[string][]string, body []byte) *Request {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	headers := foldHeaders(header)

	req := &Request{
		ctx:     context.Background(),
		method:  method,
		path:    path,
		headers: headers,
		query:   parseQuery(rawQuery),
	}

	if len(body) > 0 {
		text := decodeBody(body, headers["content-type"])
		req.body = &text
	}

	return req
}

// FromHTTP builds a Request from a net/http request, reading the whole body.
// The returned Request is never nil; a non-nil error reports a body read
// failure, in which case the body is absent.
func FromHTTP(r *http.Request) (*Request, error) {
	var (
		body    []byte
		readErr error
	)
	if r.Body != nil && r.Body != http.NoBody {
		body, readErr = io.ReadAll(r.Body)
		if readErr != nil {
			body = nil
		}
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	req := NewRequest(r.Method, path, r.URL.RawQuery, r.Header, body)
	req.ctx = r.Context()
	return req, readErr
}

// Context returns the request context. It is carried for log and trace
// correlation only.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Method returns the HTTP method exactly as received
func (r *Request) Method() string {
	return r.method
}

// Path returns the path component, without the query string
func (r *Request) Path() string {
	return r.path
}

// Header looks a header up by name, ignoring case.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.headers[strings.ToLower(name)]
	return v, ok
}

// Headers returns a copy of the folded header map, keyed by lower-cased name.
func (r *Request) Headers() map[string]string {
	return maps.Clone(r.headers)
}

// Authorization returns the Authorization header value, or "".
func (r *Request) Authorization() string {
	v, _ := r.Header("Authorization")
	return v
}

// Query returns the decoded value of a query parameter.
func (r *Request) Query(key string) (string, bool) {
	v, ok := r.query[key]
	return v, ok
}

// QueryParams returns a copy of the decoded query parameters.
func (r *Request) QueryParams() map[string]string {
	return maps.Clone(r.query)
}

// Body returns the decoded body and whether one was sent at all.
func (r *Request) Body() (string, bool) {
	if r.body == nil {
		return "", false
	}
	return *r.body, true
}

// HasBody reports whether the client sent any body bytes
func (r *Request) HasBody() bool {
	return r.body != nil
}

// foldHeaders keeps the first value per lower-cased name. Names are visited in
// sorted order so spellings that differ only in case resolve deterministically.
func foldHeaders(header map[string][]string) map[string]string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	folded := make(map[string]string, len(header))
	for _, name := range names {
		values := header[name]
		if name == "" || len(values) == 0 {
			continue
		}
		key := strings.ToLower(name)
		if _, seen := folded[key]; seen {
			continue
		}
		folded[key] = values[0]
	}
	return folded
}

// parseQuery splits on '&' and then on the first '='. Keys and values are
// decoded independently; a pair that fails to decode keeps its raw text.
func parseQuery(rawQuery string) map[string]string {
	params := make(map[string]string)
	if rawQuery == "" {
		return params
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescapeOrRaw(key)
		value = unescapeOrRaw(value)
		if key == "" {
			continue
		}
		if _, exists := params[key]; !exists {
			params[key] = value
		}
	}
	return params
}

func unescapeOrRaw(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func decodeBody(body []byte, contentType string) string {
	decoded, err := bodyEncoding(contentType).NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return string(decoded)
}

// bodyEncoding resolves the charset parameter of a Content-Type value.
// Anything missing or unknown means UTF-8.
func bodyEncoding(contentType string) encoding.Encoding {
	if contentType == "" {
		return unicode.UTF8
	}
	charset := charsetParam(contentType)
	if charset == "" {
		return unicode.UTF8
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return unicode.UTF8
	}
	return enc
}

// charsetParam extracts the charset parameter. A header mime rejects because
// of some other malformed parameter is scanned for charset= directly.
func charsetParam(contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		return params["charset"]
	}
	for _, param := range strings.Split(contentType, ";")[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "charset") {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}
