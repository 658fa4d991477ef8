package http

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mrp/internal/errors"
)

func TestJSONHelpers(t *testing.T) {
	resp := OKJSON(map[string]any{"html": "<b>&</b>", "n": 1})
	assert.Equal(t, StatusOK, resp.Status())
	assert.Equal(t, ContentTypeJSON, resp.ContentType())
	assert.Equal(t, `{"html":"<b>&</b>","n":1}`, resp.Text())

	resp = JSON(StatusConflict, map[string]float64{"x": math.NaN()})
	assert.Equal(t, StatusInternalServerError, resp.Status())
	assert.Equal(t, `{"error":"Failed to render JSON"}`, resp.Text())

	resp = ErrorJSON(StatusConflict, "Username already exists")
	assert.Equal(t, StatusConflict, resp.Status())
	assert.Equal(t, `{"error":"Username already exists"}`, resp.Text())

	assert.Equal(t, `{"message":"Logged out"}`, MessageJSON("Logged out").Text())

	resp = Text(StatusOK, "OK")
	assert.Equal(t, ContentTypeText, resp.ContentType())
	assert.Equal(t, 2, resp.ContentLength())
}

func TestErrorJSONMatchesTranslator(t *testing.T) {
	fromController := ErrorJSON(StatusBadRequest, `quote " and \ slash`)
	fromTranslator := TranslateError(apperrors.InvalidInput(`quote " and \ slash`))
	assert.Equal(t, fromTranslator.Body(), fromController.Body())
}

func TestResponseDefaults(t *testing.T) {
	resp := &Response{}
	assert.Equal(t, StatusOK, resp.Status())
	assert.Equal(t, ContentTypeText, resp.ContentType())
	assert.Nil(t, resp.Body())
	assert.Equal(t, 0, resp.ContentLength())

	resp.SetStatus(StatusNotFound).SetContentType(ContentTypeJSON).SetBody([]byte{0xff, 0x00})
	assert.Equal(t, []byte{0xff, 0x00}, resp.Body())
	assert.Equal(t, "404 Not Found", resp.Status().String())
	assert.Equal(t, "I'm a teapot", Status(418).Reason())
}

type bindTarget struct {
	Title     string `json:"title" validate:"required"`
	MediaType string `json:"mediaType" validate:"required,oneof=movie series game"`
	Password  string `json:"password" validate:"omitempty,min=4"`
	Year      int    `json:"releaseYear" validate:"gte=0,lte=3000"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		wantErr string
	}{
		{"absent body", nil, "Request body is empty"},
		{"blank body", []byte("  \n"), "Request body is empty"},
		{"malformed", []byte(`{"title":`), "Invalid JSON"},
		{"wrong type", []byte(`{"title":5}`), "Invalid JSON"},
		{"missing title", []byte(`{"mediaType":"movie"}`), "title is required"},
		{"bad media type", []byte(`{"title":"x","mediaType":"book"}`), "mediaType must be one of: movie, series, game"},
		{"short password", []byte(`{"title":"x","mediaType":"game","password":"abc"}`), "password must be at least 4"},
		{"year too large", []byte(`{"title":"x","mediaType":"game","releaseYear":5000}`), "releaseYear must be less than or equal to 3000"},
		{"valid", []byte(`{"title":"x","mediaType":"series","unknown":true}`), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst bindTarget
			err := DecodeJSON(NewRequest("POST", "/media", "", nil, tt.body), &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", dst.Title)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))

			resp := TranslateError(err)
			assert.Equal(t, StatusBadRequest, resp.Status())
			assert.Equal(t, tt.wantErr, errorMessage(t, resp))
		})
	}
}

func TestValidate_NonStructPasses(t *testing.T) {
	assert.NoError(t, Validate(42))
	assert.NoError(t, Validate(&bindTarget{Title: "t", MediaType: "movie"}))
}
