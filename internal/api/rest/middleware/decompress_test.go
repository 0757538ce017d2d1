package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func echoBody(t *testing.T) (http.Handler, *string) {
	var got string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		got = string(b)
		w.WriteHeader(http.StatusOK)
	}), &got
}

// Tests

func TestDecompress_GzipBody(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`{"url":"https://example.com"}`))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())

	handler, got := echoBody(t)
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Decompress(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"url":"https://example.com"}`, *got)
}

func TestDecompress_PlainBodyPassesThrough(t *testing.T) {
	handler, got := echoBody(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("https://example.com"))
	rec := httptest.NewRecorder()
	Decompress(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", *got)
}

func TestDecompress_CorruptGzipBody(t *testing.T) {
	handler, _ := echoBody(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Decompress(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
