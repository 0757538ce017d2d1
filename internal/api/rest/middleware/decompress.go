// Package middleware provides various middleware functionality.
package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// Decompress transparently unwraps gzip-encoded request bodies so that handlers always read
// plain JSON or text. Response compression is delegated to the chi compressor on the router.
func Decompress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer gz.Close()
		r.Body = gz
		// the body length is unknown after unwrapping
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}
