package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// compressibleTypes lists response content types worth compressing.
var compressibleTypes = []string{
	"image/svg+xml",
	"application/json",
	"text/plain",
}

// GzipMiddleware compresses eligible responses with gzip when accepted by the client.
// The response is buffered so the decision can be made on the final Content-Type.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		w.Header().Add("Vary", "Accept-Encoding")

		if len(wrapper.body) == 0 || !isCompressible(w.Header().Get("Content-Type")) {
			w.WriteHeader(wrapper.statusCode)
			w.Write(wrapper.body)
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			w.WriteHeader(wrapper.statusCode)
			w.Write(wrapper.body)
			return
		}
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.WriteHeader(wrapper.statusCode)

		gz.Write(wrapper.body)
	})
}

func isCompressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

// WriteHeader captures the status code without immediately writing it.
func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

// Write appends the byte slice to the body buffer.
func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return len(b), nil
}
