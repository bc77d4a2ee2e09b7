package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// bufferedResponse captures the downstream handler's output in memory. The
// handler goroutine owns it exclusively; nothing is sent to the client until
// flush, so an abandoned handler's late writes land here and are discarded.
type bufferedResponse struct {
	header      http.Header
	code        int
	body        bytes.Buffer
	wroteHeader bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), code: http.StatusOK}
}

func (w *bufferedResponse) Header() http.Header {
	return w.header
}

func (w *bufferedResponse) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.code = code
	w.wroteHeader = true
}

func (w *bufferedResponse) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.body.Write(b)
}

func (w *bufferedResponse) flush(dst http.ResponseWriter) {
	for key, values := range w.header {
		for _, v := range values {
			dst.Header().Add(key, v)
		}
	}
	dst.WriteHeader(w.code)
	_, _ = dst.Write(w.body.Bytes())
}

// Timeout bounds the handling of every request. Downstream runs in its own
// goroutine against a private buffered writer and a deadline-carrying
// request, never sharing per-request state with this one: the engine builds
// a fresh context for the inner call, so an abandoned handler can only write
// into its own buffer. On expiry the caller gets a 504 and the buffer is
// thrown away when the straggler finishes. Side effects of abandoned
// handlers are not rolled back here, so downstream operations must be
// individually transactional.
func Timeout(next http.Handler, d time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()

		buf := newBufferedResponse()
		done := make(chan struct{})
		panicChan := make(chan any, 1)
		go func() {
			defer func() {
				if p := recover(); p != nil {
					panicChan <- p
					return
				}
				close(done)
			}()
			next.ServeHTTP(buf, r.WithContext(ctx))
		}()

		select {
		case <-done:
			buf.flush(w)
		case p := <-panicChan:
			panic(p)
		case <-ctx.Done():
			log.WithField("path", r.URL.Path).Warn("Request timed out")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusGatewayTimeout)
			_, _ = w.Write([]byte(`{"error":"Request timeout"}`))
		}
	})
}
