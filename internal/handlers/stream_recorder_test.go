package handlers_test

import (
	"bytes"
	"net/http"
	"sync"
)

// streamRecorder is a goroutine-safe ResponseWriter for long-lived responses. gin's Stream
// needs http.CloseNotifier, which httptest.ResponseRecorder does not implement.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	code   int
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (r *streamRecorder) Header() http.Header { return r.header }

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.body.Write(b)
}

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	r.code = code
	r.mu.Unlock()
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return make(chan bool)
}

func (r *streamRecorder) BodyString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}
