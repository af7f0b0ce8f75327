package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackingBody struct {
	io.Reader
	read   int
	closed bool
}

func (b *trackingBody) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	b.read += n
	return n, err
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainAndCloseRequest(t *testing.T) {
	payload := `{"exerciseId":"squat","sets":[{"reps":10}]}`
	body := &trackingBody{Reader: strings.NewReader(payload)}
	req := httptest.NewRequest(http.MethodPost, "/modules/vertical-jump/logs", nil)
	req.Body = body

	// handler that never reads the body
	handler := DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, len(payload), body.read)
	assert.True(t, body.closed)
}

func TestDrainAndCloseRequest_LargeBody(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", 2*maxDrainBytes))}
	req := httptest.NewRequest(http.MethodPost, "/modules/vertical-jump/logs", nil)
	req.Body = body

	DrainAndCloseRequest()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, maxDrainBytes, body.read)
	assert.True(t, body.closed)
}
