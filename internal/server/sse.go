package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/portfolio-generator/internal/pipeline"
)

// SSE event names of the generation stream.
const (
	eventStep     = "step"
	eventComplete = "complete"
	eventError    = "error"
)

var errStreamClosed = errors.New("event stream closed")

// progressStream writes a generation run as server-sent events: one "step"
// per pipeline stage, then "complete" with the response body or "error".
// Provider fetches report from their own goroutines, so writes are serialized.
// After the first failed write, typically a disconnected client, every
// further event is dropped.
type progressStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
	closed  bool
}

func newProgressStream(w http.ResponseWriter) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &progressStream{w: w, flusher: flusher}, nil
}

func (p *progressStream) send(event string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errStreamClosed
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p.seq++
	if _, err := fmt.Fprintf(p.w, "id: %d\nevent: %s\ndata: %s\n\n", p.seq, event, payload); err != nil {
		p.closed = true
		return err
	}
	p.flusher.Flush()
	return nil
}

func (p *progressStream) step(ev pipeline.ProgressEvent) error {
	return p.send(eventStep, ev)
}

func (p *progressStream) complete(resp *GenerateResponse) error {
	return p.send(eventComplete, resp)
}

func (p *progressStream) fail(message string) error {
	return p.send(eventError, map[string]any{"success": false, "error": message})
}
