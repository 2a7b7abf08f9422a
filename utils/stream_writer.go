package utils

import (
	"bytes"
	"encoding/json"
	"net/http"

	"file-aggregator/models"
)

// SetStreamHeaders prepares w for a server-sent event stream and disables
// proxy buffering.
func SetStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteStreamEvent writes one "data: <json>" record followed by a blank line
// and flushes it.
func WriteStreamEvent(w http.ResponseWriter, event models.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + 8)
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	return nil
}

// EventWriter adapts an http.ResponseWriter to a stream sink.
type EventWriter struct {
	W http.ResponseWriter
}

func (e EventWriter) Send(event models.StreamEvent) error {
	return WriteStreamEvent(e.W, event)
}
