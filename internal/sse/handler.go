package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// KeepaliveInterval is how often we write a comment to an idle connection
const KeepaliveInterval = 30 * time.Second

// Handler is an HTTP handler that serves a stream of data using Server-Sent Events
type Handler[T any] struct {
	ctx    context.Context
	logger *zap.Logger
	b      *bus[T]

	// Backlog, if set, supplies the messages to replay to each client as soon as it
	// connects
	Backlog func() []T
	// ID, if set, supplies the SSE event ID for each message
	ID func(T) string
	// Filter, if set, derives from each request a match function that limits which
	// messages that client receives. A nil match function receives everything.
	Filter func(req *http.Request) func(T) bool
}

// NewHandler initializes an SSE handler that will read messages from the given channel
// and fan them out to all extant HTTP connections
func NewHandler[T any](ctx context.Context, ch <-chan T, logger *zap.Logger) *Handler[T] {
	h := &Handler[T]{
		ctx:    ctx,
		logger: logger,
		b:      newBus[T](),
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				h.b.clear()
				return
			case message := <-ch:
				if dropped := h.b.publish(message); dropped > 0 {
					h.logger.Warn("dropped SSE message for slow clients", zap.Int("clients", dropped))
				}
			}
		}
	}()
	return h
}

// ServeHTTP responds by opening a long-lived HTTP connection to which events will be
// written as the handler receives them, formatted as text/event-stream messages with
// 'data' consisting of a JSON-encoded message payload
func (h *Handler[T]) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	// If a content-type is explicitly requested, require that it's text/event-stream
	accept := req.Header.Get("accept")
	if accept != "" && accept != "*/*" && !strings.HasPrefix(accept, "text/event-stream") {
		message := fmt.Sprintf("content-type %s is not supported", accept)
		http.Error(res, message, http.StatusBadRequest)
		return
	}

	flusher, ok := res.(http.Flusher)
	if !ok {
		http.Error(res, "streaming is not supported", http.StatusInternalServerError)
		return
	}

	// Keep the connection alive and open a text/event-stream response body
	res.Header().Set("content-type", "text/event-stream")
	res.Header().Set("cache-control", "no-cache")
	res.Header().Set("connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	// Register before replaying the backlog so that nothing printed in between is
	// missed
	var match func(T) bool
	if h.Filter != nil {
		match = h.Filter(req)
	}
	ch := make(chan T, 32)
	h.b.register(ch, match)
	defer h.b.unregister(ch)

	// Send an initial keepalive message to ensure that proxies start streaming
	// immediately, then catch the client up
	res.Write([]byte(":\n\n"))
	if h.Backlog != nil {
		for _, message := range h.Backlog() {
			if match == nil || match(message) {
				h.write(res, message)
			}
		}
	}
	flusher.Flush()

	// Send all incoming messages to the client for as long as the connection is open
	logger := h.logger.With(zap.String("remote", req.RemoteAddr))
	logger.Info("opened SSE connection")
	for {
		select {
		case <-time.After(KeepaliveInterval):
			res.Write([]byte(":\n\n"))
			flusher.Flush()
		case message := <-ch:
			h.write(res, message)
			flusher.Flush()
		case <-h.ctx.Done():
			logger.Info("server is shutting down; abandoning SSE connection")
			return
		case <-req.Context().Done():
			logger.Info("SSE connection closed")
			return
		}
	}
}

func (h *Handler[T]) write(res http.ResponseWriter, message T) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to serialize SSE message as JSON", zap.Error(err))
		return
	}
	if h.ID != nil {
		fmt.Fprintf(res, "id: %s\n", h.ID(message))
	}
	fmt.Fprintf(res, "data: %s\n\n", data)
}
