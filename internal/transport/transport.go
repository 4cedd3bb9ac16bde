// Package transport defines the interface for the service-mode transports.
//
// Each transport (HTTP, gRPC) exposes the same two operations: prepare text
// into language-tagged chunks, or prepare and synthesize it. The transports
// don't care how the work is done; they only call the Handler.
package transport

import (
	"context"

	"github.com/nadzzz/voxsplit/internal/message"
)

// Handler processes requests arriving on a transport. speak.Speaker
// implements it.
type Handler interface {
	Prepare(ctx context.Context, req *message.Request) (*message.PrepareResult, error)
	Speak(ctx context.Context, req *message.Request) (*message.SpeakResult, error)
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts accepting requests and passes them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
