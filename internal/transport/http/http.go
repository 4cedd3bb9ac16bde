// Package http implements the HTTP transport for voxsplit.
//
// It exposes POST /prepare and POST /speak, accepting either a JSON
// message.Request or a raw text/plain body, plus the Swagger UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/pipeline"
	"github.com/nadzzz/voxsplit/internal/speak"
	"github.com/nadzzz/voxsplit/internal/transport"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	return t.Serve(ctx, lis, handler)
}

// Serve runs the HTTP server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	t.server = &http.Server{
		Handler:           Routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// Routes builds the HTTP routing table.
func Routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /prepare", func(w http.ResponseWriter, r *http.Request) {
		handlePrepare(w, r, handler)
	})
	mux.HandleFunc("POST /speak", func(w http.ResponseWriter, r *http.Request) {
		handleSpeak(w, r, handler)
	})

	// Swagger UI serves the registered OpenAPI document.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return mux
}

// handlePrepare processes a POST /prepare request.
//
// @Summary     Segment, normalize and chunk text
// @Tags        pipeline
// @Accept      json
// @Accept      plain
// @Produce     json
// @Param       request  body      message.Request  true  "Text to prepare. A text/plain body is taken as the text itself."
// @Success     200  {object}  message.PrepareResult
// @Failure     422  {object}  message.PrepareResult  "No speakable text"
// @Router      /prepare [post]
func handlePrepare(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	result, err := handler.Prepare(r.Context(), req)
	if err != nil {
		slog.Warn("prepare failed", "request_id", req.ID, "error", err)
	}
	writeJSON(w, statusFor(err), result)
}

// handleSpeak processes a POST /speak request.
//
// @Summary     Prepare text and synthesize every chunk
// @Tags        pipeline
// @Accept      json
// @Accept      plain
// @Produce     json
// @Param       request  body      message.Request  true  "Text to speak. A text/plain body is taken as the text itself."
// @Success     200  {object}  message.SpeakResult
// @Failure     422  {object}  message.SpeakResult  "No speakable text"
// @Failure     502  {object}  message.SpeakResult  "Every chunk failed to synthesize"
// @Failure     503  {string}  string               "Synthesis is disabled"
// @Router      /speak [post]
func handleSpeak(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	result, err := handler.Speak(r.Context(), req)
	if err != nil {
		slog.Warn("speak failed", "request_id", req.ID, "error", err)
	}
	writeJSON(w, statusFor(err), result)
}

// decodeRequest reads a JSON or text/plain body into a Request.
func decodeRequest(w http.ResponseWriter, r *http.Request) (*message.Request, bool) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	req := &message.Request{Source: "http"}
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(body).Decode(req); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		if req.Source == "" {
			req.Source = "http"
		}
	case "text/plain", "":
		data, err := io.ReadAll(body)
		if err != nil {
			http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		req.Text = string(data)
		if src := r.Header.Get("X-Voxsplit-Source"); src != "" {
			req.Source = src
		}
		req.Voice = r.Header.Get("X-Voxsplit-Voice")
	default:
		http.Error(w, "unsupported content type: "+mediaType, http.StatusUnsupportedMediaType)
		return nil, false
	}
	req.EnsureID()
	return req, true
}

// statusFor maps handler errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, pipeline.ErrEmptyInput), errors.Is(err, pipeline.ErrNoFragments):
		return http.StatusUnprocessableEntity
	case errors.Is(err, speak.ErrAllChunksFailed):
		return http.StatusBadGateway
	case errors.Is(err, speak.ErrSynthesisDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
