// Package message defines the request and result types exchanged with the
// transports and the command line.
package message

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/voxsplit/internal/chunk"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/segment"
)

// Request is a piece of text to prepare or speak.
type Request struct {
	// ID is a unique identifier for this request (UUID). Assigned on receipt
	// when the caller leaves it empty.
	ID string `json:"id,omitempty"`

	// Source identifies where the text came from (e.g., "clipboard", "http").
	Source string `json:"source,omitempty"`

	// Text is the raw input.
	Text string `json:"text"`

	// Voice overrides the per-language voice for every chunk.
	Voice string `json:"voice,omitempty"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NewRequest creates a Request with a fresh ID.
func NewRequest(source, text string) *Request {
	return &Request{
		ID:        uuid.NewString(),
		Source:    source,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// EnsureID fills in the ID and Timestamp when missing.
func (r *Request) EnsureID() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
}

// PrepareResult is the segmentation outcome returned to callers.
type PrepareResult struct {
	RequestID string             `json:"request_id"`
	Dominant  lang.Code          `json:"dominant,omitempty"`
	Fragments []segment.Fragment `json:"fragments"`
	Chunks    []chunk.Chunk      `json:"chunks"`

	// Error is set if processing failed.
	Error string `json:"error,omitempty"`
}

// ChunkAudio is one synthesized chunk.
type ChunkAudio struct {
	Fragment int       `json:"fragment"`
	Index    int       `json:"index"`
	Lang     lang.Code `json:"lang"`
	Text     string    `json:"text"`

	// Audio is the WAV audio as a base64-encoded string.
	Audio string `json:"audio,omitempty"`

	// ContentType is the MIME type of Audio (e.g., "audio/wav").
	ContentType string `json:"content_type,omitempty"`

	// Error is set when this chunk could not be synthesized.
	Error string `json:"error,omitempty"`
}

// SetAudioBytes base64-encodes raw audio bytes into Audio.
func (c *ChunkAudio) SetAudioBytes(audio []byte) {
	if len(audio) > 0 {
		c.Audio = base64.StdEncoding.EncodeToString(audio)
	}
}

// AudioBytes decodes Audio.
func (c *ChunkAudio) AudioBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.Audio)
}

// SpeakResult is the outcome of a speak request.
type SpeakResult struct {
	RequestID string       `json:"request_id"`
	Dominant  lang.Code    `json:"dominant,omitempty"`
	Chunks    []ChunkAudio `json:"chunks"`

	// FailedLanguages lists languages with at least one failed chunk.
	FailedLanguages []lang.Code `json:"failed_languages,omitempty"`

	// Error is set if the request failed as a whole.
	Error string `json:"error,omitempty"`
}
