// Package speak runs a request through the pipeline and synthesizes every
// chunk with the voice of its language.
//
// Chunks are synthesized one at a time in source order. A chunk that fails is
// skipped and reported; the run fails only when no chunk could be
// synthesized.
package speak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nadzzz/voxsplit/internal/chunk"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/notify"
	"github.com/nadzzz/voxsplit/internal/pipeline"
	"github.com/nadzzz/voxsplit/internal/trace"
	"github.com/nadzzz/voxsplit/internal/tts"
)

var (
	// ErrAllChunksFailed is returned when no chunk could be synthesized.
	ErrAllChunksFailed = errors.New("all chunks failed to synthesize")
	// ErrSynthesisDisabled is returned by Speak when no synthesizer is set.
	ErrSynthesisDisabled = errors.New("speech synthesis is disabled")
)

// ChunkResult is the synthesis outcome of one chunk.
type ChunkResult struct {
	chunk.Chunk
	Audio *tts.SynthesizeResult
	Err   error
}

// OK reports whether the chunk was synthesized.
func (c ChunkResult) OK() bool { return c.Err == nil && c.Audio != nil }

// Result is the outcome of one Handle call.
type Result struct {
	RequestID string
	Prepared  *pipeline.Result
	Chunks    []ChunkResult
}

// Succeeded returns the synthesized chunks in order.
func (r *Result) Succeeded() []ChunkResult {
	var out []ChunkResult
	for _, c := range r.Chunks {
		if c.OK() {
			out = append(out, c)
		}
	}
	return out
}

// FailedLanguages lists the languages of failed chunks in order of first
// failure.
func (r *Result) FailedLanguages() []lang.Code {
	var out []lang.Code
	for _, c := range r.Chunks {
		if !c.OK() && !slices.Contains(out, c.Lang) {
			out = append(out, c.Lang)
		}
	}
	return out
}

// Speaker is the orchestration engine shared by the CLI and the transports.
type Speaker struct {
	pipeline    *pipeline.Pipeline
	synthesizer tts.Synthesizer // nil if TTS is disabled
	notifier    notify.Notifier
}

// New creates a Speaker. synthesizer may be nil, in which case only Prepare
// is available. notifier may be nil.
func New(p *pipeline.Pipeline, synthesizer tts.Synthesizer, notifier notify.Notifier) *Speaker {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Speaker{pipeline: p, synthesizer: synthesizer, notifier: notifier}
}

// Handle prepares req.Text and synthesizes every chunk. Pipeline and
// all-chunks failures are notified as errors and returned; partial failures
// are recorded per chunk.
func (s *Speaker) Handle(ctx context.Context, req *message.Request) (*Result, error) {
	if s.synthesizer == nil {
		return nil, ErrSynthesisDisabled
	}
	req.EnsureID()
	start := time.Now()
	logger := slog.With("request_id", req.ID, "source", req.Source)

	ctx, span := trace.StartSpan(ctx, "speak.handle")
	defer span.End()
	span.SetAttributes(attribute.String("request_id", req.ID))

	prepared, err := s.pipeline.Prepare(ctx, req.Text)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("pipeline failed", "error", err)
		s.notifier.Notify("Nothing to speak", err.Error(), true)
		return nil, err
	}
	logger.Info("text prepared",
		"dominant", prepared.Dominant,
		"fragments", len(prepared.Fragments),
		"chunks", len(prepared.Chunks))

	result := &Result{
		RequestID: req.ID,
		Prepared:  prepared,
		Chunks:    make([]ChunkResult, 0, len(prepared.Chunks)),
	}
	for _, c := range prepared.Chunks {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		audio, err := s.synthesize(ctx, c, req.Voice)
		if err != nil {
			logger.Warn("chunk synthesis failed, skipping",
				"fragment", c.Fragment, "index", c.Index, "lang", c.Lang, "error", err)
		}
		result.Chunks = append(result.Chunks, ChunkResult{Chunk: c, Audio: audio, Err: err})
	}

	ok := len(result.Succeeded())
	failed := result.FailedLanguages()
	span.SetAttributes(attribute.Int("chunks.ok", ok), attribute.Int("chunks.total", len(result.Chunks)))

	if ok == 0 {
		err := fmt.Errorf("%w (languages: %s)", ErrAllChunksFailed, joinCodes(failed))
		span.SetStatus(codes.Error, err.Error())
		logger.Error("speak failed", "error", err)
		s.notifier.Notify("Speech failed", err.Error(), true)
		return result, err
	}

	detail := fmt.Sprintf("%d of %d chunks in %s", ok, len(result.Chunks), joinCodes(prepared.Languages()))
	if len(failed) > 0 {
		detail += fmt.Sprintf("; failed: %s", joinCodes(failed))
	}
	s.notifier.Notify("Speech ready", detail, false)
	logger.Info("speak complete", "duration", time.Since(start), "ok", ok, "total", len(result.Chunks))
	return result, nil
}

func (s *Speaker) synthesize(ctx context.Context, c chunk.Chunk, voice string) (*tts.SynthesizeResult, error) {
	ctx, span := trace.StartSpan(ctx, "speak.synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("lang", c.Lang.String()),
		attribute.Int("fragment", c.Fragment),
		attribute.Int("index", c.Index),
		attribute.Int("length", c.Len()),
	)

	res, err := s.synthesizer.Synthesize(ctx, c.Text, tts.SynthesizeOpts{Language: c.Lang, Voice: voice})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("synthesizing %s chunk %d.%d: %w", c.Lang, c.Fragment, c.Index, err)
	}
	return res, nil
}

// Prepare runs only the pipeline and returns a transport-facing result.
func (s *Speaker) Prepare(ctx context.Context, req *message.Request) (*message.PrepareResult, error) {
	req.EnsureID()
	out := &message.PrepareResult{RequestID: req.ID}

	res, err := s.pipeline.Prepare(ctx, req.Text)
	if err != nil {
		out.Error = err.Error()
		return out, err
	}
	out.Dominant = res.Dominant
	out.Fragments = res.Fragments
	out.Chunks = res.Chunks
	return out, nil
}

// Speak runs Handle and returns a transport-facing result with base64 audio.
func (s *Speaker) Speak(ctx context.Context, req *message.Request) (*message.SpeakResult, error) {
	req.EnsureID()
	out := &message.SpeakResult{RequestID: req.ID}

	res, err := s.Handle(ctx, req)
	if res != nil {
		out.Dominant = res.Prepared.Dominant
		out.FailedLanguages = res.FailedLanguages()
		for _, c := range res.Chunks {
			ca := message.ChunkAudio{Fragment: c.Fragment, Index: c.Index, Lang: c.Lang, Text: c.Text}
			if c.Err != nil {
				ca.Error = c.Err.Error()
			} else if c.Audio != nil {
				ca.SetAudioBytes(c.Audio.Audio)
				ca.ContentType = c.Audio.ContentType
			}
			out.Chunks = append(out.Chunks, ca)
		}
	}
	if err != nil {
		out.Error = err.Error()
		return out, err
	}
	return out, nil
}

func joinCodes(codes []lang.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
