// Package pipeline glues segmentation, normalization and chunking together:
// raw text in, ordered language-tagged chunks out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/nadzzz/voxsplit/internal/chunk"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/normalize"
	"github.com/nadzzz/voxsplit/internal/segment"
	"github.com/nadzzz/voxsplit/internal/trace"
)

var (
	// ErrEmptyInput is returned for blank input text.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoFragments is returned when the text holds no speakable letters.
	ErrNoFragments = errors.New("no speakable fragments in input")
)

// Options tune a Pipeline. Zero values select the defaults.
type Options struct {
	MaxChunkLength   int
	ShortTokenLength int
	Workers          int
}

// Pipeline turns text into chunks. It holds no per-run state and is safe for
// concurrent use.
type Pipeline struct {
	detector   *lang.Detector
	segmenter  *segment.Segmenter
	normalizer *normalize.Normalizer
	maxChunk   int
	workers    int
}

// New creates a Pipeline.
func New(detector *lang.Detector, normalizer *normalize.Normalizer, opts Options) *Pipeline {
	if normalizer == nil {
		normalizer = normalize.New()
	}
	if opts.MaxChunkLength == 0 {
		opts.MaxChunkLength = chunk.DefaultMaxLength
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Pipeline{
		detector:   detector,
		segmenter:  segment.NewSegmenter(detector, opts.ShortTokenLength),
		normalizer: normalizer,
		maxChunk:   opts.MaxChunkLength,
		workers:    opts.Workers,
	}
}

// Result is the outcome of one Prepare run.
type Result struct {
	Dominant   lang.Code              `json:"dominant"`
	Fragments  []segment.Fragment     `json:"fragments"`
	Normalized []normalize.Normalized `json:"normalized"`
	Chunks     []chunk.Chunk          `json:"chunks"`
}

// Languages returns the distinct chunk languages in order of first use.
func (r *Result) Languages() []lang.Code {
	var out []lang.Code
	for _, c := range r.Chunks {
		if !slices.Contains(out, c.Lang) {
			out = append(out, c.Lang)
		}
	}
	return out
}

// Fragments detects the dominant language of text and splits it into
// language-tagged fragments in source order.
func (p *Pipeline) Fragments(text string) (lang.Code, []segment.Fragment, error) {
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return "", nil, ErrEmptyInput
	}

	dominant := p.detector.Dominant(text)

	var fragments []segment.Fragment
	for sentence := range segment.Sentences(text) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		fragments = append(fragments, segment.Merge(p.segmenter.Tokens(sentence, dominant))...)
	}
	if len(fragments) == 0 {
		return dominant, nil, ErrNoFragments
	}
	return dominant, fragments, nil
}

// Prepare runs the whole pipeline. Fragments are normalized and chunked in
// parallel; the returned chunks keep source order.
func (p *Pipeline) Prepare(ctx context.Context, text string) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.prepare")
	defer span.End()

	dominant, fragments, err := p.Fragments(text)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	normalized := make([]normalize.Normalized, len(fragments))
	perFragment := make([][]chunk.Chunk, len(fragments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, f := range fragments {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := p.normalizer.Normalize(f)
			chunks := slices.Collect(chunk.Split(n.Text, n.Lang, p.maxChunk))
			for j := range chunks {
				chunks[j].Fragment = i
			}
			normalized[i] = n
			perFragment[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("preparing fragments: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("preparing fragments: %w", err)
	}

	res := &Result{
		Dominant:   dominant,
		Fragments:  fragments,
		Normalized: normalized,
		Chunks:     slices.Concat(perFragment...),
	}

	span.SetAttributes(
		attribute.String("dominant", dominant.String()),
		attribute.Int("fragments", len(fragments)),
		attribute.Int("chunks", len(res.Chunks)),
	)
	slog.Debug("pipeline prepared",
		"dominant", dominant,
		"fragments", len(fragments),
		"chunks", len(res.Chunks),
	)
	return res, nil
}
