package speak

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/normalize"
	"github.com/nadzzz/voxsplit/internal/pipeline"
	"github.com/nadzzz/voxsplit/internal/script"
	"github.com/nadzzz/voxsplit/internal/tts"
)

type call struct {
	text  string
	lang  lang.Code
	voice string
}

// stubSynth returns the chunk text as audio and fails for the listed languages.
type stubSynth struct {
	mu    sync.Mutex
	fail  map[lang.Code]bool
	calls []call
}

func (s *stubSynth) Synthesize(_ context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{text: text, lang: opts.Language, voice: opts.Voice})
	if s.fail[opts.Language] {
		return nil, errors.New("voice unavailable")
	}
	return &tts.SynthesizeResult{Audio: []byte(text), ContentType: "audio/wav", SampleRate: 22050, Channels: 1}, nil
}

func (s *stubSynth) Close() error { return nil }

type notification struct {
	title   string
	isError bool
}

type recorder struct {
	mu   sync.Mutex
	seen []notification
}

func (r *recorder) Notify(title, _ string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, notification{title: title, isError: isError})
}

func newPipeline() *pipeline.Pipeline {
	id := lang.IdentifierFunc(func(text string) (lang.Code, error) {
		if script.ClassifyString(text) == script.Latin {
			return lang.English, nil
		}
		return lang.Ukrainian, nil
	})
	detector := lang.NewDetector(id, lang.NewSet(lang.DefaultSupported...), lang.Ukrainian)
	return pipeline.New(detector, normalize.New(), pipeline.Options{})
}

const mixed = "Вчора NASA запустила 2 ракети."

func TestSpeaker_Handle(t *testing.T) {
	t.Run("Should synthesize each chunk with its language in order", func(t *testing.T) {
		synth, rec := &stubSynth{}, &recorder{}
		s := New(newPipeline(), synth, rec)

		res, err := s.Handle(context.Background(), &message.Request{Text: mixed})
		require.NoError(t, err)
		assert.NotEmpty(t, res.RequestID)

		assert.Equal(t, []call{
			{text: "Вчора", lang: lang.Ukrainian},
			{text: "NASA", lang: lang.English},
			{text: "запустила два ракети.", lang: lang.Ukrainian},
		}, synth.calls)
		assert.Len(t, res.Succeeded(), 3)
		assert.Empty(t, res.FailedLanguages())
		assert.Equal(t, []notification{{title: "Speech ready"}}, rec.seen)
	})

	t.Run("Should skip failed chunks and keep going", func(t *testing.T) {
		synth, rec := &stubSynth{fail: map[lang.Code]bool{lang.English: true}}, &recorder{}
		s := New(newPipeline(), synth, rec)

		res, err := s.Handle(context.Background(), &message.Request{Text: mixed})
		require.NoError(t, err)
		assert.Len(t, synth.calls, 3, "failed chunks are not retried")
		assert.Len(t, res.Succeeded(), 2)
		assert.Equal(t, []lang.Code{lang.English}, res.FailedLanguages())
		assert.Error(t, res.Chunks[1].Err)
		assert.Equal(t, "NASA", res.Chunks[1].Text)
		assert.False(t, rec.seen[0].isError)
	})

	t.Run("Should fail when every chunk fails", func(t *testing.T) {
		synth := &stubSynth{fail: map[lang.Code]bool{lang.English: true, lang.Ukrainian: true}}
		rec := &recorder{}
		s := New(newPipeline(), synth, rec)

		res, err := s.Handle(context.Background(), &message.Request{Text: mixed})
		require.ErrorIs(t, err, ErrAllChunksFailed)
		assert.Contains(t, err.Error(), "uk, en")
		require.NotNil(t, res)
		assert.Empty(t, res.Succeeded())
		assert.Equal(t, []notification{{title: "Speech failed", isError: true}}, rec.seen)
	})

	t.Run("Should notify and stop on empty input", func(t *testing.T) {
		synth, rec := &stubSynth{}, &recorder{}
		s := New(newPipeline(), synth, rec)

		_, err := s.Handle(context.Background(), &message.Request{Text: "   "})
		assert.ErrorIs(t, err, pipeline.ErrEmptyInput)
		assert.Empty(t, synth.calls)
		assert.Equal(t, []notification{{title: "Nothing to speak", isError: true}}, rec.seen)
	})

	t.Run("Should pass voice overrides through", func(t *testing.T) {
		synth := &stubSynth{}
		s := New(newPipeline(), synth, nil)

		_, err := s.Handle(context.Background(), &message.Request{Text: "Привіт.", Voice: "custom"})
		require.NoError(t, err)
		require.Len(t, synth.calls, 1)
		assert.Equal(t, "custom", synth.calls[0].voice)
	})

	t.Run("Should refuse to speak without a synthesizer", func(t *testing.T) {
		_, err := New(newPipeline(), nil, nil).Handle(context.Background(), &message.Request{Text: mixed})
		assert.ErrorIs(t, err, ErrSynthesisDisabled)
	})
}

func TestSpeaker_Prepare(t *testing.T) {
	s := New(newPipeline(), nil, nil)

	t.Run("Should return fragments and chunks", func(t *testing.T) {
		res, err := s.Prepare(context.Background(), &message.Request{ID: "req-1", Text: mixed})
		require.NoError(t, err)
		assert.Equal(t, "req-1", res.RequestID)
		assert.Equal(t, lang.Ukrainian, res.Dominant)
		assert.Len(t, res.Fragments, 3)
		assert.Len(t, res.Chunks, 3)
	})

	t.Run("Should report pipeline errors in the result", func(t *testing.T) {
		res, err := s.Prepare(context.Background(), &message.Request{Text: "42"})
		assert.ErrorIs(t, err, pipeline.ErrNoFragments)
		assert.NotEmpty(t, res.Error)
	})
}

func TestSpeaker_Speak(t *testing.T) {
	s := New(newPipeline(), &stubSynth{fail: map[lang.Code]bool{lang.English: true}}, nil)

	res, err := s.Speak(context.Background(), &message.Request{Text: mixed})
	require.NoError(t, err)
	require.Len(t, res.Chunks, 3)

	audio, err := res.Chunks[0].AudioBytes()
	require.NoError(t, err)
	assert.Equal(t, "Вчора", string(audio))
	assert.Equal(t, "audio/wav", res.Chunks[0].ContentType)
	assert.NotEmpty(t, res.Chunks[1].Error)
	assert.Empty(t, res.Chunks[1].Audio)
	assert.Equal(t, []lang.Code{lang.English}, res.FailedLanguages)
}
