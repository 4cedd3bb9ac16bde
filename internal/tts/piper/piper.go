// Package piper implements the TTS Synthesizer using a Piper Wyoming protocol server.
//
// Each chunk is sent on its own connection to the server hosting the chunk
// language's voice. Voice and endpoint resolution is memoized per language.
//
// Wyoming protocol format (per event):
//
//	<json_length> <payload_length>\n
//	<json_bytes>\n
//	<payload_bytes>   (if payload_length > 0)
package piper

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/tts"
)

// ErrNoEndpoint is returned when no Wyoming server is configured for a language.
var ErrNoEndpoint = errors.New("no piper endpoint configured")

// defaultVoices maps language codes to Piper voice model names.
var defaultVoices = map[lang.Code]string{
	lang.English:   "en_US-lessac-medium",
	lang.Ukrainian: "uk_UA-ukrainian_tts-medium",
	lang.Russian:   "ru_RU-ruslan-medium",
	lang.French:    "fr_FR-siwis-medium",
	lang.German:    "de_DE-thorsten-medium",
	lang.Spanish:   "es_ES-mls_10246-low",
}

// Synthesizer implements tts.Synthesizer using the Wyoming protocol.
type Synthesizer struct {
	endpoint  string               // default host:port of the Piper Wyoming server
	endpoints map[lang.Code]string // per-language Piper instances
	voices    map[lang.Code]string // language -> voice model
	cache     *tts.VoiceCache
	timeout   time.Duration
}

// New creates a new Piper synthesizer from config.
func New(cfg config.PiperConfig) (*Synthesizer, error) {
	voices := make(map[lang.Code]string, len(defaultVoices))
	for k, v := range defaultVoices {
		voices[k] = v
	}
	for k, v := range cfg.Voices {
		code, err := lang.ParseCode(k)
		if err != nil {
			return nil, fmt.Errorf("piper voices: %w", err)
		}
		voices[code] = v
	}

	endpoints := make(map[lang.Code]string, len(cfg.Endpoints))
	for k, ep := range cfg.Endpoints {
		code, err := lang.ParseCode(k)
		if err != nil {
			return nil, fmt.Errorf("piper endpoints: %w", err)
		}
		endpoints[code] = cleanEndpoint(ep)
	}

	s := &Synthesizer{
		endpoint:  cleanEndpoint(cfg.Endpoint),
		endpoints: endpoints,
		voices:    voices,
		timeout:   30 * time.Second,
	}
	cache, err := tts.NewVoiceCache(cfg.VoiceCacheSize, s.resolveVoice)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

func cleanEndpoint(ep string) string {
	ep = strings.TrimPrefix(ep, "tcp://")
	ep = strings.TrimPrefix(ep, "http://")
	return ep
}

// resolveVoice picks the voice model and server for a language. Languages
// without their own voice fall back to English.
func (s *Synthesizer) resolveVoice(code lang.Code) (tts.Voice, error) {
	name := s.voices[code]
	if name == "" {
		name = s.voices[lang.English]
	}
	endpoint := s.endpoints[code]
	if endpoint == "" {
		endpoint = s.endpoint
	}
	if endpoint == "" {
		return tts.Voice{}, fmt.Errorf("%w for language %q", ErrNoEndpoint, code)
	}
	return tts.Voice{Name: name, Endpoint: endpoint}, nil
}

// Endpoints lists the distinct Wyoming servers this synthesizer may dial.
func (s *Synthesizer) Endpoints() []string {
	var out []string
	if s.endpoint != "" {
		out = append(out, s.endpoint)
	}
	for _, ep := range s.endpoints {
		if !slices.Contains(out, ep) {
			out = append(out, ep)
		}
	}
	slices.Sort(out)
	return out
}

// Synthesize sends text to the Piper server and returns synthesized audio as WAV.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}

	voice, err := s.cache.Get(opts.Language)
	if err != nil {
		return nil, err
	}
	if opts.Voice != "" {
		voice.Name = opts.Voice
	}

	slog.Debug("piper synthesize", "text_length", len(text), "voice", voice.Name, "language", opts.Language, "endpoint", voice.Endpoint)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", voice.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("connecting to piper: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(s.timeout))
	}

	synthEvent := wyomingEvent{
		Type: "synthesize",
		Data: map[string]any{
			"text": text,
			"voice": map[string]any{
				"name": voice.Name,
			},
		},
	}
	if err := writeEvent(conn, synthEvent, nil); err != nil {
		return nil, fmt.Errorf("sending synthesize event: %w", err)
	}

	return readAudio(bufio.NewReader(conn))
}

// readAudio consumes audio-start, audio-chunk* and audio-stop events.
func readAudio(r *bufio.Reader) (*tts.SynthesizeResult, error) {
	var (
		pcmBuf     bytes.Buffer
		sampleRate = 22050
		channels   = 1
		width      = 2
	)

	for {
		evt, payload, err := readEvent(r)
		if err != nil {
			return nil, fmt.Errorf("reading piper event: %w", err)
		}

		switch evt.Type {
		case "audio-start":
			if rate, ok := evt.Data["rate"].(float64); ok {
				sampleRate = int(rate)
			}
			if ch, ok := evt.Data["channels"].(float64); ok {
				channels = int(ch)
			}
			if w, ok := evt.Data["width"].(float64); ok {
				width = int(w)
			}

		case "audio-chunk":
			pcmBuf.Write(payload)

		case "audio-stop":
			slog.Debug("piper audio-stop", "pcm_bytes", pcmBuf.Len())
			return &tts.SynthesizeResult{
				Audio:       pcmToWAV(pcmBuf.Bytes(), sampleRate, channels, width),
				ContentType: "audio/wav",
				SampleRate:  sampleRate,
				Channels:    channels,
			}, nil

		case "error":
			msg := "unknown error"
			if text, ok := evt.Data["text"].(string); ok {
				msg = text
			}
			return nil, fmt.Errorf("piper error: %s", msg)

		default:
			slog.Debug("piper unknown event", "type", evt.Type)
		}
	}
}

// Close drops the resolved voices; connections are per-request.
func (s *Synthesizer) Close() error {
	s.cache.Purge()
	return nil
}
