package piper

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/tts"
)

// fakePiper serves one Wyoming exchange per connection and records the
// requested voices.
type fakePiper struct {
	ln     net.Listener
	voices chan string
	fail   bool
}

func startFakePiper(t *testing.T, fail bool) *fakePiper {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakePiper{ln: ln, voices: make(chan string, 16), fail: fail}
	t.Cleanup(func() { _ = ln.Close() })
	go f.serve()
	return f
}

func (f *fakePiper) addr() string { return f.ln.Addr().String() }

func (f *fakePiper) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakePiper) handle(conn net.Conn) {
	defer conn.Close()
	evt, _, err := readEvent(bufio.NewReader(conn))
	if err != nil || evt.Type != "synthesize" {
		return
	}
	voice, _ := evt.Data["voice"].(map[string]any)
	name, _ := voice["name"].(string)
	f.voices <- name

	if f.fail {
		_ = writeEvent(conn, wyomingEvent{Type: "error", Data: map[string]any{"text": "voice not found"}}, nil)
		return
	}
	_ = writeEvent(conn, wyomingEvent{Type: "audio-start", Data: map[string]any{"rate": 16000, "width": 2, "channels": 1}}, nil)
	_ = writeEvent(conn, wyomingEvent{Type: "audio-chunk"}, []byte{1, 2, 3, 4})
	_ = writeEvent(conn, wyomingEvent{Type: "audio-chunk"}, []byte{5, 6})
	_ = writeEvent(conn, wyomingEvent{Type: "audio-stop"}, nil)
}

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Run("Should pick the voice of the chunk language", func(t *testing.T) {
		srv := startFakePiper(t, false)
		s, err := New(config.PiperConfig{Endpoint: "tcp://" + srv.addr()})
		require.NoError(t, err)
		defer s.Close()

		res, err := s.Synthesize(context.Background(), "Привіт", tts.SynthesizeOpts{Language: lang.Ukrainian})
		require.NoError(t, err)
		assert.Equal(t, "uk_UA-ukrainian_tts-medium", <-srv.voices)
		assert.Equal(t, "audio/wav", res.ContentType)
		assert.Equal(t, 16000, res.SampleRate)
		assert.Equal(t, 1, res.Channels)
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, res.Audio[44:])
	})

	t.Run("Should route languages to their own endpoints", func(t *testing.T) {
		def := startFakePiper(t, false)
		en := startFakePiper(t, false)
		s, err := New(config.PiperConfig{
			Endpoint:  def.addr(),
			Endpoints: map[string]string{"en": en.addr()},
			Voices:    map[string]string{"en": "en_GB-alan-low"},
		})
		require.NoError(t, err)

		_, err = s.Synthesize(context.Background(), "Hello", tts.SynthesizeOpts{Language: lang.English})
		require.NoError(t, err)
		assert.Equal(t, "en_GB-alan-low", <-en.voices)

		_, err = s.Synthesize(context.Background(), "Bonjour", tts.SynthesizeOpts{Language: lang.French, Voice: "custom"})
		require.NoError(t, err)
		assert.Equal(t, "custom", <-def.voices)
	})

	t.Run("Should fall back to the English voice", func(t *testing.T) {
		srv := startFakePiper(t, false)
		s, err := New(config.PiperConfig{Endpoint: srv.addr()})
		require.NoError(t, err)

		_, err = s.Synthesize(context.Background(), "Dzień dobry", tts.SynthesizeOpts{Language: "pl"})
		require.NoError(t, err)
		assert.Equal(t, defaultVoices[lang.English], <-srv.voices)
	})

	t.Run("Should surface server errors", func(t *testing.T) {
		srv := startFakePiper(t, true)
		s, err := New(config.PiperConfig{Endpoint: srv.addr()})
		require.NoError(t, err)

		_, err = s.Synthesize(context.Background(), "Hola", tts.SynthesizeOpts{Language: lang.Spanish})
		assert.ErrorContains(t, err, "voice not found")
	})

	t.Run("Should fail without an endpoint", func(t *testing.T) {
		s, err := New(config.PiperConfig{})
		require.NoError(t, err)

		_, err = s.Synthesize(context.Background(), "Hallo", tts.SynthesizeOpts{Language: lang.German})
		assert.ErrorIs(t, err, ErrNoEndpoint)
	})

	t.Run("Should reject blank text", func(t *testing.T) {
		s, err := New(config.PiperConfig{Endpoint: "localhost:1"})
		require.NoError(t, err)

		_, err = s.Synthesize(context.Background(), "  ", tts.SynthesizeOpts{Language: lang.English})
		assert.Error(t, err)
	})

	t.Run("Should reject malformed language keys", func(t *testing.T) {
		_, err := New(config.PiperConfig{Voices: map[string]string{"english": "x"}})
		assert.Error(t, err)
	})
}

func TestWyoming(t *testing.T) {
	t.Run("Should round-trip events with payloads", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEvent(&buf, wyomingEvent{Type: "audio-chunk", Data: map[string]any{"rate": 22050}}, []byte("pcm")))

		evt, payload, err := readEvent(bufio.NewReader(&buf))
		require.NoError(t, err)
		assert.Equal(t, "audio-chunk", evt.Type)
		assert.EqualValues(t, 22050, evt.Data["rate"])
		assert.Equal(t, []byte("pcm"), payload)
	})

	t.Run("Should reject malformed headers", func(t *testing.T) {
		_, _, err := readEvent(bufio.NewReader(bytes.NewBufferString("garbage\n")))
		assert.Error(t, err)
	})
}

func TestPCMToWAV(t *testing.T) {
	wav := pcmToWAV([]byte{0, 1, 2, 3}, 22050, 1, 2)
	require.Len(t, wav, 48)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, uint32(22050), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(wav[40:44]))
}

func TestSynthesizer_Endpoints(t *testing.T) {
	s, err := New(config.PiperConfig{
		Endpoint:  "tcp://piper:10200",
		Endpoints: map[string]string{"uk": "piper-uk:10200", "ru": "piper:10200"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"piper-uk:10200", "piper:10200"}, s.Endpoints())
}
