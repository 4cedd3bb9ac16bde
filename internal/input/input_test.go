package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	ctx := context.Background()

	t.Run("Should read the clipboard", func(t *testing.T) {
		src := Clipboard{ReadAll: func() (string, error) { return "Вчора NASA", nil }}
		got, err := src.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Вчора NASA", got)
	})

	t.Run("Should wrap clipboard errors", func(t *testing.T) {
		boom := errors.New("no display")
		_, err := Clipboard{ReadAll: func() (string, error) { return "", boom }}.Read(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Should report an empty clipboard", func(t *testing.T) {
		_, err := Clipboard{ReadAll: func() (string, error) { return " \n", nil }}.Read(ctx)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("Should read files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("Hello світ."), 0o600))
		got, err := File{Path: path}.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hello світ.", got)
	})

	t.Run("Should fail on missing files", func(t *testing.T) {
		_, err := File{Path: filepath.Join(t.TempDir(), "missing.txt")}.Read(ctx)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Should read readers", func(t *testing.T) {
		got, err := Reader{R: strings.NewReader("from stdin")}.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from stdin", got)
	})

	t.Run("Should honour cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Reader{R: strings.NewReader("x")}.Read(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Should pass literal text through", func(t *testing.T) {
		got, err := Text("Bonjour").Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bonjour", got)

		_, err = Text("").Read(ctx)
		assert.ErrorIs(t, err, ErrEmpty)
	})
}
