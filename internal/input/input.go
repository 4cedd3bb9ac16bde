// Package input acquires the text to be spoken.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when a source holds no text.
var ErrEmpty = errors.New("no text in input")

// maxInputBytes caps how much a single read accepts.
const maxInputBytes = 8 << 20

// Source provides one text input.
type Source interface {
	Name() string
	Read(ctx context.Context) (string, error)
}

// Clipboard reads the system clipboard.
type Clipboard struct {
	// ReadAll defaults to clipboard.ReadAll.
	ReadAll func() (string, error)
}

// Name implements Source.
func (Clipboard) Name() string { return "clipboard" }

// Read implements Source.
func (c Clipboard) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.ReadAll == nil && clipboard.Unsupported {
		return "", fmt.Errorf("clipboard is not supported on this system")
	}
	read := c.ReadAll
	if read == nil {
		read = clipboard.ReadAll
	}
	text, err := read()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return nonEmpty(text)
}

// File reads a text file.
type File struct {
	Path string
}

// Name implements Source.
func (f File) Name() string { return "file" }

// Read implements Source.
func (f File) Read(ctx context.Context) (string, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("opening input file: %w", err)
	}
	defer fh.Close()
	return Reader{R: fh}.Read(ctx)
}

// Reader reads everything from an io.Reader such as stdin.
type Reader struct {
	R io.Reader
}

// Name implements Source.
func (Reader) Name() string { return "stdin" }

// Read implements Source.
func (r Reader) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(r.R, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return nonEmpty(string(data))
}

// Text is a fixed string, used for text passed on the command line.
type Text string

// Name implements Source.
func (Text) Name() string { return "args" }

// Read implements Source.
func (t Text) Read(context.Context) (string, error) { return nonEmpty(string(t)) }

func nonEmpty(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrEmpty
	}
	return s, nil
}
