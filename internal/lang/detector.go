package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUndetermined is returned by an Identifier that found no usable signal.
var ErrUndetermined = errors.New("language could not be determined")

// Identifier is a statistical language-identification function.
// Implementations return their best guess, which may be a code outside the
// supported set, or an error when the text carries no signal.
type Identifier interface {
	Identify(text string) (Code, error)
}

// IdentifierFunc adapts a plain function to the Identifier interface.
type IdentifierFunc func(text string) (Code, error)

// Identify calls f(text).
func (f IdentifierFunc) Identify(text string) (Code, error) { return f(text) }

// Detector maps Identifier guesses onto the supported set. It never fails:
// every failure path resolves to a fallback code.
type Detector struct {
	identifier Identifier
	supported  Set
	fallback   Code
}

// NewDetector creates a Detector. fallback is the code returned for whole-text
// detection when identification fails or yields an unsupported language.
func NewDetector(identifier Identifier, supported Set, fallback Code) *Detector {
	return &Detector{
		identifier: identifier,
		supported:  supported,
		fallback:   fallback,
	}
}

// Supported returns the detector's supported set.
func (d *Detector) Supported() Set { return d.supported }

// Fallback returns the default code used for whole-text detection.
func (d *Detector) Fallback() Code { return d.fallback }

// Dominant returns the best-guess language of an entire input text.
func (d *Detector) Dominant(text string) Code {
	return d.resolve(text, d.fallback)
}

// LatinRun classifies a long Latin-script run on its own. Unlike Dominant it
// falls back to English, since the run is known to be Latin script.
func (d *Detector) LatinRun(text string) Code {
	return d.resolve(text, English)
}

func (d *Detector) resolve(text string, fallback Code) Code {
	text = strings.TrimSpace(text)
	if text == "" || d.identifier == nil {
		return fallback
	}

	code, err := d.identify(text)
	if err != nil {
		slog.Debug("language detection failed, using fallback", "fallback", fallback, "error", err)
		return fallback
	}
	if !d.supported.Contains(code) {
		slog.Debug("detected language not supported, using fallback", "detected", code, "fallback", fallback)
		return fallback
	}
	return code
}

// identify shields callers from identifiers that panic on odd input.
func (d *Detector) identify(text string) (code Code, err error) {
	defer func() {
		if r := recover(); r != nil {
			code, err = "", fmt.Errorf("identifier panic: %v", r)
		}
	}()
	return d.identifier.Identify(text)
}
