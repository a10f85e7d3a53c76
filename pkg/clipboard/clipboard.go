// Package clipboard adapts the system clipboard to the small read/write
// contracts the form needs for address paste and copy.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// Reader reads text from a clipboard.
type Reader interface {
	ReadAll() (string, error)
}

// Writer writes text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// ReadWriter is a clipboard that can be read and written.
type ReadWriter interface {
	Reader
	Writer
}

// System is the host clipboard.
type System struct{}

// ReadAll implements Reader.
func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard, used when the host has none.
type Memory struct {
	Text string
	Err  error
}

// ReadAll implements Reader.
func (m *Memory) ReadAll() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// WriteAll implements Writer.
func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}

// Detect returns the system clipboard when available and an empty Memory otherwise.
func Detect() ReadWriter {
	if clipboard.Unsupported {
		return &Memory{}
	}
	return System{}
}
