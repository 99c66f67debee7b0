package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks startup configuration that prevents the bot from connecting.
	ErrConfiguration = errors.New("configuration error")

	// ErrDocumentMissing is logged when the rules file cannot be read; callers get the fallback text.
	ErrDocumentMissing = errors.New("rules document missing")

	ErrEmptyQuestion   = errors.New("question is empty")
	ErrEmptyCompletion = errors.New("completion returned no choices")
)

// UpstreamError wraps any failure of an outbound call (completion, embedding,
// command registration).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream wraps err as an UpstreamError unless it already is one.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
