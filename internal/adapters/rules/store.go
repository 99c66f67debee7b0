// Package rules loads the server rules document and splits it into sections.
package rules

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rules-bot/internal/core/domain"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackText stands in for the rules when the document cannot be read.
const FallbackText = "No rules file found."

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document once. Read failures are logged and replaced by
// FallbackText so the bot can still start.
func (s *FileStore) Load() string {
	text, err := s.read()
	if err != nil {
		slog.Warn("Using fallback rules text", "path", s.path, "error", err)
		return FallbackText
	}

	slog.Info("Loaded rules document", "path", s.path, "chars", len([]rune(text)))
	return text
}

func (s *FileStore) read() (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDocumentMissing, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads UTF-8 text, dropping a leading byte order mark and
// normalising to NFC.
func Decode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, transform.Chain(decoder, norm.NFC)))
	if err != nil {
		return "", fmt.Errorf("decode rules: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("rules document is empty")
	}
	return text, nil
}
