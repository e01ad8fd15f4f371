package frames

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// ErrInvalidLog is returned when the frames document is not an array of arrays
var ErrInvalidLog = errors.New("invalid frames log")

// Load reads the whole frames file and splits it into raw entries
func Load(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frames file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames file: %w", err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse splits a frames document into raw entries.
// Entries keep every element undecoded; length filtering happens in Decode.
func Parse(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidLog)
	}

	if !isArray(data) {
		return nil, fmt.Errorf("%w: expected an array of entries", ErrInvalidLog)
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(data, &rawEntries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLog, err)
	}

	entries := make([]Entry, 0, len(rawEntries))
	for i, raw := range rawEntries {
		var entry Entry
		if !isArray(raw) {
			return nil, fmt.Errorf("%w: entry %d is not an array", ErrInvalidLog, i)
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d is not an array", ErrInvalidLog, i)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
