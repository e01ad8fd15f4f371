package frames

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// EntryLength is the number of elements a frame entry must carry to be decoded
const EntryLength = 6

// ErrInvalidEntry is returned when a six-element entry has a field that does not convert
var ErrInvalidEntry = errors.New("invalid frame entry")

// Entry is one raw element of the frames log, still undecoded
type Entry []json.RawMessage

// Record is one decoded work session.
// Project, Identifier and Tags keep the literal JSON text of their source
// values, so a string project is stored with its quotes.
type Record struct {
	Duration   int64 // seconds, end - start
	Project    string
	Identifier string
	Tags       []string
}

// RecordKey is the comparable identity of a Record
type RecordKey struct {
	Duration   int64
	Project    string
	Identifier string
	Tags       string
}

// Key returns the identity used to collapse structurally identical records
func (r Record) Key() RecordKey {
	return RecordKey{
		Duration:   r.Duration,
		Project:    r.Project,
		Identifier: r.Identifier,
		Tags:       strings.Join(r.Tags, "\x00"),
	}
}

// Decode turns one raw entry into a Record and the instant the interval started.
//
// ok is false when the entry does not have exactly EntryLength elements; such
// entries are tolerated and must be skipped. A six-element entry whose fields
// do not convert yields ErrInvalidEntry.
func Decode(entry Entry) (record Record, start time.Time, ok bool, err error) {
	if len(entry) != EntryLength {
		return Record{}, time.Time{}, false, nil
	}

	startSec, err := decodeEpoch(entry[0])
	if err != nil {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: start: %v", ErrInvalidEntry, err)
	}
	endSec, err := decodeEpoch(entry[1])
	if err != nil {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: end: %v", ErrInvalidEntry, err)
	}

	project, err := literal(entry[2])
	if err != nil {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: project: %v", ErrInvalidEntry, err)
	}
	identifier, err := literal(entry[3])
	if err != nil {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: identifier: %v", ErrInvalidEntry, err)
	}

	var rawTags []json.RawMessage
	if !isArray(entry[4]) {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: tags: expected an array, got %s", ErrInvalidEntry, entry[4])
	}
	if err := json.Unmarshal(entry[4], &rawTags); err != nil {
		return Record{}, time.Time{}, true, fmt.Errorf("%w: tags: expected an array, got %s", ErrInvalidEntry, entry[4])
	}
	tags := make([]string, 0, len(rawTags))
	for i, raw := range rawTags {
		tag, err := canonical(raw)
		if err != nil {
			return Record{}, time.Time{}, true, fmt.Errorf("%w: tag %d: %v", ErrInvalidEntry, i, err)
		}
		tags = append(tags, tag)
	}

	// entry[5] is reserved by the log format and ignored

	return Record{
		Duration:   endSec - startSec,
		Project:    project,
		Identifier: identifier,
		Tags:       tags,
	}, time.Unix(startSec, 0), true, nil
}

// StartSeconds decodes only the start instant of an entry
func StartSeconds(entry Entry) (int64, error) {
	if len(entry) == 0 {
		return 0, fmt.Errorf("%w: empty entry", ErrInvalidEntry)
	}
	sec, err := decodeEpoch(entry[0])
	if err != nil {
		return 0, fmt.Errorf("%w: start: %v", ErrInvalidEntry, err)
	}
	return sec, nil
}

func decodeEpoch(raw json.RawMessage) (int64, error) {
	value, err := decodeValue(raw)
	if err != nil {
		return 0, err
	}

	var number json.Number
	switch v := value.(type) {
	case json.Number:
		number = v
	case string:
		number = json.Number(v)
	default:
		return 0, fmt.Errorf("expected whole seconds, got %s", raw)
	}

	// base 10 only, no fractions
	sec, err := number.Int64()
	if err != nil {
		return 0, fmt.Errorf("expected whole seconds, got %s", raw)
	}
	return sec, nil
}

// literal returns the canonical JSON text of a primitive value
func literal(raw json.RawMessage) (string, error) {
	value, err := decodeValue(raw)
	if err != nil {
		return "", err
	}
	switch value.(type) {
	case []interface{}, map[string]interface{}:
		return "", fmt.Errorf("expected a primitive value, got %s", raw)
	}
	return encodeValue(value)
}

// canonical re-encodes any JSON value so equal values share one spelling
func canonical(raw json.RawMessage) (string, error) {
	value, err := decodeValue(raw)
	if err != nil {
		return "", err
	}
	return encodeValue(value)
}

func decodeValue(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func encodeValue(value interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
