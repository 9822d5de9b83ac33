package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ceexam/qconv/internal/question"
)

// Entry is one persisted record: its id and the JSON object exactly as
// it was read or generated.
type Entry struct {
	ID  int
	Raw json.RawMessage
}

// MarshalJSON emits the stored object unchanged.
func (e Entry) MarshalJSON() ([]byte, error) {
	return e.Raw, nil
}

// Corpus is the merged output of a run.
type Corpus struct {
	Entries []Entry

	// Protected counts entries carried over from the previous corpus.
	Protected int

	// Generated counts entries produced by this run.
	Generated int
}

// Load reads a persisted corpus. A missing file yields an empty corpus.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(data)
}

// Parse decodes a corpus document after checking it against FileSchema.
func Parse(data []byte) ([]Entry, error) {
	if err := validateJSON(FileSchema, data, -1); err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}

	entries := make([]Entry, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			ID float64 `json:"id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("decode corpus record %d: %w", i, err)
		}
		entries = append(entries, Entry{ID: int(head.ID), Raw: raw})
	}
	return entries, nil
}

// NewEntry encodes a record as a corpus entry.
func NewEntry(r question.Record) (Entry, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return Entry{}, fmt.Errorf("encode record %d: %w", r.ID, err)
	}
	return Entry{ID: r.ID, Raw: bytes.TrimRight(buf.Bytes(), "\n")}, nil
}

// Merge keeps the existing entries below protectedBelow, in their original
// order, and appends the fresh records. Every other existing entry is
// dropped; fresh output supersedes it entirely.
func Merge(existing []Entry, fresh []question.Record, protectedBelow int) (Corpus, error) {
	c := Corpus{Entries: make([]Entry, 0, len(fresh))}
	for _, e := range existing {
		if e.ID < protectedBelow {
			c.Entries = append(c.Entries, e)
			c.Protected++
		}
	}
	for _, r := range fresh {
		e, err := NewEntry(r)
		if err != nil {
			return Corpus{}, err
		}
		c.Entries = append(c.Entries, e)
		c.Generated++
	}
	return c, nil
}

// Validate checks every entry against RecordSchema and returns one error
// per failing entry.
func Validate(entries []Entry) ([]error, error) {
	var issues []error
	for i, e := range entries {
		err := validateJSON(RecordSchema, e.Raw, i)
		var serr *SchemaError
		switch {
		case err == nil:
		case errors.As(err, &serr):
			issues = append(issues, err)
		default:
			return nil, err
		}
	}
	return issues, nil
}

// CheckGenerated validates the entries this run produced against
// RecordSchema. Protected entries are not checked. Issues are joined into
// one error; each is a *SchemaError indexed by corpus position.
func CheckGenerated(c Corpus) error {
	var issues []error
	for i := c.Protected; i < len(c.Entries); i++ {
		err := validateJSON(RecordSchema, c.Entries[i].Raw, i)
		var serr *SchemaError
		switch {
		case err == nil:
		case errors.As(err, &serr):
			issues = append(issues, err)
		default:
			return err
		}
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d generated records fail the record schema: %w", len(issues), errors.Join(issues...))
	}
	return nil
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func DuplicateIDs(entries []Entry) []int {
	seen := map[int]int{}
	var dups []int
	for _, e := range entries {
		seen[e.ID]++
		if seen[e.ID] == 2 {
			dups = append(dups, e.ID)
		}
	}
	return dups
}

// Encode renders entries as an indented UTF-8 JSON array. Non-ASCII text
// and HTML characters are written as is.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode corpus: %w", err)
	}
	return buf.Bytes(), nil
}

// Save replaces the file at path with the encoded corpus. The file is
// written next to its destination and renamed into place.
func Save(path string, c Corpus) error {
	data, err := Encode(c.Entries)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close corpus: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod corpus: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}
	return nil
}
