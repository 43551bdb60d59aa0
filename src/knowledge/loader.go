package knowledge

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"
)

const (
	fieldDelimiter = ","
	utf8BOM        = "\ufeff"
	maxLineBytes   = 1 << 20
)

// Base is the load-once knowledge collection. It is never mutated after
// Load returns and may be shared between goroutines.
type Base struct {
	path    string
	entries []model.KnowledgeEntry
}

// Load reads the knowledge source at path. It never fails: a missing or
// unreadable source yields an empty Base and a log entry.
func Load(path string) *Base {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("Knowledge source not found, running without local knowledge")
		} else {
			logger.Error().Err(err).Str("path", path).Msg("Failed to open knowledge source")
		}
		return &Base{path: path}
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Int("entries", len(entries)).Msg("Failed to read knowledge source, keeping entries read so far")
	}

	logger.Info().Str("path", path).Int("entries", len(entries)).Msg("Knowledge base loaded")
	return &Base{path: path, entries: entries}
}

// NewBase wraps already-parsed entries
func NewBase(entries []model.KnowledgeEntry) *Base {
	cp := make([]model.KnowledgeEntry, len(entries))
	copy(cp, entries)
	return &Base{entries: cp}
}

// Parse reads header + "question,answer" lines from r. Lines with fewer than
// two fields, with an empty question or answer, or longer than maxLineBytes
// are skipped. On a read error the entries collected so far are returned
// together with the error.
func Parse(r io.Reader) ([]model.KnowledgeEntry, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	var entries []model.KnowledgeEntry
	header := true
	for lineNo := 1; ; lineNo++ {
		line, tooLong, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, err
		}

		if header {
			header = false
			continue
		}
		if tooLong {
			logger.Warn().Int("line", lineNo).Int("max_bytes", maxLineBytes).Msg("Skipping oversized knowledge line")
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// readLine returns the next line without its terminator. Lines longer than
// maxLineBytes are drained and reported with tooLong set.
func readLine(reader *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF && (len(line) > 0 || tooLong) {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func parseLine(raw []byte) (model.KnowledgeEntry, bool) {
	line := strings.ToValidUTF8(string(bytes.TrimSuffix(raw, []byte("\r"))), "\uFFFD")
	line = strings.TrimPrefix(line, utf8BOM)

	parts := strings.Split(line, fieldDelimiter)
	if len(parts) < 2 {
		return model.KnowledgeEntry{}, false
	}

	entry := model.KnowledgeEntry{
		Question: strings.TrimSpace(parts[0]),
		Answer:   strings.TrimSpace(parts[1]),
	}
	if entry.Question == "" || entry.Answer == "" {
		return model.KnowledgeEntry{}, false
	}
	return entry, true
}

// Entries returns the loaded entries in source order. Callers must not modify
// the returned slice.
func (b *Base) Entries() []model.KnowledgeEntry {
	if b == nil {
		return nil
	}
	return b.entries
}

// Len is the number of loaded entries
func (b *Base) Len() int {
	return len(b.Entries())
}

// Path is the source the base was loaded from
func (b *Base) Path() string {
	if b == nil {
		return ""
	}
	return b.path
}
