package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

const baseHistory = "history.utf8"

// Each persisted line starts with the mode it was entered in. Lines without
// a prefix are operator invocations.
const (
	evalPrefix = "E:"
	ctrlPrefix = "C:"
)

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode

	key uint64
}

func newEntry(line string, mode inputMode) HistoryEntry {
	return HistoryEntry{
		Line: line,
		Mode: mode,
		key:  xxh3.HashString(modePrefix(mode) + line),
	}
}

func modePrefix(mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPrefix
	}

	return evalPrefix
}

func parseEntry(text string) HistoryEntry {
	if line, ok := strings.CutPrefix(text, ctrlPrefix); ok {
		return newEntry(line, modeCtrl)
	}

	return newEntry(strings.TrimPrefix(text, evalPrefix), modeEval)
}

func (e HistoryEntry) String() string { return modePrefix(e.Mode) + e.Line }

// History is the list of submitted lines, oldest first, mirrored to a file.
// Each line and mode pair appears at most once.
type History struct {
	path    string
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those in the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	var entries []HistoryEntry

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			entries = append(entries, parseEntry(text))
		}
	}

	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()

	return scanner.Err()
}

// WriteWithMode records line as the newest entry. Repeating the newest entry
// changes nothing. An older copy of the entry is moved to the end, which
// rewrites the file. Blank lines are ignored.
func (h *History) WriteWithMode(line string, mode inputMode) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	entry := newEntry(line, mode)

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1].key == entry.key {
		return 0, nil
	}

	i := slices.IndexFunc(h.entries, func(e HistoryEntry) bool { return e.key == entry.key })
	if i < 0 {
		h.entries = append(h.entries, entry)

		return h.persist(os.O_APPEND, entry)
	}

	h.entries = append(slices.Delete(h.entries, i, i+1), entry)

	return h.persist(os.O_TRUNC, h.entries...)
}

// persist writes entries to the history file opened with flag. h.mu must be
// held.
func (h *History) persist(flag int, entries ...HistoryEntry) (int, error) {
	file, err := os.OpenFile(h.path, flag|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}

	w := bufio.NewWriter(file)

	for _, e := range entries {
		_, _ = w.WriteString(e.String() + "\n")
	}

	n := w.Buffered()

	return n, errors.Join(w.Flush(), file.Close())
}

// GetEntry returns entry i, where 0 is the oldest.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}
