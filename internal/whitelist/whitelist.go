// Package whitelist maintains the set of literal values that must never
// be reported as PII (company hotlines, public addresses, test fixtures).
package whitelist

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"sync"
)

// Whitelist is a file-backed set of exact values. Lookups are hot-path
// (one per surviving candidate), so the set lives in memory and the file
// is only touched on Add.
type Whitelist struct {
	mu    sync.RWMutex
	items map[string]bool
	path  string
}

// New creates or loads a whitelist from the given path. A missing file is
// not an error; the set starts empty.
func New(path string) (*Whitelist, error) {
	w := &Whitelist{
		items: make(map[string]bool),
		path:  path,
	}
	if err := w.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return w, nil
}

func (w *Whitelist) load() error {
	file, err := os.Open(w.path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			w.items[line] = true
		}
	}
	return scanner.Err()
}

// Contains reports whether value is whitelisted.
func (w *Whitelist) Contains(value string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.items[strings.TrimSpace(value)]
}

// Items returns the whitelisted values, sorted.
func (w *Whitelist) Items() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.items))
	for v := range w.items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Add inserts value and persists it. Adding an existing value is a no-op.
func (w *Whitelist) Add(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.items[value] {
		return nil
	}
	w.items[value] = true

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(value + "\n")
	return err
}
