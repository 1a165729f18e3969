// Package wordlist resolves and loads the candidate-word source a scan run
// partitions across its Request Workers.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrExecutableLookupFailed is returned when the running binary's own path
// cannot be determined, which rules out the exe-relative fallback entirely.
// cmd/dirhunt maps this to its own distinct exit code.
var ErrExecutableLookupFailed = errors.New("wordlist: could not determine executable path")

const defaultWordlistName = "common.txt"

// ErrNotFound is returned when no wordlist file can be located at any
// explicit path or fallback search location.
type ErrNotFound struct {
	Searched []string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("wordlist: no wordlist found (searched: %s)", strings.Join(e.Searched, ", "))
}

// fallbackDirs is the fixed, ordered search path used when the caller
// supplies no explicit wordlist files: the running executable's own
// directory, then the two fixed system locations.
func fallbackDirs() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, ErrExecutableLookupFailed
	}
	return []string{
		filepath.Dir(exe),
		"/usr/share/dirble",
		"/usr/share/wordlists",
	}, nil
}

// Resolve determines the concrete file paths to load. Explicit paths
// always win; otherwise each fallback directory is tried in order for a
// file named defaultWordlistName. Returns ErrNotFound if nothing matches
// and ErrExecutableLookupFailed if the fallback search can't even begin.
func Resolve(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}

	dirs, err := fallbackDirs()
	if err != nil {
		return nil, err
	}

	var searched []string
	for _, dir := range dirs {
		candidate := filepath.Join(dir, defaultWordlistName)
		searched = append(searched, candidate)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return []string{candidate}, nil
		}
	}
	return nil, &ErrNotFound{Searched: searched}
}

// Load reads every path in order, strips blank and comment lines and each
// word's leading/trailing "/", then returns the merged set sorted and
// deduplicated — the same normalized wordlist every UriGenerator shard
// draws from.
func Load(paths []string) ([]string, error) {
	var words []string
	for _, path := range paths {
		fileWords, err := loadOne(path)
		if err != nil {
			return nil, err
		}
		words = append(words, fileWords...)
	}
	return normalize(words), nil
}

func loadOne(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, strings.Trim(word, "/"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: error reading %s: %w", path, err)
	}
	return words, nil
}

func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
