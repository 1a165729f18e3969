package output

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/mcauet/dirhunt/internal/scanner"
)

// FileWriter is the line-oriented persisted-report sink: one plain-text
// line per Finding, flushed immediately so a run that's interrupted still
// leaves a usable partial report on disk.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	writer   *bufio.Writer
	enabled  bool
	filePath string
}

// NewFileWriter opens outputPath for writing. An empty path disables the
// writer: every method becomes a no-op, so callers don't need to branch on
// whether file output was requested.
func NewFileWriter(outputPath string) (*FileWriter, error) {
	w := &FileWriter{
		filePath: outputPath,
		enabled:  outputPath != "",
	}

	if !w.enabled {
		return w, nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, err
	}

	w.file = file
	w.writer = bufio.NewWriter(file)

	return w, nil
}

// Write appends one line for f: depth-indented letter, URL, and suffix —
// the same contract the terminal printer renders, minus color codes.
func (w *FileWriter) Write(f scanner.Finding) error {
	if !w.enabled {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	depth := scanner.Depth(f.URL, f.ParentDepth)
	line := fmt.Sprintf("%s%s%s %s\n", indentSpaces(depth), scanner.ClassificationLetter(f), f.URL, scanner.Suffix(f))

	if _, err := w.writer.WriteString(line); err != nil {
		return err
	}
	return w.writer.Flush()
}

func indentSpaces(depth int) string {
	if depth <= 0 {
		return ""
	}
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// Close flushes and closes the underlying file.
func (w *FileWriter) Close() error {
	if !w.enabled || w.file == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// IsEnabled reports whether file output was requested for this run.
func (w *FileWriter) IsEnabled() bool {
	return w.enabled
}

// Path returns the configured output file path.
func (w *FileWriter) Path() string {
	return w.filePath
}
