package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcauet/dirhunt/internal/scanner"
)

func stripColor(s string) string {
	var out []byte
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0x1b {
			inEscape = true
			continue
		}
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func TestTermPrinterHidesBareNotFoundByDefault(t *testing.T) {
	var buf bytes.Buffer
	p := NewTermPrinter(&buf, nil, false)
	p.Print(scanner.Finding{URL: "http://example.com/missing", Code: 404})
	assert.Empty(t, buf.String())
}

func TestTermPrinterShowsNotFoundWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	p := NewTermPrinter(&buf, nil, true)
	p.Print(scanner.Finding{URL: "http://example.com/missing", Code: 404})
	assert.NotEmpty(t, buf.String())
}

func TestTermPrinterFiltersToConfiguredStatusCodes(t *testing.T) {
	var buf bytes.Buffer
	p := NewTermPrinter(&buf, []int{200}, false)

	p.Print(scanner.Finding{URL: "http://example.com/a", Code: 301})
	assert.Empty(t, buf.String())

	p.Print(scanner.Finding{URL: "http://example.com/b", Code: 200})
	assert.Contains(t, stripColor(buf.String()), "http://example.com/b")
}

func TestTermPrinterRendersTreeIndentation(t *testing.T) {
	var buf bytes.Buffer
	p := NewTermPrinter(&buf, nil, false)
	p.Print(scanner.Finding{URL: "http://example.com/a/b/c", Code: 200, ParentDepth: 1})

	line := stripColor(buf.String())
	assert.Contains(t, line, "├── ")
	assert.Contains(t, line, "+ http://example.com/a/b/c")
}

func TestIsInteresting(t *testing.T) {
	assert.True(t, IsInteresting(200))
	assert.True(t, IsInteresting(301))
	assert.False(t, IsInteresting(404))
	assert.False(t, IsInteresting(500))
}
