// Package parser reads meeting note drafts from Markdown files with YAML
// frontmatter.
//
// A draft file looks like:
//
//	---
//	date: 2024-06-01
//	start: "09:00"
//	end: "09:30"
//	reportee: Alex
//	---
//	- discussed roadmap
//
// The frontmatter carries the scalar fields and the body is the discussion
// points, kept as Markdown.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/rapport/internal/models"
)

// ErrFrontmatter is returned when the frontmatter block is not valid YAML.
var ErrFrontmatter = errors.New("invalid frontmatter")

const delim = "---"

// ParseDraft extracts a draft from raw Markdown bytes. Content without a
// frontmatter block becomes the points of an otherwise empty draft; the
// validator decides what is missing.
func ParseDraft(data []byte) (*models.Draft, error) {
	block, body, ok := splitFrontmatter(data)
	d := &models.Draft{}
	if ok {
		if err := yaml.Unmarshal(block, d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFrontmatter, err)
		}
	}
	d.Date = strings.TrimSpace(d.Date)
	d.StartTime = strings.TrimSpace(d.StartTime)
	d.EndTime = strings.TrimSpace(d.EndTime)
	d.Reportee = strings.TrimSpace(d.Reportee)
	d.Points = strings.TrimRight(body, "\n\r")
	return d, nil
}

// FormatDraft renders d in the format ParseDraft reads.
func FormatDraft(d models.Draft) ([]byte, error) {
	fm, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("parser: marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	buf.Write(fm)
	buf.WriteString(delim + "\n")
	buf.WriteString(d.Points)
	if !strings.HasSuffix(d.Points, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// splitFrontmatter separates the YAML block between leading --- delimiters
// from the body. ok is false when there is no complete block.
func splitFrontmatter(data []byte) (block []byte, body string, ok bool) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), false
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), false
	}

	block = rest[:idx]
	after := rest[idx+1+len(delim):]
	return block, strings.TrimLeft(string(after), "\n\r"), true
}
