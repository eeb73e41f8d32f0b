// Package response locates structured payloads inside free-form model
// responses.
//
// Models wrap machine-readable output in prose, markdown fences, or both. The
// helpers here implement the framing rules shared by the graph synthesizer and
// the patch parser: prefer a fenced code block, otherwise fall back to slicing
// between the outermost delimiters.
package response

import (
	"regexp"
	"strings"
)

// fencePattern matches a fenced code block with an optional info string
// (```json, ```yaml, ```canvas, ...). The body is captured lazily so the first
// closing fence ends the block.
var fencePattern = regexp.MustCompile("(?s)```[ \t]*([A-Za-z0-9_+.-]*)[ \t]*\\r?\\n?(.*?)```")

// Block is a fenced code block found in a response.
type Block struct {
	Lang string // info string, lowercased; empty when untagged
	Body string
}

// FencedBlock returns the first fenced code block in s.
func FencedBlock(s string) (Block, bool) {
	m := fencePattern.FindStringSubmatch(s)
	if m == nil {
		return Block{}, false
	}
	return Block{Lang: strings.ToLower(m[1]), Body: strings.TrimSpace(m[2])}, true
}

// FencedBlocks returns every fenced code block in s, in order.
func FencedBlocks(s string) []Block {
	var blocks []Block
	for _, m := range fencePattern.FindAllStringSubmatch(s, -1) {
		blocks = append(blocks, Block{Lang: strings.ToLower(m[1]), Body: strings.TrimSpace(m[2])})
	}
	return blocks
}

// Between returns s from the first open delimiter through the last close
// delimiter, inclusive. It reports false if either is missing or they are out
// of order.
func Between(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// Payload returns the structured part of a response: the first fenced block if
// there is one, otherwise the span between the first open and last close
// delimiter.
func Payload(s string, open, close byte) (string, bool) {
	if b, ok := FencedBlock(s); ok {
		return b.Body, true
	}
	return Between(s, open, close)
}
