package patch

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mend/pkg/response"
)

// blockPattern matches one marker-delimited replacement block. SEARCH/REPLACE
// and ORIGINAL/NEW spellings are both accepted.
var blockPattern = regexp.MustCompile(`(?s)<{7,}[ \t]*(?:ORIGINAL|SEARCH)[^\n]*\n(.*?)\n?={7,}[^\n]*\n(.*?)\n?>{7,}[ \t]*(?:NEW|REPLACE|UPDATED)`)

// listKeys are the object keys under which a structured change list may be
// wrapped, e.g. {"changes": [...]}.
var listKeys = []string{"changes", "edits", "patches", "replacements"}

// ParseChanges extracts the requested changes from a model response.
//
// Structured payloads are tried first: a JSON (or fenced YAML) list of
// {"original", "new"} records, bare or wrapped in an object. If no structured
// list is found, marker blocks are scanned instead. A response with neither
// yields an empty slice.
func ParseChanges(resp string) []Change {
	if changes := parseStructured(resp); len(changes) > 0 {
		return changes
	}
	return parseBlocks(resp)
}

func parseStructured(resp string) []Change {
	for _, payload := range structuredCandidates(resp) {
		var v any
		if err := json.Unmarshal([]byte(payload.body), &v); err != nil {
			if !payload.yaml {
				continue
			}
			if err := yaml.Unmarshal([]byte(payload.body), &v); err != nil {
				continue
			}
		}
		if changes := changesFrom(v); len(changes) > 0 {
			return changes
		}
	}
	return nil
}

type candidate struct {
	body string
	yaml bool // whether a YAML decode is worth trying
}

// structuredCandidates lists the payloads worth decoding, most specific first.
func structuredCandidates(resp string) []candidate {
	var out []candidate
	for _, b := range response.FencedBlocks(resp) {
		out = append(out, candidate{body: b.Body, yaml: b.Lang == "yaml" || b.Lang == "yml" || b.Lang == ""})
	}
	arr, arrOK := response.Between(resp, '[', ']')
	obj, objOK := response.Between(resp, '{', '}')
	switch {
	case arrOK && objOK && strings.Index(resp, "[") > strings.Index(resp, "{"):
		out = append(out, candidate{body: obj}, candidate{body: arr})
	default:
		if arrOK {
			out = append(out, candidate{body: arr})
		}
		if objOK {
			out = append(out, candidate{body: obj})
		}
	}
	return out
}

func changesFrom(v any) []Change {
	switch v := v.(type) {
	case []any:
		var out []Change
		for _, item := range v {
			if c, ok := changeFrom(item); ok {
				out = append(out, c)
			}
		}
		return out
	case map[string]any:
		for _, k := range listKeys {
			if list, ok := v[k]; ok {
				return changesFrom(list)
			}
		}
		if c, ok := changeFrom(v); ok {
			return []Change{c}
		}
	}
	return nil
}

func changeFrom(v any) (Change, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Change{}, false
	}
	orig, ok := m["original"].(string)
	if !ok || orig == "" {
		return Change{}, false
	}
	var repl string
	if raw, present := m["new"]; present {
		if repl, ok = raw.(string); !ok {
			return Change{}, false
		}
	}
	return Change{Original: orig, New: repl}, true
}

func parseBlocks(resp string) []Change {
	resp = strings.ReplaceAll(resp, "\r\n", "\n")
	var out []Change
	for _, m := range blockPattern.FindAllStringSubmatch(resp, -1) {
		if m[1] == "" {
			continue
		}
		out = append(out, Change{Original: m[1], New: m[2]})
	}
	return out
}
