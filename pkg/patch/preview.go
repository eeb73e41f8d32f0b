package patch

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview describes the difference between a document before and after a
// batch of changes.
type Preview struct {
	Inserted int    // runes inserted
	Deleted  int    // runes deleted
	Pretty   string // ANSI-colored inline diff for terminals
	Patch    string // patch text in diff-match-patch format
}

// Changed reports whether the two texts differ at all.
func (p Preview) Changed() bool { return p.Inserted > 0 || p.Deleted > 0 }

// NewPreview computes a character-level diff between before and after.
func NewPreview(before, after string) Preview {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var p Preview
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			p.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			p.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	p.Pretty = dmp.DiffPrettyText(diffs)
	p.Patch = dmp.PatchToText(dmp.PatchMake(before, diffs))
	return p
}
