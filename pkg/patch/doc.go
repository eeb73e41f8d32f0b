// Package patch matches model-proposed text replacements against a live
// document and applies them.
//
// A language model asked to edit a document answers with pairs of "original"
// and "new" text. The quoted original is often not a byte-exact copy of the
// document: whitespace drifts, letters get transposed, punctuation changes.
// [Match] locates the quoted text anyway, trying three strategies in order:
//
//  1. exact substring
//  2. whitespace-normalized substring, mapped back to the original span
//  3. fuzzy sliding window scored with [similarity.Similarity]
//
// [Apply] runs a batch of [Change] values against a document. Longer originals
// are matched first so that a short, generic change cannot land inside text a
// longer change was aimed at. A change that matches nothing is reported in
// [Result.Failed] and never aborts the batch:
//
//	changes := patch.ParseChanges(response)
//	res := patch.Apply(doc, changes, patch.DefaultThreshold)
//	if !res.Success {
//	    fmt.Printf("%d of %d changes could not be located\n", len(res.Failed), len(changes))
//	}
//
// [ParseChanges] understands both structured lists ({"original", "new"}
// records in JSON or YAML) and marker-delimited blocks:
//
//	<<<<<<< ORIGINAL
//	old text
//	=======
//	new text
//	>>>>>>> NEW
//
// Everything in this package is a pure function over strings and is safe for
// concurrent use. Offsets in [Span] are byte offsets into the document.
package patch
