package fix

import "github.com/samber/lo"

// ApplyEdits splices prepared edits into content and returns the result.
// The edits must be sorted and non-overlapping, as PrepareEdits leaves them.
// content is never modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := lo.SumBy(edits, func(edit TextEdit) int {
		return len(edit.NewText) - (edit.EndOffset - edit.StartOffset)
	})

	out := make([]byte, 0, len(content)+delta)
	prev := 0
	for _, edit := range edits {
		out = append(out, content[prev:edit.StartOffset]...)
		out = append(out, edit.NewText...)
		prev = edit.EndOffset
	}

	return append(out, content[prev:]...)
}

// Apply prepares edits in any order and applies them to content.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := PrepareEdits(edits, len(content))
	if err != nil {
		return nil, err
	}

	return ApplyEdits(content, prepared), nil
}
