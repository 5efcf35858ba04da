// Package markdown inspects Markdown documents for line-level structure that
// trimming must respect.
package markdown

import (
	"context"
	"fmt"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gotws/pkg/document"
)

// Analyzer finds hard line breaks in Markdown content.
type Analyzer struct {
	md goldmark.Markdown
}

// NewAnalyzer creates an analyzer that parses GitHub Flavored Markdown.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// HardBreakLines returns the sorted 0-based lines of snap that end in a hard
// line break. Trailing whitespace on those lines is significant.
func (a *Analyzer) HardBreakLines(ctx context.Context, snap *document.Snapshot) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("markdown analysis cancelled: %w", err)
	}

	content := snap.Bytes()
	root := a.md.Parser().Parse(text.NewReader(content))

	var lines []int

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		textNode, ok := node.(*ast.Text)
		if !ok || !textNode.HardLineBreak() {
			return ast.WalkContinue, nil
		}

		if line, _, found := snap.Position(textNode.Segment.Stop); found {
			lines = append(lines, line)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	slices.Sort(lines)

	return slices.Compact(lines), nil
}
