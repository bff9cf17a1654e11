package source

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRenderAllMatchesSnapshot pins the diagnostic renderer's exact text
// layout with go-snaps, the way go-dws pins interpreter output in its own
// fixture tests: a change to the header, excerpt, or caret formatting
// shows up as a diff against the committed golden file instead of being
// caught only by eyeballing -v output.
func TestRenderAllMatchesSnapshot(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + bogus\n"
	diags := []Diagnostic{
		{
			Severity: Error,
			Code:     "E310",
			Message:  `undefined name "bogus"`,
			Labels: []Label{
				{Span: Span{File: "add.prv", StartLine: 2, StartCol: 15, EndLine: 2, EndCol: 20}, Message: "not found in this scope"},
			},
			Notes: []string{"did you mean to declare `bogus` as a parameter?"},
		},
	}

	out := NewRenderer(false).RenderAll(diags, src)
	snaps.MatchSnapshot(t, out)
}
