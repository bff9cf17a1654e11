package source

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Label points at a specific Span within a Diagnostic, with an optional
// inline message (e.g. "expected Integer, found String").
type Label struct {
	Span    Span
	Message string
}

// Suggestion is a textual replacement plus the human-readable rationale for
// proposing it.
type Suggestion struct {
	Replacement string
	Rationale   string
}

// Diagnostic is a single compiler message: severity, a short code
// (E### / W###), a message, and any number of labels/notes/suggestions.
type Diagnostic struct {
	Severity    Severity
	Code        string
	Message     string
	Labels      []Label
	Notes       []string
	Suggestions []Suggestion
}

// New creates an Error-severity diagnostic with no labels.
func New(code, message string) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Message: message}
}

// Newf creates an Error-severity diagnostic with a formatted message.
func Newf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Warnf creates a Warning-severity diagnostic with a formatted message.
func Warnf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Warning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithLabel returns a copy of d with an additional label.
func (d Diagnostic) WithLabel(span Span, message string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithNote returns a copy of d with an additional free-text note.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithSuggestion returns a copy of d with an additional suggestion.
func (d Diagnostic) WithSuggestion(replacement, rationale string) Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{Replacement: replacement, Rationale: rationale})
	return d
}

// PrimarySpan returns the span of the first label, or a zero Span if d has
// no labels.
func (d Diagnostic) PrimarySpan() Span {
	if len(d.Labels) == 0 {
		return Span{}
	}
	return d.Labels[0].Span
}

// Bag accumulates diagnostics in append order. Every pipeline stage owns
// one and never discards what an earlier stage recorded: diagnostics stay
// in source order within each pass, and the overall order is lex, then
// parse, then check, then proof.
type Bag struct {
	diagnostics []Diagnostic
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Addf appends an Error diagnostic built from a code and format string.
func (b *Bag) Addf(code, format string, args ...any) {
	b.Add(Newf(code, format, args...))
}

// Warnf appends a Warning diagnostic built from a code and format string.
func (b *Bag) Warnf(code, format string, args ...any) {
	b.Add(Warnf(code, format, args...))
}

// All returns every diagnostic recorded so far, in append order.
func (b *Bag) All() []Diagnostic {
	return b.diagnostics
}

// HasErrors reports whether any diagnostic is Error severity. A
// compilation fails if any diagnostic is at error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Extend appends every diagnostic from other, preserving order.
func (b *Bag) Extend(other *Bag) {
	if other == nil {
		return
	}
	b.diagnostics = append(b.diagnostics, other.diagnostics...)
}
