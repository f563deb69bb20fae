package urlform

import (
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Path
///////////////////////////////////////////////////////////////////////////////

// Step is one element of a [Path]: either a mapping field name or a sequence
// index.
type Step struct {
	name    string
	index   int
	isIndex bool
}

// FieldStep returns a Step naming a mapping field.
func FieldStep(name string) Step {
	return Step{name: name}
}

// IndexStep returns a Step naming a sequence index.
func IndexStep(i int) Step {
	return Step{index: i, isIndex: true}
}

// IsIndex reports whether the step is a sequence index.
func (s Step) IsIndex() bool { return s.isIndex }

// Name returns the field name, or "" for an index step.
func (s Step) Name() string { return s.name }

// Index returns the sequence index, or 0 for a field step.
func (s Step) Index() int { return s.index }

// Path records where in the tree a decode is currently positioned. It exists
// purely for diagnostics: every recursive descent carries a direct reference
// to its sub-node, so a Path never addresses data.
//
// Paths are extended by copy, never in place, which keeps a Decoder and every
// error it produced valid after the call that owned it returns.
type Path []Step

// Field returns a new Path extended with a field name step.
func (p Path) Field(name string) Path {
	return p.extend(FieldStep(name))
}

// Index returns a new Path extended with a sequence index step.
func (p Path) Index(i int) Path {
	return p.extend(IndexStep(i))
}

func (p Path) extend(s Step) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, s)
}

// String renders the path as "a.b[2].c". The empty path renders as "(root)".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for i, s := range p {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.name)
	}
	return b.String()
}
