package urlform

import (
	"fmt"
	"net/url"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Parser
///////////////////////////////////////////////////////////////////////////////

// ParseOpts configures how raw form text is turned into a [Value] tree.
type ParseOpts struct {
	// OmitEmptyValues drops keys whose value is the empty string after "="
	// (for example "age=" disappears entirely), so optional destination
	// fields see the key as absent rather than as "".
	OmitEmptyValues bool
	// OmitFlags drops keys that have no "=" at all (for example the
	// "verbose" in "verbose&level=3"). When false, a flag is kept as a key
	// with an empty scalar value.
	OmitFlags bool
}

// keySeg is one bracket segment of a raw form key: a field name, or an
// append marker for the empty brackets in "a[]=1".
type keySeg struct {
	name   string
	append bool
}

// Parse turns raw application/x-www-form-urlencoded text into a [Value]
// tree. The root is always a mapping. Pairs are separated by "&" or ";",
// keys use bracket notation for nesting ("a[b][]=1"), and both keys and
// values are percent-decoded.
//
// Parse fails with [ErrMalformedInput] on an invalid percent escape, an
// unterminated bracket, or a key that redefines an existing node with a
// different shape ("a=1&a[b]=2").
func Parse(text string, opts ParseOpts) (Value, error) {
	root := &parseNode{kind: KindMapping, set: true}

	for _, pair := range splitPairs(text) {
		if pair == "" {
			continue
		}

		rawKey, rawVal, hasEq := strings.Cut(pair, "=")
		if !hasEq && opts.OmitFlags {
			continue
		}
		if hasEq && rawVal == "" && opts.OmitEmptyValues {
			continue
		}

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return Value{}, fmt.Errorf("%w: key %q: %v", ErrMalformedInput, rawKey, err)
		}
		if key == "" {
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return Value{}, fmt.Errorf("%w: value %q: %v", ErrMalformedInput, rawVal, err)
		}

		segs, err := splitKey(key)
		if err != nil {
			return Value{}, err
		}
		if err := root.insert(segs, val); err != nil {
			return Value{}, err
		}
	}

	return root.freeze(), nil
}

// splitPairs splits raw form text on "&" and ";" pair separators.
func splitPairs(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '&' || r == ';'
	})
}

// splitKey splits a percent-decoded form key into bracket segments:
// "a[b][]" becomes [name(a) name(b) append].
func splitKey(key string) ([]keySeg, error) {
	var segs []keySeg
	for len(key) > 0 {
		i := strings.IndexByte(key, '[')
		if i == -1 {
			segs = append(segs, keySeg{name: key})
			break
		}
		if i > 0 {
			segs = append(segs, keySeg{name: key[:i]})
		}
		key = key[i+1:]

		j := strings.IndexByte(key, ']')
		if j == -1 {
			return nil, fmt.Errorf("%w: unterminated bracket in key", ErrMalformedInput)
		}
		if part := key[:j]; part == "" {
			segs = append(segs, keySeg{append: true})
		} else {
			segs = append(segs, keySeg{name: part})
		}
		key = key[j+1:]
	}
	return segs, nil
}

// parseNode is the mutable builder the parser merges pairs into. Freezing it
// yields the immutable [Value] tree handed to the decoding engine.
type parseNode struct {
	kind   Kind
	set    bool
	scalar string
	seq    []*parseNode
	fields map[string]*parseNode
}

func (n *parseNode) insert(segs []keySeg, text string) error {
	if len(segs) == 0 {
		return n.insertScalar(text)
	}

	seg := segs[0]
	if seg.append {
		if n.set && n.kind != KindSequence {
			return redefined(n.kind, KindSequence)
		}
		n.kind = KindSequence
		n.set = true
		rest := segs[1:]
		// Consecutive append keys fold into the last element until a field
		// name repeats, so "a[][x]=1&a[][y]=2" builds one mapping element
		// with both fields while "a[][x]=1&a[][x]=2" builds two.
		if len(rest) > 0 && !rest[0].append && len(n.seq) > 0 {
			last := n.seq[len(n.seq)-1]
			if last.set && last.kind == KindMapping {
				if _, ok := last.fields[rest[0].name]; !ok {
					return last.insert(rest, text)
				}
			}
		}
		elem := &parseNode{}
		n.seq = append(n.seq, elem)
		return elem.insert(rest, text)
	}

	if n.set && n.kind != KindMapping {
		return redefined(n.kind, KindMapping)
	}
	n.kind = KindMapping
	n.set = true
	if n.fields == nil {
		n.fields = map[string]*parseNode{}
	}
	child, ok := n.fields[seg.name]
	if !ok {
		child = &parseNode{}
		n.fields[seg.name] = child
	}
	return child.insert(segs[1:], text)
}

// insertScalar places a leaf value. A repeated plain key ("a=1&a=2")
// promotes the node to a sequence, preserving first-seen order.
func (n *parseNode) insertScalar(text string) error {
	if !n.set {
		n.kind = KindScalar
		n.set = true
		n.scalar = text
		return nil
	}
	switch n.kind {
	case KindScalar:
		first := &parseNode{kind: KindScalar, set: true, scalar: n.scalar}
		next := &parseNode{kind: KindScalar, set: true, scalar: text}
		n.kind = KindSequence
		n.scalar = ""
		n.seq = []*parseNode{first, next}
		return nil
	case KindSequence:
		n.seq = append(n.seq, &parseNode{kind: KindScalar, set: true, scalar: text})
		return nil
	default:
		return redefined(n.kind, KindScalar)
	}
}

func redefined(have, want Kind) error {
	return fmt.Errorf("%w: key redefines %s node as %s", ErrMalformedInput, have, want)
}

func (n *parseNode) freeze() Value {
	switch n.kind {
	case KindSequence:
		elems := make([]Value, len(n.seq))
		for i, e := range n.seq {
			elems[i] = e.freeze()
		}
		return Sequence(elems...)
	case KindMapping:
		fields := make(map[string]Value, len(n.fields))
		for name, f := range n.fields {
			fields[name] = f.freeze()
		}
		return Mapping(fields)
	default:
		return Scalar(n.scalar)
	}
}
