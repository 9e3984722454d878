package model

import "strings"

// Content is a node of a normalized rule content tree. The set of
// implementations is closed; consumers dispatch with type switches.
type Content interface {
	// String renders a compact, unambiguous representation: sequences and
	// alternatives are always parenthesized, atoms print their raw text.
	String() string

	content()
}

// Empty matches nothing (epsilon).
type Empty struct{}

// Wildcard matches any single atomic unit.
type Wildcard struct{}

// Literal is a quoted string literal, raw text preserved. Lexer rules only.
type Literal struct {
	Text string
}

// CharSet is a character-class expression, raw text preserved. Lexer rules
// only.
type CharSet struct {
	Text string
}

// Range is an inclusive character range. Lexer rules only.
type Range struct {
	Start, End string
}

// Reference names another rule. It holds the model the reference appears
// in, not the rule itself: resolution happens lazily by name lookup so
// that forward and cross-file references stay valid.
type Reference struct {
	Model *Model
	Name  string
}

// Negation is the complement of its child.
type Negation struct {
	Child Content
}

// Sequence is a concatenation of two or more elements.
type Sequence struct {
	Children []Content
}

// Alternative is a choice between two or more elements.
type Alternative struct {
	Children []Content
}

// Maybe matches its child zero or one time.
type Maybe struct {
	Child Content
}

// OnePlus matches its child one or more times.
type OnePlus struct {
	Child Content
}

// ZeroPlus matches its child zero or more times.
type ZeroPlus struct {
	Child Content
}

func (*Empty) content()       {}
func (*Wildcard) content()    {}
func (*Literal) content()     {}
func (*CharSet) content()     {}
func (*Range) content()       {}
func (*Reference) content()   {}
func (*Negation) content()    {}
func (*Sequence) content()    {}
func (*Alternative) content() {}
func (*Maybe) content()       {}
func (*OnePlus) content()     {}
func (*ZeroPlus) content()    {}

// IsEmpty reports whether c is the Empty node.
func IsEmpty(c Content) bool {
	_, ok := c.(*Empty)
	return ok
}

// Seq builds a Sequence from the given elements, flattening any immediate
// Sequence children into the result. Empty elements are kept: an action
// that contributes nothing still occupies its slot in the concatenation.
// A single remaining element is returned as is; an empty list collapses
// to Empty.
func Seq(items ...Content) Content {
	elements := make([]Content, 0, len(items))
	for _, item := range items {
		if seq, ok := item.(*Sequence); ok {
			elements = append(elements, seq.Children...)
		} else {
			elements = append(elements, item)
		}
	}
	switch len(elements) {
	case 0:
		return &Empty{}
	case 1:
		return elements[0]
	}
	return &Sequence{Children: elements}
}

// Alt builds an Alternative from the given elements. Maybe children are
// unwrapped and Empty children dropped, both recording that an empty
// alternative was present; immediate Alternative children are flattened.
// The result is wrapped in Maybe when an empty alternative was recorded.
func Alt(items ...Content) Content {
	hasEmptyAlt := false
	alts := make([]Content, 0, len(items))
	for _, item := range items {
		if maybe, ok := item.(*Maybe); ok {
			hasEmptyAlt = true
			item = maybe.Child
		}
		switch it := item.(type) {
		case *Empty:
			hasEmptyAlt = true
		case *Alternative:
			alts = append(alts, it.Children...)
		default:
			alts = append(alts, item)
		}
	}

	switch len(alts) {
	case 0:
		return &Empty{}
	case 1:
		if hasEmptyAlt {
			return &Maybe{Child: alts[0]}
		}
		return alts[0]
	}

	var rule Content = &Alternative{Children: alts}
	if hasEmptyAlt {
		rule = &Maybe{Child: rule}
	}
	return rule
}

// Opt wraps c in Maybe. Wrapping is idempotent, and Empty is returned
// unchanged.
func Opt(c Content) Content {
	if IsEmpty(c) {
		return c
	}
	if _, ok := c.(*Maybe); ok {
		return c
	}
	return &Maybe{Child: c}
}

// Plus wraps c in OnePlus; Empty is returned unchanged.
func Plus(c Content) Content {
	if IsEmpty(c) {
		return c
	}
	return &OnePlus{Child: c}
}

// Star wraps c in ZeroPlus; Empty is returned unchanged.
func Star(c Content) Content {
	if IsEmpty(c) {
		return c
	}
	return &ZeroPlus{Child: c}
}

// Not wraps c in Negation.
func Not(c Content) Content {
	return &Negation{Child: c}
}

func (*Empty) String() string    { return "ε" }
func (*Wildcard) String() string { return "." }
func (c *Literal) String() string {
	return c.Text
}
func (c *CharSet) String() string {
	return c.Text
}
func (c *Range) String() string {
	return c.Start + ".." + c.End
}
func (c *Reference) String() string {
	return c.Name
}
func (c *Negation) String() string {
	return "~" + c.Child.String()
}
func (c *Sequence) String() string {
	return "(" + joinContent(c.Children, " ") + ")"
}
func (c *Alternative) String() string {
	return "(" + joinContent(c.Children, " | ") + ")"
}
func (c *Maybe) String() string {
	return c.Child.String() + "?"
}
func (c *OnePlus) String() string {
	return c.Child.String() + "+"
}
func (c *ZeroPlus) String() string {
	return c.Child.String() + "*"
}

func joinContent(cs []Content, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}
