// Package match provides the character classes the scanner tests input
// against.
package match

import (
	"unicode"

	"github.com/zostay/go-std/slices"
)

// RunePredicate is a function that returns true if it matches a single rune or
// false if it does not.
type RunePredicate func(r rune) bool

// RunesInSet creates a RunePredicate from the set of runes given.
func RunesInSet(cs ...rune) RunePredicate {
	return func(r rune) bool {
		for _, c := range cs {
			if c == r {
				return true
			}
		}
		return false
	}
}

// RunesIn creates a RunePredicate matching any rune of the string s.
func RunesIn(s string) RunePredicate {
	return RunesInSet([]rune(s)...)
}

// RunesInRange creates a RunePredicate that matches any rune in the given
// range. The match is inclusive so runes equal to either end point are also
// matched.
func RunesInRange(cs, ce rune) RunePredicate {
	return func(r rune) bool {
		return r >= cs && r <= ce
	}
}

// AnyRunes creates a combined RunePredicate that matches a rune that matches
// any of the given predicates.
func AnyRunes(preds ...RunePredicate) RunePredicate {
	switch len(preds) {
	case 0:
		return func(rune) bool { return false }
	case 1:
		return preds[0]
	default:
		return func(r rune) bool {
			for _, pred := range preds {
				if pred(r) {
					return true
				}
			}
			return false
		}
	}
}

// NotRunes creates a combined RunePredicate that matches a rune that does not
// match any of the given predicates.
func NotRunes(preds ...RunePredicate) RunePredicate {
	return func(r rune) bool {
		for _, pred := range preds {
			if pred(r) {
				return false
			}
		}
		return true
	}
}

// ThisButNotThatRunes creates a combined RunePredicate that matches a rune that
// matches the first predicate, but does not match the second predicate.
func ThisButNotThatRunes(this, that RunePredicate) RunePredicate {
	return func(r rune) bool {
		return this(r) && !that(r)
	}
}

// Common classes.
var (
	Digits     = RunesInRange('0', '9')
	Letters    = RunePredicate(unicode.IsLetter)
	Whitespace = RunePredicate(unicode.IsSpace)
)

// Class is a named, combinable character class. The scanner uses a Class
// either on its own, to emit a one-character token, or as a guard inside a
// structured rule.
type Class struct {
	name string
	pred RunePredicate
}

// NewClass returns a Class matching any of the given predicates.
func NewClass(name string, preds ...RunePredicate) *Class {
	return &Class{
		name: name,
		pred: AnyRunes(preds...),
	}
}

// Name returns the name given to NewClass.
func (c *Class) Name() string {
	return c.name
}

// Has reports whether r belongs to the class.
func (c *Class) Has(r rune) bool {
	return c.pred(r)
}

// Predicate returns the class as a plain RunePredicate.
func (c *Class) Predicate() RunePredicate {
	return c.pred
}

func extractPredFromClass(c *Class) RunePredicate {
	return c.pred
}

// AndAlso creates a new Class which matches a rune if this class or any of the
// given classes match it. The new class keeps the name of this one.
func (c *Class) AndAlso(cs ...*Class) *Class {
	preds := slices.Map(cs, extractPredFromClass)
	return &Class{
		name: c.name,
		pred: AnyRunes(append([]RunePredicate{c.pred}, preds...)...),
	}
}

// ButNot creates a new Class which matches a rune if it matches this class,
// but none of the given classes.
func (c *Class) ButNot(cs ...*Class) *Class {
	preds := slices.Map(cs, extractPredFromClass)
	return &Class{
		name: c.name,
		pred: ThisButNotThatRunes(c.pred, AnyRunes(preds...)),
	}
}
