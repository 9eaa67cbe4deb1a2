package token

import (
	"fmt"
	"sync"
)

// Tag is the abstract tag identifier used to tell tokens apart. The scanner
// stamps every token with one and the parser matches on them.
type Tag int

// A few standard tags.
const (
	// None is the tag to use for tokens that aren't real tokens, such as the
	// zero Token.
	None Tag = iota

	// Literal is the most generic tag.
	Literal

	// Last identifies the first non-built-in tag. No guarantee is made that
	// this will never change.
	Last
)

var (
	tagLock  sync.Mutex
	prevTag  = Last
	tagNames = map[Tag]string{
		None:    "none",
		Literal: "literal",
	}
)

// NextTag provides an interface for assigning tags serial numbers at runtime to
// avoid conflicts between tags when scanners from different modules are mixed
// and matched. This returns the next available tag and should be called during
// init.
func NextTag() Tag {
	tagLock.Lock()
	defer tagLock.Unlock()

	prevTag++
	return prevTag
}

// NewTag works like NextTag, but also records a display name for the tag. The
// name is what diagnostics print when they mention the tag.
func NewTag(name string) Tag {
	t := NextTag()

	tagLock.Lock()
	defer tagLock.Unlock()

	tagNames[t] = name
	return t
}

// String returns the name given to NewTag or a generic tag#N form.
func (t Tag) String() string {
	tagLock.Lock()
	defer tagLock.Unlock()

	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag#%d", int(t))
}

// Token is a single unit produced by the scanner.
type Token struct {
	Tag   Tag  // what kind of token this is
	Value any  // optional payload, such as the value of a numeric literal
	Span  Span // the source covered by the token
}

// String renders the token as Tag or Tag(Value).
func (t Token) String() string {
	if t.Value == nil {
		return t.Tag.String()
	}
	return fmt.Sprintf("%s(%v)", t.Tag, t.Value)
}
