package tagtree

import (
	"bytes"
	"fmt"
)

// Tag identifies the variant of an encoded value.
type Tag byte

// Tag ids match the little-endian NBT layout, so files written by other
// tools that only use these variants stay readable.
const (
	TagEnd      Tag = 0
	TagBytes    Tag = 7
	TagString   Tag = 8
	TagCompound Tag = 10
)

// maxDepth bounds compound nesting, counting the root as level 1. Stored
// skin trees are three levels deep.
const maxDepth = 512

func (t Tag) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagBytes:
		return "Bytes"
	case TagString:
		return "String"
	case TagCompound:
		return "Compound"
	default:
		return fmt.Sprintf("Tag(%d)", byte(t))
	}
}

// Value is one node of a tree: String, Bytes or *Compound.
type Value interface {
	Tag() Tag
}

// String is a UTF-8 string value.
type String string

// Tag implements Value.
func (String) Tag() Tag { return TagString }

// Bytes is a raw byte sequence value.
type Bytes []byte

// Tag implements Value.
func (Bytes) Tag() Tag { return TagBytes }

// Tag implements Value.
func (*Compound) Tag() Tag { return TagCompound }

// Equal reports whether two trees hold the same structure and contents.
// Compound key order is ignored; an empty Bytes equals a nil Bytes.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case *Compound:
		bv, ok := b.(*Compound)
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			return av == bv
		}
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, found := bv.values[k]
			if !found || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
