package tagtree

import (
	"encoding/binary"
	"fmt"
	"math"
)

type encoder struct {
	buf []byte
}

// Marshal encodes root as a named root compound, the layout used for
// persisted files.
func Marshal(name string, root *Compound) ([]byte, error) {
	if root == nil {
		return nil, &EncodingError{Reason: "nil root compound"}
	}
	e := &encoder{}
	e.buf = append(e.buf, byte(TagCompound))
	if err := e.writeString("", name); err != nil {
		return nil, err
	}
	if err := e.writeCompound("", root, 1); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *encoder) writeString(key, s string) error {
	if len(s) > math.MaxUint16 {
		return &EncodingError{Key: key, Reason: fmt.Sprintf("string length %d exceeds %d", len(s), math.MaxUint16)}
	}
	e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

func (e *encoder) writeBytes(key string, b []byte) error {
	if uint64(len(b)) > math.MaxUint32 {
		return &EncodingError{Key: key, Reason: fmt.Sprintf("byte length %d exceeds %d", len(b), uint64(math.MaxUint32))}
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(len(b)))
	e.buf = append(e.buf, b...)
	return nil
}

func (e *encoder) writeCompound(key string, c *Compound, depth int) error {
	if depth > maxDepth {
		return &EncodingError{Key: key, Reason: fmt.Sprintf("compound nesting exceeds %d levels", maxDepth)}
	}
	for _, k := range c.keys {
		if err := e.writeEntry(k, c.values[k], depth); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, byte(TagEnd))
	return nil
}

func (e *encoder) writeEntry(key string, v Value, depth int) error {
	if v == nil {
		return &EncodingError{Key: key, Reason: "nil value"}
	}
	if c, ok := v.(*Compound); ok && c == nil {
		return &EncodingError{Key: key, Reason: "nil compound"}
	}

	e.buf = append(e.buf, byte(v.Tag()))
	if err := e.writeString(key, key); err != nil {
		return err
	}

	switch val := v.(type) {
	case String:
		return e.writeString(key, string(val))
	case Bytes:
		return e.writeBytes(key, val)
	case *Compound:
		return e.writeCompound(key, val, depth+1)
	default:
		return &EncodingError{Key: key, Reason: fmt.Sprintf("unsupported value type %T", v)}
	}
}
