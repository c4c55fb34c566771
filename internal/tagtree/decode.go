package tagtree

import (
	"encoding/binary"
	"fmt"
)

type decoder struct {
	data []byte
	off  int
}

// Unmarshal decodes a named root compound produced by Marshal. The stream
// must hold exactly one root compound; trailing bytes are an error.
func Unmarshal(data []byte) (string, *Compound, error) {
	d := &decoder{data: data}

	tag, err := d.readTag()
	if err != nil {
		return "", nil, err
	}
	if tag != TagCompound {
		return "", nil, d.fail(d.off-1, fmt.Sprintf("root tag is %s, want Compound", tag), nil)
	}
	name, err := d.readString()
	if err != nil {
		return "", nil, err
	}
	root, err := d.readCompound(1)
	if err != nil {
		return "", nil, err
	}
	if err := d.expectEOF(); err != nil {
		return "", nil, err
	}
	return name, root, nil
}

func (d *decoder) remaining() int { return len(d.data) - d.off }

func (d *decoder) fail(off int, reason string, err error) error {
	return &DecodingError{Offset: off, Reason: reason, Err: err}
}

func (d *decoder) expectEOF() error {
	if n := d.remaining(); n > 0 {
		return d.fail(d.off, fmt.Sprintf("%d trailing bytes after root compound", n), nil)
	}
	return nil
}

func (d *decoder) take(n int, what string) ([]byte, error) {
	if d.remaining() < n {
		return nil, d.fail(d.off, fmt.Sprintf("reading %s: need %d bytes, have %d", what, n, d.remaining()), ErrTruncated)
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readTag() (Tag, error) {
	b, err := d.take(1, "tag")
	if err != nil {
		return 0, err
	}
	return Tag(b[0]), nil
}

func (d *decoder) readString() (string, error) {
	lb, err := d.take(2, "string length")
	if err != nil {
		return "", err
	}
	n := int(binary.LittleEndian.Uint16(lb))
	s, err := d.take(n, "string payload")
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func (d *decoder) readBytes() ([]byte, error) {
	start := d.off
	lb, err := d.take(4, "byte length")
	if err != nil {
		return nil, err
	}
	n := uint64(binary.LittleEndian.Uint32(lb))
	if n > uint64(d.remaining()) {
		return nil, d.fail(start, fmt.Sprintf("byte length %d exceeds %d remaining bytes", n, d.remaining()), ErrTruncated)
	}
	payload, _ := d.take(int(n), "byte payload")
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (d *decoder) readCompound(depth int) (*Compound, error) {
	if depth > maxDepth {
		return nil, d.fail(d.off, fmt.Sprintf("compound nesting exceeds %d levels", maxDepth), nil)
	}
	c := NewCompound()
	for {
		tagOff := d.off
		tag, err := d.readTag()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return c, nil
		}

		switch tag {
		case TagString, TagBytes, TagCompound:
		default:
			return nil, d.fail(tagOff, fmt.Sprintf("unknown tag %d", byte(tag)), nil)
		}

		key, err := d.readString()
		if err != nil {
			return nil, err
		}

		var v Value
		switch tag {
		case TagString:
			s, err := d.readString()
			if err != nil {
				return nil, err
			}
			v = String(s)
		case TagBytes:
			b, err := d.readBytes()
			if err != nil {
				return nil, err
			}
			v = Bytes(b)
		case TagCompound:
			nested, err := d.readCompound(depth + 1)
			if err != nil {
				return nil, err
			}
			v = nested
		}
		c.Set(key, v)
	}
}
