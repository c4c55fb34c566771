// Package skin holds the name-keyed registry of appearance records and the
// transforms between it and its persisted tagtree form.
package skin

import "bytes"

// Record is one saved appearance. Records are values: the registry stores
// and hands out copies, so callers never share byte slices with it.
type Record struct {
	// ID identifies the image data. Supplied by the caller, usually a fresh UUID.
	ID           string
	ImageData    []byte
	CapeData     []byte
	GeometryName string
	GeometryData []byte
}

// Clone returns a deep copy of r. Empty byte fields stay non-nil.
func (r Record) Clone() Record {
	return Record{
		ID:           r.ID,
		ImageData:    cloneBytes(r.ImageData),
		CapeData:     cloneBytes(r.CapeData),
		GeometryName: r.GeometryName,
		GeometryData: cloneBytes(r.GeometryData),
	}
}

// Equal reports whether r and o hold the same data.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID &&
		r.GeometryName == o.GeometryName &&
		bytes.Equal(r.ImageData, o.ImageData) &&
		bytes.Equal(r.CapeData, o.CapeData) &&
		bytes.Equal(r.GeometryData, o.GeometryData)
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
