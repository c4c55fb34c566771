package tagtree

// Compound is an insertion-ordered mapping of unique string keys to values.
// The zero value is not usable; create one with NewCompound.
type Compound struct {
	keys   []string
	values map[string]Value
}

// NewCompound returns an empty Compound.
func NewCompound() *Compound {
	return &Compound{values: make(map[string]Value)}
}

// Set stores v under key and returns c so calls can be chained. Setting an
// existing key replaces its value and keeps its original position.
func (c *Compound) Set(key string, v Value) *Compound {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
	return c
}

// SetString stores a String value under key.
func (c *Compound) SetString(key, s string) *Compound {
	return c.Set(key, String(s))
}

// SetBytes stores a Bytes value under key.
func (c *Compound) SetBytes(key string, b []byte) *Compound {
	return c.Set(key, Bytes(b))
}

// Get returns the value stored under key.
func (c *Compound) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetString returns the value under key if it is a String.
func (c *Compound) GetString(key string) (string, bool) {
	v, ok := c.values[key].(String)
	return string(v), ok
}

// GetBytes returns the value under key if it is a Bytes.
func (c *Compound) GetBytes(key string) ([]byte, bool) {
	v, ok := c.values[key].(Bytes)
	return []byte(v), ok
}

// GetCompound returns the value under key if it is a non-nil *Compound.
func (c *Compound) GetCompound(key string) (*Compound, bool) {
	v, ok := c.values[key].(*Compound)
	return v, ok && v != nil
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Each calls fn for every entry in insertion order.
func (c *Compound) Each(fn func(key string, v Value)) {
	for _, k := range c.keys {
		fn(k, c.values[k])
	}
}
