// Package tagtree encodes and decodes a small tagged-value tree to a
// deterministic little-endian byte stream.
//
// A tree is built from three variants: String, Bytes and *Compound. A
// Compound is an insertion-ordered set of uniquely keyed values, and a
// persisted file is a single named root Compound:
//
//	[tag 0x0A][name: u16 len + bytes][entries ...][tag 0x00]
//
// Each entry is a one-byte tag, the key as a String and then the value.
// Strings carry a 2-byte length prefix, byte sequences a 4-byte one.
package tagtree
