// Package variantset provides a set keyed by the variants of a closed
// union type: at most one value is stored per variant, and the variant
// tag of a value serves directly as its hash.
//
// A union type is modelled as a sealed interface whose implementations
// are the variants, each carrying its own payload. The companion tag
// type enumerates the variants without any payload. Tag types and the
// Variant mapping are mechanical and are normally produced by the
// variantgen tool (cmd/variantgen), but can be written by hand as long
// as the mapping is total and stable.
package variantset

// Variant is the tag type of a union: one value per variant, no payload.
// Ordinal returns a small dense non-negative integer unique to the
// variant. It is used as the bucket index, so no hash function runs on
// any container operation.
type Variant interface {
	comparable
	Ordinal() int
}

// Value is a value of a union type whose variants are tagged by V.
// Variant must be a pure function: every value maps to exactly one tag,
// and the tag of a value never changes.
type Value[V Variant] interface {
	Variant() V
}
