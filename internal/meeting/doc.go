// Package meeting defines the meeting aggregate and the validated value types
// it is built from.
//
// Values are constructed through NewX/ParseX functions that apply the same
// IsValidX predicate exported for callers decoding stored data, and each value
// type publishes its constraint message so that decoders can report it
// verbatim. The zero value of every value type means "absent".
//
// A Meeting is immutable apart from its participant set, which holds opaque
// participant identifiers rather than references to person records.
package meeting
