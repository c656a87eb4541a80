// Package phpser decodes the compact tag-prefixed serialization used by
// appliance key files (a restricted form of PHP's serialize() output).
//
// Each value is introduced by a one-letter tag:
//
//	Integer:     i:123;
//	String:      s:5:"hello";
//	Boolean:     b:1;
//	Array open:  a:2:{
//	Array close: }
//
// A document is a single line holding exactly one array. Array elements
// alternate key, value, key, value; a trailing key with no value is dropped.
// Nested arrays in value position become nested Records.
//
// The declared string length and array element count are scanned but never
// validated: a string's payload is whatever sits between its quotes, and an
// array ends at its close marker regardless of the declared count. This
// matches how the producing side actually writes these files.
//
// # Example
//
//	rec, err := phpser.DecodeString(`a:2:{s:4:"mode";i:3;}`)
//	if err != nil {
//		// *MalformedTokenError, *UnexpectedEOFError, ...
//	}
//	v, ok := rec.Get(phpser.Str("mode"))
//
// Decoding is synchronous and allocates a fully materialized Record; calls
// share no state, so concurrent decodes of separate inputs are safe.
package phpser
