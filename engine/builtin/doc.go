// Package builtin provides the standard operator library.
//
// [RegisterAll] adds every operator to an [engine.Registry], and
// [NewRegistry] returns a registry holding exactly this library. Operators
// index text by Unicode code point and clamp out-of-range positions instead
// of failing.
package builtin
