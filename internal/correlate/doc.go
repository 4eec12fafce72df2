// Package correlate groups tags from different files into sync groups that
// mark the same physical event.
//
// Transcriptions may carry the wildcard '.', which matches any character at
// its position. Seeds are processed from most to least specific so a precise
// tag is never absorbed as a fuzzy match of a vaguer one; each file
// contributes its most specific zero-mismatch candidate. Equally specific
// candidates in one file are surfaced as Ambiguity warnings and resolved by
// tag order.
package correlate
