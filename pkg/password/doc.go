// Package password generates random passwords from named symbol groups.
//
// A password's length is either fixed or derived from a target entropy in
// bits. Every symbol is drawn with rand.Source, which combines math/rand/v2
// with crypto/rand so that each index is uniform over the charset.
//
// Results are handed to an Exporter rather than returned to the caller's
// control flow: a Generator reports exactly one of an error message or a
// (password, stats) pair per Run. Errors that point to broken symbol data or a
// broken random generator are returned instead of reported.
package password
