// Package textutil provides the small text helpers the generators share:
// numeric-aware natural sorting for directory entries, filename sanitizing
// for output artifacts, and display-title derivation from source names.
package textutil
