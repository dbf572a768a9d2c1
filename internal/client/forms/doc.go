// Package forms holds the in-progress state of one record being created
// or edited, validates it and decides what is sent to the backend.
//
// Field rules come from validate struct tags on the model inputs plus
// kind-specific image rules; each failing field reports the first broken
// rule as a Japanese message keyed by its wire name. Images picked from
// disk are held as local-preview placeholders until uploaded, and
// EnsureDurable refuses any image set that still contains one.
package forms
