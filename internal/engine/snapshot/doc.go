// Package snapshot holds the current document value and notifies
// subscribers when it changes.
//
// The store implements an observer pattern: subscribers are called
// synchronously, in subscription order, every time SetContent replaces
// the document. The payload is an opaque string; the store performs no
// validation or interpretation.
package snapshot
