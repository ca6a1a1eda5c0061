// Package session wires one document's snapshot store, history stack and
// coalescer into the surface the editor views consume.
//
// A Session exposes the content-change inlet (OnContentChange), the
// navigation controls (Undo, Redo, CanUndo, CanRedo) and the current
// snapshot both views render. Undo and redo set the coalescer's
// navigation guard before restoring, so a restoration is never recorded
// as a fresh edit and the redo branch survives until the next real edit.
package session
