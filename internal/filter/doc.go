// Package filter models the visibility filters that hide pre-existing
// records while new outlines are traced.
//
// The clean-slate filter "id:1-" matches every persisted footprint. Enabled
// in hiding mode it leaves only locally traced footprints visible. AutoHide
// turns it on whenever a non-empty dataset is opened or changes, and the
// merge engine switches it off for the duration of a merge through a
// Context.
package filter
