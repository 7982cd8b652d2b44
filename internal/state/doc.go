// Package state manages session state persistence.
//
// A session is the editing state cleanslate keeps next to a dataset file: the
// visibility filters, the undo/redo journal, and the fingerprint of the file
// as it was last written. State is persisted as JSON files in the
// ~/.cleanslate/sessions directory.
//
// Key concepts:
//   - SessionState: Filters, journal and fingerprint of one dataset file
//   - SessionID: Stable identifier derived from the dataset's absolute path
//   - StateStore: Interface for persisting and loading session state
package state
