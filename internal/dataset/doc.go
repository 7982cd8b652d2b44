// Package dataset models the mapping data a merge runs against.
//
// A Dataset is an ordered snapshot of building footprints read from a GeoJSON
// file. Footprints with a positive ID are persisted records that already exist
// upstream; footprints with an ID of zero or below were traced locally and have
// not been uploaded yet. The package also provides the queries the merge engine
// uses to collect candidates, the GeoJSON codec, an atomic file store, and a
// small observer hook that fires when a dataset is opened or changes.
package dataset
