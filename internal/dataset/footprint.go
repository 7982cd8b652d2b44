package dataset

import (
	"maps"

	"github.com/paulmach/orb"
)

// Provenance tells whether a footprint was traced locally or already existed.
type Provenance int

const (
	// ProvenanceAny matches footprints of either provenance in a Query.
	ProvenanceAny Provenance = iota

	// ProvenanceNew footprints were traced in this session and have only a
	// local ID.
	ProvenanceNew

	// ProvenanceOld footprints are persisted records with a durable ID.
	ProvenanceOld
)

// String returns the provenance name.
func (p Provenance) String() string {
	switch p {
	case ProvenanceNew:
		return "new"
	case ProvenanceOld:
		return "old"
	default:
		return "any"
	}
}

// Footprint is a building outline with its tags and identity.
type Footprint struct {
	// ID is the record identity. IDs <= 0 are local and not yet persisted.
	ID int64 `json:"id"`

	// Ring is the outline. A closed ring repeats its first vertex at the end.
	Ring orb.Ring `json:"ring"`

	// Tags are the key-value attributes of the record.
	Tags map[string]string `json:"tags,omitempty"`

	// Deleted marks a persisted record scheduled for deletion.
	Deleted bool `json:"deleted,omitempty"`

	// Modified marks a persisted record whose geometry was edited locally.
	Modified bool `json:"modified,omitempty"`

	// Version is the upstream version of a persisted record.
	Version int `json:"version,omitempty"`
}

// Provenance returns ProvenanceNew for local records and ProvenanceOld for
// persisted ones.
func (f *Footprint) Provenance() Provenance {
	if f.ID <= 0 {
		return ProvenanceNew
	}
	return ProvenanceOld
}

// IsNew reports whether the footprint has only a local identity.
func (f *Footprint) IsNew() bool {
	return f.Provenance() == ProvenanceNew
}

// IsClosed reports whether the ring repeats its first vertex and encloses
// at least three distinct vertices.
func (f *Footprint) IsClosed() bool {
	return len(f.Ring) >= 4 && f.Ring.Closed()
}

// HasTag reports whether the footprint carries the given tag key.
func (f *Footprint) HasTag(key string) bool {
	_, ok := f.Tags[key]
	return ok
}

// Bound returns the axis-aligned bounding box of the ring.
func (f *Footprint) Bound() orb.Bound {
	return f.Ring.Bound()
}

// Clone returns a deep copy of the footprint.
func (f *Footprint) Clone() *Footprint {
	c := *f
	c.Ring = CloneRing(f.Ring)
	if f.Tags != nil {
		c.Tags = maps.Clone(f.Tags)
	}
	return &c
}

// CloneRing returns a copy of r that shares no backing array with it.
func CloneRing(r orb.Ring) orb.Ring {
	if r == nil {
		return nil
	}
	out := make(orb.Ring, len(r))
	copy(out, r)
	return out
}
