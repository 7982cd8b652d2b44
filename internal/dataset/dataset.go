package dataset

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	// ErrNotFound indicates no footprint has the requested ID.
	ErrNotFound = errors.New("footprint not found")

	// ErrDuplicateID indicates two footprints share an ID.
	ErrDuplicateID = errors.New("duplicate footprint id")
)

// Dataset is an ordered snapshot of footprints.
// It is not safe for concurrent mutation.
type Dataset struct {
	footprints []*Footprint
	index      map[int64]int

	// extras are features that are not footprints (points, polygons with
	// holes, ...). They are carried through unchanged.
	extras []*geojson.Feature
}

// New creates a dataset holding the given footprints in order.
func New(footprints ...*Footprint) (*Dataset, error) {
	ds := &Dataset{index: make(map[int64]int)}
	for _, fp := range footprints {
		if err := ds.Add(fp); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Add appends a footprint.
func (d *Dataset) Add(fp *Footprint) error {
	if _, exists := d.index[fp.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, fp.ID)
	}
	d.index[fp.ID] = len(d.footprints)
	d.footprints = append(d.footprints, fp)
	return nil
}

// Len returns the number of footprints.
func (d *Dataset) Len() int {
	return len(d.footprints)
}

// Footprints returns the footprints in dataset order.
// The returned slice must not be modified.
func (d *Dataset) Footprints() []*Footprint {
	return d.footprints
}

// Get returns the footprint with the given ID.
func (d *Dataset) Get(id int64) (*Footprint, bool) {
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.footprints[i], true
}

// Position returns the index of the footprint with the given ID, or -1.
func (d *Dataset) Position(id int64) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	return -1
}

// NextLocalID returns an unused ID for a locally created footprint.
func (d *Dataset) NextLocalID() int64 {
	next := int64(-1)
	for id := range d.index {
		if id <= next {
			next = id - 1
		}
	}
	return next
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		footprints: make([]*Footprint, len(d.footprints)),
		index:      make(map[int64]int, len(d.index)),
		extras:     d.extras,
	}
	for i, fp := range d.footprints {
		c.footprints[i] = fp.Clone()
		c.index[fp.ID] = i
	}
	return c
}

// Replace swaps the ring of a footprint, keeping its identity and tags, and
// returns the previous footprint state.
func (d *Dataset) Replace(id int64, ring orb.Ring) (*Footprint, error) {
	fp, ok := d.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	prev := fp.Clone()
	fp.Ring = CloneRing(ring)
	if !fp.IsNew() {
		fp.Modified = true
	}
	return prev, nil
}

// Removal describes a removed footprint so it can be restored.
type Removal struct {
	// Footprint is the state before removal.
	Footprint *Footprint `json:"footprint"`

	// Position is the index the footprint occupied.
	Position int `json:"position"`

	// Spliced is true when the footprint was taken out of the dataset
	// rather than marked deleted.
	Spliced bool `json:"spliced"`
}

// Remove deletes a footprint. Local footprints disappear from the dataset;
// persisted ones stay and are marked Deleted so the deletion can be uploaded.
func (d *Dataset) Remove(id int64) (*Removal, error) {
	i, ok := d.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	fp := d.footprints[i]
	removal := &Removal{Footprint: fp.Clone(), Position: i}

	if !fp.IsNew() {
		fp.Deleted = true
		return removal, nil
	}

	d.footprints = append(d.footprints[:i], d.footprints[i+1:]...)
	d.reindex()
	removal.Spliced = true
	return removal, nil
}

// Restore reverses a Removal.
func (d *Dataset) Restore(r *Removal) error {
	if !r.Spliced {
		fp, ok := d.Get(r.Footprint.ID)
		if !ok {
			return fmt.Errorf("%w: %d", ErrNotFound, r.Footprint.ID)
		}
		*fp = *r.Footprint.Clone()
		return nil
	}

	if _, exists := d.index[r.Footprint.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, r.Footprint.ID)
	}
	pos := r.Position
	if pos < 0 || pos > len(d.footprints) {
		pos = len(d.footprints)
	}
	d.footprints = append(d.footprints, nil)
	copy(d.footprints[pos+1:], d.footprints[pos:])
	d.footprints[pos] = r.Footprint.Clone()
	d.reindex()
	return nil
}

// Put overwrites the stored state of an existing footprint.
func (d *Dataset) Put(fp *Footprint) error {
	cur, ok := d.Get(fp.ID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, fp.ID)
	}
	*cur = *fp.Clone()
	return nil
}

func (d *Dataset) reindex() {
	d.index = make(map[int64]int, len(d.footprints))
	for i, fp := range d.footprints {
		d.index[fp.ID] = i
	}
}
