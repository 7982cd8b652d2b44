package dataset

// Query selects footprints from a dataset.
type Query struct {
	// Provenance restricts results by provenance. ProvenanceAny disables it.
	Provenance Provenance

	// Tag restricts results to footprints carrying this key. Empty disables it.
	Tag string

	// RequireClosed restricts results to closed rings.
	RequireClosed bool

	// IncludeDeleted keeps footprints marked Deleted.
	IncludeDeleted bool
}

// Matches reports whether fp satisfies the query.
func (q Query) Matches(fp *Footprint) bool {
	if q.Provenance != ProvenanceAny && fp.Provenance() != q.Provenance {
		return false
	}
	if fp.Deleted && !q.IncludeDeleted {
		return false
	}
	if q.RequireClosed && !fp.IsClosed() {
		return false
	}
	if q.Tag != "" && !fp.HasTag(q.Tag) {
		return false
	}
	return true
}

// Select returns the matching footprints in dataset order.
func (d *Dataset) Select(q Query) []*Footprint {
	var out []*Footprint
	for _, fp := range d.footprints {
		if q.Matches(fp) {
			out = append(out, fp)
		}
	}
	return out
}

// Buildings returns the closed, undeleted footprints of the given provenance
// that carry tag, in dataset order.
func Buildings(d *Dataset, prov Provenance, tag string) []*Footprint {
	return d.Select(Query{
		Provenance:    prov,
		Tag:           tag,
		RequireClosed: true,
	})
}
