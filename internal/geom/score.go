package geom

// FailureKind classifies why a score could not be computed.
type FailureKind int

const (
	// FailureNone means the score is valid.
	FailureNone FailureKind = iota

	// FailureDegenerate means a ring encloses no area.
	FailureDegenerate

	// FailureZeroReference means the reference box used as a denominator has no area.
	FailureZeroReference

	// FailureMalformedRing means a ring has fewer than three distinct vertices.
	FailureMalformedRing
)

// String returns a short name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureDegenerate:
		return "degenerate"
	case FailureZeroReference:
		return "zero_reference"
	case FailureMalformedRing:
		return "malformed_ring"
	default:
		return "unknown"
	}
}

// Score is the outcome of a geometric scoring function.
// Value is only meaningful when Failure is FailureNone.
type Score struct {
	Value   float64
	Failure FailureKind
}

// OK reports whether the score was computed successfully.
func (s Score) OK() bool {
	return s.Failure == FailureNone
}

// OrZero returns the score value, or 0 when the score failed.
func (s Score) OrZero() float64 {
	if !s.OK() {
		return 0
	}
	return s.Value
}

func scored(v float64) Score {
	return Score{Value: v}
}

func failed(kind FailureKind) Score {
	return Score{Failure: kind}
}
