package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/danieljhkim/cleanslate/internal/dataset"
)

// ErrInvalidExpression indicates filter text that cannot be compiled.
var ErrInvalidExpression = errors.New("invalid filter expression")

var (
	exactID = regexp.MustCompile(`^\d+$`)
	rangeID = regexp.MustCompile(`^(-?\d+)?-(-?\d+)?$`)
)

// Expr is a compiled filter expression.
type Expr func(fp *dataset.Footprint) bool

// Compile parses filter text. Whitespace separated terms must all match.
//
// Supported terms:
//
//	id:N       footprint ID equals N, for N >= 0
//	id:A-B     A <= ID <= B; either bound may be omitted ("id:1-")
//	id:-N      ID <= N, the range with no lower bound
//
// A leading dash after "id:" always starts a range, so a single local ID is
// written as a one-element range ("id:-3--3").
//	key        footprint carries the tag key
//	key=value  footprint carries the tag with that value
//	-term      negation of term
func Compile(text string) (Expr, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}

	terms := make([]Expr, 0, len(fields))
	for _, field := range fields {
		term, err := compileTerm(field)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	return func(fp *dataset.Footprint) bool {
		for _, term := range terms {
			if !term(fp) {
				return false
			}
		}
		return true
	}, nil
}

func compileTerm(field string) (Expr, error) {
	if rest, ok := strings.CutPrefix(field, "-"); ok && rest != "" {
		inner, err := compileTerm(rest)
		if err != nil {
			return nil, err
		}
		return func(fp *dataset.Footprint) bool { return !inner(fp) }, nil
	}

	if rng, ok := strings.CutPrefix(field, "id:"); ok {
		return compileID(rng)
	}
	if strings.Contains(field, ":") {
		return nil, fmt.Errorf("%w: unsupported term %q", ErrInvalidExpression, field)
	}

	if key, value, ok := strings.Cut(field, "="); ok {
		if key == "" {
			return nil, fmt.Errorf("%w: missing key in %q", ErrInvalidExpression, field)
		}
		return func(fp *dataset.Footprint) bool {
			v, has := fp.Tags[key]
			return has && v == value
		}, nil
	}

	return func(fp *dataset.Footprint) bool { return fp.HasTag(field) }, nil
}

func compileID(rng string) (Expr, error) {
	if exactID.MatchString(rng) {
		id, err := strconv.ParseInt(rng, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		return func(fp *dataset.Footprint) bool { return fp.ID == id }, nil
	}

	m := rangeID.FindStringSubmatch(rng)
	if m == nil || (m[1] == "" && m[2] == "") {
		return nil, fmt.Errorf("%w: bad id range %q", ErrInvalidExpression, rng)
	}

	lo, hi := int64(-1<<63), int64(1<<63-1)
	if m[1] != "" {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		lo = v
	}
	if m[2] != "" {
		v, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		hi = v
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: empty id range %q", ErrInvalidExpression, rng)
	}

	return func(fp *dataset.Footprint) bool { return fp.ID >= lo && fp.ID <= hi }, nil
}
