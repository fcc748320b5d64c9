package hypgeom

import (
	"fmt"
	"strings"

	"github.com/tuneinsight/hypgeom/utils"
)

// Strategy is a summation algorithm.
type Strategy int

const (
	// Auto lets the Policy pick the strategy from the size of the problem.
	Auto = Strategy(iota)
	// Forward is the term by term recurrence.
	Forward
	// BS is binary splitting.
	BS
	// RS is rectangular splitting.
	RS
	// FME is fast multipoint evaluation.
	FME
)

var strategyNames = [...]string{"auto", "forward", "bs", "rs", "fme"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy returns the Strategy of the given name.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return Auto, fmt.Errorf("cannot ParseStrategy: unknown strategy %q", name)
}

// MarshalText encodes the strategy as its name.
func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("cannot MarshalText: invalid strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a strategy from its name.
func (s *Strategy) UnmarshalText(p []byte) (err error) {
	*s, err = ParseStrategy(string(p))
	return
}

// Policy holds the thresholds used to select the summation strategy.
type Policy struct {
	// Strategy forces a strategy, unless it is Auto.
	Strategy Strategy
	// MinTerms is the number of terms up to which Forward is always used.
	MinTerms int
	// BSMinPrec is the smallest precision at which BS is used.
	BSMinPrec uint
	// RSMinPrec is the smallest precision at which RS is used.
	RSMinPrec uint
	// FMEMinPrec is the smallest precision at which FME is used.
	FMEMinPrec uint
	// FMEBaseTerms and FMEScale define the number of terms
	// FMEBaseTerms + FMEScale/(prec - 1000) from which FME is used.
	FMEBaseTerms int
	FMEScale     int
	// SeriesBSMinLen is the length of power series from which BS is used
	// regardless of the size of the coefficients.
	SeriesBSMinLen int
}

// DefaultPolicy returns the default thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Strategy:       Auto,
		MinTerms:       4,
		BSMinPrec:      128,
		RSMinPrec:      128,
		FMEMinPrec:     1500,
		FMEBaseTerms:   30,
		FMEScale:       100000,
		SeriesBSMinLen: 20,
	}
}

// Validate returns an error if the thresholds are inconsistent.
func (pol Policy) Validate() error {
	switch {
	case pol.Strategy < Auto || pol.Strategy > FME:
		return fmt.Errorf("invalid policy: unknown strategy %d", int(pol.Strategy))
	case pol.MinTerms < 0:
		return fmt.Errorf("invalid policy: MinTerms must be non-negative but is %d", pol.MinTerms)
	case pol.FMEMinPrec <= 1000:
		return fmt.Errorf("invalid policy: FMEMinPrec must be greater than 1000 but is %d", pol.FMEMinPrec)
	case pol.FMEBaseTerms < 0 || pol.FMEScale < 0:
		return fmt.Errorf("invalid policy: FMEBaseTerms and FMEScale must be non-negative")
	case pol.SeriesBSMinLen < 0:
		return fmt.Errorf("invalid policy: SeriesBSMinLen must be non-negative but is %d", pol.SeriesBSMinLen)
	}
	return nil
}

// Choose returns the strategy to sum n terms of a series with p upper and
// q lower scalar parameters at precision prec. bits is the largest number
// of significant bits of the parameters and zBits that of z.
//
// Binary splitting is chosen when the parameters are small compared to the
// precision, fast multipoint evaluation at very high precision and rectangular
// splitting otherwise, unless n is too small.
func (pol Policy) Choose(n int, prec uint, bits, zBits, p, q int) Strategy {

	if pol.Strategy != Auto {
		return pol.Strategy
	}

	if n <= pol.MinTerms {
		return Forward
	}

	if prec >= pol.BSMinPrec && bits*(p+q)+zBits+10 < int(prec/2) {
		return BS
	}

	// the FME threshold grows without bound as prec decreases to 1000
	if prec > 1000 && prec >= pol.FMEMinPrec && p <= fmeMaxParams && q <= fmeMaxParams &&
		n >= pol.FMEBaseTerms+pol.FMEScale/int(prec-1000) {
		return FME
	}

	if prec >= pol.RSMinPrec {
		return RS
	}

	return Forward
}

// ChooseSeries is Choose for power series of the given length. Binary
// splitting is also chosen for long series, and fast multipoint evaluation
// is never chosen.
func (pol Policy) ChooseSeries(n int, prec uint, bits, zBits, p, q, length int) Strategy {

	if pol.Strategy != Auto {
		return pol.Strategy
	}

	if n <= pol.MinTerms {
		return Forward
	}

	if prec >= pol.BSMinPrec && (bits*(p+q)+zBits+10 < int(prec/2) || length >= pol.SeriesBSMinLen) {
		return BS
	}

	if prec >= pol.RSMinPrec {
		return RS
	}

	return Forward
}

// maxBits returns the largest number of significant bits of the parameters.
func maxBits[T any](r Ring[T], a, b []T) (bits int) {
	for i := range a {
		bits = utils.Max(bits, r.Bits(a[i]))
	}
	for i := range b {
		bits = utils.Max(bits, r.Bits(b[i]))
	}
	return
}
