package poly

import (
	"github.com/tuneinsight/hypgeom/mag"
)

// CoeffMagUpper returns upper bounds of the absolute values of the coefficients of p.
func (p *Poly) CoeffMagUpper() []*mag.Mag {
	m := make([]*mag.Mag, p.Len())
	for i := range p.Coeffs {
		m[i] = p.Coeffs[i].MagUpper()
	}
	return m
}
