/*
Package hypgeom is a pure Go library for the rigorous evaluation of generalized hypergeometric series.
It provides complex ball arithmetic, truncated power series over balls, the reciprocal gamma function and
several summation strategies for pFq and its derivatives, all returning enclosures of the exact value.
*/
package hypgeom
