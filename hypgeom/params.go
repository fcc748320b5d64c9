package hypgeom

import (
	"encoding/json"
	"fmt"
)

// DefaultMemoCapacity is the default number of results kept by the memo cache
// of an Evaluator.
const DefaultMemoCapacity = 0

// ParametersLiteral is a literal representation of the parameters of an
// Evaluator. Optional fields left nil take their default value.
//
// Users must call NewParametersFromLiteral to obtain a Parameters struct.
type ParametersLiteral struct {
	// Policy holds the thresholds of the summation strategies, DefaultPolicy() if nil.
	Policy *Policy `json:",omitempty"`
	// MemoCapacity is the number of results kept in memory, zero disables the cache.
	MemoCapacity *int `json:",omitempty"`
}

// Parameters represents a validated set of parameters of an Evaluator.
type Parameters struct {
	policy       Policy
	memoCapacity int
}

// NewParametersFromLiteral instantiates a set of Parameters from a
// ParametersLiteral specification. It returns an error if the policy is
// invalid or the memo capacity is negative.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	params.policy = DefaultPolicy()
	if pl.Policy != nil {
		params.policy = *pl.Policy
	}

	if err = params.policy.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	params.memoCapacity = DefaultMemoCapacity
	if pl.MemoCapacity != nil {
		if *pl.MemoCapacity < 0 {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: MemoCapacity must be non-negative but is %d", *pl.MemoCapacity)
		}
		params.memoCapacity = *pl.MemoCapacity
	}

	return
}

// DefaultParameters returns the parameters with all the default values.
func DefaultParameters() Parameters {
	params, err := NewParametersFromLiteral(ParametersLiteral{})
	if err != nil {
		// sanity check
		panic(err)
	}
	return params
}

// Policy returns the thresholds of the summation strategies.
func (p Parameters) Policy() Policy {
	return p.policy
}

// MemoCapacity returns the number of results kept by the memo cache.
func (p Parameters) MemoCapacity() int {
	return p.memoCapacity
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	pol := p.policy
	capacity := p.memoCapacity
	return ParametersLiteral{
		Policy:       &pol,
		MemoCapacity: &capacity,
	}
}

// Equal returns true if p and other are the same parameters.
func (p Parameters) Equal(other Parameters) bool {
	return p == other
}

// MarshalJSON returns a JSON representation of this parameter set.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
