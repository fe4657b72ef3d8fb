package sir

import "fmt"

// HealthState is the epidemiological state of one cell.
type HealthState uint8

const (
	Susceptible HealthState = iota
	Infected
	Recovered
)

// NumStates is the number of valid health states.
const NumStates = 3

// String returns the state name.
func (s HealthState) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	}
	return fmt.Sprintf("HealthState(%d)", uint8(s))
}

// Valid reports whether s is one of the three defined states.
func (s HealthState) Valid() bool { return s < NumStates }

// Encode returns the 2-bit storage code for s. Encoding an invalid state
// panics; no caller can construct one without a conversion.
func Encode(s HealthState) uint8 {
	if !s.Valid() {
		panic(fmt.Sprintf("sir: encode %v", s))
	}
	return uint8(s)
}

// Decode maps a 2-bit storage code back to its state. Code 3 is never written
// by Encode and reports ErrInvalidEncoding.
func Decode(code uint8) (HealthState, error) {
	s := HealthState(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidEncoding, code)
	}
	return s, nil
}
