package core

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalJSON renders the amount as a plain decimal number with two
// fractional digits, so payloads read "amount": 1234.56 rather than a
// nested cents object.
func (m Money) MarshalJSON() ([]byte, error) {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)), nil
}

// UnmarshalJSON parses either a decimal number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	cents, ok := ParseSignedCents(s)
	if !ok {
		return fmt.Errorf("invalid money value %q", s)
	}
	m.Cents = cents
	return nil
}

// String implements fmt.Stringer for log output.
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}
