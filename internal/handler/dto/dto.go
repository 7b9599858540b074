// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price accepts either a JSON number or a numeric string, so a payload
// carrying `"price": "12.50"` stores the float 12.5, not the string.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", str)
		}
		*p = Price(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// Float64 returns the underlying value.
func (p Price) Float64() float64 {
	return float64(p)
}
