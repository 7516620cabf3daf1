package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a food price as the user typed it. It may not be numeric.
type Price string

// Amount is an expense amount as entered. Unlike Price it is written back
// as a JSON number whenever the raw text is one.
type Amount string

// AmountOf formats a number as an Amount.
func AmountOf(v float64) Amount {
	return Amount(strconv.FormatFloat(v, 'f', -1, 64))
}

func (p *Price) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(s)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(s)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

// scalarText returns the text of a JSON string, number, bool or null.
func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return "", nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case b[0] == '{' || b[0] == '[':
		return "", fmt.Errorf("unexpected %s value", string(b[:1]))
	default:
		return string(b), nil
	}
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c != '-' && (c < '0' || c > '9') {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}

// Number is an optional numeric field kept as its encoded JSON text, so a
// stored value that is not a number still loads and is written back as it
// was. The zero value is absent.
type Number string

// NumberOf formats v as a Number.
func NumberOf(v int) Number {
	return Number(strconv.Itoa(v))
}

// Float returns the value when n holds a JSON number.
func (n Number) Float() (float64, bool) {
	if !isJSONNumber(string(n)) {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntOr truncates the value toward zero, or returns def when n is absent or
// not a number.
func (n Number) IntOr(def int) int {
	v, ok := n.Float()
	if !ok {
		return def
	}
	return int(v)
}

// Text is the value for display: strings lose their quotes.
func (n Number) Text() string {
	var s string
	if strings.HasPrefix(string(n), `"`) && json.Unmarshal([]byte(n), &s) == nil {
		return s
	}
	return string(n)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	*n = Number(b)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case n == "":
		return []byte("null"), nil
	case json.Valid([]byte(n)):
		return []byte(n), nil
	default:
		return json.Marshal(string(n))
	}
}
