package core

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is the arbitrary-precision decimal type used for every monetary
// field on a block. Grounded on blocks.py's use of Decimal throughout:
// balances never touch binary floating point.
type Amount = decimal.Decimal

var zeroAmount = decimal.NewFromInt(0)

// parseAmount parses a decimal string as it would arrive over the wire.
// An empty string or a missing value parses to the zero amount; callers
// that need to distinguish "absent" from "zero"
// use parseOptAmount instead.
func parseAmount(raw interface{}) (Amount, error) {
	switch v := raw.(type) {
	case nil:
		return zeroAmount, nil
	case string:
		if v == "" {
			return zeroAmount, nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return zeroAmount, fmt.Errorf("parse amount %q: %w", v, err)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return zeroAmount, fmt.Errorf("parse amount %q: %w", v, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return zeroAmount, fmt.Errorf("unsupported amount type %T", raw)
	}
}

// parseOptAmount treats a missing key, JSON null, or empty string as "no
// amount" (nil), mirroring the several places blocks.py checks
// `if amount is not None`.
func parseOptAmount(raw interface{}) (*Amount, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && s == "" {
		return nil, nil
	}
	d, err := parseAmount(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// amountHash renders an optional decimal the way the canonical hash input
// requires: the literal string "None" when absent. An empty-string wire
// value arrives here as nil, since parseOptAmount maps it to nil.
func amountHash(d *Amount) string {
	if d == nil {
		return "None"
	}
	return d.String()
}

// amountOrEmpty renders an optional decimal for JSON the way blocks.py's
// serialize() does: str(value) if present, else nil (written as JSON null).
func amountOrEmpty(d *Amount) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// isPositiveAmount reports whether d is present and > 0, matching
// blocks.py's is_amount() helper used to decide whether SignalSent /
// SignalReceived include amount in their hash appendix at all.
func isPositiveAmount(d *Amount) bool {
	return d != nil && d.IsPositive()
}
