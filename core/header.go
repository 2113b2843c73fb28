package core

import (
	"fmt"
	"sort"
	"strconv"
)

// Header carries the six fields every block variant shares: block hash,
// prev hash, height, timestamp, balance, and balance delta.
type Header struct {
	Hash         string
	PrevHash     string
	Height       int
	Ts           int64
	Balance      Amount
	BalanceDelta Amount
}

func (h *Header) asMap(blockType BlockType) map[string]interface{} {
	return map[string]interface{}{
		"block_type":      int(blockType),
		"block_hash":      h.Hash,
		"prev_block_hash": h.PrevHash,
		"height":          h.Height,
		"ts":              h.Ts,
		"balance":         h.Balance.String(),
		"balance_delta":   h.BalanceDelta.String(),
	}
}

func (h *Header) fromMap(m map[string]interface{}, expected BlockType) error {
	rawType, ok := m["block_type"]
	if !ok {
		return fmt.Errorf("block missing block_type: %w", ErrTypeMismatch)
	}
	gotType, err := asInt(rawType)
	if err != nil {
		return fmt.Errorf("block_type: %w", err)
	}
	if BlockType(gotType) != expected {
		return fmt.Errorf("expected type %s, got type %s: %w", expected, BlockType(gotType), ErrTypeMismatch)
	}

	h.Hash, _ = m["block_hash"].(string)
	h.PrevHash, _ = m["prev_block_hash"].(string)

	height, err := asInt(m["height"])
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	h.Height = height

	ts, err := asInt64(m["ts"])
	if err != nil {
		return fmt.Errorf("ts: %w", err)
	}
	h.Ts = ts

	bal, err := parseAmount(m["balance"])
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	h.Balance = bal

	bd, err := parseAmount(m["balance_delta"])
	if err != nil {
		return fmt.Errorf("balance_delta: %w", err)
	}
	h.BalanceDelta = bd

	return nil
}

// hashPrefix is the first six elements of every canonical hash input, in
// a fixed order: block type, prev hash, height, ts, balance, balance delta.
func (h *Header) hashPrefix(blockType BlockType) []string {
	return []string{
		strconv.Itoa(int(blockType)),
		h.PrevHash,
		strconv.Itoa(h.Height),
		strconv.FormatInt(h.Ts, 10),
		h.Balance.String(),
		h.BalanceDelta.String(),
	}
}

func asInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case string:
		if x == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported int type %T", v)
	}
}

func asInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case string:
		if x == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported int64 type %T", v)
	}
}

// boolHash renders a bool as Python's str(bool) would: "True"/"False".
func boolHash(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// strHash renders an optional string field the way blocks.py renders
// unset attributes in get_hashable(): the literal "None" when empty.
func strHash(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// flattenSignalData renders a signal_data-shaped map in sorted-key order,
// one hash element per key followed by one per (possibly bool-coerced)
// value, matching blocks.py's SignalSent/SignalReceived get_hashable loop.
func flattenSignalData(data map[string]interface{}) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, renderSignalValue(data[k]))
	}
	return out
}

func renderSignalValue(v interface{}) string {
	switch x := v.(type) {
	case bool:
		return boolHash(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// flattenRefs renders a refs map (str -> set<str>) the way BaseAction's
// get_hashable does: one hash element per sorted key, the value being the
// '.'-joined sorted members of that key's set.
func flattenRefs(refs map[string][]string) []string {
	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		members := append([]string(nil), refs[k]...)
		sort.Strings(members)
		out = append(out, joinDot(members))
	}
	return out
}

func joinDot(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
