package core

import (
	"encoding/json"
	"strconv"
)

// Action and WorkOutput both extend a common "BaseAction" shape — an
// activity reference with a ts and a refs map — grounded on blocks.py's
// BaseAction. Go has no class inheritance, so the shared fields and the
// shared hash-prefix logic live in baseAction's hashable/toMap/fromMap
// methods that each variant calls explicitly, the same way core/ledger.go
// favors small composed helpers over deep embedding chains.

type baseAction struct {
	ActionID   string
	ActivityID string
	Refs       map[string][]string
	ActionTs   int64
}

func (a *baseAction) hashable() []string {
	out := []string{a.ActionID, a.ActivityID, itoa64(a.ActionTs)}
	out = append(out, flattenRefs(a.Refs)...)
	return out
}

func (a *baseAction) toMap() map[string]interface{} {
	return map[string]interface{}{
		"action_id":   a.ActionID,
		"activity_id": a.ActivityID,
		"action_ts":   itoa64(a.ActionTs),
		"refs":        a.Refs,
	}
}

func (a *baseAction) fromMap(m map[string]interface{}) error {
	a.ActionID, _ = m["action_id"].(string)
	a.ActivityID, _ = m["activity_id"].(string)
	ts, err := asInt64(m["action_ts"])
	if err != nil {
		return err
	}
	a.ActionTs = ts
	a.Refs = decodeRefs(m["refs"])
	return nil
}

func decodeRefs(v interface{}) map[string][]string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(m))
	for k, raw := range m {
		items, ok := raw.([]interface{})
		if !ok {
			continue
		}
		members := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				members = append(members, s)
			}
		}
		out[k] = members
	}
	return out
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Action records that the chain performed an activity, optionally in
// response to a delivered signal. Grounded on blocks.py's Action.
type Action struct {
	Hdr                    Header
	Base                   baseAction
	DeliverSignalBlockHash string
}

func (b *Action) BlockType() BlockType { return BlockTypeAction }
func (b *Action) Header() *Header      { return &b.Hdr }

func (b *Action) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAction)
	h = append(h, b.Base.hashable()...)
	h = append(h, strHash(b.DeliverSignalBlockHash))
	return h
}

func (b *Action) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAction)
	for k, v := range b.Base.toMap() {
		m[k] = v
	}
	m["deliver_signal_block_hash"] = b.DeliverSignalBlockHash
	return json.Marshal(m)
}

func (b *Action) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAction); err != nil {
		return err
	}
	if err := b.Base.fromMap(m); err != nil {
		return err
	}
	b.DeliverSignalBlockHash, _ = m["deliver_signal_block_hash"].(string)
	return nil
}

// WorkOutput records the result of an activity, with free-form (unhashed)
// details. Grounded on blocks.py's WorkOutput.
type WorkOutput struct {
	Hdr     Header
	Base    baseAction
	Details interface{}
}

func (b *WorkOutput) BlockType() BlockType { return BlockTypeWorkOutput }
func (b *WorkOutput) Header() *Header      { return &b.Hdr }

func (b *WorkOutput) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeWorkOutput)
	h = append(h, b.Base.hashable()...)
	return h
}

func (b *WorkOutput) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeWorkOutput)
	for k, v := range b.Base.toMap() {
		m[k] = v
	}
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *WorkOutput) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeWorkOutput); err != nil {
		return err
	}
	if err := b.Base.fromMap(m); err != nil {
		return err
	}
	b.Details = m["details"]
	return nil
}
