package core

import (
	"encoding/json"
	"fmt"
)

// decodeSignalData accepts signal_data either as an embedded JSON object
// or as a JSON string containing an encoded object — every variant must
// parse both shapes, since SignalReceived's own serialize() always
// writes the string-of-object form.
func decodeSignalData(v interface{}) (map[string]interface{}, error) {
	switch x := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return x, nil
	case string:
		if x == "" {
			return map[string]interface{}{}, nil
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(x), &m); err != nil {
			return nil, fmt.Errorf("signal_data: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported signal_data type %T", v)
	}
}

// SignalSent is step one of the send/receive/deliver/reward state
// machine: the sending chain's record of a message, with an optional
// reward amount, addressed to dest_chain_id. Grounded on blocks.py's
// SignalSent.
type SignalSent struct {
	Hdr          Header
	DestChainID  string
	SignalData   map[string]interface{}
	Amount       *Amount
}

func (b *SignalSent) BlockType() BlockType { return BlockTypeSignalSent }
func (b *SignalSent) Header() *Header      { return &b.Hdr }

func (b *SignalSent) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeSignalSent)
	h = append(h, b.DestChainID)
	h = append(h, flattenSignalData(b.SignalData)...)
	if isPositiveAmount(b.Amount) {
		h = append(h, b.Amount.String())
	}
	return h
}

func (b *SignalSent) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeSignalSent)
	m["dest_chain_id"] = b.DestChainID
	m["signal_data"] = b.SignalData
	m["amount"] = amountOrEmpty(b.Amount)
	return json.Marshal(m)
}

func (b *SignalSent) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeSignalSent); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	sd, err := decodeSignalData(m["signal_data"])
	if err != nil {
		return err
	}
	b.SignalData = sd
	amount, err := parseOptAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

// SignalReceived is step two: the destination chain's acknowledgement of
// a SignalSent, referencing it by hash. Grounded on blocks.py's
// SignalReceived.
type SignalReceived struct {
	Hdr               Header
	SrcChainID        string
	SendSignalBlockHash string
	SignalData        map[string]interface{}
	Amount            *Amount
}

func (b *SignalReceived) BlockType() BlockType { return BlockTypeSignalReceived }
func (b *SignalReceived) Header() *Header      { return &b.Hdr }

func (b *SignalReceived) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeSignalReceived)
	h = append(h, b.SrcChainID, b.SendSignalBlockHash)
	h = append(h, flattenSignalData(b.SignalData)...)
	if isPositiveAmount(b.Amount) {
		h = append(h, b.Amount.String())
	}
	return h
}

func (b *SignalReceived) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeSignalReceived)
	sd, err := json.Marshal(b.SignalData)
	if err != nil {
		return nil, err
	}
	m["signal_data"] = string(sd)
	m["send_signal_block_hash"] = b.SendSignalBlockHash
	m["src_chain_id"] = b.SrcChainID
	m["amount"] = amountOrEmpty(b.Amount)
	return json.Marshal(m)
}

func (b *SignalReceived) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeSignalReceived); err != nil {
		return err
	}
	sd, err := decodeSignalData(m["signal_data"])
	if err != nil {
		return err
	}
	b.SignalData = sd
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.SendSignalBlockHash, _ = m["send_signal_block_hash"].(string)
	amount, err := parseOptAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

// SignalDelivered is the optional third step: the destination chain
// records that the signal was acted on, at a given cost, before rewarding
// it. Grounded on blocks.py's SignalDelivered.
type SignalDelivered struct {
	Hdr                     Header
	SrcChainID              string
	ReceiveSignalBlockHash  string
	ActivityID              string
	Cost                    int
	Amount                  *Amount
}

func (b *SignalDelivered) BlockType() BlockType { return BlockTypeSignalDelivered }
func (b *SignalDelivered) Header() *Header      { return &b.Hdr }

func (b *SignalDelivered) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeSignalDelivered)
	h = append(h, b.ActivityID, b.SrcChainID, b.ReceiveSignalBlockHash)
	h = append(h, fmt.Sprintf("%d", b.Cost))
	h = append(h, amountHash(b.Amount))
	return h
}

func (b *SignalDelivered) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeSignalDelivered)
	m["activity_id"] = b.ActivityID
	m["receive_signal_block_hash"] = b.ReceiveSignalBlockHash
	m["src_chain_id"] = b.SrcChainID
	m["cost"] = b.Cost
	m["amount"] = amountOrEmpty(b.Amount)
	return json.Marshal(m)
}

func (b *SignalDelivered) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeSignalDelivered); err != nil {
		return err
	}
	b.ActivityID, _ = m["activity_id"].(string)
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.ReceiveSignalBlockHash, _ = m["receive_signal_block_hash"].(string)
	cost, err := asInt(m["cost"])
	if err != nil {
		return err
	}
	b.Cost = cost
	amount, err := parseOptAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

// SignalRewardSent is step four: the destination chain pays the sender
// for the signal, referencing either the deliver-signal block or (absent
// delivery) the receive-signal block. Grounded on blocks.py's
// SignalRewardSent; immutable_balance=false there because balance is
// actually moved by the subsequent CreditAccepted.
type SignalRewardSent struct {
	Hdr                     Header
	DestChainID             string
	ActionBlockHash         string
	DeliverSignalBlockHash  string
	Amount                  Amount
	AcceptedAmount          *Amount
}

func (b *SignalRewardSent) BlockType() BlockType { return BlockTypeSignalRewardSent }
func (b *SignalRewardSent) Header() *Header      { return &b.Hdr }

func (b *SignalRewardSent) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeSignalRewardSent)
	h = append(h, b.DestChainID, strHash(b.ActionBlockHash), b.DeliverSignalBlockHash)
	h = append(h, b.Amount.String())
	h = append(h, amountHash(b.AcceptedAmount))
	return h
}

func (b *SignalRewardSent) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeSignalRewardSent)
	m["dest_chain_id"] = b.DestChainID
	m["deliver_signal_block_hash"] = b.DeliverSignalBlockHash
	m["action_block_hash"] = b.ActionBlockHash
	m["amount"] = b.Amount.String()
	m["accepted_amount"] = amountOrEmpty(b.AcceptedAmount)
	return json.Marshal(m)
}

func (b *SignalRewardSent) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeSignalRewardSent); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	b.ActionBlockHash, _ = m["action_block_hash"].(string)
	b.DeliverSignalBlockHash, _ = m["deliver_signal_block_hash"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	accepted, err := parseOptAmount(m["accepted_amount"])
	if err != nil {
		return err
	}
	b.AcceptedAmount = accepted
	return nil
}

// SignalRewardReceived is step five: the sending chain's record of
// having been paid; the balance change itself is applied by the
// CreditAccepted block that follows. Grounded on blocks.py's
// SignalRewardReceived.
type SignalRewardReceived struct {
	Hdr                          Header
	SrcChainID                   string
	SendSignalRewardBlockHash    string
	Amount                       Amount
}

func (b *SignalRewardReceived) BlockType() BlockType { return BlockTypeSignalRewardReceived }
func (b *SignalRewardReceived) Header() *Header      { return &b.Hdr }

func (b *SignalRewardReceived) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeSignalRewardReceived)
	h = append(h, b.SrcChainID, b.SendSignalRewardBlockHash, b.Amount.String())
	return h
}

func (b *SignalRewardReceived) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeSignalRewardReceived)
	m["src_chain_id"] = b.SrcChainID
	m["send_signal_reward_block_hash"] = b.SendSignalRewardBlockHash
	m["amount"] = b.Amount.String()
	return json.Marshal(m)
}

func (b *SignalRewardReceived) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeSignalRewardReceived); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.SendSignalRewardBlockHash, _ = m["send_signal_reward_block_hash"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}
