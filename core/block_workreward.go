package core

import "encoding/json"

// WorkOutputReward* variants pay out for a WorkOutput directly, outside
// the Target bounty flow. Grounded on blocks.py's
// WorkOutputRewardSent/WorkOutputRewardReceived.

// WorkOutputRewardSent pays the chain that produced a WorkOutput.
// details is accepted but not hashed.
type WorkOutputRewardSent struct {
	Hdr                 Header
	DestChainID         string
	Amount              Amount
	WorkOutputBlockHash string
	Details             interface{}
}

func (b *WorkOutputRewardSent) BlockType() BlockType { return BlockTypeWorkOutputRewardSent }
func (b *WorkOutputRewardSent) Header() *Header      { return &b.Hdr }

func (b *WorkOutputRewardSent) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeWorkOutputRewardSent)
	return append(h, b.DestChainID, b.Amount.String(), b.WorkOutputBlockHash)
}

func (b *WorkOutputRewardSent) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeWorkOutputRewardSent)
	m["dest_chain_id"] = b.DestChainID
	m["amount"] = b.Amount.String()
	m["work_output_block_hash"] = b.WorkOutputBlockHash
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *WorkOutputRewardSent) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeWorkOutputRewardSent); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	b.WorkOutputBlockHash, _ = m["work_output_block_hash"].(string)
	b.Details = m["details"]
	return nil
}

// WorkOutputRewardReceived closes the payout on the producing chain.
type WorkOutputRewardReceived struct {
	Hdr                        Header
	SrcChainID                 string
	Amount                     Amount
	WorkOutputBlockHash        string
	SendWorkOutputRewardBlockHash string
	Details                    interface{}
}

func (b *WorkOutputRewardReceived) BlockType() BlockType {
	return BlockTypeWorkOutputRewardReceived
}
func (b *WorkOutputRewardReceived) Header() *Header { return &b.Hdr }

func (b *WorkOutputRewardReceived) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeWorkOutputRewardReceived)
	return append(h, b.SrcChainID, b.Amount.String(), b.WorkOutputBlockHash, b.SendWorkOutputRewardBlockHash)
}

func (b *WorkOutputRewardReceived) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeWorkOutputRewardReceived)
	m["src_chain_id"] = b.SrcChainID
	m["amount"] = b.Amount.String()
	m["work_output_block_hash"] = b.WorkOutputBlockHash
	m["send_work_output_reward_block_hash"] = b.SendWorkOutputRewardBlockHash
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *WorkOutputRewardReceived) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeWorkOutputRewardReceived); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	b.WorkOutputBlockHash, _ = m["work_output_block_hash"].(string)
	b.SendWorkOutputRewardBlockHash, _ = m["send_work_output_reward_block_hash"].(string)
	b.Details = m["details"]
	return nil
}
