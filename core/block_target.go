package core

import "encoding/json"

// Target* variants implement the bounty construct: a chain posts a
// TargetCreated, a peer records TargetAccepted, work is claimed and
// rewarded via the ClaimSent/ClaimReceived/RewardSent/RewardReceived
// quartet. Grounded on blocks.py's Target* classes.

// TargetCreated posts a bounty. priors and conditions are accepted but
// never hashed: a peer cannot verify that content via the block hash
// alone.
type TargetCreated struct {
	Hdr        Header
	Name       string
	TargetID   string
	RewardPer  Amount
	RewardPool Amount
	Priors     interface{}
	Conditions interface{}
}

func (b *TargetCreated) BlockType() BlockType { return BlockTypeTargetCreated }
func (b *TargetCreated) Header() *Header      { return &b.Hdr }

func (b *TargetCreated) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetCreated)
	return append(h, b.Name, b.TargetID, b.RewardPer.String(), b.RewardPool.String())
}

func (b *TargetCreated) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetCreated)
	m["name"] = b.Name
	m["target_id"] = b.TargetID
	m["reward_per"] = b.RewardPer.String()
	m["reward_pool"] = b.RewardPool.String()
	m["priors"] = b.Priors
	m["conditions"] = b.Conditions
	return json.Marshal(m)
}

func (b *TargetCreated) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetCreated); err != nil {
		return err
	}
	b.Name, _ = m["name"].(string)
	b.TargetID, _ = m["target_id"].(string)
	per, err := parseAmount(m["reward_per"])
	if err != nil {
		return err
	}
	b.RewardPer = per
	pool, err := parseAmount(m["reward_pool"])
	if err != nil {
		return err
	}
	b.RewardPool = pool
	b.Priors = m["priors"]
	b.Conditions = m["conditions"]
	return nil
}

// TargetAccepted is a peer's record of having taken on a target.
// target_details is accepted but not hashed.
type TargetAccepted struct {
	Hdr             Header
	SrcChainID      string
	TargetID        string
	TargetBlockHash string
	TargetDetails   interface{}
}

func (b *TargetAccepted) BlockType() BlockType { return BlockTypeTargetAccepted }
func (b *TargetAccepted) Header() *Header      { return &b.Hdr }

func (b *TargetAccepted) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetAccepted)
	return append(h, b.SrcChainID, b.TargetID, b.TargetBlockHash)
}

func (b *TargetAccepted) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetAccepted)
	m["src_chain_id"] = b.SrcChainID
	m["target_id"] = b.TargetID
	m["target_block_hash"] = b.TargetBlockHash
	m["target_details"] = b.TargetDetails
	return json.Marshal(m)
}

func (b *TargetAccepted) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetAccepted); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.TargetID, _ = m["target_id"].(string)
	b.TargetBlockHash, _ = m["target_block_hash"].(string)
	b.TargetDetails = m["target_details"]
	return nil
}

// TargetRewardClaimSent is the claimant chain asking the target's owner
// for payment, pointing at its WorkOutput.
type TargetRewardClaimSent struct {
	Hdr                Header
	DestChainID        string
	TargetBlockHash    string
	WorkOutputBlockHash string
	WorkOutputDetails  interface{}
}

func (b *TargetRewardClaimSent) BlockType() BlockType { return BlockTypeTargetRewardClaimSent }
func (b *TargetRewardClaimSent) Header() *Header      { return &b.Hdr }

func (b *TargetRewardClaimSent) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetRewardClaimSent)
	return append(h, b.DestChainID, b.TargetBlockHash, b.WorkOutputBlockHash)
}

func (b *TargetRewardClaimSent) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetRewardClaimSent)
	m["dest_chain_id"] = b.DestChainID
	m["target_block_hash"] = b.TargetBlockHash
	m["work_output_block_hash"] = b.WorkOutputBlockHash
	m["work_output_details"] = b.WorkOutputDetails
	return json.Marshal(m)
}

func (b *TargetRewardClaimSent) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetRewardClaimSent); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	b.TargetBlockHash, _ = m["target_block_hash"].(string)
	b.WorkOutputBlockHash, _ = m["work_output_block_hash"].(string)
	b.WorkOutputDetails = m["work_output_details"]
	return nil
}

// TargetRewardClaimReceived is the owner's acknowledgement of a claim.
type TargetRewardClaimReceived struct {
	Hdr                              Header
	SrcChainID                       string
	TargetBlockHash                  string
	SendTargetRewardClaimBlockHash   string
	WorkOutputBlockHash              string
	WorkOutputDetails                interface{}
}

func (b *TargetRewardClaimReceived) BlockType() BlockType {
	return BlockTypeTargetRewardClaimReceived
}
func (b *TargetRewardClaimReceived) Header() *Header { return &b.Hdr }

func (b *TargetRewardClaimReceived) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetRewardClaimReceived)
	return append(h, b.SrcChainID, b.TargetBlockHash, b.SendTargetRewardClaimBlockHash, b.WorkOutputBlockHash)
}

func (b *TargetRewardClaimReceived) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetRewardClaimReceived)
	m["src_chain_id"] = b.SrcChainID
	m["target_block_hash"] = b.TargetBlockHash
	m["send_target_reward_claim_block_hash"] = b.SendTargetRewardClaimBlockHash
	m["work_output_block_hash"] = b.WorkOutputBlockHash
	m["work_output_details"] = b.WorkOutputDetails
	return json.Marshal(m)
}

func (b *TargetRewardClaimReceived) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetRewardClaimReceived); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.TargetBlockHash, _ = m["target_block_hash"].(string)
	b.SendTargetRewardClaimBlockHash, _ = m["send_target_reward_claim_block_hash"].(string)
	b.WorkOutputBlockHash, _ = m["work_output_block_hash"].(string)
	b.WorkOutputDetails = m["work_output_details"]
	return nil
}

// TargetRewardSent actually pays out the bounty.
type TargetRewardSent struct {
	Hdr                               Header
	DestChainID                       string
	TargetBlockHash                   string
	ReceiveTargetRewardClaimBlockHash string
	Amount                            Amount
}

func (b *TargetRewardSent) BlockType() BlockType { return BlockTypeTargetRewardSent }
func (b *TargetRewardSent) Header() *Header      { return &b.Hdr }

func (b *TargetRewardSent) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetRewardSent)
	return append(h, b.DestChainID, b.TargetBlockHash, b.ReceiveTargetRewardClaimBlockHash, b.Amount.String())
}

func (b *TargetRewardSent) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetRewardSent)
	m["dest_chain_id"] = b.DestChainID
	m["target_block_hash"] = b.TargetBlockHash
	m["receive_target_reward_claim_block_hash"] = b.ReceiveTargetRewardClaimBlockHash
	m["amount"] = b.Amount.String()
	return json.Marshal(m)
}

func (b *TargetRewardSent) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetRewardSent); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	b.TargetBlockHash, _ = m["target_block_hash"].(string)
	b.ReceiveTargetRewardClaimBlockHash, _ = m["receive_target_reward_claim_block_hash"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

// TargetRewardReceived closes out the bounty payout on the claimant's chain.
type TargetRewardReceived struct {
	Hdr                      Header
	SrcChainID               string
	TargetBlockHash          string
	SendTargetRewardBlockHash string
	Amount                   Amount
}

func (b *TargetRewardReceived) BlockType() BlockType { return BlockTypeTargetRewardReceived }
func (b *TargetRewardReceived) Header() *Header      { return &b.Hdr }

func (b *TargetRewardReceived) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeTargetRewardReceived)
	return append(h, b.SrcChainID, b.TargetBlockHash, b.SendTargetRewardBlockHash, b.Amount.String())
}

func (b *TargetRewardReceived) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeTargetRewardReceived)
	m["src_chain_id"] = b.SrcChainID
	m["target_block_hash"] = b.TargetBlockHash
	m["send_target_reward_block_hash"] = b.SendTargetRewardBlockHash
	m["amount"] = b.Amount.String()
	return json.Marshal(m)
}

func (b *TargetRewardReceived) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeTargetRewardReceived); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.TargetBlockHash, _ = m["target_block_hash"].(string)
	b.SendTargetRewardBlockHash, _ = m["send_target_reward_block_hash"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}
