package core

import "encoding/json"

// VerificationOpen/Verification/VerificationClose are the hard-verify
// attestation triple two chains write into each other when CrossVerify's
// read-only check is not enough. Grounded on blocks.py's
// VerificationOpen/Verification/VerificationClose.

// VerificationOpen starts a hard-verification pass against dest_chain_id.
type VerificationOpen struct {
	Hdr         Header
	DestChainID string
}

func (b *VerificationOpen) BlockType() BlockType { return BlockTypeVerificationOpen }
func (b *VerificationOpen) Header() *Header      { return &b.Hdr }

func (b *VerificationOpen) Hashable() []string {
	return append(b.Hdr.hashPrefix(BlockTypeVerificationOpen), b.DestChainID)
}

func (b *VerificationOpen) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeVerificationOpen)
	m["dest_chain_id"] = b.DestChainID
	return json.Marshal(m)
}

func (b *VerificationOpen) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeVerificationOpen); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	return nil
}

// Verification is one attestation record in a hard-verify chain of
// arbitrary length: it can chain off a prior Verification on the same
// pass (prev_verification_block_hash) or cross-reference the peer's own
// attestation (other_verification_block_hash), either of which may be
// empty on the first record.
type Verification struct {
	Hdr                       Header
	SrcChainID                string
	PrevVerificationBlockHash string
	OtherVerificationBlockHash string
	ChainLength               int
	SubChainBalance           Amount
	SubChainLength            int
	SubChainHash              string
	FullVerification          bool
}

func (b *Verification) BlockType() BlockType { return BlockTypeVerification }
func (b *Verification) Header() *Header      { return &b.Hdr }

func (b *Verification) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeVerification)
	h = append(h, b.SrcChainID)
	h = append(h, strHash(b.PrevVerificationBlockHash), strHash(b.OtherVerificationBlockHash))
	h = append(h, itoa64(int64(b.ChainLength)), b.SubChainBalance.String())
	h = append(h, itoa64(int64(b.SubChainLength)), b.SubChainHash)
	h = append(h, boolHash(b.FullVerification))
	return h
}

func (b *Verification) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeVerification)
	m["src_chain_id"] = b.SrcChainID
	m["prev_verification_block_hash"] = b.PrevVerificationBlockHash
	m["other_verification_block_hash"] = b.OtherVerificationBlockHash
	m["chain_length"] = b.ChainLength
	m["sub_chain_balance"] = b.SubChainBalance.String()
	m["sub_chain_length"] = b.SubChainLength
	m["sub_chain_hash"] = b.SubChainHash
	m["full_verification"] = b.FullVerification
	return json.Marshal(m)
}

func (b *Verification) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeVerification); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.PrevVerificationBlockHash, _ = m["prev_verification_block_hash"].(string)
	b.OtherVerificationBlockHash, _ = m["other_verification_block_hash"].(string)
	cl, err := asInt(m["chain_length"])
	if err != nil {
		return err
	}
	b.ChainLength = cl
	bal, err := parseAmount(m["sub_chain_balance"])
	if err != nil {
		return err
	}
	b.SubChainBalance = bal
	scl, err := asInt(m["sub_chain_length"])
	if err != nil {
		return err
	}
	b.SubChainLength = scl
	b.SubChainHash, _ = m["sub_chain_hash"].(string)
	fv, _ := m["full_verification"].(bool)
	b.FullVerification = fv
	return nil
}

// VerificationClose finalizes a hard-verify pass, bundling the result
// of the local attestation chain against the peer's.
type VerificationClose struct {
	Hdr                        Header
	DestChainID                string
	OpenVerificationBlockHash  string
	OtherVerificationBlockHash string
	ChainLength                int
	SubChainBalance            Amount
	SubChainLength             int
	SubChainHash               string
	FullVerification           bool
}

func (b *VerificationClose) BlockType() BlockType { return BlockTypeVerificationClose }
func (b *VerificationClose) Header() *Header      { return &b.Hdr }

func (b *VerificationClose) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeVerificationClose)
	h = append(h, b.DestChainID, b.OpenVerificationBlockHash, strHash(b.OtherVerificationBlockHash))
	h = append(h, itoa64(int64(b.ChainLength)), b.SubChainBalance.String())
	h = append(h, itoa64(int64(b.SubChainLength)), b.SubChainHash)
	h = append(h, boolHash(b.FullVerification))
	return h
}

func (b *VerificationClose) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeVerificationClose)
	m["dest_chain_id"] = b.DestChainID
	m["open_verification_block_hash"] = b.OpenVerificationBlockHash
	m["other_verification_block_hash"] = b.OtherVerificationBlockHash
	m["chain_length"] = b.ChainLength
	m["sub_chain_balance"] = b.SubChainBalance.String()
	m["sub_chain_length"] = b.SubChainLength
	m["sub_chain_hash"] = b.SubChainHash
	m["full_verification"] = b.FullVerification
	return json.Marshal(m)
}

func (b *VerificationClose) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeVerificationClose); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	b.OpenVerificationBlockHash, _ = m["open_verification_block_hash"].(string)
	b.OtherVerificationBlockHash, _ = m["other_verification_block_hash"].(string)
	cl, err := asInt(m["chain_length"])
	if err != nil {
		return err
	}
	b.ChainLength = cl
	bal, err := parseAmount(m["sub_chain_balance"])
	if err != nil {
		return err
	}
	b.SubChainBalance = bal
	scl, err := asInt(m["sub_chain_length"])
	if err != nil {
		return err
	}
	b.SubChainLength = scl
	b.SubChainHash, _ = m["sub_chain_hash"].(string)
	fv, _ := m["full_verification"].(bool)
	b.FullVerification = fv
	return nil
}
