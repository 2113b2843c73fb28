package core

import "encoding/json"

// Debit, CreditAccepted and CreditRejected are the three value-moving
// ledger entries, each referencing the block that justified them.
// Grounded on blocks.py's Debit/CreditAccepted/CreditRejected.

// Debit moves value out of the chain (balance_delta < 0), referencing the
// block that authorized the debit.
type Debit struct {
	Hdr         Header
	RefBlockHash string
}

func (b *Debit) BlockType() BlockType { return BlockTypeDebit }
func (b *Debit) Header() *Header      { return &b.Hdr }

func (b *Debit) Hashable() []string {
	return append(b.Hdr.hashPrefix(BlockTypeDebit), b.RefBlockHash)
}

func (b *Debit) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeDebit)
	m["ref_block_hash"] = b.RefBlockHash
	return json.Marshal(m)
}

func (b *Debit) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeDebit); err != nil {
		return err
	}
	b.RefBlockHash, _ = m["ref_block_hash"].(string)
	return nil
}

// CreditAccepted moves value into the chain (balance_delta > 0),
// referencing the block that justified the credit — e.g. the
// SignalRewardReceived that closes out a signal.
type CreditAccepted struct {
	Hdr          Header
	RefBlockHash string
}

func (b *CreditAccepted) BlockType() BlockType { return BlockTypeCreditAccepted }
func (b *CreditAccepted) Header() *Header      { return &b.Hdr }

func (b *CreditAccepted) Hashable() []string {
	return append(b.Hdr.hashPrefix(BlockTypeCreditAccepted), b.RefBlockHash)
}

func (b *CreditAccepted) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeCreditAccepted)
	m["ref_block_hash"] = b.RefBlockHash
	return json.Marshal(m)
}

func (b *CreditAccepted) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeCreditAccepted); err != nil {
		return err
	}
	b.RefBlockHash, _ = m["ref_block_hash"].(string)
	return nil
}

// CreditRejected records a credit that was refused; it does not move
// value (balance_delta stays zero).
type CreditRejected struct {
	Hdr          Header
	Amount       Amount
	RefBlockHash string
}

func (b *CreditRejected) BlockType() BlockType { return BlockTypeCreditRejected }
func (b *CreditRejected) Header() *Header      { return &b.Hdr }

func (b *CreditRejected) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeCreditRejected)
	return append(h, b.RefBlockHash, b.Amount.String())
}

func (b *CreditRejected) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeCreditRejected)
	m["ref_block_hash"] = b.RefBlockHash
	m["amount"] = b.Amount.String()
	return json.Marshal(m)
}

func (b *CreditRejected) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeCreditRejected); err != nil {
		return err
	}
	b.RefBlockHash, _ = m["ref_block_hash"].(string)
	amount, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amount
	return nil
}
