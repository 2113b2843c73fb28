package core

import "fmt"

// UpdateBlockFields and DeleteBlock are operator recovery tools: direct,
// unchecked edits to a chain's stored block sequence, meant to be
// followed by a MakeValid call to re-establish hash-chain integrity.
// They exist because blocks.py's Block.update accepts raw field
// overrides (block_hash/prev_block_hash/balance/balance_delta) for
// exactly this kind of out-of-band repair; nothing here enforces
// invariants on the edited values themselves.

// UpdateBlockFields overwrites a subset of the common header fields on
// the block identified by hash, leaving variant-specific fields
// untouched. Any zero-value field in fields is left unchanged; to
// actually clear a field, callers should edit balance_delta via a new
// Debit/CreditAccepted block instead. Returns ErrNotFound if hash
// doesn't match any block.
type HeaderFields struct {
	PrevHash     *string
	Height       *int
	Balance      *Amount
	BalanceDelta *Amount
}

func (c *Chain) UpdateBlockFields(hash string, fields HeaderFields) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	block := c.getBlockByHashLocked(hash)
	if block == nil {
		return fmt.Errorf("update block fields: %s: %w", hash, ErrNotFound)
	}

	hdr := block.Header()
	if fields.PrevHash != nil {
		hdr.PrevHash = *fields.PrevHash
	}
	if fields.Height != nil {
		hdr.Height = *fields.Height
	}
	if fields.Balance != nil {
		hdr.Balance = *fields.Balance
	}
	if fields.BalanceDelta != nil {
		hdr.BalanceDelta = *fields.BalanceDelta
	}
	hdr.Hash = blockHash(block)

	return nil
}

// DeleteBlock removes the block identified by hash from the chain's
// sequence entirely, leaving every neighboring link broken until a
// subsequent MakeValid call repairs them. Returns ErrNotFound if hash
// doesn't match any block.
func (c *Chain) DeleteBlock(hash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, b := range c.blocks {
		if b.Header().Hash == hash {
			c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete block: %s: %w", hash, ErrNotFound)
}
