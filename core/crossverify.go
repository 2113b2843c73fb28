package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LinkedBlocks groups one chain's signal-protocol blocks that reference a
// specific peer chain, keyed by block type then block hash. Grounded on
// chain.py's get_linked_blocks.
type LinkedBlocks map[BlockType]map[string]Block

// GetLinkedBlocks extracts every SignalSent/SignalReceived/
// SignalRewardSent/SignalRewardReceived block this chain holds that
// references otherChainID, either as sender or destination.
func (c *Chain) GetLinkedBlocks(otherChainID string) LinkedBlocks {
	c.mu.RLock()
	defer c.mu.RUnlock()

	linked := LinkedBlocks{
		BlockTypeSignalSent:           {},
		BlockTypeSignalReceived:       {},
		BlockTypeSignalRewardSent:     {},
		BlockTypeSignalRewardReceived: {},
	}

	for _, block := range c.blocks {
		switch b := block.(type) {
		case *SignalSent:
			if b.DestChainID == otherChainID {
				linked[BlockTypeSignalSent][b.Hdr.Hash] = block
			}
		case *SignalRewardSent:
			if b.DestChainID == otherChainID {
				linked[BlockTypeSignalRewardSent][b.Hdr.Hash] = block
			}
		case *SignalReceived:
			if b.SrcChainID == otherChainID {
				linked[BlockTypeSignalReceived][b.Hdr.Hash] = block
			}
		case *SignalRewardReceived:
			if b.SrcChainID == otherChainID {
				linked[BlockTypeSignalRewardReceived][b.Hdr.Hash] = block
			}
		}
	}

	return linked
}

// CrossVerify is the read-only pairwise check: both chains must first
// verify their own internal hash-chain integrity, then every
// SignalReceived this chain holds about other must map to a SignalSent
// other actually has, and every SignalRewardReceived must map to a
// SignalRewardSent other actually has. It does not write any block.
// Grounded on chain.py's cross_verify.
func (c *Chain) CrossVerify(other *Chain) error {
	if _, _, err := c.Verify(true); err != nil {
		return fmt.Errorf("cross-verify: %s failed self-verification: %w", c.UUID, err)
	}
	if _, _, err := other.Verify(true); err != nil {
		return fmt.Errorf("cross-verify: %s failed self-verification: %w", other.UUID, err)
	}

	selfLinked := c.GetLinkedBlocks(other.UUID)
	otherLinked := other.GetLinkedBlocks(c.UUID)

	if err := crossVerifySet(
		selfLinked[BlockTypeSignalReceived], otherLinked[BlockTypeSignalSent],
		func(b Block) string { return b.(*SignalReceived).SendSignalBlockHash },
	); err != nil {
		return fmt.Errorf("signal verification failed between %s and %s: %w", c.UUID, other.UUID, err)
	}

	if err := crossVerifySet(
		selfLinked[BlockTypeSignalRewardReceived], otherLinked[BlockTypeSignalRewardSent],
		func(b Block) string { return b.(*SignalRewardReceived).SendSignalRewardBlockHash },
	); err != nil {
		return fmt.Errorf("reward verification failed between %s and %s: %w", c.UUID, other.UUID, err)
	}

	logrus.WithFields(logrus.Fields{"chain": c.UUID, "peer": other.UUID}).Info("cross-verification succeeded")
	return nil
}

// crossVerifySet checks that every "received" block's reference hash
// appears as a key in the peer's "sent" set — i.e. every claim of
// receipt is backed by an actual send on the other side.
func crossVerifySet(received map[string]Block, sentKeys map[string]Block, refHash func(Block) string) error {
	if len(received) == 0 {
		return nil
	}

	matched := 0
	for _, block := range received {
		if _, ok := sentKeys[refHash(block)]; ok {
			matched++
		}
	}

	if matched != len(received) {
		return ErrCrossChainMismatch
	}
	return nil
}

// GetVerificationBlock returns the most recent Verification block this
// chain holds about srcChainID, scanning newest to oldest from beginIdx
// (or the chain's head, if beginIdx < 0). Grounded on chain.py's
// get_verification_block.
func (c *Chain) GetVerificationBlock(srcChainID string, beginIdx int) (*Verification, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if beginIdx < 0 {
		beginIdx = len(c.blocks) - 1
	}
	for idx := beginIdx; idx >= 0; idx-- {
		if v, ok := c.blocks[idx].(*Verification); ok && v.SrcChainID == srcChainID {
			return v, idx
		}
	}
	return nil, -1
}

// GetVerificationCloseBlock returns the most recent VerificationClose
// block this chain holds addressed to destChainID. Grounded on
// chain.py's get_verification_close_block.
func (c *Chain) GetVerificationCloseBlock(destChainID string, beginIdx int) (*VerificationClose, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if beginIdx < 0 {
		beginIdx = len(c.blocks) - 1
	}
	for idx := beginIdx; idx >= 0; idx-- {
		if v, ok := c.blocks[idx].(*VerificationClose); ok && v.DestChainID == destChainID {
			return v, idx
		}
	}
	return nil, -1
}

// BlockInVerification reports whether block counts toward a hard-verify
// sub-chain against otherChainID, returning it if so. Grounded on
// chain.py's block_in_verification.
func BlockInVerification(block Block, otherChainID string) Block {
	switch b := block.(type) {
	case *Verification:
		if b.SrcChainID == otherChainID {
			return block
		}
	case *SignalSent:
		if b.DestChainID == otherChainID {
			return block
		}
	case *SignalRewardSent:
		if b.DestChainID == otherChainID {
			return block
		}
	case *SignalReceived:
		if b.SrcChainID == otherChainID {
			return block
		}
	case *SignalRewardReceived:
		if b.SrcChainID == otherChainID {
			return block
		}
	}
	return nil
}

// GetVerificationSubchain collects, scanning newest (beginIdx) to oldest,
// every block that counts toward a hard-verify pass against
// otherChainID. Grounded on chain.py's get_verification_subchain.
func (c *Chain) GetVerificationSubchain(beginIdx int, otherChainID string) []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sub []Block
	for idx := beginIdx; idx >= 0; idx-- {
		if b := BlockInVerification(c.blocks[idx], otherChainID); b != nil {
			sub = append(sub, b)
		}
	}
	return sub
}

// ComputeValidationSubchain recomputes the balance delta sum and
// sha256-of-concatenated-hashes digest for a sub-chain, oldest first
// (the slice is expected newest-first, as GetVerificationSubchain
// returns it, and is reversed internally). Grounded on chain.py's
// compute_validation_subchain.
func ComputeValidationSubchain(subChain []Block) (decimal.Decimal, string) {
	balance := decimal.Zero
	h := sha256.New()

	for i := len(subChain) - 1; i >= 0; i-- {
		block := subChain[i]
		balance = balance.Add(block.Header().BalanceDelta)
		h.Write([]byte(block.Header().Hash))
	}

	return balance, hex.EncodeToString(h.Sum(nil))
}

// ConfirmVerify recomputes the most recent hard-verify sub-chain this
// chain holds against other and checks it still matches the recorded
// Verification block's sub_chain_hash — a spot-check that the relevant
// local history has not been altered since that attestation was made.
// Grounded on chain.py's confirm_verify.
func (c *Chain) ConfirmVerify(other *Chain) (bool, error) {
	verificationBlock, blockIdx := c.GetVerificationBlock(other.UUID, -1)
	if verificationBlock == nil {
		return false, fmt.Errorf("no verification block found for peer %s: %w", other.UUID, ErrNotFound)
	}

	// Like HardVerify's, the sub-chain starts at the previous Verification
	// with this peer (inclusive), or at the chain's origin if there is none.
	subChain := c.GetVerificationSubchain(blockIdx-1, other.UUID)
	if blockIdx > 0 {
		if prev, _ := c.GetVerificationBlock(other.UUID, blockIdx-1); prev != nil {
			for i, b := range subChain {
				if b == Block(prev) {
					subChain = subChain[:i+1]
					break
				}
			}
		}
	}
	_, subChainHash := ComputeValidationSubchain(subChain)

	return subChainHash == verificationBlock.SubChainHash, nil
}

// HardVerifyResult reports the blocks written by a HardVerify pass.
type HardVerifyResult struct {
	Verified           bool
	VerificationBlock  *Verification
	OpenBlock          *VerificationOpen
	CloseBlock         *VerificationClose
}

// HardVerify performs a durable, two-sided attestation pass between c
// (being verified) and other (the verifier): other opens a
// VerificationOpen pointed at c, c records a Verification summarizing
// the sub-chain of blocks it holds about other since the last such
// attestation, and other closes the pass with a VerificationClose
// mirroring the same summary. The two chains then exchange their known
// VerificationClose blocks so each can answer queries about the other's
// attestation history. Grounded on chain.py's hard_verify.
func (c *Chain) HardVerify(other *Chain) (*HardVerifyResult, error) {
	prevVerification, prevIdx := c.GetVerificationBlock(other.UUID, -1)

	c.mu.RLock()
	chainLength := len(c.blocks)
	c.mu.RUnlock()

	beginIdx := 0
	prevVerificationHash := ""
	if prevVerification != nil {
		beginIdx = prevIdx
		prevVerificationHash = prevVerification.Hdr.Hash
	}

	var subChain []Block
	subChainBalance := decimal.Zero
	h := sha256.New()

	c.mu.RLock()
	for idx := beginIdx; idx < chainLength; idx++ {
		block := c.blocks[idx]
		if matched := BlockInVerification(block, other.UUID); matched != nil {
			subChain = append(subChain, matched)
			subChainBalance = subChainBalance.Add(matched.Header().BalanceDelta)
			h.Write([]byte(matched.Header().Hash))
		}
	}
	c.mu.RUnlock()
	subChainHash := hex.EncodeToString(h.Sum(nil))
	subChainLength := len(subChain)

	openBlock := &VerificationOpen{Hdr: Header{BalanceDelta: zeroAmount}, DestChainID: c.UUID}
	if err := other.Append(openBlock); err != nil {
		return nil, err
	}

	result := &HardVerifyResult{OpenBlock: openBlock}

	if subChainLength > 1 {
		verificationBlock := &Verification{
			Hdr:                        Header{BalanceDelta: zeroAmount},
			SrcChainID:                 other.UUID,
			PrevVerificationBlockHash:  prevVerificationHash,
			OtherVerificationBlockHash: openBlock.Hdr.Hash,
			ChainLength:                chainLength,
			SubChainBalance:            subChainBalance,
			SubChainLength:             subChainLength,
			SubChainHash:               subChainHash,
			FullVerification:           true,
		}
		if err := c.Append(verificationBlock); err != nil {
			return nil, err
		}

		closeBlock := &VerificationClose{
			Hdr:                        Header{BalanceDelta: zeroAmount},
			DestChainID:                c.UUID,
			OpenVerificationBlockHash:  openBlock.Hdr.Hash,
			OtherVerificationBlockHash: verificationBlock.Hdr.Hash,
			ChainLength:                chainLength,
			SubChainBalance:            subChainBalance,
			SubChainLength:             subChainLength,
			SubChainHash:               subChainHash,
			FullVerification:           true,
		}
		if err := other.Append(closeBlock); err != nil {
			return nil, err
		}

		result.Verified = true
		result.VerificationBlock = verificationBlock
		result.CloseBlock = closeBlock
	}

	// Exchange known VerificationClose blocks so each chain can answer
	// "has my peer been attested by a third party" without a live round
	// trip.
	for _, vc := range other.GetVerificationCloseBlocks(c.UUID) {
		c.IndexVerificationCloseBlock(vc)
	}
	for _, ref := range other.VerificationCloseIndex() {
		if blk, ok := other.GetBlockByHash(ref.BlockHash).(*VerificationClose); ok {
			c.IndexVerificationCloseBlock(blk)
		}
	}

	for _, vc := range c.GetVerificationCloseBlocks(other.UUID) {
		other.IndexVerificationCloseBlock(vc)
	}
	for _, ref := range c.VerificationCloseIndex() {
		if blk, ok := c.GetBlockByHash(ref.BlockHash).(*VerificationClose); ok {
			other.IndexVerificationCloseBlock(blk)
		}
	}

	logrus.WithFields(logrus.Fields{
		"chain": c.UUID, "peer": other.UUID, "verified": result.Verified,
	}).Info("hard-verify pass complete")

	return result, nil
}
