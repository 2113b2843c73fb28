package core

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Chain is one actor's append-only, hash-linked block sequence.
// Grounded on chain.py's Chain class; core/ledger.go contributes the
// sync.RWMutex-guarded-method idiom used throughout.
type Chain struct {
	mu sync.RWMutex

	UUID string
	Seed string

	blocks []Block

	// verificationCloseIndex tracks, per peer chain uuid, the highest
	// VerificationClose block this chain holds about that peer — grounded
	// on chain.py's verification_close_block_index.
	verificationCloseIndex map[string]VerificationCloseRef

	// indexedPeerBlocks holds VerificationClose blocks pulled in from a
	// peer during persistence load or HardVerify that are not part of
	// this chain's own append-only sequence, kept only so they remain
	// reachable by hash for re-serialization and later exchanges.
	indexedPeerBlocks []Block

	path string // empty for chains that are never persisted
}

// VerificationCloseRef is a lightweight pointer into blocks, avoiding a
// second copy of the block itself in the index.
type VerificationCloseRef struct {
	BlockHash string
	Height    int
}

// NewChain creates an empty chain seeded with uuid/seed, holding only the
// implicit NullBlock origin (height 0).
func NewChain(uuid, seed string) *Chain {
	return &Chain{
		UUID:                   uuid,
		Seed:                   seed,
		blocks:                 nil,
		verificationCloseIndex: make(map[string]VerificationCloseRef),
	}
}

// GenerateSeedHash is the sha256 of the chain's seed string, used both as
// the implicit origin block's hash and as prev_block_hash on height 1.
// Grounded on chain.py's generate_seed_hash.
func (c *Chain) GenerateSeedHash() string {
	return sha256Hex(c.Seed)
}

// HeadBlock returns the most recently appended block, or a synthetic
// NullBlock at height 0 / balance 0 if the chain is empty. Grounded on
// chain.py's head_block.
func (c *Chain) HeadBlock() Block {
	if len(c.blocks) == 0 {
		return &NullBlock{Hdr: Header{
			Hash:         c.GenerateSeedHash(),
			Height:       0,
			Balance:      zeroAmount,
			BalanceDelta: zeroAmount,
		}}
	}
	return c.blocks[len(c.blocks)-1]
}

// Balance returns the running balance carried by the head block.
func (c *Chain) Balance() Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HeadBlock().Header().Balance
}

// Len returns the number of appended blocks (excluding the implicit
// genesis NullBlock).
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Blocks returns a snapshot copy of the chain's blocks, oldest first.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Append links block onto the chain's head, stamping prev_block_hash,
// height, balance and the block's own hash, per a 5-step algorithm:
//  1. prev_block_hash = seed hash (if empty) or head's hash
//  2. height = 1 (if empty) or head's height + 1
//  3. balance = head's balance + block's balance_delta
//  4. block_hash = canonical hash over the now-complete fields
//  5. append to the in-memory sequence
//
// Grounded on chain.py's add_block.
func (c *Chain) Append(block Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(block)
}

func (c *Chain) appendLocked(block Block) error {
	head := c.HeadBlock()
	hdr := block.Header()

	if len(c.blocks) == 0 {
		hdr.PrevHash = c.GenerateSeedHash()
		hdr.Height = 1
	} else {
		hdr.PrevHash = head.Header().Hash
		hdr.Height = head.Header().Height + 1
	}

	balance := head.Header().Balance
	if !hdr.BalanceDelta.IsZero() {
		balance = balance.Add(hdr.BalanceDelta)
	}
	hdr.Balance = balance
	hdr.Hash = blockHash(block)

	c.blocks = append(c.blocks, block)

	if vc, ok := block.(*VerificationClose); ok {
		c.indexVerificationCloseLocked(vc)
	}

	logrus.WithFields(logrus.Fields{
		"chain":  c.UUID,
		"type":   block.BlockType().String(),
		"height": hdr.Height,
	}).Debug("block appended")

	return nil
}

// GetBlockByHash returns the block with the given hash, or nil.
// Grounded on chain.py's get_block_by_hash.
func (c *Chain) GetBlockByHash(hash string) Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getBlockByHashLocked(hash)
}

func (c *Chain) getBlockByHashLocked(hash string) Block {
	for _, b := range c.blocks {
		if b.Header().Hash == hash {
			return b
		}
	}
	return nil
}

// GetBlockIdxByHash returns the index of the block with the given hash,
// or -1 if not found. Grounded on chain.py's get_block_idx_by_hash.
func (c *Chain) GetBlockIdxByHash(hash string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, b := range c.blocks {
		if b.Header().Hash == hash {
			return i
		}
	}
	return -1
}

// BlockQuery filters blocks by type, with optional attribute, window and
// multiplicity constraints. Grounded on chain.py's block_query.
// attrQuery is nil for an unfiltered type scan.
type AttrQuery struct {
	Key   string
	Value interface{}
}

func (c *Chain) BlockQuery(types []BlockType, attrQuery *AttrQuery, windowFar, windowNear int64, multiple bool) []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	typeSet := make(map[BlockType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	if len(types) > 1 {
		multiple = true
	}

	var result []Block
	for _, b := range c.blocks {
		hdr := b.Header()

		if windowFar != 0 || windowNear != 0 {
			if windowFar != 0 && hdr.Ts < windowFar {
				continue
			}
			if windowNear != 0 && hdr.Ts > windowNear {
				continue
			}
		}

		if !typeSet[b.BlockType()] {
			continue
		}

		if attrQuery != nil && !matchesAttr(b, attrQuery) {
			continue
		}

		if multiple {
			result = append(result, b)
		} else {
			return []Block{b}
		}
	}

	return result
}

// matchesAttr implements the small set of attribute comparisons the HTTP
// and signalling layers actually need (dest_chain_id, src_chain_id,
// target_id); any other key matches no block.
// chain.py's version is fully reflective via getattr/glom; Go's static
// typing makes a type switch the idiomatic equivalent.
func matchesAttr(b Block, q *AttrQuery) bool {
	switch q.Key {
	case "dest_chain_id":
		return destChainID(b) == q.Value
	case "src_chain_id":
		return srcChainID(b) == q.Value
	case "target_id":
		if t, ok := b.(*TargetCreated); ok {
			return t.TargetID == q.Value
		}
		if t, ok := b.(*TargetAccepted); ok {
			return t.TargetID == q.Value
		}
	}
	return false
}

func destChainID(b Block) interface{} {
	switch x := b.(type) {
	case *SignalSent:
		return x.DestChainID
	case *SignalRewardSent:
		return x.DestChainID
	case *TargetRewardClaimSent:
		return x.DestChainID
	case *TargetRewardSent:
		return x.DestChainID
	case *WorkOutputRewardSent:
		return x.DestChainID
	case *AccessContractOwn:
		return x.DestChainID
	case *VerificationOpen:
		return x.DestChainID
	case *VerificationClose:
		return x.DestChainID
	}
	return nil
}

func srcChainID(b Block) interface{} {
	switch x := b.(type) {
	case *SignalReceived:
		return x.SrcChainID
	case *SignalRewardReceived:
		return x.SrcChainID
	case *TargetAccepted:
		return x.SrcChainID
	case *TargetRewardClaimReceived:
		return x.SrcChainID
	case *TargetRewardReceived:
		return x.SrcChainID
	case *WorkOutputRewardReceived:
		return x.SrcChainID
	case *AccessContractOther:
		return x.SrcChainID
	case *Verification:
		return x.SrcChainID
	}
	return nil
}

// Verify walks the chain from head to origin, the direction chain.py's
// verify() documents as "newest to oldest", checking link integrity,
// each block's own hash, and the origin's link back to the seed hash.
// If raise is true, the first failure is returned as an error;
// otherwise Verify returns the failing block and its index with a nil
// error. A valid chain yields (nil, -1, nil).
func (c *Chain) Verify(raise bool) (badBlock Block, badIdx int, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verifyLocked(raise)
}

func (c *Chain) verifyLocked(raise bool) (Block, int, error) {
	var nextHash string
	for idx := len(c.blocks) - 1; idx >= 0; idx-- {
		block := c.blocks[idx]
		hdr := block.Header()

		if nextHash != "" && nextHash != hdr.Hash {
			err := fmt.Errorf("chain verification failed on block %s (%d): %w", hdr.Hash, idx, ErrLinkMismatch)
			if raise {
				return nil, 0, err
			}
			return block, idx, nil
		}

		if blockHash(block) != hdr.Hash {
			err := fmt.Errorf("chain verification failed on block %s (%d): %w", hdr.Hash, idx, ErrHashMismatch)
			if raise {
				return nil, 0, err
			}
			return block, idx, nil
		}

		nextHash = hdr.PrevHash

		if idx == 0 && nextHash != c.GenerateSeedHash() {
			err := fmt.Errorf("chain verification failed on origin block %s: %w", hdr.Hash, ErrLinkMismatch)
			if raise {
				return nil, 0, err
			}
			return block, idx, nil
		}
	}

	return nil, -1, nil
}

// FindInvalid scans tail-to-head (oldest to newest) and returns the
// earliest invalid block, the mirror direction of Verify, matching
// chain.py's find_invalid docstring ("earliest invalid block").
func (c *Chain) FindInvalid() (Block, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findInvalidLocked()
}

func (c *Chain) findInvalidLocked() (Block, int) {
	var prevHash string
	for idx, block := range c.blocks {
		hdr := block.Header()

		if idx == 0 && hdr.PrevHash != c.GenerateSeedHash() {
			return block, idx
		}
		if blockHash(block) != hdr.Hash {
			return block, idx
		}

		if prevHash != "" && prevHash != hdr.PrevHash {
			return block, idx
		}

		prevHash = hdr.Hash
	}

	return nil, -1
}

// MakeValid repairs local hash-chain integrity after corruption or
// tampering, by relinking and re-hashing each invalid block in place
// starting from the earliest break. It cannot recover
// data corrupted within a block's own fields nor fix cross-chain
// references; it only restores prev_block_hash/balance/block_hash
// consistency. Heights are left as they are. Grounded on chain.py's make_valid, including its
// progress-detection guard against infinite repair loops.
func (c *Chain) MakeValid() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	invalidBlock, idx := c.findInvalidLocked()
	if invalidBlock == nil {
		return nil
	}

	maxIterations := len(c.blocks)
	for i := 0; i <= maxIterations; i++ {
		var prevHash string
		var prevBalance Amount
		if idx == 0 {
			prevHash = c.GenerateSeedHash()
			prevBalance = zeroAmount
		} else {
			prevHdr := c.blocks[idx-1].Header()
			prevHash = prevHdr.Hash
			prevBalance = prevHdr.Balance
		}

		hdr := invalidBlock.Header()
		hdr.Balance = prevBalance.Add(hdr.BalanceDelta)
		hdr.PrevHash = prevHash
		hdr.Hash = blockHash(invalidBlock)

		nextInvalid, nextIdx := c.findInvalidLocked()
		if nextInvalid == nil {
			return nil
		}
		if nextInvalid == invalidBlock {
			return fmt.Errorf("rebuild failed on block %s, idx=%d: %w", hdr.Hash, idx, ErrRebuildFailed)
		}

		invalidBlock = nextInvalid
		idx = nextIdx
	}

	return fmt.Errorf("rebuild exceeded %d iterations: %w", maxIterations, ErrRebuildFailed)
}

// Stats returns a small summary of the chain, grounded on chain.py's
// get_stats.
type Stats struct {
	Balance   string
	NumBlocks int
}

func (c *Chain) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Balance:   c.HeadBlock().Header().Balance.String(),
		NumBlocks: len(c.blocks),
	}
}

// indexVerificationCloseLocked records the highest VerificationClose
// block seen per peer chain. Grounded on chain.py's
// index_verification_close_block.
func (c *Chain) indexVerificationCloseLocked(block *VerificationClose) {
	existing, ok := c.verificationCloseIndex[block.DestChainID]
	if !ok || existing.Height < block.Hdr.Height {
		c.verificationCloseIndex[block.DestChainID] = VerificationCloseRef{
			BlockHash: block.Hdr.Hash,
			Height:    block.Hdr.Height,
		}
	}
}

// IndexVerificationCloseBlock records an externally-sourced
// VerificationClose block (e.g. pulled from a peer during HardVerify)
// into this chain's index without appending it as a local block.
func (c *Chain) IndexVerificationCloseBlock(block *VerificationClose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexVerificationCloseLocked(block)
	if c.getBlockByHashLocked(block.Hdr.Hash) == nil && c.findVerificationCloseBlockLocked(block.Hdr.Hash) == nil {
		c.indexedPeerBlocks = append(c.indexedPeerBlocks, block)
	}
}

// VerificationCloseIndex returns a copy of the peer-uuid -> ref index.
func (c *Chain) VerificationCloseIndex() map[string]VerificationCloseRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]VerificationCloseRef, len(c.verificationCloseIndex))
	for k, v := range c.verificationCloseIndex {
		out[k] = v
	}
	return out
}

// GetVerificationCloseBlocks returns every VerificationClose block on
// this chain, optionally excluding ones addressed to ignoreChainID.
// Grounded on chain.py's get_verification_close_blocks.
func (c *Chain) GetVerificationCloseBlocks(ignoreChainID string) []*VerificationClose {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*VerificationClose
	for _, b := range c.blocks {
		vc, ok := b.(*VerificationClose)
		if !ok {
			continue
		}
		if ignoreChainID != "" && vc.DestChainID == ignoreChainID {
			continue
		}
		out = append(out, vc)
	}
	return out
}

// CredibilityEntry summarizes one peer chain's debit/credit/verification
// totals from this chain's perspective. Grounded on chain.py's
// get_credibility credit_stats accumulator.
type CredibilityEntry struct {
	Balance             decimal.Decimal
	Debit               decimal.Decimal
	Credit              decimal.Decimal
	TotalVerified       decimal.Decimal
	TotalOtherVerified  decimal.Decimal
	Blocks              []CredibilityBlockRef
}

// CredibilityBlockRef is one contributing block in a non-minimal
// GetCredibility report.
type CredibilityBlockRef struct {
	BlockType    BlockType
	BlockHash    string
	Amount       decimal.Decimal
	RefBlockType BlockType
	RefBlockHash string
}

var credibilityDestTypes = map[BlockType]bool{
	BlockTypeTargetRewardSent:     true,
	BlockTypeSignalSent:           true,
	BlockTypeSignalRewardSent:     true,
	BlockTypeWorkOutputRewardSent: true,
	BlockTypeAccessContractOwn:    true,
}

var credibilitySrcTypes = map[BlockType]bool{
	BlockTypeTargetRewardReceived:     true,
	BlockTypeSignalRewardReceived:     true,
	BlockTypeSignalReceived:           true,
	BlockTypeWorkOutputRewardReceived: true,
	BlockTypeAccessContractOther:      true,
}

// GetCredibility tallies each peer chain's observed debit/credit and
// verification activity on this chain. peerChainID restricts the report
// to a single peer; empty reports on all peers seen. minimal skips
// collecting the per-block evidence list. Grounded on chain.py's
// get_credibility.
func (c *Chain) GetCredibility(peerChainID string, minimal bool) map[string]*CredibilityEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[string]*CredibilityEntry)
	get := func(id string) *CredibilityEntry {
		e, ok := stats[id]
		if !ok {
			e = &CredibilityEntry{
				Balance: decimal.Zero, Debit: decimal.Zero, Credit: decimal.Zero,
				TotalVerified: decimal.Zero, TotalOtherVerified: decimal.Zero,
			}
			stats[id] = e
		}
		return e
	}

	for _, block := range c.blocks {
		switch b := block.(type) {
		case *Debit:
			if b.RefBlockHash == "" {
				continue
			}
			ref := c.getBlockByHashLocked(b.RefBlockHash)
			if ref == nil || !credibilityDestTypes[ref.BlockType()] {
				continue
			}
			dest, _ := destChainID(ref).(string)
			if peerChainID != "" && dest != peerChainID {
				continue
			}
			entry := get(dest)
			entry.Debit = entry.Debit.Add(b.Hdr.BalanceDelta)
			if !minimal {
				entry.Blocks = append(entry.Blocks, CredibilityBlockRef{
					BlockType: b.BlockType(), BlockHash: b.Hdr.Hash,
					Amount: b.Hdr.BalanceDelta, RefBlockType: ref.BlockType(), RefBlockHash: b.RefBlockHash,
				})
			}

		case *CreditAccepted:
			if b.RefBlockHash == "" {
				continue
			}
			ref := c.getBlockByHashLocked(b.RefBlockHash)
			if ref == nil || !credibilitySrcTypes[ref.BlockType()] {
				continue
			}
			src, _ := srcChainID(ref).(string)
			if peerChainID != "" && src != peerChainID {
				continue
			}
			entry := get(src)
			entry.Credit = entry.Credit.Add(b.Hdr.BalanceDelta)
			if !minimal {
				entry.Blocks = append(entry.Blocks, CredibilityBlockRef{
					BlockType: b.BlockType(), BlockHash: b.Hdr.Hash,
					Amount: b.Hdr.BalanceDelta, RefBlockType: ref.BlockType(), RefBlockHash: b.RefBlockHash,
				})
			}

		case *SignalRewardSent:
			if peerChainID != "" && b.DestChainID != peerChainID {
				continue
			}
			entry := get(b.DestChainID)
			entry.Credit = entry.Credit.Add(b.Amount)
			if !minimal {
				entry.Blocks = append(entry.Blocks, CredibilityBlockRef{
					BlockType: b.BlockType(), BlockHash: b.Hdr.Hash, Amount: b.Amount,
				})
			}

		case *Verification:
			if peerChainID != "" && b.SrcChainID != peerChainID {
				continue
			}
			get(b.SrcChainID).TotalVerified = get(b.SrcChainID).TotalVerified.Add(b.SubChainBalance)

		case *VerificationClose:
			get(b.DestChainID).TotalOtherVerified = get(b.DestChainID).TotalOtherVerified.Add(b.SubChainBalance)
		}
	}

	for _, entry := range stats {
		entry.Balance = entry.Debit.Add(entry.Credit)
	}

	return stats
}
