package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Persisted is the on-disk shape of one chain's primary JSON document:
// uuid, seed, and every appended block in order. Grounded on chain.py's
// JSONLoader.save/load.
type Persisted struct {
	UUID   string            `json:"uuid"`
	Seed   string            `json:"seed"`
	Blocks []json.RawMessage `json:"blocks"`
}

// indexPath returns the companion attestation-index path for a chain
// document at path, following chain.py's JSONLoader.index_path
// (`<stem>_vcbidx<ext>`).
func indexPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + "_vcbidx" + ext
}

// indexDoc is the on-disk shape of the companion attestation-index
// file: one VerificationClose block per known peer chain uuid.
type indexDoc struct {
	VerificationCloseBlocks map[string]json.RawMessage `json:"verification_close_blocks"`
}

// LoadChain reads a chain's primary JSON document (and, if present, its
// attestation index) from path. Grounded on chain.py's
// JSONLoader.load/Chain.load.
func LoadChain(path string) (*Chain, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("chain not found: %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read chain %s: %w", path, ErrIOError)
	}

	var doc Persisted
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode chain %s: %w", path, err)
	}

	blocks := make([]Block, 0, len(doc.Blocks))
	for _, rawBlock := range doc.Blocks {
		block, err := DecodeBlock(rawBlock)
		if err != nil {
			return nil, fmt.Errorf("decode block in %s: %w", path, err)
		}
		blocks = append(blocks, block)
	}

	chain := NewChain(doc.UUID, doc.Seed)
	chain.blocks = blocks
	chain.path = path

	if idxRaw, err := os.ReadFile(indexPath(path)); err == nil {
		var idx indexDoc
		if err := json.Unmarshal(idxRaw, &idx); err == nil {
			for peerID, rawBlock := range idx.VerificationCloseBlocks {
				block, err := DecodeBlock(rawBlock)
				if err != nil {
					continue
				}
				if vc, ok := block.(*VerificationClose); ok {
					chain.verificationCloseIndex[peerID] = VerificationCloseRef{
						BlockHash: vc.Hdr.Hash,
						Height:    vc.Hdr.Height,
					}
					// Keep the actual block reachable by hash for
					// later HardVerify exchanges even though it was
					// never appended to this chain's own block list.
					chain.indexedPeerBlocks = append(chain.indexedPeerBlocks, block)
				}
			}
		}
	}

	return chain, nil
}

// Save writes the chain's primary JSON document and attestation index
// to path if given, otherwise to the chain's own path; a given path
// becomes the chain's path for later saves.
// A chain with no path at all — one built directly with NewChain rather
// than InitChain/LoadChain, as tests do — has nowhere on disk to write
// to, so Save is a no-op rather than an error; every chain reachable
// through the server (via ChainStore) always has a path. Grounded on
// chain.py's JSONLoader.save/Chain.save.
func (c *Chain) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if path == "" {
		path = c.path
	}
	if path == "" {
		return nil
	}

	serializedBlocks := make([]json.RawMessage, 0, len(c.blocks))
	for _, block := range c.blocks {
		raw, err := block.MarshalJSON()
		if err != nil {
			return fmt.Errorf("serialize block: %w", err)
		}
		serializedBlocks = append(serializedBlocks, raw)
	}

	doc := Persisted{UUID: c.UUID, Seed: c.Seed, Blocks: serializedBlocks}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chain %s: %w", c.UUID, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write chain %s: %w", path, ErrIOError)
	}

	closeBlocks := make(map[string]json.RawMessage, len(c.verificationCloseIndex))
	for peerID, ref := range c.verificationCloseIndex {
		block := c.findVerificationCloseBlockLocked(ref.BlockHash)
		if block == nil {
			continue
		}
		raw, err := block.MarshalJSON()
		if err != nil {
			return fmt.Errorf("serialize verification close block: %w", err)
		}
		closeBlocks[peerID] = raw
	}

	idxOut, err := json.MarshalIndent(indexDoc{VerificationCloseBlocks: closeBlocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index for %s: %w", c.UUID, err)
	}
	if err := os.WriteFile(indexPath(path), idxOut, 0o644); err != nil {
		return fmt.Errorf("write index for %s: %w", path, ErrIOError)
	}

	c.path = path
	return nil
}

func (c *Chain) findVerificationCloseBlockLocked(hash string) *VerificationClose {
	if b := c.getBlockByHashLocked(hash); b != nil {
		if vc, ok := b.(*VerificationClose); ok {
			return vc
		}
	}
	for _, b := range c.indexedPeerBlocks {
		if b.Header().Hash == hash {
			if vc, ok := b.(*VerificationClose); ok {
				return vc
			}
		}
	}
	return nil
}

// InitChain creates a brand-new, empty chain document on disk under
// dir, named chain_<uuid>.json, seeded with seed-<uuid>. Grounded on
// chain.py's init_chain.
func InitChain(dir, uuid string) (*Chain, error) {
	path := filepath.Join(dir, fmt.Sprintf("chain_%s.json", uuid))
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("chain already exists: %s", path)
	}

	chain := NewChain(uuid, fmt.Sprintf("seed-%s", uuid))
	if err := chain.Save(path); err != nil {
		return nil, err
	}
	return chain, nil
}
