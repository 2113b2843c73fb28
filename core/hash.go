package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// canonicalHash is the block-hash primitive: sha256 over the UTF-8 concatenation of an ordered list of strings, no
// separators. Grounded on blocks.py's Block.generate_hash.
func canonicalHash(parts []string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// sha256Hex hashes a single string, used for the chain's origin hash
// (sha256_hex(seed)).
func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// blockHash computes the canonical hash of a block: its header prefix
// followed by its variant-specific appendix.
func blockHash(b Block) string {
	return canonicalHash(b.Hashable())
}
