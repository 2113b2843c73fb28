package server

import (
	"github.com/google/uuid"

	"github.com/stevehazel/DUO/core"
	"github.com/stevehazel/DUO/internal/config"
)

// ChainStore bridges the TTL chain cache and disk directory the HTTP
// layer reads and writes chains from.
type ChainStore struct {
	cache *core.ChainCache
	dir   string
}

// NewChainStore builds a store rooted at cfg.ChainPath.
func NewChainStore(cfg config.Config) *ChainStore {
	return &ChainStore{cache: core.NewChainCache(cfg.ChainPath, cfg.CacheTTL), dir: cfg.ChainPath}
}

// Get loads (or returns the cached) chain for uuid.
func (cs *ChainStore) Get(id string) (*core.Chain, error) {
	return cs.cache.Get(id)
}

// Init creates a brand-new chain, generating a uuid if one isn't given,
// and seeds the cache with it so the first Get doesn't re-read disk.
func (cs *ChainStore) Init(id string) (*core.Chain, error) {
	if id == "" {
		id = uuid.NewString()
	}
	chain, err := core.InitChain(cs.dir, id)
	if err != nil {
		return nil, err
	}
	cs.cache.Put(chain)
	return chain, nil
}

// Invalidate drops a chain from the cache, forcing the next Get to
// reload from disk.
func (cs *ChainStore) Invalidate(id string) {
	cs.cache.Invalidate(id)
}

// RegistryHandle wraps a Registry so handlers can resolve any chain
// known to the store through it (lazily registering on first lookup),
// so cross-chain signal delivery can find any chain the store knows about.
type RegistryHandle struct {
	registry *core.Registry
	store    *ChainStore
}

// NewRegistryHandle builds a registry-backed resolver over store.
func NewRegistryHandle(store *ChainStore) *RegistryHandle {
	return &RegistryHandle{registry: core.NewRegistry(), store: store}
}

// Resolve returns the chain for id, registering it with the underlying
// Registry on first use so later cross-chain deliveries can find it.
func (rh *RegistryHandle) Resolve(id string) (*core.Chain, error) {
	if chain := rh.registry.GetChain(id); chain != nil {
		return chain, nil
	}
	chain, err := rh.store.Get(id)
	if err != nil {
		return nil, err
	}
	rh.registry.AddChain(chain)
	return chain, nil
}

// Core returns the underlying Registry for operations that need it
// directly (e.g. SendCrossChainSignal).
func (rh *RegistryHandle) Core() *core.Registry {
	return rh.registry
}
