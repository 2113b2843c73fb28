package core

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain_test.json")

	c := NewChain("chain-a", "seed-a")
	_, err := c.AcceptCredit(decimal.NewFromInt(7), "")
	require.NoError(t, err)
	_, err = c.SendSignal("peer-a", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	require.NoError(t, c.Save(path))

	loaded, err := LoadChain(path)
	require.NoError(t, err)
	require.Equal(t, c.UUID, loaded.UUID)
	require.Equal(t, c.Seed, loaded.Seed)
	require.Equal(t, c.Len(), loaded.Len())
	require.True(t, c.Balance().Equal(loaded.Balance()))

	_, _, err = loaded.Verify(true)
	require.NoError(t, err)
}

func TestLoadChainMissingFileReturnsNotFound(t *testing.T) {
	_, err := LoadChain(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpsPersistAutomaticallyAfterInitChain(t *testing.T) {
	dir := t.TempDir()

	chain, err := InitChain(dir, "chain-a")
	require.NoError(t, err)

	_, err = chain.AcceptCredit(decimal.NewFromInt(5), "")
	require.NoError(t, err)

	reloaded, err := LoadChain(filepath.Join(dir, "chain_chain-a.json"))
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
	require.True(t, decimal.NewFromInt(5).Equal(reloaded.Balance()))
}

func TestInitChainRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	_, err := InitChain(dir, "chain-a")
	require.NoError(t, err)

	_, err = InitChain(dir, "chain-a")
	require.Error(t, err)
}

func TestSavePersistsVerificationCloseIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain_a.json")

	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")
	_, err := a.SendSignalReward("chain-b", "", "", decimal.NewFromInt(1), nil)
	require.NoError(t, err)
	_, err = a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	_, err = a.HardVerify(b)
	require.NoError(t, err)

	require.NoError(t, a.Save(path))

	loaded, err := LoadChain(path)
	require.NoError(t, err)
	idx := loaded.VerificationCloseIndex()
	_, ok := idx["chain-a"]
	require.True(t, ok)
}
