package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewChainOriginLinksToSeedHash(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	require.Equal(t, 0, c.Len())
	require.True(t, c.Balance().IsZero())

	block, err := c.Debit(decimal.NewFromInt(1), "")
	require.NoError(t, err)
	require.Equal(t, c.GenerateSeedHash(), block.Hdr.PrevHash)
	require.Equal(t, 1, block.Hdr.Height)
}

func TestAppendTracksHeightBalanceAndHash(t *testing.T) {
	c := NewChain("chain-a", "seed-a")

	first, err := c.AcceptCredit(decimal.NewFromInt(10), "")
	require.NoError(t, err)
	require.Equal(t, "10", first.Hdr.Balance.String())

	second, err := c.Debit(decimal.NewFromInt(4), first.Hdr.Hash)
	require.NoError(t, err)
	require.Equal(t, 2, second.Hdr.Height)
	require.Equal(t, "6", second.Hdr.Balance.String())
	require.Equal(t, first.Hdr.Hash, second.Hdr.PrevHash)
}

func TestVerifyDetectsTamperedBlock(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	_, err := c.AcceptCredit(decimal.NewFromInt(5), "")
	require.NoError(t, err)
	_, err = c.AcceptCredit(decimal.NewFromInt(5), "")
	require.NoError(t, err)

	_, _, err = c.Verify(true)
	require.NoError(t, err)

	c.blocks[0].Header().Hash = "tampered"

	_, _, err = c.Verify(true)
	require.Error(t, err)
}

func TestFindInvalidMirrorsVerifyDirection(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	_, err := c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)
	second, err := c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)

	bad, badIdx := c.FindInvalid()
	require.Nil(t, bad)
	require.Equal(t, -1, badIdx)

	second.Hdr.PrevHash = "broken"
	bad, badIdx = c.FindInvalid()
	require.NotNil(t, bad)
	require.Equal(t, 1, badIdx)
}

func TestMakeValidRepairsBrokenLinkage(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	_, err := c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)
	second, err := c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)

	second.Hdr.PrevHash = "broken"
	second.Hdr.Hash = "also-broken"

	require.NoError(t, c.MakeValid())

	_, _, err = c.Verify(true)
	require.NoError(t, err)
}

func TestMakeValidRepairsBreakAtOrigin(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	first, err := c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)
	_, err = c.AcceptCredit(decimal.NewFromInt(1), "")
	require.NoError(t, err)

	first.Hdr.PrevHash = "broken"
	first.Hdr.Hash = "also-broken"

	require.NoError(t, c.MakeValid())

	_, _, err = c.Verify(true)
	require.NoError(t, err)
	require.Equal(t, c.GenerateSeedHash(), c.blocks[0].Header().PrevHash)
}

func TestAddTargetValidatesInvariants(t *testing.T) {
	c := NewChain("chain-a", "seed-a")

	_, err := c.AddTarget("", "target-1", decimal.NewFromInt(1), decimal.NewFromInt(10), nil, nil)
	require.ErrorIs(t, err, ErrInvariantViolation)

	_, err = c.AddTarget("bounty", "target-1", decimal.NewFromInt(10), decimal.NewFromInt(1), nil, nil)
	require.ErrorIs(t, err, ErrInvariantViolation)

	block, err := c.AddTarget("bounty", "target-1", decimal.NewFromInt(1), decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "target-1", block.TargetID)
}

func TestRejectCreditDoesNotMoveBalance(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	_, err := c.AcceptCredit(decimal.NewFromInt(10), "")
	require.NoError(t, err)

	before := c.Balance()
	_, err = c.RejectCredit(decimal.NewFromInt(5), "")
	require.NoError(t, err)
	require.True(t, before.Equal(c.Balance()))
}

func TestBlockQueryFiltersByTypeAndAttr(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	_, err := c.SendSignal("peer-a", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)
	_, err = c.SendSignal("peer-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	all := c.BlockQuery([]BlockType{BlockTypeSignalSent}, nil, 0, 0, true)
	require.Len(t, all, 2)

	onlyA := c.BlockQuery([]BlockType{BlockTypeSignalSent}, &AttrQuery{Key: "dest_chain_id", Value: "peer-a"}, 0, 0, true)
	require.Len(t, onlyA, 1)
}

func TestGetCredibilityTalliesDebitAndCredit(t *testing.T) {
	c := NewChain("chain-a", "seed-a")
	sent, err := c.SendSignalReward("peer-a", "", "", decimal.NewFromInt(3), nil)
	require.NoError(t, err)
	_, err = c.Debit(decimal.NewFromInt(3), sent.Hdr.Hash)
	require.NoError(t, err)

	stats := c.GetCredibility("peer-a", false)
	entry, ok := stats["peer-a"]
	require.True(t, ok)
	require.True(t, entry.Debit.Equal(decimal.NewFromInt(-3)))
	require.Len(t, entry.Blocks, 2)
}
