package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCrossVerifySucceedsWhenLinkageMatches(t *testing.T) {
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")

	sent, err := a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)
	_, err = b.ReceiveSignal("chain-a", sent.Hdr.Hash, map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	require.NoError(t, a.CrossVerify(b))
	require.NoError(t, b.CrossVerify(a))
}

func TestCrossVerifyFailsOnFabricatedReceipt(t *testing.T) {
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")

	_, err := b.ReceiveSignal("chain-a", "never-sent-hash", map[string]interface{}{}, nil)
	require.NoError(t, err)

	err = b.CrossVerify(a)
	require.ErrorIs(t, err, ErrCrossChainMismatch)
}

func TestHardVerifyWritesAttestationBlocksWhenSubchainQualifies(t *testing.T) {
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")

	_, err := a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)
	_, err = a.SendSignalReward("chain-b", "", "", decimal.NewFromInt(2), nil)
	require.NoError(t, err)

	result, err := a.HardVerify(b)
	require.NoError(t, err)
	require.True(t, result.Verified)
	require.NotNil(t, result.OpenBlock)
	require.NotNil(t, result.VerificationBlock)
	require.NotNil(t, result.CloseBlock)

	require.Equal(t, 2, b.Len())
	require.Equal(t, 3, a.Len())
}

func TestHardVerifySkipsAttestationWhenSubchainTooShort(t *testing.T) {
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")

	_, err := a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	result, err := a.HardVerify(b)
	require.NoError(t, err)
	require.False(t, result.Verified)
	require.Nil(t, result.VerificationBlock)
	require.Nil(t, result.CloseBlock)
}

func TestConfirmVerifyMatchesAfterHardVerify(t *testing.T) {
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")

	_, err := a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)
	_, err = a.SendSignalReward("chain-b", "", "", decimal.NewFromInt(2), nil)
	require.NoError(t, err)

	_, err = a.HardVerify(b)
	require.NoError(t, err)

	confirmed, err := a.ConfirmVerify(b)
	require.NoError(t, err)
	require.True(t, confirmed)
}
