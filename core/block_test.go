package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCanonicalHashIsDeterministic(t *testing.T) {
	parts := []string{"1", "abc", "0", "0", "10", "1"}
	h1 := canonicalHash(parts)
	h2 := canonicalHash(parts)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)
}

func TestCanonicalHashOrderSensitive(t *testing.T) {
	a := canonicalHash([]string{"x", "y"})
	b := canonicalHash([]string{"y", "x"})
	require.NotEqual(t, a, b)
}

func TestNullBlockRoundTrip(t *testing.T) {
	b := &NullBlock{Hdr: Header{Hash: "h", PrevHash: "p", Height: 0, Balance: zeroAmount, BalanceDelta: zeroAmount}}
	raw, err := b.MarshalJSON()
	require.NoError(t, err)

	decoded, err := DecodeBlock(raw)
	require.NoError(t, err)
	require.Equal(t, BlockTypeNull, decoded.BlockType())
	require.Equal(t, "h", decoded.Header().Hash)
}

func TestDecodeBlockUnknownType(t *testing.T) {
	_, err := DecodeBlock([]byte(`{"block_type": 9999}`))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSignalSentHashableIncludesAmountOnlyWhenPositive(t *testing.T) {
	zero := decimal.Zero
	withZero := &SignalSent{DestChainID: "peer", SignalData: map[string]interface{}{}, Amount: &zero}
	withoutAmount := &SignalSent{DestChainID: "peer", SignalData: map[string]interface{}{}}

	require.Equal(t, withoutAmount.Hashable(), withZero.Hashable())

	positive := decimal.NewFromInt(5)
	withPositive := &SignalSent{DestChainID: "peer", SignalData: map[string]interface{}{}, Amount: &positive}
	require.NotEqual(t, withoutAmount.Hashable(), withPositive.Hashable())
}

func TestSignalSentRoundTrip(t *testing.T) {
	amount := decimal.NewFromFloat(2.5)
	original := &SignalSent{
		Hdr:         Header{Hash: "h1", PrevHash: "h0", Height: 1},
		DestChainID: "chain-b",
		SignalData:  map[string]interface{}{"kind": "ping"},
		Amount:      &amount,
	}

	raw, err := original.MarshalJSON()
	require.NoError(t, err)

	decoded, err := DecodeBlock(raw)
	require.NoError(t, err)

	roundTripped, ok := decoded.(*SignalSent)
	require.True(t, ok)
	require.Equal(t, original.DestChainID, roundTripped.DestChainID)
	require.Equal(t, original.SignalData["kind"], roundTripped.SignalData["kind"])
	require.True(t, original.Amount.Equal(*roundTripped.Amount))
}

func TestAccessContractOtherEventCloseHashableHasFixedLength(t *testing.T) {
	b := &AccessContractOtherEventClose{
		AccessContractBlockHash:           "a",
		OtherAccessContractBlockHash:      "b",
		AccessContractEventBlockHash:      "c",
		OtherAccessContractEventBlockHash: "d",
		ReceiveSignalRewardBlockHash:      "e",
	}
	h := b.Hashable()
	require.Len(t, h, len(b.Hdr.hashPrefix(BlockTypeAccessContractOtherEventClose))+5)
}
