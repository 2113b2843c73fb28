package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSendCrossChainSignalUnknownDestination(t *testing.T) {
	r := NewRegistry()
	a := NewChain("chain-a", "seed-a")
	r.AddChain(a)

	sent, err := a.SendSignal("chain-b", map[string]interface{}{}, nil)
	require.NoError(t, err)

	err = r.SendCrossChainSignal(a, "chain-b", sent.Hdr.Hash, map[string]interface{}{}, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeliverCrossChainSignalSettlesBothChains(t *testing.T) {
	r := NewRegistry()
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")
	r.AddChain(a)
	r.AddChain(b)

	var captured Event
	r.SetEventSink(func(e Event) { captured = e })

	sent, err := a.SendSignal("chain-b", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	amount := decimal.NewFromInt(3)
	err = r.SendCrossChainSignal(a, "chain-b", sent.Hdr.Hash, map[string]interface{}{"k": "v"}, &amount)
	require.NoError(t, err)

	require.True(t, a.Balance().Equal(decimal.NewFromInt(3)))
	require.Equal(t, 2, b.Len())
	require.Equal(t, "signal_settled", captured.Action)
}

func TestDeliverCrossChainSignalDefaultsNonPositiveAmount(t *testing.T) {
	r := NewRegistry()
	a := NewChain("chain-a", "seed-a")
	b := NewChain("chain-b", "seed-b")
	r.AddChain(a)
	r.AddChain(b)

	sent, err := a.SendSignal("chain-b", map[string]interface{}{}, nil)
	require.NoError(t, err)

	negative := decimal.NewFromInt(-5)
	err = r.SendCrossChainSignal(a, "chain-b", sent.Hdr.Hash, map[string]interface{}{}, &negative)
	require.NoError(t, err)

	require.True(t, a.Balance().Equal(decimal.NewFromFloat(1.00)))
}
