package core

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Registry resolves chain uuids to loaded Chain instances and drives the
// cross-chain half of the signalling protocol. Grounded on chain.py's
// ChainInterface; chain.py's bare dict is replaced with a mutex-guarded
// map, the usual core package concurrency idiom.
type Registry struct {
	mu     sync.RWMutex
	chains map[string]*Chain
	sink   EventSink
}

// NewRegistry returns an empty chain registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[string]*Chain)}
}

// SetEventSink installs a callback invoked after each chain-crossing
// operation. A nil sink disables event emission.
func (r *Registry) SetEventSink(sink EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
}

// GetChain returns the chain registered under id, or nil. Grounded on
// chain.py's ChainInterface.get_chain.
func (r *Registry) GetChain(id string) *Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.chains[id]
}

// AddChain registers chain under its own uuid. Grounded on chain.py's
// ChainInterface.add_chain.
func (r *Registry) AddChain(chain *Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[chain.UUID] = chain
}

// SendCrossChainSignal is the registry-level half of SendSignal: given
// the sending chain and the already-appended SignalSent block, it looks
// up destChainID and, if known, drives the remaining four blocks of the
// protocol via DeliverCrossChainSignal. If the destination isn't
// registered, it returns ErrNotFound rather than silently dropping the
// signal the way chain.py's print-and-return does.
func (r *Registry) SendCrossChainSignal(srcChain *Chain, destChainID, sendSignalBlockHash string, signalData map[string]interface{}, amount *Amount) error {
	destChain := r.GetChain(destChainID)
	if destChain == nil {
		return fmt.Errorf("dest chain not known: %s: %w", destChainID, ErrNotFound)
	}
	return r.DeliverCrossChainSignal(srcChain, destChain, sendSignalBlockHash, signalData, amount)
}

// DeliverCrossChainSignal runs the four-block settlement that follows a
// SignalSent: the destination records SignalReceived, pays
// SignalRewardSent back to the sender, the sender records
// SignalRewardReceived, then credits its own balance. Each of those
// four ops saves its own chain as it appends, so both srcChain and
// destChain are durable on disk by the time this returns. A missing
// or non-positive amount defaults to 1.00, matching
// chain.py's receive_signal default. Grounded on chain.py's
// ChainInterface.receive_signal.
func (r *Registry) DeliverCrossChainSignal(srcChain, destChain *Chain, sendSignalBlockHash string, signalData map[string]interface{}, amount *Amount) error {
	if amount == nil || !amount.IsPositive() {
		one := decimal.NewFromFloat(1.00)
		amount = &one
	}

	receiveSignal, err := destChain.ReceiveSignal(srcChain.UUID, sendSignalBlockHash, signalData, amount)
	if err != nil {
		return fmt.Errorf("receive signal: %w", err)
	}

	sendReward, err := destChain.SendSignalReward(srcChain.UUID, "", receiveSignal.Hdr.Hash, *amount, nil)
	if err != nil {
		return fmt.Errorf("send signal reward: %w", err)
	}

	receiveReward, err := srcChain.ReceiveSignalReward(destChain.UUID, sendReward.Hdr.Hash, *amount)
	if err != nil {
		return fmt.Errorf("receive signal reward: %w", err)
	}

	if _, err := srcChain.AcceptCredit(*amount, receiveReward.Hdr.Hash); err != nil {
		return fmt.Errorf("accept credit: %w", err)
	}

	r.emit(Event{
		Origin: srcChain.UUID,
		Action: "signal_settled",
		Details: map[string]interface{}{
			"dest_chain_id":                destChain.UUID,
			"send_signal_block_hash":       sendSignalBlockHash,
			"receive_signal_block_hash":    receiveSignal.Hdr.Hash,
			"amount":                       amount.String(),
		},
	})

	logrus.WithFields(logrus.Fields{
		"src": srcChain.UUID, "dest": destChain.UUID, "amount": amount.String(),
	}).Info("cross-chain signal settled")

	return nil
}
