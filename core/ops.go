package core

import "fmt"

// Ops on Chain that construct a block, append it, save the chain, and
// return the new block — grounded one-for-one on chain.py's
// send_signal/receive_signal/add_action/add_target/debit/etc. family,
// each of which ends with self.save(). A chain with no path (built via
// NewChain rather than InitChain/LoadChain) treats the Save call as a
// no-op, so tests can exercise these ops purely in memory.

// SendSignal appends a SignalSent addressed to destChainID. Grounded on
// chain.py's Chain.send_signal (the interface fan-out to the
// destination chain lives in DeliverCrossChainSignal).
func (c *Chain) SendSignal(destChainID string, signalData map[string]interface{}, amount *Amount) (*SignalSent, error) {
	block := &SignalSent{
		Hdr:         Header{BalanceDelta: zeroAmount},
		DestChainID: destChainID,
		SignalData:  signalData,
		Amount:      amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// ReceiveSignal appends a SignalReceived referencing sendSignalBlockHash
// on the sender's chain. A non-positive or nil amount normalizes to nil.
// Grounded on chain.py's Chain.receive_signal.
func (c *Chain) ReceiveSignal(srcChainID, sendSignalBlockHash string, signalData map[string]interface{}, amount *Amount) (*SignalReceived, error) {
	if amount != nil && !amount.IsPositive() {
		amount = nil
	}
	block := &SignalReceived{
		Hdr:                 Header{BalanceDelta: zeroAmount},
		SrcChainID:          srcChainID,
		SendSignalBlockHash: sendSignalBlockHash,
		SignalData:          signalData,
		Amount:              amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// DeliverSignal appends a SignalDelivered marking that receiveSignalBlockHash
// was acted on. cost defaults to 1 if not positive. Grounded on
// chain.py's Chain.deliver_signal.
func (c *Chain) DeliverSignal(srcChainID, receiveSignalBlockHash, activityID string, cost int, amount *Amount) (*SignalDelivered, error) {
	if amount != nil && !amount.IsPositive() {
		amount = nil
	}
	if cost <= 0 {
		cost = 1
	}
	block := &SignalDelivered{
		Hdr:                    Header{BalanceDelta: zeroAmount},
		SrcChainID:             srcChainID,
		ReceiveSignalBlockHash: receiveSignalBlockHash,
		ActivityID:             activityID,
		Cost:                   cost,
		Amount:                 amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// SendSignalReward appends a SignalRewardSent paying destChainID for a
// prior signal. amount must be positive. Grounded on chain.py's
// Chain.send_signal_reward.
func (c *Chain) SendSignalReward(destChainID, actionBlockHash, deliverSignalBlockHash string, amount Amount, acceptedAmount *Amount) (*SignalRewardSent, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("send signal reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &SignalRewardSent{
		Hdr:                    Header{BalanceDelta: zeroAmount},
		DestChainID:            destChainID,
		ActionBlockHash:        actionBlockHash,
		DeliverSignalBlockHash: deliverSignalBlockHash,
		Amount:                 amount,
		AcceptedAmount:         acceptedAmount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// ReceiveSignalReward appends a SignalRewardReceived. amount must be
// positive. Grounded on chain.py's Chain.receive_signal_reward.
func (c *Chain) ReceiveSignalReward(srcChainID, sendSignalRewardBlockHash string, amount Amount) (*SignalRewardReceived, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("receive signal reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &SignalRewardReceived{
		Hdr:                       Header{BalanceDelta: zeroAmount},
		SrcChainID:                srcChainID,
		SendSignalRewardBlockHash: sendSignalRewardBlockHash,
		Amount:                    amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAction appends an Action recording an activity, optionally in
// response to a delivered signal. Grounded on chain.py's
// Chain.add_action.
func (c *Chain) AddAction(actionID, activityID string, refs map[string][]string, deliverSignalBlockHash string, ts int64) (*Action, error) {
	block := &Action{
		Hdr: Header{BalanceDelta: zeroAmount, Ts: ts},
		Base: baseAction{
			ActionID:   actionID,
			ActivityID: activityID,
			Refs:       refs,
			ActionTs:   ts,
		},
		DeliverSignalBlockHash: deliverSignalBlockHash,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddWorkOutput appends a WorkOutput recording the result of an
// activity. Grounded on chain.py's Chain.add_work_output.
func (c *Chain) AddWorkOutput(actionID, activityID string, refs map[string][]string, details interface{}, ts int64) (*WorkOutput, error) {
	block := &WorkOutput{
		Hdr: Header{BalanceDelta: zeroAmount, Ts: ts},
		Base: baseAction{
			ActionID:   actionID,
			ActivityID: activityID,
			Refs:       refs,
			ActionTs:   ts,
		},
		Details: details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddTarget posts a bounty. reward_per and reward_pool must be positive
// and reward_pool >= reward_per; name must be non-empty and at most 256
// bytes. Grounded on chain.py's Chain.add_target.
func (c *Chain) AddTarget(name, targetID string, rewardPer, rewardPool Amount, priors, conditions interface{}) (*TargetCreated, error) {
	if !rewardPer.IsPositive() || !rewardPool.IsPositive() {
		return nil, fmt.Errorf("add target: reward_per and reward_pool must be positive: %w", ErrInvariantViolation)
	}
	if rewardPool.LessThan(rewardPer) {
		return nil, fmt.Errorf("add target: reward_pool must be >= reward_per: %w", ErrInvariantViolation)
	}
	if name == "" || len(name) > 256 {
		return nil, fmt.Errorf("add target: name must be 1-256 bytes: %w", ErrInvariantViolation)
	}

	block := &TargetCreated{
		Hdr:        Header{BalanceDelta: zeroAmount},
		Name:       name,
		TargetID:   targetID,
		RewardPer:  rewardPer,
		RewardPool: rewardPool,
		Priors:     priors,
		Conditions: conditions,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AcceptTarget appends a TargetAccepted. Grounded on chain.py's
// Chain.accept_target.
func (c *Chain) AcceptTarget(srcChainID, targetID, targetBlockHash string, targetDetails interface{}) (*TargetAccepted, error) {
	block := &TargetAccepted{
		Hdr:             Header{BalanceDelta: zeroAmount},
		SrcChainID:      srcChainID,
		TargetID:        targetID,
		TargetBlockHash: targetBlockHash,
		TargetDetails:   targetDetails,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// SendTargetRewardClaim appends a TargetRewardClaimSent. Grounded on
// chain.py's Chain.send_target_reward_claim.
func (c *Chain) SendTargetRewardClaim(destChainID, targetBlockHash, workOutputBlockHash string, workOutputDetails interface{}) (*TargetRewardClaimSent, error) {
	block := &TargetRewardClaimSent{
		Hdr:                  Header{BalanceDelta: zeroAmount},
		DestChainID:          destChainID,
		TargetBlockHash:      targetBlockHash,
		WorkOutputBlockHash:  workOutputBlockHash,
		WorkOutputDetails:    workOutputDetails,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// ReceiveTargetRewardClaim appends a TargetRewardClaimReceived. Grounded
// on chain.py's Chain.receive_target_reward_claim.
func (c *Chain) ReceiveTargetRewardClaim(srcChainID, targetBlockHash, sendClaimBlockHash, workOutputBlockHash string, workOutputDetails interface{}) (*TargetRewardClaimReceived, error) {
	block := &TargetRewardClaimReceived{
		Hdr:                            Header{BalanceDelta: zeroAmount},
		SrcChainID:                     srcChainID,
		TargetBlockHash:                targetBlockHash,
		SendTargetRewardClaimBlockHash: sendClaimBlockHash,
		WorkOutputBlockHash:            workOutputBlockHash,
		WorkOutputDetails:              workOutputDetails,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// SendTargetReward appends a TargetRewardSent. amount must be positive.
// Grounded on chain.py's Chain.send_target_reward.
func (c *Chain) SendTargetReward(destChainID, targetBlockHash, receiveClaimBlockHash string, amount Amount) (*TargetRewardSent, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("send target reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &TargetRewardSent{
		Hdr:                               Header{BalanceDelta: zeroAmount},
		DestChainID:                       destChainID,
		TargetBlockHash:                   targetBlockHash,
		ReceiveTargetRewardClaimBlockHash: receiveClaimBlockHash,
		Amount:                            amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// ReceiveTargetReward appends a TargetRewardReceived. amount must be
// positive. Grounded on chain.py's Chain.receive_target_reward.
func (c *Chain) ReceiveTargetReward(srcChainID, targetBlockHash, sendRewardBlockHash string, amount Amount) (*TargetRewardReceived, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("receive target reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &TargetRewardReceived{
		Hdr:                       Header{BalanceDelta: zeroAmount},
		SrcChainID:                srcChainID,
		TargetBlockHash:           targetBlockHash,
		SendTargetRewardBlockHash: sendRewardBlockHash,
		Amount:                    amount,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// Debit appends a Debit, decreasing the running balance by amount.
// amount must be positive. Grounded on chain.py's Chain.debit.
func (c *Chain) Debit(amount Amount, refBlockHash string) (*Debit, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("debit: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &Debit{
		Hdr:          Header{BalanceDelta: amount.Neg()},
		RefBlockHash: refBlockHash,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AcceptCredit appends a CreditAccepted, increasing the running balance
// by amount. amount must be positive. Grounded on chain.py's
// Chain.accept_credit.
func (c *Chain) AcceptCredit(amount Amount, refBlockHash string) (*CreditAccepted, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("accept credit: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &CreditAccepted{
		Hdr:          Header{BalanceDelta: amount},
		RefBlockHash: refBlockHash,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// RejectCredit appends a CreditRejected, which records amount but does
// not move the running balance (balance_delta stays zero). Grounded on
// chain.py's Chain.reject_credit.
func (c *Chain) RejectCredit(amount Amount, refBlockHash string) (*CreditRejected, error) {
	block := &CreditRejected{
		Hdr:          Header{BalanceDelta: zeroAmount},
		Amount:       amount,
		RefBlockHash: refBlockHash,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// SendWorkOutputReward appends a WorkOutputRewardSent. amount must be
// positive. Grounded on chain.py's Chain.send_work_output_reward.
func (c *Chain) SendWorkOutputReward(destChainID string, amount Amount, workOutputBlockHash string, details interface{}) (*WorkOutputRewardSent, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("send work output reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &WorkOutputRewardSent{
		Hdr:                 Header{BalanceDelta: zeroAmount},
		DestChainID:         destChainID,
		Amount:              amount,
		WorkOutputBlockHash: workOutputBlockHash,
		Details:             details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// ReceiveWorkOutputReward appends a WorkOutputRewardReceived. amount
// must be positive. Grounded on chain.py's
// Chain.receive_work_output_reward.
func (c *Chain) ReceiveWorkOutputReward(srcChainID string, amount Amount, workOutputBlockHash, sendRewardBlockHash string, details interface{}) (*WorkOutputRewardReceived, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("receive work output reward: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &WorkOutputRewardReceived{
		Hdr:                           Header{BalanceDelta: zeroAmount},
		SrcChainID:                    srcChainID,
		Amount:                        amount,
		WorkOutputBlockHash:           workOutputBlockHash,
		SendWorkOutputRewardBlockHash: sendRewardBlockHash,
		Details:                       details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAccessContractOwn offers access to a resource. contractAmount and
// minPrice must be positive. Grounded on chain.py's
// Chain.add_access_contract_own.
func (c *Chain) AddAccessContractOwn(destChainID string, contractAmount Amount, token, nodeUUID, frameUUID string, expiresIn int, minPrice Amount, details interface{}) (*AccessContractOwn, error) {
	if !contractAmount.IsPositive() || !minPrice.IsPositive() {
		return nil, fmt.Errorf("add access contract: contract_amount and min_price must be positive: %w", ErrInvariantViolation)
	}
	block := &AccessContractOwn{
		Hdr:            Header{BalanceDelta: zeroAmount},
		DestChainID:    destChainID,
		ContractAmount: contractAmount,
		Token:          token,
		NodeUUID:       nodeUUID,
		FrameUUID:      frameUUID,
		ExpiresIn:      expiresIn,
		MinPrice:       minPrice,
		Details:        details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAccessContractOther records a peer's bid. contractAmount, minPrice
// and contractTs must be positive. Grounded on chain.py's
// Chain.add_access_contract_other.
func (c *Chain) AddAccessContractOther(srcChainID, accessContractBlockHash string, contractAmount Amount, token string, contractTs, expiresIn int, minPrice Amount, details interface{}) (*AccessContractOther, error) {
	if !contractAmount.IsPositive() || !minPrice.IsPositive() || contractTs <= 0 {
		return nil, fmt.Errorf("add access contract other: contract_amount, min_price must be positive and contract_ts > 0: %w", ErrInvariantViolation)
	}
	block := &AccessContractOther{
		Hdr:                     Header{BalanceDelta: zeroAmount},
		SrcChainID:              srcChainID,
		AccessContractBlockHash: accessContractBlockHash,
		ContractAmount:          contractAmount,
		Token:                   token,
		ContractTs:              contractTs,
		ExpiresIn:               expiresIn,
		MinPrice:                minPrice,
		Details:                 details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAccessContractOtherEventOpen opens a lease-use event. amount must
// be positive. Grounded on chain.py's
// Chain.add_access_contract_other_event_open.
func (c *Chain) AddAccessContractOtherEventOpen(accessContractBlockHash, otherAccessContractBlockHash string, amount Amount, details interface{}) (*AccessContractOtherEventOpen, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("add access contract event open: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &AccessContractOtherEventOpen{
		Hdr:                          Header{BalanceDelta: zeroAmount},
		AccessContractBlockHash:      accessContractBlockHash,
		OtherAccessContractBlockHash: otherAccessContractBlockHash,
		Amount:                       amount,
		Details:                      details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAccessContractOwnEventAsk answers an event-open. amount must be
// positive. Grounded on chain.py's
// Chain.add_access_contract_own_event_ask.
func (c *Chain) AddAccessContractOwnEventAsk(accessContractBlockHash, otherEventOpenBlockHash, receiveSignalBlockHash string, amount Amount, details interface{}) (*AccessContractOwnEventAsk, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("add access contract event ask: amount must be positive: %w", ErrInvariantViolation)
	}
	block := &AccessContractOwnEventAsk{
		Hdr:                     Header{BalanceDelta: zeroAmount},
		AccessContractBlockHash: accessContractBlockHash,
		OtherEventOpenBlockHash: otherEventOpenBlockHash,
		ReceiveSignalBlockHash:  receiveSignalBlockHash,
		Amount:                  amount,
		Details:                 details,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}

// AddAccessContractOtherEventClose settles and closes a lease-use event.
// Grounded on chain.py's Chain.add_access_contract_other_event_close.
func (c *Chain) AddAccessContractOtherEventClose(accessContractBlockHash, otherAccessContractBlockHash, accessContractEventBlockHash, otherAccessContractEventBlockHash, receiveSignalRewardBlockHash string) (*AccessContractOtherEventClose, error) {
	block := &AccessContractOtherEventClose{
		Hdr:                               Header{BalanceDelta: zeroAmount},
		AccessContractBlockHash:           accessContractBlockHash,
		OtherAccessContractBlockHash:      otherAccessContractBlockHash,
		AccessContractEventBlockHash:      accessContractEventBlockHash,
		OtherAccessContractEventBlockHash: otherAccessContractEventBlockHash,
		ReceiveSignalRewardBlockHash:      receiveSignalRewardBlockHash,
	}
	if err := c.Append(block); err != nil {
		return nil, err
	}
	if err := c.Save(""); err != nil {
		return nil, err
	}
	return block, nil
}
