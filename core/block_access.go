package core

import "encoding/json"

// AccessContract* variants implement a bilateral resource-lease
// auction: Own posts a contract, Other bids, an Other-side Event is
// opened, Own asks on it, and the Other side closes it out. Grounded
// on blocks.py's AccessContract* classes.

// AccessContractOwn offers access to a resource identified by a node/frame
// pair. details is accepted but not hashed.
type AccessContractOwn struct {
	Hdr            Header
	DestChainID    string
	ContractAmount Amount
	Token          string
	NodeUUID       string
	FrameUUID      string
	ExpiresIn      int
	MinPrice       Amount
	Details        interface{}
}

func (b *AccessContractOwn) BlockType() BlockType { return BlockTypeAccessContractOwn }
func (b *AccessContractOwn) Header() *Header      { return &b.Hdr }

func (b *AccessContractOwn) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAccessContractOwn)
	h = append(h, b.DestChainID, b.ContractAmount.String(), b.Token, b.NodeUUID, b.FrameUUID)
	h = append(h, itoa64(int64(b.ExpiresIn)), b.MinPrice.String())
	return h
}

func (b *AccessContractOwn) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAccessContractOwn)
	m["dest_chain_id"] = b.DestChainID
	m["contract_amount"] = b.ContractAmount.String()
	m["token"] = b.Token
	m["node_uuid"] = b.NodeUUID
	m["frame_uuid"] = b.FrameUUID
	m["expires_in"] = b.ExpiresIn
	m["min_price"] = b.MinPrice.String()
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *AccessContractOwn) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAccessContractOwn); err != nil {
		return err
	}
	b.DestChainID, _ = m["dest_chain_id"].(string)
	amt, err := parseAmount(m["contract_amount"])
	if err != nil {
		return err
	}
	b.ContractAmount = amt
	b.Token, _ = m["token"].(string)
	b.NodeUUID, _ = m["node_uuid"].(string)
	b.FrameUUID, _ = m["frame_uuid"].(string)
	exp, err := asInt(m["expires_in"])
	if err != nil {
		return err
	}
	b.ExpiresIn = exp
	min, err := parseAmount(m["min_price"])
	if err != nil {
		return err
	}
	b.MinPrice = min
	b.Details = m["details"]
	return nil
}

// AccessContractOther records a peer's bid against an AccessContractOwn.
type AccessContractOther struct {
	Hdr                   Header
	SrcChainID            string
	AccessContractBlockHash string
	ContractAmount        Amount
	Token                 string
	ContractTs            int
	ExpiresIn             int
	MinPrice              Amount
	Details               interface{}
}

func (b *AccessContractOther) BlockType() BlockType { return BlockTypeAccessContractOther }
func (b *AccessContractOther) Header() *Header      { return &b.Hdr }

func (b *AccessContractOther) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAccessContractOther)
	h = append(h, b.SrcChainID, b.AccessContractBlockHash, b.ContractAmount.String(), b.Token)
	h = append(h, itoa64(int64(b.ContractTs)), itoa64(int64(b.ExpiresIn)), b.MinPrice.String())
	return h
}

func (b *AccessContractOther) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAccessContractOther)
	m["src_chain_id"] = b.SrcChainID
	m["access_contract_block_hash"] = b.AccessContractBlockHash
	m["contract_amount"] = b.ContractAmount.String()
	m["token"] = b.Token
	m["contract_ts"] = b.ContractTs
	m["expires_in"] = b.ExpiresIn
	m["min_price"] = b.MinPrice.String()
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *AccessContractOther) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAccessContractOther); err != nil {
		return err
	}
	b.SrcChainID, _ = m["src_chain_id"].(string)
	b.AccessContractBlockHash, _ = m["access_contract_block_hash"].(string)
	amt, err := parseAmount(m["contract_amount"])
	if err != nil {
		return err
	}
	b.ContractAmount = amt
	b.Token, _ = m["token"].(string)
	cts, err := asInt(m["contract_ts"])
	if err != nil {
		return err
	}
	b.ContractTs = cts
	exp, err := asInt(m["expires_in"])
	if err != nil {
		return err
	}
	b.ExpiresIn = exp
	min, err := parseAmount(m["min_price"])
	if err != nil {
		return err
	}
	b.MinPrice = min
	b.Details = m["details"]
	return nil
}

// AccessContractOtherEventOpen is the peer signalling intent to use the
// leased resource.
type AccessContractOtherEventOpen struct {
	Hdr                          Header
	AccessContractBlockHash      string
	OtherAccessContractBlockHash string
	Amount                       Amount
	Details                      interface{}
}

func (b *AccessContractOtherEventOpen) BlockType() BlockType {
	return BlockTypeAccessContractOtherEventOpen
}
func (b *AccessContractOtherEventOpen) Header() *Header { return &b.Hdr }

func (b *AccessContractOtherEventOpen) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAccessContractOtherEventOpen)
	return append(h, b.AccessContractBlockHash, b.OtherAccessContractBlockHash, b.Amount.String())
}

func (b *AccessContractOtherEventOpen) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAccessContractOtherEventOpen)
	m["access_contract_block_hash"] = b.AccessContractBlockHash
	m["other_access_contract_block_hash"] = b.OtherAccessContractBlockHash
	m["amount"] = b.Amount.String()
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *AccessContractOtherEventOpen) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAccessContractOtherEventOpen); err != nil {
		return err
	}
	b.AccessContractBlockHash, _ = m["access_contract_block_hash"].(string)
	b.OtherAccessContractBlockHash, _ = m["other_access_contract_block_hash"].(string)
	amt, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amt
	b.Details = m["details"]
	return nil
}

// AccessContractOwnEventAsk is the owner's response to an event-open,
// typically following a received signal negotiating terms.
type AccessContractOwnEventAsk struct {
	Hdr                    Header
	AccessContractBlockHash string
	OtherEventOpenBlockHash string
	ReceiveSignalBlockHash  string
	Amount                  Amount
	Details                 interface{}
}

func (b *AccessContractOwnEventAsk) BlockType() BlockType {
	return BlockTypeAccessContractOwnEventAsk
}
func (b *AccessContractOwnEventAsk) Header() *Header { return &b.Hdr }

func (b *AccessContractOwnEventAsk) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAccessContractOwnEventAsk)
	return append(h, b.AccessContractBlockHash, b.OtherEventOpenBlockHash, b.ReceiveSignalBlockHash, b.Amount.String())
}

func (b *AccessContractOwnEventAsk) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAccessContractOwnEventAsk)
	m["access_contract_block_hash"] = b.AccessContractBlockHash
	m["other_event_open_block_hash"] = b.OtherEventOpenBlockHash
	m["receive_signal_block_hash"] = b.ReceiveSignalBlockHash
	m["amount"] = b.Amount.String()
	m["details"] = b.Details
	return json.Marshal(m)
}

func (b *AccessContractOwnEventAsk) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAccessContractOwnEventAsk); err != nil {
		return err
	}
	b.AccessContractBlockHash, _ = m["access_contract_block_hash"].(string)
	b.OtherEventOpenBlockHash, _ = m["other_event_open_block_hash"].(string)
	b.ReceiveSignalBlockHash, _ = m["receive_signal_block_hash"].(string)
	amt, err := parseAmount(m["amount"])
	if err != nil {
		return err
	}
	b.Amount = amt
	b.Details = m["details"]
	return nil
}

// AccessContractOtherEventClose settles and closes out the lease event.
// All five reference hashes are required (no optional rendering).
type AccessContractOtherEventClose struct {
	Hdr                          Header
	AccessContractBlockHash      string
	OtherAccessContractBlockHash string
	AccessContractEventBlockHash string
	OtherAccessContractEventBlockHash string
	ReceiveSignalRewardBlockHash string
}

func (b *AccessContractOtherEventClose) BlockType() BlockType {
	return BlockTypeAccessContractOtherEventClose
}
func (b *AccessContractOtherEventClose) Header() *Header { return &b.Hdr }

func (b *AccessContractOtherEventClose) Hashable() []string {
	h := b.Hdr.hashPrefix(BlockTypeAccessContractOtherEventClose)
	return append(h,
		b.AccessContractBlockHash,
		b.OtherAccessContractBlockHash,
		b.AccessContractEventBlockHash,
		b.OtherAccessContractEventBlockHash,
		b.ReceiveSignalRewardBlockHash,
	)
}

func (b *AccessContractOtherEventClose) MarshalJSON() ([]byte, error) {
	m := b.Hdr.asMap(BlockTypeAccessContractOtherEventClose)
	m["access_contract_block_hash"] = b.AccessContractBlockHash
	m["other_access_contract_block_hash"] = b.OtherAccessContractBlockHash
	m["access_contract_event_block_hash"] = b.AccessContractEventBlockHash
	m["other_access_contract_event_block_hash"] = b.OtherAccessContractEventBlockHash
	m["receive_signal_reward_block_hash"] = b.ReceiveSignalRewardBlockHash
	return json.Marshal(m)
}

func (b *AccessContractOtherEventClose) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if err := b.Hdr.fromMap(m, BlockTypeAccessContractOtherEventClose); err != nil {
		return err
	}
	b.AccessContractBlockHash, _ = m["access_contract_block_hash"].(string)
	b.OtherAccessContractBlockHash, _ = m["other_access_contract_block_hash"].(string)
	b.AccessContractEventBlockHash, _ = m["access_contract_event_block_hash"].(string)
	b.OtherAccessContractEventBlockHash, _ = m["other_access_contract_event_block_hash"].(string)
	b.ReceiveSignalRewardBlockHash, _ = m["receive_signal_reward_block_hash"].(string)
	return nil
}
