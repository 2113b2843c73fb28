package core

import "encoding/json"

// Block is the common surface over the closed block-variant family.
// Chain logic type-switches on the concrete pointer type
// for anything variant-specific (peer ids, ref hashes, amounts); this
// interface only covers what every variant must provide: its header, its
// canonical-hash input, and JSON (de)serialization.
type Block interface {
	BlockType() BlockType
	Header() *Header
	Hashable() []string
	json.Marshaler
	json.Unmarshaler
}

// NewBlockForType constructs a zero-valued block of the given type, used
// by DecodeBlock to dispatch polymorphic JSON the way
// JSONLoader.init_block does in chain.py.
func NewBlockForType(t BlockType) (Block, error) {
	switch t {
	case BlockTypeNull:
		return &NullBlock{}, nil
	case BlockTypeSignalSent:
		return &SignalSent{}, nil
	case BlockTypeSignalReceived:
		return &SignalReceived{}, nil
	case BlockTypeSignalDelivered:
		return &SignalDelivered{}, nil
	case BlockTypeSignalRewardSent:
		return &SignalRewardSent{}, nil
	case BlockTypeSignalRewardReceived:
		return &SignalRewardReceived{}, nil
	case BlockTypeAction:
		return &Action{}, nil
	case BlockTypeWorkOutput:
		return &WorkOutput{}, nil
	case BlockTypeDebit:
		return &Debit{}, nil
	case BlockTypeCreditAccepted:
		return &CreditAccepted{}, nil
	case BlockTypeCreditRejected:
		return &CreditRejected{}, nil
	case BlockTypeTargetCreated:
		return &TargetCreated{}, nil
	case BlockTypeTargetAccepted:
		return &TargetAccepted{}, nil
	case BlockTypeTargetRewardClaimSent:
		return &TargetRewardClaimSent{}, nil
	case BlockTypeTargetRewardClaimReceived:
		return &TargetRewardClaimReceived{}, nil
	case BlockTypeTargetRewardSent:
		return &TargetRewardSent{}, nil
	case BlockTypeTargetRewardReceived:
		return &TargetRewardReceived{}, nil
	case BlockTypeWorkOutputRewardSent:
		return &WorkOutputRewardSent{}, nil
	case BlockTypeWorkOutputRewardReceived:
		return &WorkOutputRewardReceived{}, nil
	case BlockTypeAccessContractOwn:
		return &AccessContractOwn{}, nil
	case BlockTypeAccessContractOther:
		return &AccessContractOther{}, nil
	case BlockTypeAccessContractOtherEventOpen:
		return &AccessContractOtherEventOpen{}, nil
	case BlockTypeAccessContractOwnEventAsk:
		return &AccessContractOwnEventAsk{}, nil
	case BlockTypeAccessContractOtherEventClose:
		return &AccessContractOtherEventClose{}, nil
	case BlockTypeVerificationOpen:
		return &VerificationOpen{}, nil
	case BlockTypeVerification:
		return &Verification{}, nil
	case BlockTypeVerificationClose:
		return &VerificationClose{}, nil
	case BlockTypeReset:
		return &Reset{}, nil
	case BlockTypeUpgrade:
		return &Upgrade{}, nil
	default:
		return nil, errUnknownBlockType(t)
	}
}

func errUnknownBlockType(t BlockType) error {
	return &unknownBlockTypeError{t: t}
}

type unknownBlockTypeError struct{ t BlockType }

func (e *unknownBlockTypeError) Error() string {
	return "unknown block type: " + e.t.String()
}

func (e *unknownBlockTypeError) Unwrap() error { return ErrTypeMismatch }

// DecodeBlock dispatches a single serialized block to its concrete type
// based on its block_type field, then unmarshals the rest, mirroring
// chain.py's JSONLoader.init_block.
func DecodeBlock(raw []byte) (Block, error) {
	var peek struct {
		BlockType BlockType `json:"block_type"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, err
	}
	blk, err := NewBlockForType(peek.BlockType)
	if err != nil {
		return nil, err
	}
	if err := blk.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return blk, nil
}
