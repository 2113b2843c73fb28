package core

// BlockType tags the closed family of block variants a chain can hold.
// Wire values are stable; do not renumber.
type BlockType int

const (
	BlockTypeNull BlockType = 0

	BlockTypeSignalSent          BlockType = 1
	BlockTypeSignalReceived      BlockType = 2
	BlockTypeSignalDelivered     BlockType = 3
	BlockTypeSignalRewardSent    BlockType = 4
	BlockTypeSignalRewardReceived BlockType = 5

	BlockTypeAction     BlockType = 10
	BlockTypeWorkOutput BlockType = 11

	BlockTypeDebit          BlockType = 20
	BlockTypeCredit         BlockType = 21
	BlockTypeCreditAccepted BlockType = 22
	BlockTypeCreditRejected BlockType = 23

	BlockTypeTargetCreated            BlockType = 30
	BlockTypeTargetAccepted           BlockType = 31
	BlockTypeTargetRewardClaimSent    BlockType = 32
	BlockTypeTargetRewardClaimReceived BlockType = 33
	BlockTypeTargetRewardSent         BlockType = 34
	BlockTypeTargetRewardReceived     BlockType = 35

	BlockTypeWorkOutputRewardSent     BlockType = 40
	BlockTypeWorkOutputRewardReceived BlockType = 41

	BlockTypeAccessContractOwn             BlockType = 50
	BlockTypeAccessContractOther            BlockType = 51
	BlockTypeAccessContractOtherEventOpen   BlockType = 52
	BlockTypeAccessContractOwnEventAsk      BlockType = 53
	BlockTypeAccessContractOtherEventClose  BlockType = 54

	BlockTypeVerificationOpen  BlockType = 80
	BlockTypeVerification      BlockType = 81
	BlockTypeVerificationClose BlockType = 82

	BlockTypeReset   BlockType = 100
	BlockTypeUpgrade BlockType = 101
)

// blockTypeNames mirrors blocks.py's BlockTypeMap, used for logging and
// error messages.
var blockTypeNames = map[BlockType]string{
	BlockTypeNull: "Null",

	BlockTypeSignalSent:           "SignalSent",
	BlockTypeSignalReceived:       "SignalReceived",
	BlockTypeSignalDelivered:      "SignalDelivered",
	BlockTypeSignalRewardSent:     "SignalRewardSent",
	BlockTypeSignalRewardReceived: "SignalRewardReceived",

	BlockTypeAction:     "Action",
	BlockTypeWorkOutput: "WorkOutput",

	BlockTypeDebit:          "Debit",
	BlockTypeCredit:         "Credit",
	BlockTypeCreditAccepted: "CreditAccepted",
	BlockTypeCreditRejected: "CreditRejected",

	BlockTypeTargetCreated:             "TargetCreated",
	BlockTypeTargetAccepted:            "TargetAccepted",
	BlockTypeTargetRewardClaimSent:     "TargetRewardClaimSent",
	BlockTypeTargetRewardClaimReceived: "TargetRewardClaimReceived",
	BlockTypeTargetRewardSent:          "TargetRewardSent",
	BlockTypeTargetRewardReceived:      "TargetRewardReceived",

	BlockTypeWorkOutputRewardSent:     "WorkOutputRewardSent",
	BlockTypeWorkOutputRewardReceived: "WorkOutputRewardReceived",

	BlockTypeAccessContractOwn:            "AccessContractOwn",
	BlockTypeAccessContractOther:           "AccessContractOther",
	BlockTypeAccessContractOtherEventOpen:  "AccessContractOtherEventOpen",
	BlockTypeAccessContractOwnEventAsk:     "AccessContractOwnEventAsk",
	BlockTypeAccessContractOtherEventClose: "AccessContractOtherEventClose",

	BlockTypeVerificationOpen:  "VerificationOpen",
	BlockTypeVerification:      "Verification",
	BlockTypeVerificationClose: "VerificationClose",

	BlockTypeReset:   "Reset",
	BlockTypeUpgrade: "Upgrade",
}

func (t BlockType) String() string {
	if name, ok := blockTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}
