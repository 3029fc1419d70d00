package escrow

type InstructionType uint8

const (
	InstructionTypeInitialize InstructionType = iota
	InstructionTypeChangeAuthority
	InstructionTypeChangeFee // reserved, never encoded by this package
	InstructionTypeList
	InstructionTypeDelist
	InstructionTypeBid
	InstructionTypeWithdrawBid
	InstructionTypeAcceptBid
	InstructionTypeWithdrawOnSuccess
	InstructionTypeRefund
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "initialize"
	case InstructionTypeChangeAuthority:
		return "change_authority"
	case InstructionTypeChangeFee:
		return "change_fee"
	case InstructionTypeList:
		return "list"
	case InstructionTypeDelist:
		return "delist"
	case InstructionTypeBid:
		return "bid"
	case InstructionTypeWithdrawBid:
		return "withdraw_bid"
	case InstructionTypeAcceptBid:
		return "accept_bid"
	case InstructionTypeWithdrawOnSuccess:
		return "withdraw_on_success"
	case InstructionTypeRefund:
		return "refund"
	}
	return "unknown"
}

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}
func getInstructionType(src []byte, dst *InstructionType, offset *int) {
	*dst = InstructionType(src[*offset])
	*offset += 1
}
