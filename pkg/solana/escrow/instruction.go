package escrow

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

// DecodeInstruction validates an instruction payload using the same rules
// the program applies and returns its type along with the parsed arguments.
// Instructions without arguments return nil args.
//
// Failures are reported as the ProgramError the program itself would raise.
// The reserved change fee opcode is never accepted.
func DecodeInstruction(data []byte) (InstructionType, interface{}, error) {
	if len(data) == 0 {
		return 0, nil, ProgramErrorInvalidInstruction
	}

	t := InstructionType(data[0])
	switch t {
	case InstructionTypeInitialize:
		args, err := InitializeInstructionFromBinary(data)
		return t, args, err
	case InstructionTypeChangeAuthority:
		args, err := ChangeAuthorityInstructionFromBinary(data)
		return t, args, err
	case InstructionTypeList:
		args, err := ListInstructionFromBinary(data)
		return t, args, err
	case InstructionTypeDelist:
		return t, nil, DelistInstructionFromBinary(data)
	case InstructionTypeBid:
		args, err := BidInstructionFromBinary(data)
		return t, args, err
	case InstructionTypeWithdrawBid:
		return t, nil, WithdrawBidInstructionFromBinary(data)
	case InstructionTypeAcceptBid:
		return t, nil, AcceptBidInstructionFromBinary(data)
	case InstructionTypeWithdrawOnSuccess:
		return t, nil, WithdrawOnSuccessInstructionFromBinary(data)
	case InstructionTypeRefund:
		return t, nil, RefundInstructionFromBinary(data)
	}

	return t, nil, ProgramErrorInvalidInstruction
}

// DecompiledInstruction is an escrow instruction recovered from a compiled
// transaction message. Args and Accounts hold pointers to the matching
// <Type>InstructionArgs and <Type>InstructionAccounts structs.
type DecompiledInstruction struct {
	Type     InstructionType
	Args     interface{}
	Accounts interface{}
}

// DecompileInstruction recovers the escrow instruction at index from a
// compiled message. The account list must match the positional layout of
// the instruction type, including the fixed program accounts.
func DecompileInstruction(program ed25519.PublicKey, m solana.Message, index int) (*DecompiledInstruction, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[i.ProgramIndex], program) {
		return nil, ErrInvalidProgram
	}

	keys := make([]ed25519.PublicKey, len(i.Accounts))
	for j, accountIndex := range i.Accounts {
		if int(accountIndex) >= len(m.Accounts) {
			return nil, errors.Errorf("account index out of range: %d", accountIndex)
		}
		keys[j] = m.Accounts[accountIndex]
	}

	t, args, err := DecodeInstruction(i.Data)
	if err != nil {
		return nil, err
	}

	var accounts interface{}
	var rebuilt solana.Instruction
	switch t {
	case InstructionTypeInitialize:
		a, err := initializeInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewInitializeInstruction(a, args.(*InitializeInstructionArgs))
	case InstructionTypeChangeAuthority:
		a, err := changeAuthorityInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewChangeAuthorityInstruction(a, args.(*ChangeAuthorityInstructionArgs))
	case InstructionTypeList:
		a, err := listInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewListInstruction(a, args.(*ListInstructionArgs))
	case InstructionTypeDelist:
		a, err := delistInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewDelistInstruction(a)
	case InstructionTypeBid:
		a, err := bidInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewBidInstruction(a, args.(*BidInstructionArgs))
	case InstructionTypeWithdrawBid:
		a, err := withdrawBidInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewWithdrawBidInstruction(a)
	case InstructionTypeAcceptBid:
		a, err := acceptBidInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewAcceptBidInstruction(a)
	case InstructionTypeWithdrawOnSuccess:
		a, err := withdrawOnSuccessInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewWithdrawOnSuccessInstruction(a)
	case InstructionTypeRefund:
		a, err := refundInstructionAccountsFromKeys(program, keys)
		if err != nil {
			return nil, err
		}
		accounts, rebuilt = a, NewRefundInstruction(a)
	default:
		return nil, ProgramErrorInvalidInstruction
	}

	// Fixed accounts (programs, sysvars) must sit where the program expects them.
	for j, meta := range rebuilt.Accounts {
		if !bytes.Equal(meta.PublicKey, keys[j]) {
			return nil, errors.Wrapf(ErrInvalidInstructionData, "unexpected account at position %d", j)
		}
	}

	return &DecompiledInstruction{
		Type:     t,
		Args:     args,
		Accounts: accounts,
	}, nil
}
