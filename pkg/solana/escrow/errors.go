package escrow

import (
	"errors"
	"fmt"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

// ProgramError is a custom error code raised by the escrow program.
type ProgramError uint32

const (
	ProgramErrorInvalidAuthority ProgramError = iota
	ProgramErrorInvalidInstructionData
	ProgramErrorInvalidPlatformFee
	ProgramErrorInvalidInstruction
	ProgramErrorFailedToUnpackU64
)

func (e ProgramError) Error() string {
	switch e {
	case ProgramErrorInvalidAuthority:
		return "invalid authority"
	case ProgramErrorInvalidInstructionData:
		return "invalid instruction data"
	case ProgramErrorInvalidPlatformFee:
		return "invalid platform fee"
	case ProgramErrorInvalidInstruction:
		return "invalid instruction"
	case ProgramErrorFailedToUnpackU64:
		return "failed to unpack u64"
	}
	return fmt.Sprintf("unknown escrow program error: %d", uint32(e))
}

// GetProgramError extracts the escrow program error from a ledger failure,
// if the failure carries a custom program code.
func GetProgramError(err error) (ProgramError, bool) {
	if err == nil {
		return 0, false
	}

	var code int
	var found bool

	var txErrPtr *solana.TransactionError
	var txErr solana.TransactionError
	var ixErr solana.InstructionError
	var customErr solana.CustomError
	switch {
	case errors.As(err, &txErrPtr):
		code, _, found = txErrPtr.CustomErrorCode()
	case errors.As(err, &txErr):
		code, _, found = txErr.CustomErrorCode()
	case errors.As(err, &ixErr):
		if ce := ixErr.CustomError(); ce != nil {
			code, found = int(*ce), true
		}
	case errors.As(err, &customErr):
		code, found = int(customErr), true
	}

	if !found || code < 0 || code > int(ProgramErrorFailedToUnpackU64) {
		return 0, false
	}
	return ProgramError(code), true
}
