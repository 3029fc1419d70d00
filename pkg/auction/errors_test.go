package auction

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/escrow-auction/pkg/solana"
	"github.com/code-payments/escrow-auction/pkg/testutil"
)

func TestPhaseError(t *testing.T) {
	bidder := testutil.GenerateSolanaKeys(t, 1)[0]
	cause := solana.NewInstructionTransactionError(0, solana.CustomError(1))

	err := newPhaseError(PhaseSubmission, &Bid{Bidder: bidder}, cause)
	assert.Equal(t, "bid: submission failed: Error processing Instruction 0: custom program error: 1", err.Error())
	assert.True(t, errors.Is(err, ErrSubmissionFailure))

	var txnErr *solana.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, cause, txnErr)

	// Existing phases are preserved when wrapped again
	wrapped := newPhaseError(PhaseEncoding, nil, pkgerrors.Wrap(err, "context"))
	phase, ok := GetPhase(wrapped)
	require.True(t, ok)
	assert.Equal(t, PhaseSubmission, phase)

	err = newPhaseError(PhaseDerivation, &Bid{Bidder: bidder}, ErrAddressDerivationExhausted)
	assert.False(t, errors.Is(err, ErrSubmissionFailure))
	assert.True(t, errors.Is(err, ErrAddressDerivationExhausted))

	assert.NoError(t, newPhaseError(PhaseEncoding, nil, nil))

	_, ok = GetPhase(errors.New("plain"))
	assert.False(t, ok)
}
