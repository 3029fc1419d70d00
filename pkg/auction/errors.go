package auction

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

var (
	// ErrAddressDerivationExhausted indicates a seed tuple has no valid program
	// address. It is never transient.
	ErrAddressDerivationExhausted = solana.ErrAddressDerivationExhausted

	// ErrInvalidActionSequence indicates an action violates the auction state
	// machine as tracked locally.
	ErrInvalidActionSequence = errors.New("invalid action sequence")

	// ErrSubmissionFailure indicates the ledger rejected or failed to confirm a
	// transaction. The underlying cause is preserved.
	ErrSubmissionFailure = errors.New("submission failure")

	ErrUnknownAction   = errors.New("unknown action")
	ErrMissingAccount  = errors.New("missing required account")
	ErrInvalidRole     = errors.New("invalid role")
	ErrAccountNotFound = errors.New("account not found")
)

// Phase identifies where in the action pipeline an error occurred.
type Phase string

const (
	PhaseDerivation Phase = "derivation"
	PhaseEncoding   Phase = "encoding"
	PhaseSequence   Phase = "sequence"
	PhaseSubmission Phase = "submission"
)

// PhaseError is returned for every failed action. Nothing is submitted when
// Phase is anything other than PhaseSubmission.
type PhaseError struct {
	Phase  Phase
	Action string
	Err    error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Action, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Is reports submission phase errors as ErrSubmissionFailure while leaving
// the ledger's own error reachable through Unwrap.
func (e *PhaseError) Is(target error) bool {
	return target == ErrSubmissionFailure && e.Phase == PhaseSubmission
}

func newPhaseError(phase Phase, action Action, err error) error {
	if err == nil {
		return nil
	}

	// Errors that already carry a phase are not re-wrapped.
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}

	name := "unknown"
	if action != nil {
		name = action.Type().String()
	}

	return &PhaseError{
		Phase:  phase,
		Action: name,
		Err:    err,
	}
}

// GetPhase returns the phase an error was raised in, if any.
func GetPhase(err error) (Phase, bool) {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Phase, true
	}
	return "", false
}
