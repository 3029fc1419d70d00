package auction

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/escrow-auction/pkg/retry"
	"github.com/code-payments/escrow-auction/pkg/retry/backoff"
	"github.com/code-payments/escrow-auction/pkg/solana"
)

// Submitter sends instructions to the ledger and reports the outcome. Any
// retry policy belongs to the Submitter; the Client never resubmits.
type Submitter interface {
	// Submit signs and sends a transaction paid for by payer, returning once
	// it is confirmed or has failed.
	Submit(ctx context.Context, payer ed25519.PublicKey, instructions []solana.Instruction, signers ...ed25519.PrivateKey) (solana.Signature, error)
}

var (
	errNotConfirmed     = errors.New("transaction not yet confirmed")
	errMissingSignature = errors.New("transaction is missing a required signature")
)

type rpcSubmitter struct {
	log          *logrus.Entry
	client       solana.Client
	commitment   solana.Commitment
	timeout      time.Duration
	pollInterval time.Duration
}

// NewRPCSubmitter returns a Submitter backed by a Solana RPC client. The
// transaction is sent once; its status is then polled until it reaches the
// commitment level or timeout elapses.
func NewRPCSubmitter(client solana.Client, commitment solana.Commitment, timeout time.Duration) Submitter {
	return &rpcSubmitter{
		log:          logrus.StandardLogger().WithField("type", "auction/submitter"),
		client:       client,
		commitment:   commitment,
		timeout:      timeout,
		pollInterval: solana.PollRate,
	}
}

func (s *rpcSubmitter) Submit(ctx context.Context, payer ed25519.PublicKey, instructions []solana.Instruction, signers ...ed25519.PrivateKey) (solana.Signature, error) {
	blockhash, err := s.client.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error getting latest blockhash")
	}

	txn := solana.NewTransaction(payer, instructions...)
	txn.SetBlockhash(blockhash)
	if err := txn.Sign(signers...); err != nil {
		return solana.Signature{}, errors.Wrap(err, "error signing transaction")
	}
	if !txn.IsFullySigned() {
		return solana.Signature{}, errMissingSignature
	}

	sig, err := s.client.SubmitTransaction(txn, s.commitment)
	if err != nil {
		return sig, err
	}

	log := s.log.WithField("signature", sig.ToBase58())
	log.Debug("transaction submitted")

	pollCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var txnErr *solana.TransactionError
	_, err = retry.Retry(
		func() error {
			statuses, err := s.client.GetSignatureStatuses([]solana.Signature{sig})
			if err != nil {
				log.WithError(err).Debug("failure getting signature status")
				return err
			}

			if len(statuses) == 0 || statuses[0] == nil {
				return errNotConfirmed
			}

			status := statuses[0]
			if status.ErrorResult != nil {
				txnErr = status.ErrorResult
				return nil
			}
			if !status.Reached(s.commitment) {
				return errNotConfirmed
			}
			return nil
		},
		retry.Context(pollCtx),
		retry.Backoff(backoff.Constant(s.pollInterval), s.pollInterval),
	)
	if err != nil {
		if pollCtx.Err() != nil {
			return sig, errors.Wrapf(pollCtx.Err(), "transaction %s not confirmed", sig.ToBase58())
		}
		return sig, err
	}
	if txnErr != nil {
		return sig, txnErr
	}

	return sig, nil
}
