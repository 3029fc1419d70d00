package auction

import (
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

// fakeSolanaClient is an in-memory solana.Client. Submitted transactions are
// recorded and confirm after pendingPolls status checks.
type fakeSolanaClient struct {
	mu sync.Mutex

	accounts map[string]solana.AccountInfo

	submitted    []solana.Transaction
	submitErr    error
	statusErr    *solana.TransactionError
	pendingPolls int
	polls        int
}

func newFakeSolanaClient() *fakeSolanaClient {
	return &fakeSolanaClient{
		accounts: make(map[string]solana.AccountInfo),
	}
}

func (c *fakeSolanaClient) setAccount(address, owner ed25519.PublicKey, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts[base58.Encode(address)] = solana.AccountInfo{
		Data:     data,
		Owner:    owner,
		Lamports: 1,
	}
}

func (c *fakeSolanaClient) getSubmitted() []solana.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]solana.Transaction(nil), c.submitted...)
}

func (c *fakeSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.accounts[base58.Encode(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *fakeSolanaClient) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return 890_880 + 6_960*size, nil
}

func (c *fakeSolanaClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return solana.Blockhash{1, 2, 3}, nil
}

func (c *fakeSolanaClient) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.polls++
	statuses := make([]*solana.SignatureStatus, len(sigs))
	if c.polls <= c.pendingPolls {
		return statuses, nil
	}

	for i := range sigs {
		statuses[i] = &solana.SignatureStatus{
			Slot:               100,
			ErrorResult:        c.statusErr,
			ConfirmationStatus: "finalized",
		}
	}
	return statuses, nil
}

func (c *fakeSolanaClient) GetSlot(_ solana.Commitment) (uint64, error) {
	return 100, nil
}

func (c *fakeSolanaClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitted = append(c.submitted, txn)
	if c.submitErr != nil {
		return txn.Signatures[0], c.submitErr
	}
	return txn.Signatures[0], nil
}
