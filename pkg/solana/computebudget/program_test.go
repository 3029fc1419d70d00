package compute_budget

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/escrow-auction/pkg/solana"
	"github.com/code-payments/escrow-auction/pkg/solana/memo"
)

func TestInstructions(t *testing.T) {
	limit := SetComputeUnitLimit(200_000)
	assert.EqualValues(t, ProgramKey, limit.Program)
	assert.Empty(t, limit.Accounts)
	assert.Equal(t, []byte{2, 0x40, 0x0d, 0x03, 0x00}, limit.Data)

	price := SetComputeUnitPrice(1)
	assert.Equal(t, []byte{3, 1, 0, 0, 0, 0, 0, 0, 0}, price.Data)

	parsedLimit, err := ParseSetComputeUnitLimitIxnData(limit.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 200_000, parsedLimit)

	parsedPrice, err := ParseSetComputeUnitPriceIxnData(price.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 1, parsedPrice)

	_, err = ParseSetComputeUnitLimitIxnData(price.Data)
	assert.Equal(t, ErrInvalidInstructionData, err)
	_, err = ParseSetComputeUnitPriceIxnData(limit.Data)
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestDecompileComputeBudget(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := solana.NewTransaction(
		payer,
		SetComputeUnitLimit(100_000),
		memo.Instruction("hello"),
		SetComputeUnitPrice(5_000),
	)

	decompiled, err := DecompileComputeBudget(tx.Message)
	require.NoError(t, err)
	require.NotNil(t, decompiled.ComputeUnitLimit)
	require.NotNil(t, decompiled.ComputeUnitPrice)
	assert.EqualValues(t, 100_000, *decompiled.ComputeUnitLimit)
	assert.EqualValues(t, 5_000, *decompiled.ComputeUnitPrice)

	decompiled, err = DecompileComputeBudget(solana.NewTransaction(payer, memo.Instruction("hello")).Message)
	require.NoError(t, err)
	assert.Nil(t, decompiled.ComputeUnitLimit)
	assert.Nil(t, decompiled.ComputeUnitPrice)

	_, err = DecompileComputeBudget(solana.NewTransaction(payer, solana.NewInstruction(ProgramKey, []byte{commandRequestHeapFrame})).Message)
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}
