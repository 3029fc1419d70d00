package auction

import (
	"crypto/ed25519"
	"time"

	"github.com/code-payments/escrow-auction/pkg/config"
	"github.com/code-payments/escrow-auction/pkg/config/env"
	"github.com/code-payments/escrow-auction/pkg/config/memory"
	"github.com/code-payments/escrow-auction/pkg/config/wrapper"
	"github.com/code-payments/escrow-auction/pkg/solana"
)

const (
	envConfigPrefix = "AUCTION_CLIENT_"

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	AssetConfigEnvName = envConfigPrefix + "ASSET"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = string(solana.EnvironmentDev)

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "confirmed"

	DerivationCacheSizeConfigEnvName = envConfigPrefix + "DERIVATION_CACHE_SIZE"
	defaultDerivationCacheSize       = 1024

	ConfirmationTimeoutConfigEnvName = envConfigPrefix + "CONFIRMATION_TIMEOUT"
	defaultConfirmationTimeout       = time.Minute

	EnforceSequenceConfigEnvName = envConfigPrefix + "ENFORCE_SEQUENCE"
	defaultEnforceSequence       = false

	CreateTokenAccountsConfigEnvName = envConfigPrefix + "CREATE_TOKEN_ACCOUNTS"
	defaultCreateTokenAccounts       = true

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 0

	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0

	MemoConfigEnvName = envConfigPrefix + "MEMO"
	defaultMemo       = ""

	SubmissionRateLimitConfigEnvName = envConfigPrefix + "SUBMISSION_RATE_LIMIT"
	defaultSubmissionRateLimit       = 0
)

type conf struct {
	programId           config.PublicKey
	asset               config.PublicKey
	rpcEndpoint         config.String
	commitment          config.String
	derivationCacheSize config.Int64
	confirmationTimeout config.Duration
	enforceSequence     config.Bool
	createTokenAccounts config.Bool
	computeUnitLimit    config.Uint64
	computeUnitPrice    config.Uint64
	memo                config.String
	submissionRateLimit config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			programId:           env.NewPublicKeyConfig(ProgramIdConfigEnvName, nil),
			asset:               env.NewPublicKeyConfig(AssetConfigEnvName, nil),
			rpcEndpoint:         env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			commitment:          env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
			derivationCacheSize: env.NewInt64Config(DerivationCacheSizeConfigEnvName, defaultDerivationCacheSize),
			confirmationTimeout: env.NewDurationConfig(ConfirmationTimeoutConfigEnvName, defaultConfirmationTimeout),
			enforceSequence:     env.NewBoolConfig(EnforceSequenceConfigEnvName, defaultEnforceSequence),
			createTokenAccounts: env.NewBoolConfig(CreateTokenAccountsConfigEnvName, defaultCreateTokenAccounts),
			computeUnitLimit:    env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			computeUnitPrice:    env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
			memo:                env.NewStringConfig(MemoConfigEnvName, defaultMemo),
			submissionRateLimit: env.NewUint64Config(SubmissionRateLimitConfigEnvName, defaultSubmissionRateLimit),
		}
	}
}

type testOverrides struct {
	programId           ed25519.PublicKey
	asset               ed25519.PublicKey
	derivationCacheSize int64
	confirmationTimeout time.Duration
	enforceSequence     bool
	createTokenAccounts bool
	computeUnitLimit    uint64
	computeUnitPrice    uint64
	memo                string
	submissionRateLimit uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			programId:           wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.programId), nil),
			asset:               wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.asset), nil),
			rpcEndpoint:         wrapper.NewStringConfig(memory.NewConfig(defaultRpcEndpoint), defaultRpcEndpoint),
			commitment:          wrapper.NewStringConfig(memory.NewConfig(defaultCommitment), defaultCommitment),
			derivationCacheSize: wrapper.NewInt64Config(memory.NewConfig(overrides.derivationCacheSize), defaultDerivationCacheSize),
			confirmationTimeout: wrapper.NewDurationConfig(memory.NewConfig(overrides.confirmationTimeout), defaultConfirmationTimeout),
			enforceSequence:     wrapper.NewBoolConfig(memory.NewConfig(overrides.enforceSequence), defaultEnforceSequence),
			createTokenAccounts: wrapper.NewBoolConfig(memory.NewConfig(overrides.createTokenAccounts), defaultCreateTokenAccounts),
			computeUnitLimit:    wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitLimit), defaultComputeUnitLimit),
			computeUnitPrice:    wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitPrice), defaultComputeUnitPrice),
			memo:                wrapper.NewStringConfig(memory.NewConfig(overrides.memo), defaultMemo),
			submissionRateLimit: wrapper.NewUint64Config(memory.NewConfig(overrides.submissionRateLimit), defaultSubmissionRateLimit),
		}
	}
}
