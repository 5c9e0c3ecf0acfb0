package vaultconst

// Asset kind tags stored in the vault configuration. The tag is fixed at
// deploy time and is never mutated afterwards.
const (
	// Native marks a vault custodying native GAS.
	Native = 0
	// Fungible marks a vault custodying a single NEP-17 token.
	Fungible = 1
	// SideChannel marks a vault custodying one currency of a
	// multi-currency ledger contract, identified by a numeric id.
	SideChannel = 2
)

// Result codes carried by outcome envelopes and VaultNotification events.
// Zero means success, any other value identifies the compensated failure.
const (
	CodeSuccess = 0
	// CodeFailedMinShares is reported when a deposit computes fewer shares
	// than the caller's floor and the asset is returned.
	CodeFailedMinShares = 1
	// CodeFailedMinWithdraw is reported when a withdrawal computes fewer
	// assets than the caller's floor and the burned shares are re-minted.
	CodeFailedMinWithdraw = 2
	// CodeInsufficientDepositGas is reported when the protocol fee cannot be
	// collected for a fungible deposit whose custody has already moved.
	CodeInsufficientDepositGas = 3
)

// Payload tags discriminating intent records carried in transfer data.
const (
	// DepositTag prefixes an encoded deposit intent.
	DepositTag = 0xd5e60101
	// WithdrawTag prefixes an encoded withdrawal intent.
	WithdrawTag = 0xd5e60102
)

// MaxDeposit is the maximum amount accepted by a single deposit. Bounded
// by the maximum integer losslessly representable in JSON (2**53-1) so
// that ledger values survive RPC round trips.
const MaxDeposit = 1<<53 - 1

// Fatal rejection reasons. These abort the transaction before any ledger
// mutation or custody change.
const (
	ErrNonSupportedTokenDeposit    = "vault does not accept token deposits"
	ErrNonSupportedNativeDeposit   = "vault does not accept native deposits"
	ErrNonSupportedCurrencyDeposit = "vault does not accept side-channel deposits"
	ErrInvalidTokenContract        = "deposit from unregistered token contract"
	ErrInvalidCurrencyLedger       = "deposit from unregistered currency ledger"
	ErrMultiCurrencyDeposit        = "more than one currency id in deposit"
	ErrInvalidCurrencyID           = "wrong currency id in deposit"
	ErrInvalidDepositAmount        = "invalid deposit amount"
	ErrExceedsMaxDeposit           = "deposit exceeds max amount"
	ErrMissingForwardPayload       = "missing forward payload"
	ErrUnauthorizedBurn            = "burn notification not from share token"
	ErrInvalidBurnAmount           = "invalid burn amount"
	ErrMissingCustomPayload        = "missing custom payload"
	ErrInsufficientDepositGas      = "insufficient deposit fee"
	ErrInsufficientWithdrawGas     = "insufficient withdraw fee"
	ErrInsufficientQuoteGas        = "insufficient quote fee"
)
