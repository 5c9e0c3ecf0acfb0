package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/vault-contract/common"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
)

type (
	// AssetKind describes the single asset custodied by the vault. It is
	// fixed at deploy time and never mutated afterwards.
	AssetKind struct {
		// One of vaultconst.Native, vaultconst.Fungible, vaultconst.SideChannel.
		Kind int
		// Token is the NEP-17 contract for Fungible vaults, the
		// multi-currency ledger contract for SideChannel vaults and the GAS
		// contract for Native vaults.
		Token interop.Hash160
		// CurrencyID identifies the custodied currency of a SideChannel
		// vault. Zero otherwise.
		CurrencyID int
	}

	// Outcome is the notification envelope delivered to the counterparty of
	// every finished deposit or withdrawal, attached as transfer data so the
	// outcome arrives atomically with the funds.
	Outcome struct {
		QueryID   int
		Code      int
		Initiator interop.Hash160
		// Amount carries the minted shares for committed deposits, the
		// released assets for committed withdrawals and the rejected figure
		// for compensated operations.
		Amount  int
		Payload []byte
		// InBody echoes the original request body when the caller asked
		// for it.
		InBody []byte
	}
)

const (
	adminKey       = 'a'
	assetKindKey   = 'k'
	shareTokenKey  = 's'
	contentKey     = 'c'
	totalAssetsKey = 't'
	totalSupplyKey = 'u'
	depositFeeKey  = 'd'
	withdrawFeeKey = 'w'
	quoteFeeKey    = 'q'

	// transfer data marker of protocol fee payments, used to keep the
	// vault's own payment callback from treating them as deposits.
	feePaymentMarker = "\x56\x46"

	depositOkComment    = "vault: deposit completed"
	depositFailComment  = "vault: deposit rejected"
	withdrawOkComment   = "vault: withdrawal completed"
	withdrawFailComment = "vault: withdrawal rejected"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin       interop.Hash160
		assetKind   int
		assetToken  interop.Hash160
		currencyID  int
		shareToken  interop.Hash160
		content     []byte
		depositFee  int
		withdrawFee int
		quoteFee    int
	})

	if len(args.admin) != interop.Hash160Len {
		panic("incorrect admin hash length")
	}
	if len(args.shareToken) != interop.Hash160Len {
		panic("incorrect share token hash length")
	}

	kind := AssetKind{Kind: args.assetKind}
	switch args.assetKind {
	case vaultconst.Native:
		kind.Token = interop.Hash160(gas.Hash)
	case vaultconst.Fungible:
		if len(args.assetToken) != interop.Hash160Len {
			panic("incorrect asset token hash length")
		}
		kind.Token = args.assetToken
	case vaultconst.SideChannel:
		if len(args.assetToken) != interop.Hash160Len {
			panic("incorrect currency ledger hash length")
		}
		if args.currencyID < 0 {
			panic("negative currency id")
		}
		kind.Token = args.assetToken
		kind.CurrencyID = args.currencyID
	default:
		panic("unknown asset kind")
	}

	if args.depositFee < 0 || args.withdrawFee < 0 || args.quoteFee < 0 {
		panic("negative fee")
	}

	storage.Put(ctx, adminKey, args.admin)
	common.SetSerialized(ctx, assetKindKey, kind)
	storage.Put(ctx, shareTokenKey, args.shareToken)
	if args.content != nil {
		storage.Put(ctx, contentKey, args.content)
	}
	storage.Put(ctx, depositFeeKey, args.depositFee)
	storage.Put(ctx, withdrawFeeKey, args.withdrawFee)
	storage.Put(ctx, quoteFeeKey, args.quoteFee)

	runtime.Log("vault contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the vault admin.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("vault contract updated")
}

// OnNEP17Payment is the inbound transport for Native (GAS) and Fungible
// (registered NEP-17 token) deposits. The transport is classified by the
// calling contract; payments the vault was not configured for abort the
// whole transaction, so the in-flight transfer never settles.
//
// The data argument must carry an encoded deposit intent. It is mandatory
// for Fungible deposits; Native deposits without it are credited to the
// sender with no slippage floor.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	var body []byte
	if data != nil {
		body = data.([]byte)
	}
	if string(body) == feePaymentMarker {
		// Protocol fee settling on the vault's own account.
		return
	}

	ctx := storage.GetContext()
	kind := getAssetKind(ctx)
	caller := runtime.GetCallingScriptHash()

	switch kind.Kind {
	case vaultconst.Native:
		if !caller.Equals(gas.Hash) {
			common.AbortWithMessage(vaultconst.ErrNonSupportedTokenDeposit)
		}
	case vaultconst.Fungible:
		if caller.Equals(gas.Hash) {
			common.AbortWithMessage(vaultconst.ErrNonSupportedNativeDeposit)
		}
		if !caller.Equals(kind.Token) {
			common.AbortWithMessage(vaultconst.ErrInvalidTokenContract)
		}
		if len(body) == 0 {
			common.AbortWithMessage(vaultconst.ErrMissingForwardPayload)
		}
	default:
		if caller.Equals(gas.Hash) {
			common.AbortWithMessage(vaultconst.ErrNonSupportedNativeDeposit)
		}
		common.AbortWithMessage(vaultconst.ErrNonSupportedTokenDeposit)
	}

	intent, exc := decodeDepositIntent(body, from)
	if exc != "" {
		common.AbortWithMessage(exc)
	}

	deposit(ctx, kind, from, amount, intent, body)
}

// OnMultiCurrencyPayment is the inbound transport for SideChannel deposits,
// invoked by the registered multi-currency ledger contract after it has
// moved the currency into vault custody. Exactly one currency id must be
// present and it must equal the configured one.
func OnMultiCurrencyPayment(from interop.Hash160, currencyIDs []int, amounts []int, data any) {
	ctx := storage.GetContext()
	kind := getAssetKind(ctx)
	if kind.Kind != vaultconst.SideChannel {
		common.AbortWithMessage(vaultconst.ErrNonSupportedCurrencyDeposit)
	}

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(kind.Token) {
		common.AbortWithMessage(vaultconst.ErrInvalidCurrencyLedger)
	}
	if len(currencyIDs) != 1 || len(amounts) != 1 {
		common.AbortWithMessage(vaultconst.ErrMultiCurrencyDeposit)
	}
	if currencyIDs[0] != kind.CurrencyID {
		common.AbortWithMessage(vaultconst.ErrInvalidCurrencyID)
	}

	var body []byte
	if data != nil {
		body = data.([]byte)
	}

	intent, exc := decodeDepositIntent(body, from)
	if exc != "" {
		common.AbortWithMessage(exc)
	}

	deposit(ctx, kind, from, amounts[0], intent, body)
}

func deposit(ctx storage.Context, kind AssetKind, initiator interop.Hash160, amount int, intent depositIntent, body []byte) {
	if amount <= 0 {
		common.AbortWithMessage(vaultconst.ErrInvalidDepositAmount)
	}
	if amount > vaultconst.MaxDeposit {
		common.AbortWithMessage(vaultconst.ErrExceedsMaxDeposit)
	}

	fee := common.GetInt(ctx, depositFeeKey)
	if kind.Kind == vaultconst.Native {
		// The fee rides in the attached value itself.
		if amount <= fee {
			common.AbortWithMessage(vaultconst.ErrInsufficientDepositGas)
		}
		amount -= fee
	} else if fee > 0 {
		ok := gas.Transfer(initiator, runtime.GetExecutingScriptHash(), fee, []byte(feePaymentMarker))
		if !ok {
			if kind.Kind == vaultconst.Fungible {
				// Token custody has already moved, so this cannot abort:
				// return the tokens and report the failure instead.
				compensateDeposit(ctx, kind, initiator, amount, 0,
					vaultconst.CodeInsufficientDepositGas, intent, body)
				return
			}
			common.AbortWithMessage(vaultconst.ErrInsufficientDepositGas)
		}
	}

	supply := common.GetInt(ctx, totalSupplyKey)
	assets := common.GetInt(ctx, totalAssetsKey)

	// First deposit is 1:1, later ones floor towards the vault so rounding
	// can never mint more claim than the contribution justifies.
	shares := amount
	if supply > 0 {
		shares = amount * supply / assets
	}

	if shares < intent.MinShares {
		compensateDeposit(ctx, kind, initiator, amount, shares,
			vaultconst.CodeFailedMinShares, intent, body)
		return
	}

	supply += shares
	assets += amount
	storage.Put(ctx, totalSupplyKey, supply)
	storage.Put(ctx, totalAssetsKey, assets)

	out := encodeOutcome(vaultconst.CodeSuccess, intent.QueryID, initiator, shares,
		intent.Success, intent.HasSuccess, body, depositOkComment)

	st := getShareToken(ctx)
	contract.Call(st, "mint", contract.All, intent.Receiver, shares, out)

	runtime.Notify("Deposited", initiator, intent.Receiver, kind.Token, amount, shares, supply, assets)
	runtime.Notify("VaultNotification", intent.QueryID, vaultconst.CodeSuccess, initiator, out)
}

// compensateDeposit returns the already-received asset to the initiator and
// dispatches the failure callback. The ledger is left untouched.
func compensateDeposit(ctx storage.Context, kind AssetKind, initiator interop.Hash160,
	amount, rejected, code int, intent depositIntent, body []byte) {
	out := encodeOutcome(code, intent.QueryID, initiator, rejected,
		intent.Failure, intent.HasFailure, body, depositFailComment)

	releaseAsset(kind, initiator, amount, out)

	runtime.Notify("VaultNotification", intent.QueryID, code, initiator, out)
}

// OnSharesBurned is invoked by the share token contract after it has already
// burned the holder's shares. Soft failures therefore compensate by minting
// the same number of shares back; they can never abort.
func OnSharesBurned(burner interop.Hash160, amount int, customPayload []byte) {
	ctx := storage.GetContext()
	st := getShareToken(ctx)

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(st) {
		panic(vaultconst.ErrUnauthorizedBurn)
	}
	if amount <= 0 {
		panic(vaultconst.ErrInvalidBurnAmount)
	}
	if len(customPayload) == 0 {
		panic(vaultconst.ErrMissingCustomPayload)
	}

	intent, exc := decodeWithdrawIntent(customPayload, burner)
	if exc != "" {
		panic(exc)
	}

	fee := common.GetInt(ctx, withdrawFeeKey)
	if fee > 0 {
		ok := gas.Transfer(burner, runtime.GetExecutingScriptHash(), fee, []byte(feePaymentMarker))
		if !ok {
			panic(vaultconst.ErrInsufficientWithdrawGas)
		}
	}

	supply := common.GetInt(ctx, totalSupplyKey)
	assetsTotal := common.GetInt(ctx, totalAssetsKey)
	if amount > supply {
		panic("burn exceeds outstanding shares")
	}

	assets := amount * assetsTotal / supply

	if assets < intent.MinWithdraw {
		out := encodeOutcome(vaultconst.CodeFailedMinWithdraw, intent.QueryID, burner, assets,
			intent.Failure, intent.HasFailure, customPayload, withdrawFailComment)

		// Undo the burn that already happened at the share token.
		contract.Call(st, "mint", contract.All, burner, amount, out)

		runtime.Notify("VaultNotification", intent.QueryID, vaultconst.CodeFailedMinWithdraw, burner, out)
		return
	}

	supply -= amount
	assetsTotal -= assets
	storage.Put(ctx, totalSupplyKey, supply)
	storage.Put(ctx, totalAssetsKey, assetsTotal)

	kind := getAssetKind(ctx)
	out := encodeOutcome(vaultconst.CodeSuccess, intent.QueryID, burner, assets,
		intent.Success, intent.HasSuccess, customPayload, withdrawOkComment)

	releaseAsset(kind, intent.Receiver, assets, out)

	runtime.Notify("Withdrawn", burner, intent.Receiver, kind.Token, assets, amount, supply, assetsTotal)
	runtime.Notify("VaultNotification", intent.QueryID, vaultconst.CodeSuccess, burner, out)
}

// ProvideQuote responds with a takeQuote call to the receiver carrying the
// current ledger snapshot. The asset argument exists for request parity with
// multi-asset quoters and is ignored: a single-asset vault always quotes its
// own asset. The method never mutates the ledger; the snapshot always
// reflects the state at the moment of processing.
func ProvideQuote(queryID int, asset any, receiver interop.Hash160, forwardPayload []byte) {
	ctx := storage.GetReadOnlyContext()

	initiator := runtime.GetCallingScriptHash()
	fee := common.GetInt(ctx, quoteFeeKey)
	if fee > 0 {
		ok := gas.Transfer(initiator, runtime.GetExecutingScriptHash(), fee, []byte(feePaymentMarker))
		if !ok {
			panic(vaultconst.ErrInsufficientQuoteGas)
		}
	}

	supply := common.GetInt(ctx, totalSupplyKey)
	assets := common.GetInt(ctx, totalAssetsKey)

	contract.Call(receiver, "takeQuote", contract.All,
		queryID, initiator, nil, supply, assets, runtime.GetTime(), forwardPayload)

	runtime.Notify("Quoted", initiator, receiver, getAssetKind(ctx).Token, supply, assets)
}

// releaseAsset moves amount of the custodied asset from the vault to the
// given account through the configured transport, with the outcome envelope
// attached as transfer data.
func releaseAsset(kind AssetKind, to interop.Hash160, amount int, out []byte) {
	vaultH := runtime.GetExecutingScriptHash()

	switch kind.Kind {
	case vaultconst.Native:
		if !gas.Transfer(vaultH, to, amount, out) {
			panic("failed to transfer funds, aborting")
		}
	case vaultconst.Fungible:
		ok := contract.Call(kind.Token, "transfer", contract.All, vaultH, to, amount, out).(bool)
		if !ok {
			panic("failed to transfer funds, aborting")
		}
	default:
		ok := contract.Call(kind.Token, "transfer", contract.All, vaultH, to, kind.CurrencyID, amount, out).(bool)
		if !ok {
			panic("failed to transfer funds, aborting")
		}
	}
}

// SetFees replaces the operation fee table. It can be invoked only by the
// vault admin.
func SetFees(depositFee, withdrawFee, quoteFee int) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	if depositFee < 0 || withdrawFee < 0 || quoteFee < 0 {
		panic("negative fee")
	}

	storage.Put(ctx, depositFeeKey, depositFee)
	storage.Put(ctx, withdrawFeeKey, withdrawFee)
	storage.Put(ctx, quoteFeeKey, quoteFee)
	runtime.Log("vault fee table updated")
}

// SetContent replaces the opaque vault metadata blob. It can be invoked only
// by the vault admin.
func SetContent(content []byte) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	storage.Put(ctx, contentKey, content)
}

// Admin returns the vault admin account.
func Admin() interop.Hash160 {
	return getAdmin(storage.GetReadOnlyContext())
}

// Asset returns the custodied asset description.
func Asset() AssetKind {
	return getAssetKind(storage.GetReadOnlyContext())
}

// ShareToken returns the share token contract address.
func ShareToken() interop.Hash160 {
	return getShareToken(storage.GetReadOnlyContext())
}

// Content returns the opaque vault metadata blob.
func Content() []byte {
	data := storage.Get(storage.GetReadOnlyContext(), contentKey)
	if data == nil {
		return nil
	}
	return data.([]byte)
}

// TotalAssets returns the amount of asset units in vault custody.
func TotalAssets() int {
	return common.GetInt(storage.GetReadOnlyContext(), totalAssetsKey)
}

// TotalSupply returns the amount of shares outstanding.
func TotalSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), totalSupplyKey)
}

// ConvertToShares previews the shares minted for a deposit of the given
// amount at the current ledger state, before fees.
func ConvertToShares(amount int) int {
	if amount < 0 {
		panic(vaultconst.ErrInvalidDepositAmount)
	}

	ctx := storage.GetReadOnlyContext()
	supply := common.GetInt(ctx, totalSupplyKey)
	if supply == 0 {
		return amount
	}
	return amount * supply / common.GetInt(ctx, totalAssetsKey)
}

// ConvertToAssets previews the assets released for burning the given number
// of shares at the current ledger state.
func ConvertToAssets(shares int) int {
	if shares < 0 {
		panic(vaultconst.ErrInvalidBurnAmount)
	}

	ctx := storage.GetReadOnlyContext()
	supply := common.GetInt(ctx, totalSupplyKey)
	if supply == 0 {
		return shares
	}
	return shares * common.GetInt(ctx, totalAssetsKey) / supply
}

// PreviewWithdraw is an alias of [ConvertToAssets].
func PreviewWithdraw(shares int) int {
	return ConvertToAssets(shares)
}

// MaxDeposit returns the maximum amount accepted by a single deposit.
func MaxDeposit() int {
	return vaultconst.MaxDeposit
}

// DepositFee returns the fixed protocol fee of a deposit.
func DepositFee() int {
	return common.GetInt(storage.GetReadOnlyContext(), depositFeeKey)
}

// WithdrawFee returns the fixed protocol fee of a withdrawal.
func WithdrawFee() int {
	return common.GetInt(storage.GetReadOnlyContext(), withdrawFeeKey)
}

// QuoteFee returns the fixed protocol fee of a quote request.
func QuoteFee() int {
	return common.GetInt(storage.GetReadOnlyContext(), quoteFeeKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

func getShareToken(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, shareTokenKey).(interop.Hash160)
}

func getAssetKind(ctx storage.Context) AssetKind {
	data := storage.Get(ctx, assetKindKey)
	return std.Deserialize(data.([]byte)).(AssetKind)
}
