package sharetoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/vault-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "VSH"
	decimals    = 8
	circulation = "Circulation"

	accPrefix = 'a'

	adminKey = 'm'
	vaultKey = 'v'
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin interop.Hash160
	})

	if len(args.admin) != interop.Hash160Len {
		panic("incorrect admin hash length")
	}

	storage.Put(ctx, adminKey, args.admin)
	runtime.Log("share token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the admin.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("share token contract updated")
}

// SetVault registers the controlling vault contract. It can be invoked only
// by the admin and only once: mint and burn accounting belongs to a single
// vault for the token's lifetime.
func SetVault(vault interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(vault) != interop.Hash160Len {
		panic("incorrect vault hash length")
	}
	if storage.Get(ctx, vaultKey) != nil {
		panic("vault is already set")
	}

	storage.Put(ctx, vaultKey, vault)
	runtime.Log("vault contract registered")
}

// Vault returns the controlling vault contract address.
func Vault() interop.Hash160 {
	return getVault(storage.GetReadOnlyContext())
}

// Symbol is a NEP-17 standard method that returns the share ticker symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of vault
// shares.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the total amount of
// shares outstanding.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the share balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers shares from one
// account to another. It can be invoked only by the account owner.
//
// It produces a Transfer notification. If the receiver is a deployed
// contract, its onNEP17Payment method is invoked with the attached data.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return transfer(ctx, from, to, amount, data)
}

// Mint credits the given account with newly issued shares. It can be
// invoked only by the controlling vault, which calls it on every committed
// deposit and on every compensated withdrawal. The vault's outcome envelope
// rides in data and is forwarded to contract receivers.
//
// It produces a Transfer notification with empty sender.
func Mint(to interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()
	checkVaultCaller(ctx)

	if amount < 0 {
		panic("negative amount")
	}
	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}

	addToBalance(ctx, to, amount)
	storage.Put(ctx, token.CirculationKey, token.getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	postPayment(nil, to, amount, data)
}

// Burn destroys the caller's shares and notifies the controlling vault
// with the attached withdrawal payload. The shares are debited before the
// vault runs: the vault only ever learns about a completed burn and mints
// the shares back if it cannot honor the withdrawal.
//
// It produces a Transfer notification with empty receiver.
func Burn(from interop.Hash160, amount int, customPayload []byte) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(from)

	if amount <= 0 {
		panic("invalid burn amount")
	}

	balance := getBalance(ctx, from)
	if balance < amount {
		panic("not enough shares")
	}

	setBalance(ctx, from, balance-amount)

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, token.CirculationKey, supply-amount)

	runtime.Notify("Transfer", from, interop.Hash160(nil), amount)

	vault := getVault(ctx)
	contract.Call(vault, "onSharesBurned", contract.All, from, amount, customPayload)
}

// Holders returns an iterator over all accounts with a non-zero share
// balance. Iteration is through key-value pairs, where key is the account
// and value is its balance.
func Holders() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{accPrefix}, storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func transfer(ctx storage.Context, from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		runtime.Log("bad script hashes")
		return false
	}

	if !runtime.CheckWitness(from) && !runtime.GetCallingScriptHash().Equals(from) {
		runtime.Log("transfer not witnessed by the owner")
		return false
	}

	balance := getBalance(ctx, from)
	if balance < amount {
		runtime.Log("not enough shares")
		return false
	}

	setBalance(ctx, from, balance-amount)
	addToBalance(ctx, to, amount)

	runtime.Notify("Transfer", from, to, amount)
	postPayment(from, to, amount, data)

	return true
}

// postPayment invokes onNEP17Payment on contract receivers, so a share
// transfer delivers its attached data the same way an asset transfer does.
func postPayment(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func checkVaultCaller(ctx storage.Context) {
	vault := getVault(ctx)
	if !runtime.GetCallingScriptHash().Equals(vault) {
		panic("only the vault can mint")
	}
}

func getVault(ctx storage.Context) interop.Hash160 {
	vault := storage.Get(ctx, vaultKey)
	if vault == nil {
		panic("vault is not set")
	}
	return vault.(interop.Hash160)
}

// getSupply gets the token circulation value from the contract storage.
func (t Token) getSupply(ctx storage.Context) int {
	return common.GetInt(ctx, t.CirculationKey)
}

func getBalance(ctx storage.Context, holder interop.Hash160) int {
	return common.GetInt(ctx, append([]byte{accPrefix}, holder...))
}

func setBalance(ctx storage.Context, holder interop.Hash160, balance int) {
	key := append([]byte{accPrefix}, holder...)
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}

func addToBalance(ctx storage.Context, holder interop.Hash160, amount int) {
	if amount != 0 {
		setBalance(ctx, holder, getBalance(ctx, holder)+amount)
	}
}
