package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// A plain NEP-17 token with an open mint, used as the custodied asset in
// vault tests.

const (
	accPrefix = 'a'
	supplyKey = 's'
)

func Symbol() string {
	return "TST"
}

func Decimals() int {
	return 8
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), supplyKey)
}

func BalanceOf(account interop.Hash160) int {
	return getInt(storage.GetReadOnlyContext(), append([]byte{accPrefix}, account...))
}

// Mint issues amount of tokens to the given account with no access control.
func Mint(to interop.Hash160, amount int) {
	if amount < 0 {
		panic("negative amount")
	}
	ctx := storage.GetContext()
	setBalance(ctx, to, getBalance(ctx, to)+amount)
	storage.Put(ctx, supplyKey, getInt(ctx, supplyKey)+amount)
	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		return false
	}
	if !runtime.CheckWitness(from) && !runtime.GetCallingScriptHash().Equals(from) {
		return false
	}

	ctx := storage.GetContext()
	balance := getBalance(ctx, from)
	if balance < amount {
		return false
	}

	setBalance(ctx, from, balance-amount)
	setBalance(ctx, to, getBalance(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

func getBalance(ctx storage.Context, holder interop.Hash160) int {
	return getInt(ctx, append([]byte{accPrefix}, holder...))
}

func setBalance(ctx storage.Context, holder interop.Hash160, balance int) {
	key := append([]byte{accPrefix}, holder...)
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}

func getInt(ctx storage.Context, key any) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return val.(int)
}
