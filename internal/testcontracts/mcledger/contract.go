package mcledger

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// A minimal multi-currency ledger keeping balances per (currency id,
// account) pair, used as the side-channel transport in vault tests.
// Contract receivers are notified through onMultiCurrencyPayment with the
// full list of moved currency ids.

const accPrefix = 'a'

// Mint issues amount of the given currency to the account with no access
// control.
func Mint(to interop.Hash160, currencyID, amount int) {
	if amount < 0 {
		panic("negative amount")
	}
	ctx := storage.GetContext()
	setBalance(ctx, to, currencyID, getBalance(ctx, to, currencyID)+amount)
}

// BalanceOf returns the balance of the given currency held by the account.
func BalanceOf(account interop.Hash160, currencyID int) int {
	return getBalance(storage.GetReadOnlyContext(), account, currencyID)
}

// Transfer moves a single currency between accounts.
func Transfer(from, to interop.Hash160, currencyID, amount int, data any) bool {
	return transferMulti(from, to, []int{currencyID}, []int{amount}, data)
}

// TransferMulti moves several currencies between accounts in one envelope.
func TransferMulti(from, to interop.Hash160, currencyIDs []int, amounts []int, data any) bool {
	return transferMulti(from, to, currencyIDs, amounts, data)
}

func transferMulti(from, to interop.Hash160, currencyIDs []int, amounts []int, data any) bool {
	if len(currencyIDs) != len(amounts) {
		panic("currency/amount length mismatch")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		return false
	}
	if !runtime.CheckWitness(from) && !runtime.GetCallingScriptHash().Equals(from) {
		return false
	}

	ctx := storage.GetContext()
	for i := 0; i < len(currencyIDs); i++ {
		if amounts[i] < 0 {
			panic("negative amount")
		}
		balance := getBalance(ctx, from, currencyIDs[i])
		if balance < amounts[i] {
			return false
		}
		setBalance(ctx, from, currencyIDs[i], balance-amounts[i])
		setBalance(ctx, to, currencyIDs[i], getBalance(ctx, to, currencyIDs[i])+amounts[i])
	}

	if management.GetContract(to) != nil {
		contract.Call(to, "onMultiCurrencyPayment", contract.All, from, currencyIDs, amounts, data)
	}

	return true
}

func getBalance(ctx storage.Context, holder interop.Hash160, currencyID int) int {
	val := storage.Get(ctx, balanceKey(holder, currencyID))
	if val == nil {
		return 0
	}
	return val.(int)
}

func setBalance(ctx storage.Context, holder interop.Hash160, currencyID, balance int) {
	key := balanceKey(holder, currencyID)
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}

func balanceKey(holder interop.Hash160, currencyID int) []byte {
	key := append([]byte{accPrefix}, holder...)
	return append(key, std.Serialize(currencyID)...)
}
