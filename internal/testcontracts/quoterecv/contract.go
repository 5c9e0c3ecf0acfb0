package quoterecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type Quote struct {
	QueryID     int
	Initiator   interop.Hash160
	TotalSupply int
	TotalAssets int
	Timestamp   int
	Payload     []byte
}

type Payment struct {
	From   interop.Hash160
	Amount int
	Data   []byte
}

const (
	quoteKey   = "quote"
	paymentKey = "payment"
)

// TakeQuote records the ledger snapshot pushed by a vault.
func TakeQuote(queryID int, initiator interop.Hash160, asset any, totalSupply, totalAssets, timestamp int, forwardPayload []byte) {
	storage.Put(storage.GetContext(), quoteKey, std.Serialize(Quote{
		QueryID:     queryID,
		Initiator:   initiator,
		TotalSupply: totalSupply,
		TotalAssets: totalAssets,
		Timestamp:   timestamp,
		Payload:     forwardPayload,
	}))
}

// RequestQuote asks the given vault for a quote, making this contract the
// initiator of the exchange.
func RequestQuote(vault interop.Hash160, queryID int, forwardPayload []byte) {
	contract.Call(vault, "provideQuote", contract.All,
		queryID, nil, runtime.GetExecutingScriptHash(), forwardPayload)
}

// OnNEP17Payment records the last received payment together with its data,
// so tests can observe outcome envelopes delivered with funds.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	var body []byte
	if data != nil {
		body = data.([]byte)
	}
	storage.Put(storage.GetContext(), paymentKey, std.Serialize(Payment{
		From:   from,
		Amount: amount,
		Data:   body,
	}))
}

// LastQuote returns the most recently recorded quote.
func LastQuote() Quote {
	val := storage.Get(storage.GetReadOnlyContext(), quoteKey)
	if val == nil {
		return Quote{}
	}
	return std.Deserialize(val.([]byte)).(Quote)
}

// LastPayment returns the most recently recorded payment.
func LastPayment() Payment {
	val := storage.Get(storage.GetReadOnlyContext(), paymentKey)
	if val == nil {
		return Payment{}
	}
	return std.Deserialize(val.([]byte)).(Payment)
}

func Verify() bool {
	return true
}
