// Package vault contains RPC wrappers for Vault contract.
package vault

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// VaultAssetKind is a contract-specific vault.AssetKind type used by its methods.
type VaultAssetKind struct {
	Kind *big.Int
	Token util.Uint160
	CurrencyID *big.Int
}

// DepositedEvent represents "Deposited" event emitted by the contract.
type DepositedEvent struct {
	Initiator util.Uint160
	Receiver util.Uint160
	Asset util.Uint160
	Amount *big.Int
	Shares *big.Int
	TotalSupply *big.Int
	TotalAssets *big.Int
}

// WithdrawnEvent represents "Withdrawn" event emitted by the contract.
type WithdrawnEvent struct {
	Initiator util.Uint160
	Receiver util.Uint160
	Asset util.Uint160
	Amount *big.Int
	Shares *big.Int
	TotalSupply *big.Int
	TotalAssets *big.Int
}

// QuotedEvent represents "Quoted" event emitted by the contract.
type QuotedEvent struct {
	Initiator util.Uint160
	Receiver util.Uint160
	Asset util.Uint160
	TotalSupply *big.Int
	TotalAssets *big.Int
}

// VaultNotificationEvent represents "VaultNotification" event emitted by the contract.
type VaultNotificationEvent struct {
	QueryID *big.Int
	ResultCode *big.Int
	Initiator util.Uint160
	Payload []byte
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// Asset invokes `asset` method of contract.
func (c *ContractReader) Asset() (*VaultAssetKind, error) {
	return itemToVaultAssetKind(unwrap.Item(c.invoker.Call(c.hash, "asset")))
}

// Content invokes `content` method of contract.
func (c *ContractReader) Content() ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "content"))
}

// ConvertToAssets invokes `convertToAssets` method of contract.
func (c *ContractReader) ConvertToAssets(shares *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToAssets", shares))
}

// ConvertToShares invokes `convertToShares` method of contract.
func (c *ContractReader) ConvertToShares(amount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToShares", amount))
}

// DepositFee invokes `depositFee` method of contract.
func (c *ContractReader) DepositFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "depositFee"))
}

// MaxDeposit invokes `maxDeposit` method of contract.
func (c *ContractReader) MaxDeposit() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxDeposit"))
}

// PreviewWithdraw invokes `previewWithdraw` method of contract.
func (c *ContractReader) PreviewWithdraw(shares *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewWithdraw", shares))
}

// QuoteFee invokes `quoteFee` method of contract.
func (c *ContractReader) QuoteFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "quoteFee"))
}

// ShareToken invokes `shareToken` method of contract.
func (c *ContractReader) ShareToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "shareToken"))
}

// TotalAssets invokes `totalAssets` method of contract.
func (c *ContractReader) TotalAssets() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalAssets"))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// WithdrawFee invokes `withdrawFee` method of contract.
func (c *ContractReader) WithdrawFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "withdrawFee"))
}

// OnMultiCurrencyPayment creates a transaction invoking `onMultiCurrencyPayment` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnMultiCurrencyPayment(from util.Uint160, currencyIDs []*big.Int, amounts []*big.Int, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onMultiCurrencyPayment", from, currencyIDs, amounts, data)
}

// OnMultiCurrencyPaymentTransaction creates a transaction invoking `onMultiCurrencyPayment` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnMultiCurrencyPaymentTransaction(from util.Uint160, currencyIDs []*big.Int, amounts []*big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onMultiCurrencyPayment", from, currencyIDs, amounts, data)
}

// OnMultiCurrencyPaymentUnsigned creates a transaction invoking `onMultiCurrencyPayment` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnMultiCurrencyPaymentUnsigned(from util.Uint160, currencyIDs []*big.Int, amounts []*big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onMultiCurrencyPayment", nil, from, currencyIDs, amounts, data)
}

// OnNEP17Payment creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnNEP17Payment(from util.Uint160, amount *big.Int, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentTransaction creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnNEP17PaymentTransaction(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentUnsigned creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnNEP17PaymentUnsigned(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onNEP17Payment", nil, from, amount, data)
}

// OnSharesBurned creates a transaction invoking `onSharesBurned` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnSharesBurned(burner util.Uint160, amount *big.Int, customPayload []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onSharesBurned", burner, amount, customPayload)
}

// OnSharesBurnedTransaction creates a transaction invoking `onSharesBurned` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnSharesBurnedTransaction(burner util.Uint160, amount *big.Int, customPayload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onSharesBurned", burner, amount, customPayload)
}

// OnSharesBurnedUnsigned creates a transaction invoking `onSharesBurned` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnSharesBurnedUnsigned(burner util.Uint160, amount *big.Int, customPayload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onSharesBurned", nil, burner, amount, customPayload)
}

// ProvideQuote creates a transaction invoking `provideQuote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ProvideQuote(queryID *big.Int, asset any, receiver util.Uint160, forwardPayload []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "provideQuote", queryID, asset, receiver, forwardPayload)
}

// ProvideQuoteTransaction creates a transaction invoking `provideQuote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ProvideQuoteTransaction(queryID *big.Int, asset any, receiver util.Uint160, forwardPayload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "provideQuote", queryID, asset, receiver, forwardPayload)
}

// ProvideQuoteUnsigned creates a transaction invoking `provideQuote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ProvideQuoteUnsigned(queryID *big.Int, asset any, receiver util.Uint160, forwardPayload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "provideQuote", nil, queryID, asset, receiver, forwardPayload)
}

// SetContent creates a transaction invoking `setContent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetContent(content []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setContent", content)
}

// SetContentTransaction creates a transaction invoking `setContent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetContentTransaction(content []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setContent", content)
}

// SetContentUnsigned creates a transaction invoking `setContent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetContentUnsigned(content []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setContent", nil, content)
}

// SetFees creates a transaction invoking `setFees` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFees(depositFee *big.Int, withdrawFee *big.Int, quoteFee *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFees", depositFee, withdrawFee, quoteFee)
}

// SetFeesTransaction creates a transaction invoking `setFees` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFeesTransaction(depositFee *big.Int, withdrawFee *big.Int, quoteFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFees", depositFee, withdrawFee, quoteFee)
}

// SetFeesUnsigned creates a transaction invoking `setFees` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetFeesUnsigned(depositFee *big.Int, withdrawFee *big.Int, quoteFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFees", nil, depositFee, withdrawFee, quoteFee)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToVaultAssetKind converts stack item into *VaultAssetKind.
func itemToVaultAssetKind(item stackitem.Item, err error) (*VaultAssetKind, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VaultAssetKind)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VaultAssetKind from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VaultAssetKind) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Kind, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Kind: %w", err)
	}

	index++
	res.Token, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Token: %w", err)
	}

	index++
	res.CurrencyID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrencyID: %w", err)
	}

	return nil
}

// DepositedEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposited" name from the provided [result.ApplicationLog].
func DepositedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Deposited" {
				continue
			}
			event := new(DepositedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositedEvent or
// returns an error if it's not possible to do to so.
func (e *DepositedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Initiator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Initiator: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Shares, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	index++
	e.TotalSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalSupply: %w", err)
	}

	index++
	e.TotalAssets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalAssets: %w", err)
	}

	return nil
}

// WithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdrawn" name from the provided [result.ApplicationLog].
func WithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdrawn" {
				continue
			}
			event := new(WithdrawnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawnEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Initiator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Initiator: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Shares, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	index++
	e.TotalSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalSupply: %w", err)
	}

	index++
	e.TotalAssets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalAssets: %w", err)
	}

	return nil
}

// QuotedEventsFromApplicationLog retrieves a set of all emitted events
// with "Quoted" name from the provided [result.ApplicationLog].
func QuotedEventsFromApplicationLog(log *result.ApplicationLog) ([]*QuotedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*QuotedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Quoted" {
				continue
			}
			event := new(QuotedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize QuotedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to QuotedEvent or
// returns an error if it's not possible to do to so.
func (e *QuotedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Initiator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Initiator: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.TotalSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalSupply: %w", err)
	}

	index++
	e.TotalAssets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalAssets: %w", err)
	}

	return nil
}

// VaultNotificationEventsFromApplicationLog retrieves a set of all emitted events
// with "VaultNotification" name from the provided [result.ApplicationLog].
func VaultNotificationEventsFromApplicationLog(log *result.ApplicationLog) ([]*VaultNotificationEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VaultNotificationEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VaultNotification" {
				continue
			}
			event := new(VaultNotificationEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VaultNotificationEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VaultNotificationEvent or
// returns an error if it's not possible to do to so.
func (e *VaultNotificationEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.QueryID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field QueryID: %w", err)
	}

	index++
	e.ResultCode, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ResultCode: %w", err)
	}

	index++
	e.Initiator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Initiator: %w", err)
	}

	index++
	e.Payload, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Payload: %w", err)
	}

	return nil
}
