package vault

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	"github.com/nspcc-dev/vault-contract/internal/proto"
)

// Intent field numbers, shared between deposit and withdrawal records.
const (
	fieldQueryID  = 1
	fieldReceiver = 2
	fieldMinOut   = 3
	fieldSuccess  = 4
	fieldFailure  = 5

	fieldCbIncludeBody = 1
	fieldCbPayload     = 2
)

// Callback describes where a counterparty wants the outcome of its operation
// delivered: an opaque payload echoed back verbatim and, optionally, the
// original request body.
type Callback struct {
	IncludeBody bool
	Payload     []byte
}

// DepositIntent is the client-side form of the record attached to deposit
// transfers as transfer data. The zero value requests a deposit credited to
// the transfer sender with no slippage floor and no callbacks.
type DepositIntent struct {
	QueryID   uint64
	Receiver  *util.Uint160
	MinShares uint64
	Success   *Callback
	Failure   *Callback
}

// WithdrawIntent is the client-side form of the record passed to the share
// token burn as custom payload. Unlike deposits, withdrawals always require
// an explicit intent.
type WithdrawIntent struct {
	QueryID     uint64
	Receiver    *util.Uint160
	MinWithdraw uint64
	Success     *Callback
	Failure     *Callback
}

// Encode returns the wire form of the deposit intent understood by the Vault
// contract payment callbacks.
func (i DepositIntent) Encode() []byte {
	return encodeIntent(vaultconst.DepositTag, i.QueryID, i.Receiver, i.MinShares, i.Success, i.Failure)
}

// Encode returns the wire form of the withdrawal intent understood by the
// Vault contract burn callback.
func (i WithdrawIntent) Encode() []byte {
	return encodeIntent(vaultconst.WithdrawTag, i.QueryID, i.Receiver, i.MinWithdraw, i.Success, i.Failure)
}

func encodeIntent(opTag uint64, queryID uint64, receiver *util.Uint160, minOut uint64, success, failure *Callback) []byte {
	var cbSuccess, cbFailure []byte
	if success != nil {
		cbSuccess = encodeCallback(*success)
	}
	if failure != nil {
		cbFailure = encodeCallback(*failure)
	}

	sz := proto.SizeVarint(opTag)
	if queryID != 0 {
		sz += proto.SizeTag(fieldQueryID) + proto.SizeVarint(queryID)
	}
	if receiver != nil {
		sz += proto.SizeTag(fieldReceiver) + proto.SizeLEN(util.Uint160Size)
	}
	if minOut != 0 {
		sz += proto.SizeTag(fieldMinOut) + proto.SizeVarint(minOut)
	}
	if success != nil {
		sz += proto.SizeTag(fieldSuccess) + proto.SizeLEN(len(cbSuccess))
	}
	if failure != nil {
		sz += proto.SizeTag(fieldFailure) + proto.SizeLEN(len(cbFailure))
	}

	b := make([]byte, sz)
	off := proto.PutUvarint(b, 0, opTag)
	if queryID != 0 {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldQueryID, proto.FieldTypeVARINT))
		off += proto.PutUvarint(b, off, queryID)
	}
	if receiver != nil {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldReceiver, proto.FieldTypeLEN))
		off += proto.PutUvarint(b, off, util.Uint160Size)
		off += copy(b[off:], receiver.BytesBE())
	}
	if minOut != 0 {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldMinOut, proto.FieldTypeVARINT))
		off += proto.PutUvarint(b, off, minOut)
	}
	if success != nil {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldSuccess, proto.FieldTypeLEN))
		off += proto.PutUvarint(b, off, uint64(len(cbSuccess)))
		off += copy(b[off:], cbSuccess)
	}
	if failure != nil {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldFailure, proto.FieldTypeLEN))
		off += proto.PutUvarint(b, off, uint64(len(cbFailure)))
		off += copy(b[off:], cbFailure)
	}

	return b
}

func encodeCallback(cb Callback) []byte {
	sz := 0
	if cb.IncludeBody {
		sz += proto.SizeTag(fieldCbIncludeBody) + proto.SizeVarint(1)
	}
	if len(cb.Payload) > 0 {
		sz += proto.SizeTag(fieldCbPayload) + proto.SizeLEN(len(cb.Payload))
	}

	b := make([]byte, sz)
	off := 0
	if cb.IncludeBody {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldCbIncludeBody, proto.FieldTypeVARINT))
		off += proto.PutUvarint(b, off, 1)
	}
	if len(cb.Payload) > 0 {
		off += proto.PutUvarint(b, off, proto.EncodeTag(fieldCbPayload, proto.FieldTypeLEN))
		off += proto.PutUvarint(b, off, uint64(len(cb.Payload)))
		off += copy(b[off:], cb.Payload)
	}

	return b
}

// Outcome is the deserialized form of the envelope the Vault contract
// attaches to result transfers and VaultNotification events.
type Outcome struct {
	QueryID   *big.Int
	Code      *big.Int
	Initiator util.Uint160
	Amount    *big.Int
	Payload   []byte
	InBody    []byte
}

// ParseOutcome decodes the serialized outcome envelope taken from transfer
// data or from the payload field of a VaultNotification event.
func ParseOutcome(b []byte) (*Outcome, error) {
	item, err := stackitem.Deserialize(b)
	if err != nil {
		return nil, fmt.Errorf("invalid outcome envelope: %w", err)
	}

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, fmt.Errorf("unexpected outcome envelope of type %s", item.Type())
	}
	if len(arr) != 6 {
		return nil, fmt.Errorf("wrong number of outcome fields: %d", len(arr))
	}

	var res Outcome
	res.QueryID, err = arr[0].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field QueryID: %w", err)
	}
	res.Code, err = arr[1].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Code: %w", err)
	}

	acc, err := arr[2].TryBytes()
	if err != nil {
		return nil, fmt.Errorf("field Initiator: %w", err)
	}
	res.Initiator, err = util.Uint160DecodeBytesBE(acc)
	if err != nil {
		return nil, fmt.Errorf("field Initiator: %w", err)
	}

	res.Amount, err = arr[3].TryInteger()
	if err != nil {
		return nil, fmt.Errorf("field Amount: %w", err)
	}
	res.Payload, err = optBytes(arr[4])
	if err != nil {
		return nil, fmt.Errorf("field Payload: %w", err)
	}
	res.InBody, err = optBytes(arr[5])
	if err != nil {
		return nil, fmt.Errorf("field InBody: %w", err)
	}

	return &res, nil
}

func optBytes(item stackitem.Item) ([]byte, error) {
	if item.Type() == stackitem.AnyT && item.Value() == nil {
		return nil, nil
	}
	return item.TryBytes()
}
