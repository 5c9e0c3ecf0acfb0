package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	"github.com/nspcc-dev/vault-contract/internal/proto"
)

// Intent records are protobuf-wire byte strings prefixed with a varint tag
// discriminating the operation (vaultconst.DepositTag/WithdrawTag). Field
// numbers are shared between the two records:
//
//	1: queryID   VARINT
//	2: receiver  LEN (Hash160)
//	3: minShares VARINT (deposit) / minWithdraw VARINT (withdrawal)
//	4: success callback LEN
//	5: failure callback LEN
//
// callback:
//
//	1: includeBody VARINT (bool)
//	2: payload     LEN
//
// All fields are optional; unknown fields are rejected.
type (
	callback struct {
		IncludeBody bool
		Payload     []byte
	}

	depositIntent struct {
		QueryID    int
		Receiver   interop.Hash160
		MinShares  int
		Success    callback
		HasSuccess bool
		Failure    callback
		HasFailure bool
	}

	withdrawIntent struct {
		QueryID     int
		Receiver    interop.Hash160
		MinWithdraw int
		Success     callback
		HasSuccess  bool
		Failure     callback
		HasFailure  bool
	}
)

const (
	fldQueryID  = 1
	fldReceiver = 2
	fldMinOut   = 3
	fldSuccess  = 4
	fldFailure  = 5

	fldCbIncludeBody = 1
	fldCbPayload     = 2
)

// decodeDepositIntent parses a deposit intent record. Empty input yields the
// defaults: credit the initiator, no slippage floor, no callbacks.
func decodeDepositIntent(b []byte, initiator interop.Hash160) (depositIntent, string) {
	var in depositIntent
	in.Receiver = initiator

	if len(b) == 0 {
		return in, ""
	}

	tag, r, e := proto.ReadUint32(b)
	if e != "" {
		return in, e
	}
	if tag != vaultconst.DepositTag {
		return in, "unexpected deposit payload tag " + std.Itoa10(int(tag))
	}
	b = b[r:]

	for len(b) > 0 {
		num, typ, r, e := proto.ReadTag(b)
		if e != "" {
			return in, e
		}
		b = b[r:]

		switch num {
		case fldQueryID:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeVARINT); e != "" {
				return in, e
			}
			v, n, e := proto.ReadUint64(b)
			if e != "" {
				return in, e
			}
			in.QueryID = int(v)
			b = b[n:]
		case fldReceiver:
			rcv, rest, e := readHash160(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Receiver = rcv
			b = rest
		case fldMinOut:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeVARINT); e != "" {
				return in, e
			}
			v, n, e := proto.ReadUint64(b)
			if e != "" {
				return in, e
			}
			in.MinShares = int(v)
			b = b[n:]
		case fldSuccess:
			cb, rest, e := readCallback(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Success = cb
			in.HasSuccess = true
			b = rest
		case fldFailure:
			cb, rest, e := readCallback(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Failure = cb
			in.HasFailure = true
			b = rest
		default:
			return in, "unsupported intent field #" + std.Itoa10(num)
		}
	}

	return in, ""
}

// decodeWithdrawIntent parses a withdrawal intent record. The receiver
// defaults to the burner; everything else defaults like in deposits.
func decodeWithdrawIntent(b []byte, burner interop.Hash160) (withdrawIntent, string) {
	var in withdrawIntent
	in.Receiver = burner

	tag, r, e := proto.ReadUint32(b)
	if e != "" {
		return in, e
	}
	if tag != vaultconst.WithdrawTag {
		return in, "unexpected withdrawal payload tag " + std.Itoa10(int(tag))
	}
	b = b[r:]

	for len(b) > 0 {
		num, typ, r, e := proto.ReadTag(b)
		if e != "" {
			return in, e
		}
		b = b[r:]

		switch num {
		case fldQueryID:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeVARINT); e != "" {
				return in, e
			}
			v, n, e := proto.ReadUint64(b)
			if e != "" {
				return in, e
			}
			in.QueryID = int(v)
			b = b[n:]
		case fldReceiver:
			rcv, rest, e := readHash160(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Receiver = rcv
			b = rest
		case fldMinOut:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeVARINT); e != "" {
				return in, e
			}
			v, n, e := proto.ReadUint64(b)
			if e != "" {
				return in, e
			}
			in.MinWithdraw = int(v)
			b = b[n:]
		case fldSuccess:
			cb, rest, e := readCallback(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Success = cb
			in.HasSuccess = true
			b = rest
		case fldFailure:
			cb, rest, e := readCallback(num, typ, b)
			if e != "" {
				return in, e
			}
			in.Failure = cb
			in.HasFailure = true
			b = rest
		default:
			return in, "unsupported intent field #" + std.Itoa10(num)
		}
	}

	return in, ""
}

func readHash160(num, typ int, b []byte) (interop.Hash160, []byte, string) {
	if e := proto.CheckFieldType(num, typ, proto.FieldTypeLEN); e != "" {
		return nil, nil, e
	}
	n, r, e := proto.ReadSizeLEN(b)
	if e != "" {
		return nil, nil, e
	}
	b = b[r:]
	if n != interop.Hash160Len {
		return nil, nil, "invalid account length " + std.Itoa10(n)
	}
	return interop.Hash160(b[:n]), b[n:], ""
}

func readCallback(num, typ int, b []byte) (callback, []byte, string) {
	var cb callback

	if e := proto.CheckFieldType(num, typ, proto.FieldTypeLEN); e != "" {
		return cb, nil, e
	}
	n, r, e := proto.ReadSizeLEN(b)
	if e != "" {
		return cb, nil, e
	}
	b = b[r:]
	sub := b[:n]
	rest := b[n:]

	for len(sub) > 0 {
		num, typ, r, e := proto.ReadTag(sub)
		if e != "" {
			return cb, nil, e
		}
		sub = sub[r:]

		switch num {
		case fldCbIncludeBody:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeVARINT); e != "" {
				return cb, nil, e
			}
			v, n, e := proto.ReadUint64(sub)
			if e != "" {
				return cb, nil, e
			}
			cb.IncludeBody = v != 0
			sub = sub[n:]
		case fldCbPayload:
			if e := proto.CheckFieldType(num, typ, proto.FieldTypeLEN); e != "" {
				return cb, nil, e
			}
			n, r, e := proto.ReadSizeLEN(sub)
			if e != "" {
				return cb, nil, e
			}
			sub = sub[r:]
			cb.Payload = sub[:n]
			sub = sub[n:]
		default:
			return cb, nil, "unsupported callback field #" + std.Itoa10(num)
		}
	}

	return cb, rest, ""
}

// encodeOutcome builds the serialized notification envelope of a finished
// operation. Callers without an explicit callback get a human-readable
// comment instead of the payload.
func encodeOutcome(code, queryID int, initiator interop.Hash160, amount int,
	cb callback, hasCb bool, body []byte, defaultComment string) []byte {
	o := Outcome{
		QueryID:   queryID,
		Code:      code,
		Initiator: initiator,
		Amount:    amount,
	}

	if hasCb {
		o.Payload = cb.Payload
		if cb.IncludeBody {
			o.InBody = body
		}
	} else {
		o.Payload = []byte(defaultComment)
	}

	return std.Serialize(o)
}
