package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/vault-contract/common"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	"github.com/nspcc-dev/vault-contract/internal/proto"
	vaultrpc "github.com/nspcc-dev/vault-contract/rpc/vault"
	"github.com/stretchr/testify/require"
)

func TestVault_Deploy(t *testing.T) {
	v := newNativeVault(t, vaultCfg{
		content:     []byte("genesis vault"),
		depositFee:  1,
		withdrawFee: 2,
		quoteFee:    3,
	})

	s, err := v.vault.TestInvoke(t, "admin")
	require.NoError(t, err)
	require.Equal(t, v.executor.CommitteeHash.BytesBE(), s.Top().Bytes())

	s, err = v.vault.TestInvoke(t, "shareToken")
	require.NoError(t, err)
	require.Equal(t, v.shareTokenHash.BytesBE(), s.Top().Bytes())

	s, err = v.vault.TestInvoke(t, "asset")
	require.NoError(t, err)
	kind := s.Top().Item().Value().([]stackitem.Item)
	require.Len(t, kind, 3)
	require.Equal(t, int64(vaultconst.Native), itemInt(t, kind[0]))
	require.Equal(t, v.gasHash.BytesBE(), itemBytes(t, kind[1]))
	require.Equal(t, int64(0), itemInt(t, kind[2]))

	s, err = v.vault.TestInvoke(t, "content")
	require.NoError(t, err)
	require.Equal(t, []byte("genesis vault"), s.Top().Bytes())

	require.Equal(t, int64(1), intValue(t, v.vault, "depositFee"))
	require.Equal(t, int64(2), intValue(t, v.vault, "withdrawFee"))
	require.Equal(t, int64(3), intValue(t, v.vault, "quoteFee"))
	require.Equal(t, int64(vaultconst.MaxDeposit), intValue(t, v.vault, "maxDeposit"))
	require.Equal(t, int64(common.Version), intValue(t, v.vault, "version"))

	v.checkTotals(t, 0, 0)
}

func TestVault_DeployValidation(t *testing.T) {
	e := newExecutor(t)
	stHash := deployContract(t, e, shareTokenPath, []any{e.CommitteeHash})
	c := neotest.CompileFile(t, e.CommitteeHash, vaultPath,
		path.Join(vaultPath, "config.yml"))

	args := func(admin any, kind int64, token any, currency, depositFee int64) []any {
		return []any{admin, kind, token, currency, stHash, []byte{}, depositFee, int64(0), int64(0)}
	}

	e.DeployContractCheckFAULT(t, c,
		args([]byte{1, 2, 3}, vaultconst.Native, util.Uint160{}, 0, 0),
		"incorrect admin hash length")
	e.DeployContractCheckFAULT(t, c,
		args(e.CommitteeHash, 42, util.Uint160{}, 0, 0),
		"unknown asset kind")
	e.DeployContractCheckFAULT(t, c,
		args(e.CommitteeHash, vaultconst.Fungible, []byte{1, 2, 3}, 0, 0),
		"incorrect asset token hash length")
	e.DeployContractCheckFAULT(t, c,
		args(e.CommitteeHash, vaultconst.SideChannel, stHash, -1, 0),
		"negative currency id")
	e.DeployContractCheckFAULT(t, c,
		args(e.CommitteeHash, vaultconst.Native, util.Uint160{}, 0, -1),
		"negative fee")

	e.DeployContract(t, c, args(e.CommitteeHash, vaultconst.Native, util.Uint160{}, 0, 0))
}

func TestVault_DepositNative(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	// No intent attached: credited to the sender 1:1.
	aer := v.depositGAS(t, user, 1000, nil)
	require.Equal(t, int64(1000), v.shareBalance(t, userH))
	v.checkTotals(t, 1000, 1000)
	require.Equal(t, int64(1000), v.gasBalance(t, v.vaultHash))

	dep := findNotification(t, aer, "Deposited")
	require.Len(t, dep, 7)
	require.Equal(t, userH.BytesBE(), itemBytes(t, dep[0]))
	require.Equal(t, userH.BytesBE(), itemBytes(t, dep[1]))
	require.Equal(t, v.gasHash.BytesBE(), itemBytes(t, dep[2]))
	require.Equal(t, int64(1000), itemInt(t, dep[3]))
	require.Equal(t, int64(1000), itemInt(t, dep[4]))
	require.Equal(t, int64(1000), itemInt(t, dep[5]))
	require.Equal(t, int64(1000), itemInt(t, dep[6]))

	note := findNotification(t, aer, "VaultNotification")
	require.Len(t, note, 4)
	require.Equal(t, int64(0), itemInt(t, note[0]))
	require.Equal(t, int64(vaultconst.CodeSuccess), itemInt(t, note[1]))
	require.Equal(t, userH.BytesBE(), itemBytes(t, note[2]))

	out, err := vaultrpc.ParseOutcome(itemBytes(t, note[3]))
	require.NoError(t, err)
	require.Equal(t, int64(0), out.QueryID.Int64())
	require.Equal(t, int64(vaultconst.CodeSuccess), out.Code.Int64())
	require.Equal(t, userH, out.Initiator)
	require.Equal(t, int64(1000), out.Amount.Int64())
	// No callback was requested, so the payload is a comment.
	require.Equal(t, []byte("vault: deposit completed"), out.Payload)
	require.Nil(t, out.InBody)

	t.Run("third-party receiver", func(t *testing.T) {
		recv := v.executor.NewAccount(t)
		recvH := recv.ScriptHash()

		intent := vaultrpc.DepositIntent{QueryID: 7, Receiver: &recvH}
		v.depositGAS(t, user, 500, intent.Encode())

		require.Equal(t, int64(500), v.shareBalance(t, recvH))
		require.Equal(t, int64(1000), v.shareBalance(t, userH))
		v.checkTotals(t, 1500, 1500)
	})

	t.Run("zero amount", func(t *testing.T) {
		inv := v.executor.NewInvoker(v.gasHash, user)
		inv.InvokeFail(t, "ABORT", "transfer", userH, v.vaultHash, int64(0), nil)
		v.checkTotals(t, 1500, 1500)
	})
}

func TestVault_SequentialDeposits(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)

	v.depositGAS(t, user, 3, nil)
	v.depositGAS(t, user, 7, nil)

	v.checkTotals(t, 10, 10)
	require.Equal(t, int64(10), v.shareBalance(t, user.ScriptHash()))

	require.Equal(t, int64(5), intValue(t, v.vault, "convertToShares", int64(5)))
	require.Equal(t, int64(5), intValue(t, v.vault, "convertToAssets", int64(5)))
	require.Equal(t, int64(5), intValue(t, v.vault, "previewWithdraw", int64(5)))
	require.Equal(t, int64(0), intValue(t, v.vault, "convertToShares", int64(0)))
}

func TestVault_DepositNativeFee(t *testing.T) {
	v := newNativeVault(t, vaultCfg{depositFee: 10})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	// The fee rides in the attached amount.
	v.depositGAS(t, user, 1000, nil)
	require.Equal(t, int64(990), v.shareBalance(t, userH))
	v.checkTotals(t, 990, 990)
	require.Equal(t, int64(1000), v.gasBalance(t, v.vaultHash))

	t.Run("attached amount below fee", func(t *testing.T) {
		inv := v.executor.NewInvoker(v.gasHash, user)
		inv.InvokeFail(t, "ABORT", "transfer", userH, v.vaultHash, int64(10), nil)
		v.checkTotals(t, 990, 990)
		require.Equal(t, int64(1000), v.gasBalance(t, v.vaultHash))
	})
}

func TestVault_DepositSlippage(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	other := v.executor.NewAccount(t)
	otherH := other.ScriptHash()

	v.depositGAS(t, user, 1000, nil)

	intent := vaultrpc.DepositIntent{
		QueryID:   3,
		MinShares: 200,
		Failure:   &vaultrpc.Callback{Payload: []byte("cb")},
	}
	aer := v.depositGAS(t, other, 100, intent.Encode())

	// Rejected and refunded, the ledger is untouched.
	require.Equal(t, int64(0), v.shareBalance(t, otherH))
	v.checkTotals(t, 1000, 1000)
	require.Equal(t, int64(1000), v.gasBalance(t, v.vaultHash))

	note := findNotification(t, aer, "VaultNotification")
	require.Equal(t, int64(3), itemInt(t, note[0]))
	require.Equal(t, int64(vaultconst.CodeFailedMinShares), itemInt(t, note[1]))
	require.Equal(t, otherH.BytesBE(), itemBytes(t, note[2]))

	out, err := vaultrpc.ParseOutcome(itemBytes(t, note[3]))
	require.NoError(t, err)
	require.Equal(t, int64(vaultconst.CodeFailedMinShares), out.Code.Int64())
	require.Equal(t, otherH, out.Initiator)
	require.Equal(t, int64(100), out.Amount.Int64())
	require.Equal(t, []byte("cb"), out.Payload)
}

func TestVault_DepositMalformedIntent(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()
	gasUser := v.executor.NewInvoker(v.gasHash, user)

	t.Run("tag mismatch", func(t *testing.T) {
		gasUser.InvokeFail(t, "ABORT", "transfer",
			userH, v.vaultHash, int64(100), vaultrpc.WithdrawIntent{QueryID: 1}.Encode())
	})

	t.Run("unknown field", func(t *testing.T) {
		body := vaultrpc.DepositIntent{QueryID: 1}.Encode()
		extra := make([]byte, proto.SizeTag(6)+proto.SizeVarint(1))
		off := proto.PutUvarint(extra, 0, proto.EncodeTag(6, proto.FieldTypeVARINT))
		proto.PutUvarint(extra, off, 1)

		gasUser.InvokeFail(t, "ABORT", "transfer",
			userH, v.vaultHash, int64(100), append(body, extra...))
	})

	t.Run("invalid receiver", func(t *testing.T) {
		body := vaultrpc.DepositIntent{}.Encode()
		bad := make([]byte, proto.SizeTag(2)+proto.SizeLEN(3))
		off := proto.PutUvarint(bad, 0, proto.EncodeTag(2, proto.FieldTypeLEN))
		off += proto.PutUvarint(bad, off, 3)
		copy(bad[off:], "abc")

		gasUser.InvokeFail(t, "ABORT", "transfer",
			userH, v.vaultHash, int64(100), append(body, bad...))
	})

	v.checkTotals(t, 0, 0)
}

func TestVault_DepositFungible(t *testing.T) {
	e := newExecutor(t)
	tokHash := deployContract(t, e, tokenPath, nil)
	v := deployVaultPair(t, e, vaultCfg{
		assetKind:  vaultconst.Fungible,
		assetToken: tokHash,
	})
	tok := e.CommitteeInvoker(tokHash)
	user := e.NewAccount(t)
	userH := user.ScriptHash()
	tokUser := e.NewInvoker(tokHash, user)

	tok.Invoke(t, stackitem.Null{}, "mint", userH, int64(5000))

	t.Run("missing forward payload", func(t *testing.T) {
		tokUser.InvokeFail(t, "ABORT", "transfer", userH, v.vaultHash, int64(1000), nil)
		// The whole transaction reverted, custody included.
		require.Equal(t, int64(5000), intValue(t, tok, "balanceOf", userH))
		v.checkTotals(t, 0, 0)
	})

	intent := vaultrpc.DepositIntent{QueryID: 1}
	tokUser.Invoke(t, stackitem.NewBool(true), "transfer",
		userH, v.vaultHash, int64(1000), intent.Encode())

	require.Equal(t, int64(1000), v.shareBalance(t, userH))
	v.checkTotals(t, 1000, 1000)
	require.Equal(t, int64(1000), intValue(t, tok, "balanceOf", v.vaultHash))
	require.Equal(t, int64(4000), intValue(t, tok, "balanceOf", userH))

	t.Run("native deposit rejected", func(t *testing.T) {
		gasUser := e.NewInvoker(v.gasHash, user)
		gasUser.InvokeFail(t, "ABORT", "transfer", userH, v.vaultHash, int64(100), nil)
	})

	t.Run("unregistered token rejected", func(t *testing.T) {
		// Share transfers knock on the same payment callback.
		stUser := e.NewInvoker(v.shareTokenHash, user)
		stUser.InvokeFail(t, "ABORT", "transfer",
			userH, v.vaultHash, int64(10), intent.Encode())
	})

	t.Run("withdrawal", func(t *testing.T) {
		wi := vaultrpc.WithdrawIntent{QueryID: 2}
		v.burnShares(t, user, 400, wi.Encode())

		require.Equal(t, int64(600), v.shareBalance(t, userH))
		v.checkTotals(t, 600, 600)
		require.Equal(t, int64(600), intValue(t, tok, "balanceOf", v.vaultHash))
		require.Equal(t, int64(4400), intValue(t, tok, "balanceOf", userH))
	})
}

func TestVault_DepositFungibleFee(t *testing.T) {
	t.Run("collected", func(t *testing.T) {
		e := newExecutor(t)
		tokHash := deployContract(t, e, tokenPath, nil)
		v := deployVaultPair(t, e, vaultCfg{
			assetKind:  vaultconst.Fungible,
			assetToken: tokHash,
			depositFee: 25,
		})
		user := e.NewAccount(t)
		userH := user.ScriptHash()

		e.CommitteeInvoker(tokHash).Invoke(t, stackitem.Null{}, "mint", userH, int64(5000))
		e.NewInvoker(tokHash, user).Invoke(t, stackitem.NewBool(true), "transfer",
			userH, v.vaultHash, int64(1000), vaultrpc.DepositIntent{}.Encode())

		// The fee is pulled in GAS on top of the full token amount.
		require.Equal(t, int64(1000), v.shareBalance(t, userH))
		v.checkTotals(t, 1000, 1000)
		require.Equal(t, int64(25), v.gasBalance(t, v.vaultHash))
	})

	t.Run("insufficient", func(t *testing.T) {
		e := newExecutor(t)
		tokHash := deployContract(t, e, tokenPath, nil)
		v := deployVaultPair(t, e, vaultCfg{
			assetKind:  vaultconst.Fungible,
			assetToken: tokHash,
			depositFee: 1_000_000_000_000, // far beyond any test account balance
		})
		tok := e.CommitteeInvoker(tokHash)
		user := e.NewAccount(t)
		userH := user.ScriptHash()

		tok.Invoke(t, stackitem.Null{}, "mint", userH, int64(5000))

		// Custody has already moved, so the failure compensates instead
		// of aborting.
		h := e.NewInvoker(tokHash, user).Invoke(t, stackitem.NewBool(true), "transfer",
			userH, v.vaultHash, int64(1000), vaultrpc.DepositIntent{QueryID: 9}.Encode())
		aer := e.CheckHalt(t, h)

		require.Equal(t, int64(0), v.shareBalance(t, userH))
		v.checkTotals(t, 0, 0)
		require.Equal(t, int64(5000), intValue(t, tok, "balanceOf", userH))
		require.Equal(t, int64(0), intValue(t, tok, "balanceOf", v.vaultHash))

		note := findNotification(t, aer, "VaultNotification")
		require.Equal(t, int64(9), itemInt(t, note[0]))
		require.Equal(t, int64(vaultconst.CodeInsufficientDepositGas), itemInt(t, note[1]))
	})
}

func TestVault_DepositSideChannel(t *testing.T) {
	e := newExecutor(t)
	mcHash := deployContract(t, e, mcLedgerPath, nil)
	v := deployVaultPair(t, e, vaultCfg{
		assetKind:  vaultconst.SideChannel,
		assetToken: mcHash,
		currencyID: 7,
	})
	mc := e.CommitteeInvoker(mcHash)
	user := e.NewAccount(t)
	userH := user.ScriptHash()
	mcUser := e.NewInvoker(mcHash, user)

	mc.Invoke(t, stackitem.Null{}, "mint", userH, int64(7), int64(3000))
	mc.Invoke(t, stackitem.Null{}, "mint", userH, int64(8), int64(500))

	mcUser.Invoke(t, stackitem.NewBool(true), "transfer",
		userH, v.vaultHash, int64(7), int64(1200), vaultrpc.DepositIntent{}.Encode())

	require.Equal(t, int64(1200), v.shareBalance(t, userH))
	v.checkTotals(t, 1200, 1200)
	require.Equal(t, int64(1200), intValue(t, mc, "balanceOf", v.vaultHash, int64(7)))
	require.Equal(t, int64(1800), intValue(t, mc, "balanceOf", userH, int64(7)))

	t.Run("wrong currency", func(t *testing.T) {
		mcUser.InvokeFail(t, "ABORT", "transfer",
			userH, v.vaultHash, int64(8), int64(100), vaultrpc.DepositIntent{}.Encode())
		require.Equal(t, int64(500), intValue(t, mc, "balanceOf", userH, int64(8)))
	})

	t.Run("multi-currency envelope", func(t *testing.T) {
		mcUser.InvokeFail(t, "ABORT", "transferMulti",
			userH, v.vaultHash, []any{int64(7), int64(8)}, []any{int64(10), int64(10)},
			vaultrpc.DepositIntent{}.Encode())
		v.checkTotals(t, 1200, 1200)
	})

	t.Run("native deposit rejected", func(t *testing.T) {
		gasUser := e.NewInvoker(v.gasHash, user)
		gasUser.InvokeFail(t, "ABORT", "transfer", userH, v.vaultHash, int64(100), nil)
	})

	t.Run("withdrawal", func(t *testing.T) {
		v.burnShares(t, user, 200, vaultrpc.WithdrawIntent{}.Encode())

		require.Equal(t, int64(1000), v.shareBalance(t, userH))
		v.checkTotals(t, 1000, 1000)
		require.Equal(t, int64(1000), intValue(t, mc, "balanceOf", v.vaultHash, int64(7)))
		require.Equal(t, int64(2000), intValue(t, mc, "balanceOf", userH, int64(7)))
	})
}

func TestVault_Withdraw(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	v.depositGAS(t, user, 1000, nil)

	aer := v.burnShares(t, user, 400, vaultrpc.WithdrawIntent{QueryID: 5}.Encode())
	require.Equal(t, int64(600), v.shareBalance(t, userH))
	v.checkTotals(t, 600, 600)
	require.Equal(t, int64(600), v.gasBalance(t, v.vaultHash))

	wd := findNotification(t, aer, "Withdrawn")
	require.Len(t, wd, 7)
	require.Equal(t, userH.BytesBE(), itemBytes(t, wd[0]))
	require.Equal(t, userH.BytesBE(), itemBytes(t, wd[1]))
	require.Equal(t, v.gasHash.BytesBE(), itemBytes(t, wd[2]))
	require.Equal(t, int64(400), itemInt(t, wd[3]))
	require.Equal(t, int64(400), itemInt(t, wd[4]))
	require.Equal(t, int64(600), itemInt(t, wd[5]))
	require.Equal(t, int64(600), itemInt(t, wd[6]))

	note := findNotification(t, aer, "VaultNotification")
	require.Equal(t, int64(5), itemInt(t, note[0]))
	require.Equal(t, int64(vaultconst.CodeSuccess), itemInt(t, note[1]))

	t.Run("third-party receiver", func(t *testing.T) {
		recv := v.executor.NewAccount(t)
		recvH := recv.ScriptHash()
		before := v.gasBalance(t, recvH)

		v.burnShares(t, user, 100, vaultrpc.WithdrawIntent{Receiver: &recvH}.Encode())

		require.Equal(t, before+100, v.gasBalance(t, recvH))
		v.checkTotals(t, 500, 500)
	})

	t.Run("full drain", func(t *testing.T) {
		v.burnShares(t, user, 500, vaultrpc.WithdrawIntent{}.Encode())

		require.Equal(t, int64(0), v.shareBalance(t, userH))
		v.checkTotals(t, 0, 0)
		require.Equal(t, int64(0), v.gasBalance(t, v.vaultHash))

		// The vault keeps working from scratch.
		v.depositGAS(t, user, 42, nil)
		v.checkTotals(t, 42, 42)
	})
}

func TestVault_WithdrawFailures(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	v.depositGAS(t, user, 1000, nil)

	stUser := v.executor.NewInvoker(v.shareTokenHash, user)

	t.Run("missing payload", func(t *testing.T) {
		stUser.InvokeFail(t, vaultconst.ErrMissingCustomPayload, "burn", userH, int64(100), nil)
		require.Equal(t, int64(1000), v.shareBalance(t, userH))
	})

	t.Run("deposit-tagged payload", func(t *testing.T) {
		stUser.InvokeFail(t, "unexpected withdrawal payload tag", "burn",
			userH, int64(100), vaultrpc.DepositIntent{}.Encode())
	})

	t.Run("more than owned", func(t *testing.T) {
		stUser.InvokeFail(t, "not enough shares", "burn",
			userH, int64(2000), vaultrpc.WithdrawIntent{}.Encode())
	})

	t.Run("zero amount", func(t *testing.T) {
		stUser.InvokeFail(t, "invalid burn amount", "burn",
			userH, int64(0), vaultrpc.WithdrawIntent{}.Encode())
	})

	t.Run("direct burn notification", func(t *testing.T) {
		vUser := v.executor.NewInvoker(v.vaultHash, user)
		vUser.InvokeFail(t, vaultconst.ErrUnauthorizedBurn, "onSharesBurned",
			userH, int64(10), vaultrpc.WithdrawIntent{}.Encode())
	})

	v.checkTotals(t, 1000, 1000)
}

func TestVault_WithdrawSlippage(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	v.depositGAS(t, user, 1000, nil)

	wi := vaultrpc.WithdrawIntent{
		QueryID:     4,
		MinWithdraw: 500,
		Failure:     &vaultrpc.Callback{IncludeBody: true},
	}
	body := wi.Encode()
	aer := v.burnShares(t, user, 400, body)

	// The burn is undone by a compensating mint.
	require.Equal(t, int64(1000), v.shareBalance(t, userH))
	v.checkTotals(t, 1000, 1000)
	require.Equal(t, int64(1000), v.gasBalance(t, v.vaultHash))

	note := findNotification(t, aer, "VaultNotification")
	require.Equal(t, int64(4), itemInt(t, note[0]))
	require.Equal(t, int64(vaultconst.CodeFailedMinWithdraw), itemInt(t, note[1]))
	require.Equal(t, userH.BytesBE(), itemBytes(t, note[2]))

	out, err := vaultrpc.ParseOutcome(itemBytes(t, note[3]))
	require.NoError(t, err)
	require.Equal(t, int64(vaultconst.CodeFailedMinWithdraw), out.Code.Int64())
	require.Equal(t, int64(400), out.Amount.Int64())
	require.Nil(t, out.Payload)
	require.Equal(t, body, out.InBody)
}

func TestVault_WithdrawFee(t *testing.T) {
	v := newNativeVault(t, vaultCfg{withdrawFee: 5})
	user := v.executor.NewAccount(t)
	userH := user.ScriptHash()

	v.depositGAS(t, user, 1000, nil)
	v.burnShares(t, user, 400, vaultrpc.WithdrawIntent{}.Encode())

	v.checkTotals(t, 600, 600)
	require.Equal(t, int64(605), v.gasBalance(t, v.vaultHash))

	t.Run("insufficient", func(t *testing.T) {
		v.vault.Invoke(t, stackitem.Null{}, "setFees",
			int64(0), int64(1_000_000_000_000), int64(0))

		stUser := v.executor.NewInvoker(v.shareTokenHash, user)
		stUser.InvokeFail(t, vaultconst.ErrInsufficientWithdrawGas, "burn",
			userH, int64(100), vaultrpc.WithdrawIntent{}.Encode())
		require.Equal(t, int64(600), v.shareBalance(t, userH))
	})
}

func TestVault_Quote(t *testing.T) {
	e := newExecutor(t)
	qrHash := deployContract(t, e, quoteRecvPath, nil)
	v := deployVaultPair(t, e, vaultCfg{assetKind: vaultconst.Native})
	user := e.NewAccount(t)

	v.depositGAS(t, user, 1000, nil)

	qr := e.NewInvoker(qrHash, user)
	h := qr.Invoke(t, stackitem.Null{}, "requestQuote", v.vaultHash, int64(11), []byte("ping"))
	aer := e.CheckHalt(t, h)

	q := findNotification(t, aer, "Quoted")
	require.Len(t, q, 5)
	require.Equal(t, qrHash.BytesBE(), itemBytes(t, q[0]))
	require.Equal(t, qrHash.BytesBE(), itemBytes(t, q[1]))
	require.Equal(t, v.gasHash.BytesBE(), itemBytes(t, q[2]))
	require.Equal(t, int64(1000), itemInt(t, q[3]))
	require.Equal(t, int64(1000), itemInt(t, q[4]))

	s, err := e.CommitteeInvoker(qrHash).TestInvoke(t, "lastQuote")
	require.NoError(t, err)
	quote := s.Top().Item().Value().([]stackitem.Item)
	require.Len(t, quote, 6)
	require.Equal(t, int64(11), itemInt(t, quote[0]))
	require.Equal(t, qrHash.BytesBE(), itemBytes(t, quote[1]))
	require.Equal(t, int64(1000), itemInt(t, quote[2]))
	require.Equal(t, int64(1000), itemInt(t, quote[3]))
	ts := itemInt(t, quote[4])
	require.Positive(t, ts)
	require.Equal(t, []byte("ping"), itemBytes(t, quote[5]))

	// A later quote carries a timestamp no earlier than the previous one.
	qr.Invoke(t, stackitem.Null{}, "requestQuote", v.vaultHash, int64(12), []byte("pong"))
	s, err = e.CommitteeInvoker(qrHash).TestInvoke(t, "lastQuote")
	require.NoError(t, err)
	quote = s.Top().Item().Value().([]stackitem.Item)
	require.Equal(t, int64(12), itemInt(t, quote[0]))
	require.GreaterOrEqual(t, itemInt(t, quote[4]), ts)

	// Quoting is read-only.
	v.checkTotals(t, 1000, 1000)
}

func TestVault_QuoteFee(t *testing.T) {
	e := newExecutor(t)
	qrHash := deployContract(t, e, quoteRecvPath, nil)
	v := deployVaultPair(t, e, vaultCfg{assetKind: vaultconst.Native, quoteFee: 10})
	user := e.NewAccount(t)

	// The initiating contract carries no witness, so the fee cannot be
	// collected from it.
	qr := e.NewInvoker(qrHash, user)
	qr.InvokeFail(t, vaultconst.ErrInsufficientQuoteGas, "requestQuote",
		v.vaultHash, int64(1), nil)
}

func TestVault_OutcomeDelivery(t *testing.T) {
	e := newExecutor(t)
	qrHash := deployContract(t, e, quoteRecvPath, nil)
	v := deployVaultPair(t, e, vaultCfg{assetKind: vaultconst.Native})
	user := e.NewAccount(t)
	userH := user.ScriptHash()

	intent := vaultrpc.DepositIntent{
		QueryID:  42,
		Receiver: &qrHash,
		Success:  &vaultrpc.Callback{IncludeBody: true, Payload: []byte("pong")},
	}
	body := intent.Encode()
	v.depositGAS(t, user, 1000, body)

	require.Equal(t, int64(1000), v.shareBalance(t, qrHash))

	// The envelope arrived together with the minted shares.
	s, err := e.CommitteeInvoker(qrHash).TestInvoke(t, "lastPayment")
	require.NoError(t, err)
	payment := s.Top().Item().Value().([]stackitem.Item)
	require.Len(t, payment, 3)
	require.Equal(t, int64(1000), itemInt(t, payment[1]))

	out, err := vaultrpc.ParseOutcome(itemBytes(t, payment[2]))
	require.NoError(t, err)
	require.Equal(t, int64(42), out.QueryID.Int64())
	require.Equal(t, int64(vaultconst.CodeSuccess), out.Code.Int64())
	require.Equal(t, userH, out.Initiator)
	require.Equal(t, int64(1000), out.Amount.Int64())
	require.Equal(t, []byte("pong"), out.Payload)
	require.Equal(t, body, out.InBody)
}

func TestVault_Admin(t *testing.T) {
	v := newNativeVault(t, vaultCfg{})
	stranger := v.executor.NewAccount(t)

	v.vault.Invoke(t, stackitem.Null{}, "setFees", int64(10), int64(20), int64(30))
	require.Equal(t, int64(10), intValue(t, v.vault, "depositFee"))
	require.Equal(t, int64(20), intValue(t, v.vault, "withdrawFee"))
	require.Equal(t, int64(30), intValue(t, v.vault, "quoteFee"))

	v.vault.InvokeFail(t, "negative fee", "setFees", int64(-1), int64(0), int64(0))
	v.vault.WithSigners(stranger).InvokeFail(t, common.ErrAdminWitnessFailed,
		"setFees", int64(0), int64(0), int64(0))

	v.vault.Invoke(t, stackitem.Null{}, "setContent", []byte("updated"))
	s, err := v.vault.TestInvoke(t, "content")
	require.NoError(t, err)
	require.Equal(t, []byte("updated"), s.Top().Bytes())

	v.vault.WithSigners(stranger).InvokeFail(t, common.ErrAdminWitnessFailed,
		"setContent", []byte{})
	v.vault.WithSigners(stranger).InvokeFail(t, common.ErrAdminWitnessFailed,
		"update", []byte{}, []byte{}, nil)
}
