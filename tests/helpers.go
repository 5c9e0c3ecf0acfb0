package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	"github.com/stretchr/testify/require"
)

const (
	vaultPath      = "../contracts/vault"
	shareTokenPath = "../contracts/sharetoken"
	tokenPath      = "../internal/testcontracts/token"
	mcLedgerPath   = "../internal/testcontracts/mcledger"
	quoteRecvPath  = "../internal/testcontracts/quoterecv"
)

// vaultCfg is the deployment configuration of a vault under test. The zero
// value describes a native GAS vault with zero fees and no content.
type vaultCfg struct {
	assetKind   int64
	assetToken  util.Uint160
	currencyID  int64
	content     []byte
	depositFee  int64
	withdrawFee int64
	quoteFee    int64
}

// vaultEnv is a deployed share token/vault contract pair bound to each
// other, plus the invokers tests interact with them through.
type vaultEnv struct {
	executor *neotest.Executor

	vault      *neotest.ContractInvoker
	shareToken *neotest.ContractInvoker
	gas        *neotest.ContractInvoker

	vaultHash      util.Uint160
	shareTokenHash util.Uint160
	gasHash        util.Uint160
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func deployContract(t *testing.T, e *neotest.Executor, ctrPath string, args []any) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ctrPath,
		path.Join(ctrPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

// deployVaultPair deploys the share token and a vault configured per cfg,
// with the committee as admin of both, and binds them together.
func deployVaultPair(t *testing.T, e *neotest.Executor, cfg vaultCfg) *vaultEnv {
	stHash := deployContract(t, e, shareTokenPath, []any{e.CommitteeHash})
	vHash := deployContract(t, e, vaultPath, []any{
		e.CommitteeHash, cfg.assetKind, cfg.assetToken, cfg.currencyID,
		stHash, cfg.content, cfg.depositFee, cfg.withdrawFee, cfg.quoteFee,
	})

	st := e.CommitteeInvoker(stHash)
	st.Invoke(t, stackitem.Null{}, "setVault", vHash)

	gasHash := e.NativeHash(t, nativenames.Gas)

	return &vaultEnv{
		executor:       e,
		vault:          e.CommitteeInvoker(vHash),
		shareToken:     st,
		gas:            e.CommitteeInvoker(gasHash),
		vaultHash:      vHash,
		shareTokenHash: stHash,
		gasHash:        gasHash,
	}
}

func newNativeVault(t *testing.T, cfg vaultCfg) *vaultEnv {
	cfg.assetKind = vaultconst.Native
	return deployVaultPair(t, newExecutor(t), cfg)
}

// depositGAS transfers amount of GAS from the signer to the vault with the
// given transfer data, expecting the deposit transaction to halt.
func (v *vaultEnv) depositGAS(t *testing.T, from neotest.Signer, amount int64, data []byte) *state.AppExecResult {
	inv := v.executor.NewInvoker(v.gasHash, from)
	h := inv.Invoke(t, stackitem.NewBool(true), "transfer",
		from.ScriptHash(), v.vaultHash, amount, data)
	return v.executor.CheckHalt(t, h)
}

// burnShares burns amount of the signer's shares with the given withdrawal
// payload, expecting the transaction to halt.
func (v *vaultEnv) burnShares(t *testing.T, from neotest.Signer, amount int64, payload []byte) *state.AppExecResult {
	inv := v.executor.NewInvoker(v.shareTokenHash, from)
	h := inv.Invoke(t, stackitem.Null{}, "burn", from.ScriptHash(), amount, payload)
	return v.executor.CheckHalt(t, h)
}

func (v *vaultEnv) gasBalance(t *testing.T, acc util.Uint160) int64 {
	return intValue(t, v.gas, "balanceOf", acc)
}

func (v *vaultEnv) shareBalance(t *testing.T, acc util.Uint160) int64 {
	return intValue(t, v.shareToken, "balanceOf", acc)
}

// checkTotals asserts the ledger totals on the vault side together with the
// share circulation on the token side.
func (v *vaultEnv) checkTotals(t *testing.T, supply, assets int64) {
	require.Equal(t, supply, intValue(t, v.vault, "totalSupply"))
	require.Equal(t, assets, intValue(t, v.vault, "totalAssets"))
	require.Equal(t, supply, intValue(t, v.shareToken, "totalSupply"))
}

func intValue(t *testing.T, c *neotest.ContractInvoker, method string, args ...any) int64 {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	return s.Top().BigInt().Int64()
}

// findNotification returns the fields of the only notification with the
// given name in the execution result.
func findNotification(t *testing.T, aer *state.AppExecResult, name string) []stackitem.Item {
	var found []stackitem.Item
	for _, ev := range aer.Events {
		if ev.Name != name {
			continue
		}
		require.Nil(t, found, "duplicate %s notification", name)
		found = ev.Item.Value().([]stackitem.Item)
	}
	require.NotNil(t, found, "no %s notification", name)
	return found
}

func itemInt(t *testing.T, item stackitem.Item) int64 {
	v, err := item.TryInteger()
	require.NoError(t, err)
	return v.Int64()
}

func itemBytes(t *testing.T, item stackitem.Item) []byte {
	v, err := item.TryBytes()
	require.NoError(t, err)
	return v
}
