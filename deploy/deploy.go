// Package deploy provides vault deployment procedure over Neo blockchain.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for vault deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// AssetPrm describes the asset the deployed vault custodies.
type AssetPrm struct {
	// One of the vaultconst asset kind tags.
	Kind int64
	// Token is the NEP-17 contract of a fungible vault or the multi-currency
	// ledger contract of a side-channel vault. Ignored for native vaults.
	Token util.Uint160
	// CurrencyID of a side-channel vault. Ignored otherwise.
	CurrencyID int64
}

// FeePrm groups the protocol fee table of the deployed vault.
type FeePrm struct {
	Deposit  int64
	Withdraw int64
	Quote    int64
}

// Prm groups all parameters of the vault deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the admin of both deployed contracts.
	LocalAccount *wallet.Account

	ShareTokenContract CommonDeployPrm
	VaultContract      CommonDeployPrm

	Asset   AssetPrm
	Content []byte
	Fees    FeePrm
}

// Result groups on-chain addresses of the deployed contracts.
type Result struct {
	ShareToken util.Uint160
	Vault      util.Uint160
}

// Deploy deploys the vault contract pair to the Neo network represented by
// given Prm.Blockchain and links them together. The procedure is idempotent:
// contracts that are already on the chain are left as they are, only the
// missing steps are executed.
//
// Since the vault needs the share token address as a deployment argument
// while the share token trusts a single vault, deployment is done in three
// steps: the share token is deployed first with the local account as its
// admin, then the vault referencing it, and finally the one-shot setVault
// call binds the pair.
func Deploy(ctx context.Context, prm Prm) (*Result, error) {
	if prm.Logger == nil {
		return nil, errors.New("missing logger")
	}
	if prm.Blockchain == nil {
		return nil, errors.New("missing blockchain client")
	}
	if prm.LocalAccount == nil {
		return nil, errors.New("missing local account")
	}

	// wrap the parent context into the context of the current function so that
	// transaction wait routines do not leak
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return nil, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	mgmt := management.New(localActor)
	sender := prm.LocalAccount.ScriptHash()

	var res Result
	res.ShareToken = state.CreateContractHash(sender,
		prm.ShareTokenContract.NEF.Checksum, prm.ShareTokenContract.Manifest.Name)
	res.Vault = state.CreateContractHash(sender,
		prm.VaultContract.NEF.Checksum, prm.VaultContract.Manifest.Name)

	prm.Logger.Info("synchronizing share token contract with the chain...",
		zap.Stringer("address", res.ShareToken))

	tokenDeployed, err := contractDeployed(prm.Blockchain, res.ShareToken)
	if err != nil {
		return nil, fmt.Errorf("check share token contract state: %w", err)
	}
	if tokenDeployed {
		prm.Logger.Info("share token contract is already on the chain")
	} else {
		err = deployContract(ctx, localActor, mgmt, prm.ShareTokenContract, []any{sender})
		if err != nil {
			return nil, fmt.Errorf("deploy share token contract: %w", err)
		}
		prm.Logger.Info("share token contract successfully deployed")
	}

	prm.Logger.Info("synchronizing vault contract with the chain...",
		zap.Stringer("address", res.Vault))

	vaultDeployed, err := contractDeployed(prm.Blockchain, res.Vault)
	if err != nil {
		return nil, fmt.Errorf("check vault contract state: %w", err)
	}
	if vaultDeployed {
		prm.Logger.Info("vault contract is already on the chain")
	} else {
		err = deployContract(ctx, localActor, mgmt, prm.VaultContract, []any{
			sender,
			prm.Asset.Kind,
			prm.Asset.Token,
			prm.Asset.CurrencyID,
			res.ShareToken,
			prm.Content,
			prm.Fees.Deposit,
			prm.Fees.Withdraw,
			prm.Fees.Quote,
		})
		if err != nil {
			return nil, fmt.Errorf("deploy vault contract: %w", err)
		}
		prm.Logger.Info("vault contract successfully deployed")
	}

	boundVault, err := readBoundVault(localActor, res.ShareToken)
	if err != nil {
		return nil, fmt.Errorf("read vault binding of the share token: %w", err)
	}

	switch {
	case boundVault == nil:
		prm.Logger.Info("binding share token to the vault...")

		txHash, vub, err := localActor.SendCall(res.ShareToken, "setVault", res.Vault)
		if err = sendAndWait(localActor, txHash, vub, err); err != nil {
			return nil, fmt.Errorf("bind share token to the vault: %w", err)
		}

		prm.Logger.Info("share token successfully bound to the vault")
	case boundVault.Equals(res.Vault):
		prm.Logger.Info("share token is already bound to the vault")
	default:
		return nil, fmt.Errorf("share token is bound to another vault %s", boundVault.StringLE())
	}

	prm.Logger.Info("vault deployment successfully completed",
		zap.Stringer("vault", res.Vault), zap.Stringer("shareToken", res.ShareToken))

	return &res, nil
}

func contractDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err != nil {
		if strings.Contains(err.Error(), "Unknown contract") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func deployContract(ctx context.Context, act *actor.Actor, mgmt *management.Contract, c CommonDeployPrm, args []any) error {
	txHash, vub, err := mgmt.Deploy(&c.NEF, &c.Manifest, args)
	if err = sendAndWait(act, txHash, vub, err); err != nil {
		return err
	}

	return ctx.Err()
}

func sendAndWait(act *actor.Actor, txHash util.Uint256, vub uint32, sendErr error) error {
	res, err := act.Wait(txHash, vub, sendErr)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	return nil
}

// readBoundVault returns the vault address the share token is bound to, nil
// if the binding has not been set yet.
func readBoundVault(act *actor.Actor, shareToken util.Uint160) (*util.Uint160, error) {
	res, err := act.Call(shareToken, "vault")
	if err != nil {
		return nil, err
	}
	if res.State != "HALT" {
		return nil, fmt.Errorf("read vault binding: %s", res.FaultException)
	}
	if len(res.Stack) == 0 {
		return nil, errors.New("empty result stack")
	}

	item := res.Stack[len(res.Stack)-1]
	if item.Type() == stackitem.AnyT && item.Value() == nil {
		return nil, nil
	}

	b, err := item.TryBytes()
	if err != nil {
		return nil, fmt.Errorf("unexpected vault binding value: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return nil, fmt.Errorf("unexpected vault binding value: %w", err)
	}

	return &u, nil
}
