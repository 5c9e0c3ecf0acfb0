// Command vault-dump prints the state of a deployed vault contract pair:
// the asset configuration, the ledger totals, the fee table and all current
// share holders.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	sharetokenrpc "github.com/nspcc-dev/vault-contract/rpc/sharetoken"
	vaultrpc "github.com/nspcc-dev/vault-contract/rpc/vault"
)

const holdersPageSize = 100

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	vaultHashLE := flag.String("vault", "", "Script hash of the vault contract in LE hex")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *vaultHashLE == "":
		log.Fatal("missing vault contract hash")
	}

	vaultHash, err := util.Uint160DecodeStringLE(*vaultHashLE)
	if err != nil {
		log.Fatal(fmt.Errorf("decode vault contract hash: %w", err))
	}

	c, err := rpcclient.New(context.Background(), *neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		log.Fatal(fmt.Errorf("RPC client dial: %w", err))
	}
	defer c.Close()

	inv := invoker.New(c, nil)

	err = dumpVault(os.Stdout, inv, vaultHash)
	if err != nil {
		log.Fatal(err)
	}
}

func dumpVault(w io.Writer, inv *invoker.Invoker, vaultHash util.Uint160) error {
	vault := vaultrpc.NewReader(inv, vaultHash)

	admin, err := vault.Admin()
	if err != nil {
		return fmt.Errorf("read vault admin: %w", err)
	}

	asset, err := vault.Asset()
	if err != nil {
		return fmt.Errorf("read asset configuration: %w", err)
	}

	stHash, err := vault.ShareToken()
	if err != nil {
		return fmt.Errorf("read share token address: %w", err)
	}

	supply, err := vault.TotalSupply()
	if err != nil {
		return fmt.Errorf("read total supply: %w", err)
	}

	assets, err := vault.TotalAssets()
	if err != nil {
		return fmt.Errorf("read total assets: %w", err)
	}

	depositFee, err := vault.DepositFee()
	if err != nil {
		return fmt.Errorf("read deposit fee: %w", err)
	}

	withdrawFee, err := vault.WithdrawFee()
	if err != nil {
		return fmt.Errorf("read withdraw fee: %w", err)
	}

	quoteFee, err := vault.QuoteFee()
	if err != nil {
		return fmt.Errorf("read quote fee: %w", err)
	}

	content, err := vault.Content()
	if err != nil {
		return fmt.Errorf("read vault content: %w", err)
	}

	fmt.Fprintf(w, "vault:        %s\n", vaultHash.StringLE())
	fmt.Fprintf(w, "admin:        %s\n", address.Uint160ToString(admin))
	fmt.Fprintf(w, "share token:  %s\n", stHash.StringLE())
	fmt.Fprintf(w, "asset:        %s\n", assetString(asset))
	fmt.Fprintf(w, "total supply: %s\n", supply)
	fmt.Fprintf(w, "total assets: %s\n", assets)
	fmt.Fprintf(w, "fees:         deposit %s, withdraw %s, quote %s\n", depositFee, withdrawFee, quoteFee)
	if len(content) > 0 {
		fmt.Fprintf(w, "content:      %s\n", base58.Encode(content))
	}

	return dumpHolders(w, inv, stHash)
}

func assetString(asset *vaultrpc.VaultAssetKind) string {
	switch asset.Kind.Int64() {
	case vaultconst.Native:
		return "native GAS"
	case vaultconst.Fungible:
		return fmt.Sprintf("NEP-17 token %s", asset.Token.StringLE())
	case vaultconst.SideChannel:
		return fmt.Sprintf("currency #%s of ledger %s", asset.CurrencyID, asset.Token.StringLE())
	default:
		return fmt.Sprintf("unknown kind %s", asset.Kind)
	}
}

func dumpHolders(w io.Writer, inv *invoker.Invoker, stHash util.Uint160) error {
	st := sharetokenrpc.NewReader(inv, stHash)

	sessionID, iter, err := st.Holders()
	if err != nil {
		return fmt.Errorf("open holders iterator: %w", err)
	}

	fmt.Fprintln(w, "holders:")

	if sessionID == (uuid.UUID{}) {
		// Sessions are disabled on the server, the iterator arrived
		// expanded.
		for i := range iter.Values {
			err = printHolder(w, iter.Values[i])
			if err != nil {
				return err
			}
		}
		return nil
	}
	defer func() {
		_ = inv.TerminateSession(sessionID)
	}()

	for {
		items, err := inv.TraverseIterator(sessionID, &iter, holdersPageSize)
		if err != nil {
			return fmt.Errorf("traverse holders iterator: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			err = printHolder(w, items[i])
			if err != nil {
				return err
			}
		}
	}
}

func printHolder(w io.Writer, item stackitem.Item) error {
	kv, ok := item.Value().([]stackitem.Item)
	if !ok || len(kv) != 2 {
		return fmt.Errorf("unexpected holder element of type %s", item.Type())
	}

	rawAcc, err := kv[0].TryBytes()
	if err != nil {
		return fmt.Errorf("holder account: %w", err)
	}
	acc, err := util.Uint160DecodeBytesBE(rawAcc)
	if err != nil {
		return fmt.Errorf("holder account: %w", err)
	}

	balance, err := kv[1].TryInteger()
	if err != nil {
		return fmt.Errorf("holder balance: %w", err)
	}

	fmt.Fprintf(w, "  %s: %s\n", address.Uint160ToString(acc), balance)
	return nil
}
