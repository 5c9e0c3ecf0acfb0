// Command vault-deploy deploys the vault contract pair through a Neo RPC
// node and binds the contracts to each other.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/vault-contract/contracts"
	"github.com/nspcc-dev/vault-contract/contracts/vault/vaultconst"
	"github.com/nspcc-dev/vault-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet of the vault admin")
	walletPassword := flag.String("password", "", "Password of the admin wallet account")
	contractsDir := flag.String("contracts", "", "Directory with the compiled contracts")
	assetKind := flag.Int64("asset-kind", vaultconst.Native,
		"Custodied asset kind: 0 - native GAS, 1 - NEP-17 token, 2 - side-channel currency")
	assetToken := flag.String("asset-token", "", "Script hash of the asset contract in LE hex, for kinds 1 and 2")
	currencyID := flag.Int64("currency-id", 0, "Currency id within the side-channel ledger, for kind 2")
	content := flag.String("content", "", "Opaque vault metadata")
	depositFee := flag.Int64("deposit-fee", 0, "Fixed deposit fee in GAS fractions")
	withdrawFee := flag.Int64("withdraw-fee", 0, "Fixed withdrawal fee in GAS fractions")
	quoteFee := flag.Int64("quote-fee", 0, "Fixed quote fee in GAS fractions")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing admin wallet")
	case *contractsDir == "":
		log.Fatal("missing contracts directory")
	}

	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}

	w, err := wallet.NewWalletFromFile(*walletPath)
	if err != nil {
		log.Fatal(fmt.Errorf("open admin wallet: %w", err))
	}

	acc := w.Accounts[0]
	err = acc.Decrypt(*walletPassword, w.Scrypt)
	if err != nil {
		log.Fatal(fmt.Errorf("decrypt admin wallet account: %w", err))
	}

	cs, err := contracts.Read(os.DirFS(*contractsDir))
	if err != nil {
		log.Fatal(fmt.Errorf("read compiled contracts: %w", err))
	}

	var prm deploy.Prm
	prm.Logger = l
	prm.LocalAccount = acc
	prm.ShareTokenContract = deploy.CommonDeployPrm{NEF: cs[0].NEF, Manifest: cs[0].Manifest}
	prm.VaultContract = deploy.CommonDeployPrm{NEF: cs[1].NEF, Manifest: cs[1].Manifest}

	prm.Asset.Kind = *assetKind
	prm.Asset.CurrencyID = *currencyID
	if *assetToken != "" {
		prm.Asset.Token, err = util.Uint160DecodeStringLE(*assetToken)
		if err != nil {
			log.Fatal(fmt.Errorf("decode asset contract hash: %w", err))
		}
	}

	if *content != "" {
		prm.Content = []byte(*content)
	}
	prm.Fees = deploy.FeePrm{
		Deposit:  *depositFee,
		Withdraw: *withdrawFee,
		Quote:    *quoteFee,
	}

	c, err := rpcclient.New(context.Background(), *neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		log.Fatal(fmt.Errorf("RPC client dial: %w", err))
	}
	defer c.Close()

	prm.Blockchain = c

	res, err := deploy.Deploy(context.Background(), prm)
	if err != nil {
		log.Fatal(fmt.Errorf("deploy vault contracts: %w", err))
	}

	l.Info("vault contract pair is deployed and bound",
		zap.Stringer("share token", res.ShareToken),
		zap.Stringer("vault", res.Vault))
}
