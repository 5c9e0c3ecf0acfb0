/*
Package sharetoken implements the share token contract of the vault suite.

Share token is a NEP-17 compatible contract keeping the per-holder balances
of vault shares. Shares are minted and re-minted exclusively by the
controlling vault contract; burning is initiated by the holder and the
vault is notified only after the shares are gone. This ordering is the
transport-level contract between the two: the vault never debits a share
balance itself, it only ever receives notice of a completed burn, and
compensates by minting the same amount back when it cannot honor the
withdrawal.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification. Mint leaves
the sender empty, burn leaves the receiver empty.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package sharetoken

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'Circulation' -> int
   total amount of shares outstanding
 - 'm' -> interop.Hash160
   admin account
 - 'v' -> interop.Hash160
   controlling vault contract, set once after deploy
 - a<interop.Hash160> -> int
   share balance of each holder, removed when it reaches zero
*/
