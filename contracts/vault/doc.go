/*
Package vault implements the Vault contract.

Vault is an account contract custodying exactly one asset kind (native GAS,
a single NEP-17 token, or one currency of a multi-currency ledger) and
issuing NEP-17 shares representing proportional claims on the custodied
total. Depositors and withdrawers interact with the vault exclusively
through payment callbacks of cooperating contracts; there is no synchronous
entry point moving funds.

A deposit arrives as a payment notification carrying an optional intent
record (receiver, slippage floor, callbacks). Shares are minted at the
current supply/assets ratio with floor rounding; a deposit computing fewer
shares than the caller's floor is compensated by returning the asset and
reporting the failure, the ledger being left untouched.

A withdrawal arrives as a burn notification from the share token, which has
already burned the holder's shares by the time the vault runs. The released
amount uses the same floor arithmetic against the pre-burn supply; a
withdrawal below the caller's floor is compensated by minting the burned
shares back. Both compensation paths exist to undo an action that already
executed irreversibly at a cooperating contract.

# Contract notifications

Deposited notification. Emitted on every committed deposit, with the ledger
snapshot after the mutation.

	Deposited:
	  - name: initiator
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: shares
	    type: Integer
	  - name: totalSupply
	    type: Integer
	  - name: totalAssets
	    type: Integer

Withdrawn notification. Symmetric to Deposited, emitted on every committed
withdrawal.

	Withdrawn:
	  - name: initiator
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: shares
	    type: Integer
	  - name: totalSupply
	    type: Integer
	  - name: totalAssets
	    type: Integer

Quoted notification. Emitted on every answered quote request.

	Quoted:
	  - name: initiator
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: totalSupply
	    type: Integer
	  - name: totalAssets
	    type: Integer

VaultNotification notification. Emitted once per finished deposit or
withdrawal saga, committed or compensated. The payload is the serialized
outcome envelope also attached to the corresponding transfer.

	VaultNotification:
	  - name: queryID
	    type: Integer
	  - name: resultCode
	    type: Integer
	  - name: initiator
	    type: Hash160
	  - name: payload
	    type: ByteArray
*/
package vault

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   vault admin account
 - 'k' -> std.Serialize(AssetKind)
   custodied asset description, immutable after deploy
 - 's' -> interop.Hash160
   share token contract address
 - 'c' -> []byte
   opaque vault metadata blob
 - 't' -> int
   total amount of asset units in custody
 - 'u' -> int
   total amount of shares outstanding
 - 'd', 'w', 'q' -> int
   fixed protocol fees of deposit, withdrawal and quote operations

# Ledger
totalAssets and totalSupply are only ever mutated together, in the same
direction, by exactly one step of a deposit or withdrawal saga. The share
token keeps the authoritative per-holder balances; the vault mirrors the
supply so conversion and mutation happen in one processing step.
*/
