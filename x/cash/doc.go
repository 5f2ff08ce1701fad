/*
Package cash keeps token balances per address.

A wallet holds any number of coins of different tickers. The only rule is
that a balance never goes below zero. The Controller moves coins between
wallets and is the transfer service used by the swap extension to fund and
release escrow vaults.
*/
package cash
