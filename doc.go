/*
Package tokenswap defines interfaces used throughout the app, such as:
storage, transactions, handlers, conditions and addresses. It also contains
helpers to work with context and abci responses.

The escrow state machine itself lives in x/swap. Everything it needs from the
surrounding ledger (balances, signatures, atomic storage) is expressed through
the interfaces declared here so that each part can be exercised in isolation.
*/
package tokenswap
