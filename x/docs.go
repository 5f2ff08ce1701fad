/*
Package x contains the extensions the swap application is built from.

Extensions implement common functionality (Handler, Decorator, etc.) and are
combined together in cmd/swapd to construct the application. x/cash keeps
balances, x/sigs authenticates signers, x/utils provides generic decorators
and x/swap holds the escrow state machine.
*/
package x
