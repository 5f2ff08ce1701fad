/*
Package app contains the ABCI application plumbing: a router dispatching
messages to handlers, decorator chains, the commit store keeping the check
and deliver caches, and the BaseApp tying it all to tendermint.

Applications are built in cmd/swapd by composing these pieces with the
extensions found under x/.
*/
package app
