/*
Package swap implements a two party conditional token swap escrow.

An escrow is created by its first party (A) declaring two assets and the
amount each side has to put in. Each side then deposits its amount into a
vault bound to the escrow. The vault is not owned by any key. Its address is
derived from the escrow id and only the handlers of this package can move
funds out of it.

Once both sides deposited, either party can complete the swap: party A
receives what B deposited and party B receives what A deposited. Until then
either party can cancel the escrow and get back whatever was deposited.
Completed and cancelled escrows are archival and cannot be changed.

Commands arrive as a compact binary instruction (see DecodeInstruction)
paired with the escrow id and are turned into messages routed under the
swap/ prefix.
*/
package swap
