package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	swapd "github.com/iov-one/tokenswap/cmd/swapd/app"
	"github.com/iov-one/tokenswap/x/swap"
)

func cmdInitEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for opening a new swap escrow.

The signer of this transaction becomes the party A of the escrow. Party A
deposits amount-a of asset-a, the counterparty deposits amount-b of asset-b.
When no escrow ID is provided, a new one is allocated and returned on submit.
`)
		fl.PrintDefaults()
	}
	var (
		idFl      = flHex(fl, "id", "Optional hex encoded escrow ID.")
		assetAFl  = fl.String("asset-a", "", "Ticker of the asset deposited by party A.")
		assetBFl  = fl.String("asset-b", "", "Ticker of the asset deposited by party B.")
		amountAFl = fl.Uint64("amount-a", 0, "Amount of asset A.")
		amountBFl = fl.Uint64("amount-b", 0, "Amount of asset B.")
	)
	fl.Parse(args)

	ins := &swap.InitInstruction{
		AssetA:  *assetAFl,
		AssetB:  *assetBFl,
		AmountA: *amountAFl,
		AmountB: *amountBFl,
	}
	if err := ins.Validate(); err != nil {
		return fmt.Errorf("invalid escrow: %s", err)
	}
	return writeInstruction(output, *idFl, ins)
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for depositing funds into a swap escrow.

The signer must be party A, or any account if party B is not assigned yet.
The amount must match the amount declared for the signer's side.
`)
		fl.PrintDefaults()
	}
	var (
		escrowFl = flHex(fl, "escrow", "Hex encoded ID of the escrow.")
		amountFl = fl.Uint64("amount", 0, "Amount deposited.")
	)
	fl.Parse(args)

	if len(*escrowFl) == 0 {
		return errors.New("escrow ID is required")
	}
	return writeInstruction(output, *escrowFl, &swap.DepositInstruction{Amount: *amountFl})
}

func cmdCompleteSwap(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for completing a fully funded swap escrow. Either party
can sign it.
`)
		fl.PrintDefaults()
	}
	escrowFl := flHex(fl, "escrow", "Hex encoded ID of the escrow.")
	fl.Parse(args)

	if len(*escrowFl) == 0 {
		return errors.New("escrow ID is required")
	}
	return writeInstruction(output, *escrowFl, &swap.CompleteSwapInstruction{})
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for cancelling a swap escrow. Deposited funds are
returned to their owners. An escrow funded by both parties cannot be
cancelled.
`)
		fl.PrintDefaults()
	}
	escrowFl := flHex(fl, "escrow", "Hex encoded ID of the escrow.")
	fl.Parse(args)

	if len(*escrowFl) == 0 {
		return errors.New("escrow ID is required")
	}
	return writeInstruction(output, *escrowFl, &swap.CancelInstruction{})
}

func writeInstruction(output io.Writer, escrowID []byte, ins swap.Instruction) error {
	tx, err := swapd.NewTx(escrowID, ins)
	if err != nil {
		return fmt.Errorf("cannot create transaction: %s", err)
	}
	_, err = writeTx(output, tx)
	return err
}
