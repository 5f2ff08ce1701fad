package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/tokenswap/client"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

On success the hex encoded ID of the escrow that the transaction applied to is
printed out.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	swapClient := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	res, err := swapClient.BroadcastTxCommit(tx)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction %s failed: %s", res.ID, res.Err)
	}
	_, err = fmt.Fprintln(output, hex.EncodeToString(res.EscrowID()))
	return err
}
