package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/tokenswap/client"
)

func cmdHistory(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List transactions that modified an escrow, one per line: block height,
transaction hash and the resulting escrow log.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
		escrowFl = flHex(fl, "escrow", "Hex encoded escrow ID. Required.")
	)
	fl.Parse(args)

	if len(*escrowFl) == 0 {
		return errors.New("escrow ID is required")
	}

	swapClient := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	results, err := swapClient.SearchTx(client.QueryTxByEscrow(*escrowFl))
	if err != nil {
		return fmt.Errorf("cannot search transactions: %s", err)
	}
	return writeHistory(output, results)
}

func writeHistory(w io.Writer, results []*client.CommitResult) error {
	for _, r := range results {
		status := "failed"
		if r.Result != nil {
			status = r.Result.Log
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", r.Height, r.ID, status); err != nil {
			return err
		}
	}
	return nil
}
