package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/tokenswap"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display transaction summary. This command is helpful when receiving
a binary representation of a transaction. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot decode instruction: %s", err)
	}
	summary := txView{
		Path:       msg.Path(),
		Msg:        msg,
		Signatures: len(tx.Signatures),
	}
	for _, sig := range tx.Signatures {
		if sig.Pubkey != nil {
			summary.Signers = append(summary.Signers, sig.Pubkey.Address())
		}
	}

	pretty, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type txView struct {
	Path       string              `json:"path"`
	Msg        tokenswap.Msg       `json:"msg"`
	Signatures int                 `json:"signatures"`
	Signers    []tokenswap.Address `json:"signers,omitempty"`
}
