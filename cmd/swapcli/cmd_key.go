package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/tokenswap/crypto"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

When a seed is provided, the key is derived from it using the given path.
Otherwise a random key is created.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SWAPCLI_PRIV_KEY environment variable to set it.")
		seedFl = flHex(fl, "seed", "Optional hex encoded master seed that the key is derived from.")
		pathFl = fl.String("path", "m/44'/234'/0'", "Derivation path used together with the seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite an existing private key. It must be removed
		// manually first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	priv, err := keygen(*seedFl, *pathFl)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv.Ed25519); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

// keygen returns a private key derived from the seed or a random one if the
// seed is empty.
func keygen(seed []byte, path string) (*crypto.PrivateKey, error) {
	if len(seed) == 0 {
		return crypto.GenPrivKeyEd25519(), nil
	}
	return crypto.DeriveEd25519(seed, path)
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.

By default the address is hex encoded. Provide a human readable part to get
the bech32 representation instead.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SWAPCLI_PRIV_KEY environment variable to set it.")
		hrpFl = fl.String("hrp", "", "Human readable part of the bech32 address. Leave empty for hex.")
	)
	fl.Parse(args)

	key, err := readPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if *hrpFl == "" {
		_, err = fmt.Fprintln(output, hex.EncodeToString(addr))
		return err
	}
	b, err := addr.Bech32(*hrpFl)
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintln(output, b)
	return err
}

func readPrivateKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
