package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/client"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/swap"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a ABCI query and print JSON encoded result.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
		pathFl        = fl.String("path", "", "Path to be queried. Must be one of the supported.")
		dataFl        = fl.String("data", "", "Hex encoded query data. An escrow ID for /escrows, an address for any other path.")
		prefixQueryFl = fl.Bool("prefix", false, "If true, use prefix queries instead of the exact match with provided data.")
	)
	fl.Parse(args)

	newModel, ok := queries[strings.SplitN(*pathFl, "?", 2)[0]]
	if !ok {
		return fmt.Errorf("available query paths:\n\t- %s", strings.Join(queryPaths(), "\n\t- "))
	}

	data, err := hex.DecodeString(*dataFl)
	if err != nil {
		return fmt.Errorf("cannot decode data: %s", err)
	}
	queryPath := *pathFl
	if *prefixQueryFl || len(data) == 0 {
		queryPath += "?" + tokenswap.PrefixQueryMod
	}

	swapClient := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	models, err := swapClient.Query(queryPath, data)
	if err != nil {
		return fmt.Errorf("cannot query: %s", err)
	}

	result, err := decodeModels(models, newModel)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type queryResult struct {
	Key   string               `json:"key"`
	Value tokenswap.Persistent `json:"value"`
}

func decodeModels(models []tokenswap.Model, newModel func() tokenswap.Persistent) ([]queryResult, error) {
	result := make([]queryResult, 0, len(models))
	for _, m := range models {
		obj := newModel()
		if err := obj.Unmarshal(m.Value); err != nil {
			return nil, fmt.Errorf("cannot unmarshal %x: %s", m.Key, err)
		}
		result = append(result, queryResult{
			Key:   hex.EncodeToString(m.Key),
			Value: obj,
		})
	}
	return result, nil
}

// queries maps supported query paths to a constructor of the model stored
// under that path.
var queries = map[string]func() tokenswap.Persistent{
	"/auth":            func() tokenswap.Persistent { return new(sigs.UserData) },
	"/escrows":         func() tokenswap.Persistent { return new(swap.Escrow) },
	"/escrows/party_a": func() tokenswap.Persistent { return new(swap.Escrow) },
	"/escrows/party_b": func() tokenswap.Persistent { return new(swap.Escrow) },
	"/wallets":         func() tokenswap.Persistent { return new(cash.Set) },
}

func queryPaths() []string {
	paths := make([]string, 0, len(queries))
	for p := range queries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
