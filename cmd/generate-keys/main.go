// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Command generate-keys outputs a fresh VRF key and its public record.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/xerrors"

	dyvrf "github.com/vechain/go-dyvrf"
	"github.com/vechain/go-dyvrf/group"
	_ "github.com/vechain/go-dyvrf/group/bls12381"
)

var configs = map[string]*dyvrf.Config{
	dyvrf.DYPlain.Name: dyvrf.DYPlain,
	dyvrf.DYSha2.Name:  dyvrf.DYSha2,
	dyvrf.DYSha3.Name:  dyvrf.DYSha3,
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate-keys", flag.ContinueOnError)
	suite := fs.String("suite", "bls12381", fmt.Sprintf("group provider, one of %v", group.SecureProviders()))
	k := fs.Int("k", 128, "security parameter in bits")
	config := fs.String("config", dyvrf.DYSha2.Name, "VRF configuration (dy-plain, dy-sha2 or dy-sha3)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, ok := configs[*config]
	if !ok {
		return xerrors.New("Usage: generate-keys [-suite name] [-k bits] [-config dy-plain|dy-sha2|dy-sha3]")
	}
	provider, err := group.Lookup(*suite)
	if err != nil {
		return err
	}
	if group.IsInsecure(provider) {
		return xerrors.Errorf("refusing to generate keys in insecure group %s", provider.Name())
	}

	params, err := cfg.Setup(provider, *k)
	if err != nil {
		return err
	}
	keys, err := dyvrf.GenerateKeys(params, nil)
	if err != nil {
		return err
	}
	prover, err := dyvrf.NewProver(cfg, params, keys)
	if err != nil {
		return err
	}
	record, err := dyvrf.EncodePublicRecord(prover.PublicKey())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "VRF Private Key: %x\n", keys.MarshalSecret(params))
	fmt.Fprintf(out, "Public Record:   %x\n", record)
	return nil
}
