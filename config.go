// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// Config selects how an input becomes an exponent. Whatever the mode, the
// exponent is reduced modulo the group order before use, identically when
// proving and verifying.
type Config struct {
	// Name labels the configuration in metrics.
	Name string
	// Hashed maps each input through the hash picked for the group order.
	// Otherwise the input itself is the exponent.
	Hashed bool
	// Family is the hash family used when Hashed is set.
	Family HashFamily
}

var (
	// DYPlain uses the input directly and works with any group size.
	DYPlain = &Config{Name: "dy-plain"}
	// DYSha2 hashes inputs with the SHA-2 member sized for the group order.
	DYSha2 = &Config{Name: "dy-sha2", Hashed: true, Family: HashSHA2}
	// DYSha3 hashes inputs with the SHA-3 member sized for the group order.
	DYSha3 = &Config{Name: "dy-sha3", Hashed: true, Family: HashSHA3}

	// vufConfig is used by the VUF, which never hashes.
	vufConfig = &Config{Name: "vuf"}
)

// Setup initialises the group for security parameter k and checks that the
// configuration can be used with it.
func (cfg *Config) Setup(provider group.Provider, k int) (*PublicParameters, error) {
	params, err := Setup(provider, k)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.hasher(params.Order()); err != nil {
		return nil, xerrors.Errorf("setting up %s with k = %d: %w", cfg.Name, k, err)
	}
	return params, nil
}
