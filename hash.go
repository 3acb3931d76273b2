// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"math/big"

	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

// HashFamily is a set of hash functions with 224, 256, 384 and 512-bit
// outputs.
type HashFamily int

const (
	HashSHA2 HashFamily = iota
	HashSHA3
)

func (f HashFamily) String() string {
	switch f {
	case HashSHA2:
		return "sha2"
	case HashSHA3:
		return "sha3"
	default:
		return fmt.Sprintf("HashFamily(%d)", int(f))
	}
}

var hashers = map[crypto.Hash]func() hash.Hash{
	crypto.SHA224:   sha256.New224,
	crypto.SHA256:   sha256.New,
	crypto.SHA384:   sha512.New384,
	crypto.SHA512:   sha512.New,
	crypto.SHA3_224: sha3.New224,
	crypto.SHA3_256: sha3.New256,
	crypto.SHA3_384: sha3.New384,
	crypto.SHA3_512: sha3.New512,
}

// SelectHash picks the SHA-2 function with the largest output that still
// fits below a group order of the given bit size (⌊log2 p⌋).
func SelectHash(bits int) (crypto.Hash, error) {
	return HashSHA2.Select(bits)
}

// Select picks the member of f with the largest output that still fits below
// a group order of the given bit size (⌊log2 p⌋).
func (f HashFamily) Select(bits int) (crypto.Hash, error) {
	var sizes [4]crypto.Hash
	switch f {
	case HashSHA2:
		sizes = [4]crypto.Hash{crypto.SHA224, crypto.SHA256, crypto.SHA384, crypto.SHA512}
	case HashSHA3:
		sizes = [4]crypto.Hash{crypto.SHA3_224, crypto.SHA3_256, crypto.SHA3_384, crypto.SHA3_512}
	default:
		return 0, xerrors.Errorf("unknown hash family %d", int(f))
	}

	switch {
	case bits < 224:
		return 0, xerrors.Errorf("%d-bit order, need at least 224: %w", bits, ErrParameterTooSmall)
	case bits < 256:
		return sizes[0], nil
	case bits < 384:
		return sizes[1], nil
	case bits < 512:
		return sizes[2], nil
	default:
		return sizes[3], nil
	}
}

// orderBits returns ⌊log2 p⌋.
func orderBits(p *big.Int) int {
	return p.BitLen() - 1
}

// hasher returns the hash constructor for inputs over a group of order p, or
// nil when the configuration uses inputs directly.
func (cfg *Config) hasher(p *big.Int) (func() hash.Hash, error) {
	if !cfg.Hashed {
		return nil, nil
	}
	h, err := cfg.Family.Select(orderBits(p))
	if err != nil {
		return nil, err
	}
	return hashers[h], nil
}

// hashInput hashes the minimal little-endian encoding of x and reads the
// digest back as a little-endian unsigned integer.
func hashInput(newHash func() hash.Hash, x *big.Int) *big.Int {
	h := newHash()
	h.Write(reverse(x.Bytes()))
	return new(big.Int).SetBytes(reverse(h.Sum(nil)))
}

// reverse reverses b in place and returns it.
func reverse(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
