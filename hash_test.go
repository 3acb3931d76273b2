// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"crypto"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestSelectHash(t *testing.T) {
	tests := []struct {
		bits    int
		want    crypto.Hash
		wantErr bool
	}{
		{0, 0, true},
		{160, 0, true},
		{223, 0, true},
		{224, crypto.SHA224, false},
		{254, crypto.SHA224, false},
		{255, crypto.SHA224, false},
		{256, crypto.SHA256, false},
		{383, crypto.SHA256, false},
		{384, crypto.SHA384, false},
		{511, crypto.SHA384, false},
		{512, crypto.SHA512, false},
		{4096, crypto.SHA512, false},
	}
	for _, tt := range tests {
		got, err := SelectHash(tt.bits)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrParameterTooSmall, "bits = %d", tt.bits)
			continue
		}
		require.NoError(t, err, "bits = %d", tt.bits)
		require.Equal(t, tt.want, got, "bits = %d", tt.bits)
	}
}

func TestSelectHashSHA3(t *testing.T) {
	tests := map[int]crypto.Hash{
		224: crypto.SHA3_224,
		255: crypto.SHA3_224,
		256: crypto.SHA3_256,
		384: crypto.SHA3_384,
		512: crypto.SHA3_512,
	}
	for bits, want := range tests {
		got, err := HashSHA3.Select(bits)
		require.NoError(t, err)
		require.Equal(t, want, got, "bits = %d", bits)
	}

	_, err := HashSHA3.Select(223)
	require.ErrorIs(t, err, ErrParameterTooSmall)

	_, err = HashFamily(7).Select(300)
	require.Error(t, err)
	require.Equal(t, "HashFamily(7)", HashFamily(7).String())
}

func TestOrderBits(t *testing.T) {
	// 2^224 has 225 bits and ⌊log2⌋ = 224.
	p := new(big.Int).Lsh(big.NewInt(1), 224)
	require.Equal(t, 224, orderBits(p))
	require.Equal(t, 223, orderBits(p.Sub(p, big.NewInt(1))))
}

func TestHashInput(t *testing.T) {
	// 0x0102 is hashed as its little-endian bytes 02 01.
	x := big.NewInt(0x0102)
	sum := sha256.Sum256([]byte{0x02, 0x01})
	want := new(big.Int).SetBytes(reverse(sum[:]))
	require.Equal(t, want, hashInput(sha256.New, x))

	// zero is the empty string
	empty := sha3.Sum256(nil)
	require.Equal(t, new(big.Int).SetBytes(reverse(empty[:])), hashInput(sha3.New256, new(big.Int)))

	// x is left untouched
	require.Equal(t, int64(0x0102), x.Int64())
}

func TestConfigSetup(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		k       int
		wantErr error
	}{
		{"plain small", DYPlain, 10, nil},
		{"sha2 too small", DYSha2, 224, ErrParameterTooSmall},
		{"sha2 smallest", DYSha2, 225, nil},
		{"sha3 too small", DYSha3, 160, ErrParameterTooSmall},
		{"sha3 smallest", DYSha3, 225, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.cfg.Setup(testProvider, tt.k)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.k, params.SecurityParameter())
		})
	}
}
