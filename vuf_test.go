// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVUFScenario(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for _, k := range []int{10, 30, 79, 100, 151, 160} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			params, err := Setup(testProvider, k)
			require.NoError(t, err)
			keys, err := GenerateKeys(params, nil)
			require.NoError(t, err)
			signer, err := NewVUFSigner(params, keys)
			require.NoError(t, err)
			verifier, err := NewVUFVerifier(signer.PublicKey())
			require.NoError(t, err)

			for draw := 0; draw < 5; {
				a, b := distinctInputs(rnd, params.Order())
				sa, err := signer.Sign(a)
				if errors.Is(err, ErrProofUndefined) {
					continue
				}
				require.NoError(t, err)
				sb, err := signer.Sign(b)
				if errors.Is(err, ErrProofUndefined) {
					continue
				}
				require.NoError(t, err)

				require.True(t, verifier.Verify(a, sa))
				require.True(t, verifier.Verify(b, sb))
				require.False(t, verifier.Verify(a, sb))
				require.False(t, verifier.Verify(b, sa))
				draw++
			}
		})
	}
}

func TestVUFMatchesPlainProof(t *testing.T) {
	params, err := Setup(testProvider, 79)
	require.NoError(t, err)
	keys, err := GenerateKeys(params, nil)
	require.NoError(t, err)
	signer, err := NewVUFSigner(params, keys)
	require.NoError(t, err)
	prover, err := NewProver(DYPlain, params, keys)
	require.NoError(t, err)

	x := big.NewInt(404)
	sig, err := signer.Sign(x)
	require.NoError(t, err)
	_, pi, err := prover.Prove(x)
	require.NoError(t, err)
	require.True(t, sig.Point().Equal(pi.Point()))
	require.Equal(t, prover.PublicKey(), signer.PublicKey())
}

func TestVUFRejects(t *testing.T) {
	params, err := Setup(testProvider, 100)
	require.NoError(t, err)
	keys, err := GenerateKeys(params, nil)
	require.NoError(t, err)
	signer, err := NewVUFSigner(params, keys)
	require.NoError(t, err)
	verifier, err := NewVUFVerifier(signer.PublicKey())
	require.NoError(t, err)

	x := big.NewInt(8)
	sig, err := signer.Sign(x)
	require.NoError(t, err)

	require.False(t, verifier.Verify(x, nil))
	require.False(t, verifier.Verify(nil, sig))

	other, err := Setup(testProvider, 30)
	require.NoError(t, err)
	otherKeys, err := GenerateKeys(other, nil)
	require.NoError(t, err)
	otherSigner, err := NewVUFSigner(other, otherKeys)
	require.NoError(t, err)
	foreign, err := otherSigner.Sign(x)
	require.NoError(t, err)
	require.False(t, verifier.Verify(x, foreign))

	sk := new(big.Int).Sub(params.Order(), x)
	undefined, err := NewVUFSigner(params, newKeyPair(params, sk))
	require.NoError(t, err)
	_, err = undefined.Sign(x)
	require.ErrorIs(t, err, ErrProofUndefined)
}
