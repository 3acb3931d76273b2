// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"bytes"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/vechain/go-dyvrf/group"
)

func TestDecodeProof(t *testing.T) {
	f := newFixture(t, DYPlain, 79)
	_, pi, err := f.prover.Prove(big.NewInt(1))
	require.NoError(t, err)
	b, err := pi.MarshalBinary()
	require.NoError(t, err)

	got, err := DecodeProof(f.params, b)
	require.NoError(t, err)
	require.True(t, got.Point().Equal(pi.Point()))

	for _, bad := range [][]byte{nil, b[1:], append(b, 0), bytes.Repeat([]byte{0xff}, len(b))} {
		_, err := DecodeProof(f.params, bad)
		require.ErrorIs(t, err, ErrInvalidProof, "%x", bad)
	}
}

func TestDecodeOutput(t *testing.T) {
	f := newFixture(t, DYPlain, 79)
	y, _, err := f.prover.Prove(big.NewInt(1))
	require.NoError(t, err)
	b, err := y.MarshalBinary()
	require.NoError(t, err)

	got, err := DecodeOutput(f.params, b)
	require.NoError(t, err)
	require.True(t, got.Equal(y))
	require.False(t, got.Equal(nil))

	for _, bad := range [][]byte{nil, b[1:], append(b, 0), make([]byte, len(b))} {
		_, err := DecodeOutput(f.params, bad)
		require.ErrorIs(t, err, ErrInvalidOutput, "%x", bad)
	}
}

func TestDecodePublicRecordRejects(t *testing.T) {
	f := newFixture(t, DYPlain, 30)
	valid, err := EncodePublicRecord(f.prover.PublicKey())
	require.NoError(t, err)

	var fourFields bytes.Buffer
	fourFields.Write(cbg.CborEncodeMajorType(cbg.MajArray, 4))
	fourFields.Write(valid[1:])

	var longSuite bytes.Buffer
	longSuite.Write(cbg.CborEncodeMajorType(cbg.MajArray, publicRecordFields))
	longSuite.Write(cbg.CborEncodeMajorType(cbg.MajTextString, maxRecordFieldLen+1))

	tests := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-1]},
		{"trailing", append(append([]byte{}, valid...), 0)},
		{"not an array", cbg.CborEncodeMajorType(cbg.MajUnsignedInt, 5)},
		{"null", cbg.CborNull},
		{"four fields", fourFields.Bytes()},
		{"long suite", longSuite.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePublicRecord(tt.b)
			require.ErrorIs(t, err, ErrInvalidPublicRecord)
		})
	}
}

func TestEncodeNilRecord(t *testing.T) {
	var buf bytes.Buffer
	var rec *PublicRecord
	require.NoError(t, rec.MarshalCBOR(&buf))
	require.Equal(t, cbg.CborNull, buf.Bytes())

	_, err := EncodePublicRecord(&PublicRecord{Suite: string(make([]byte, maxRecordFieldLen+1))})
	require.Error(t, err)
}

func TestErrorsWrapSentinelAndCause(t *testing.T) {
	_, err := DecodeProof(mustSetup(t, 30), []byte{1})
	require.ErrorIs(t, err, ErrInvalidProof)
	require.ErrorIs(t, err, group.ErrInvalidEncoding)

	_, _, err = ImportPublicRecord(&PublicRecord{Suite: "p256", K: 1})
	require.ErrorIs(t, err, ErrInvalidPublicRecord)
	require.ErrorIs(t, err, group.ErrUnknownProvider)
	require.True(t, strings.HasPrefix(err.Error(), ErrInvalidPublicRecord.Error()+": "))
}

func mustSetup(t *testing.T, k int) *PublicParameters {
	t.Helper()
	params, err := Setup(testProvider, k)
	require.NoError(t, err)
	return params
}

func FuzzDecodeProof(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x02, 0x01})

	params, err := Setup(testProvider, 79)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, pi []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("DecodeProof panicked: %v", r)
			}
		}()

		_, _ = DecodeProof(params, pi)
		_, _ = DecodeOutput(params, pi)
	})
}

func FuzzDecodePublicRecord(f *testing.F) {
	fx := newFixture(f, DYPlain, 30)
	valid, err := EncodePublicRecord(fx.prover.PublicKey())
	if err != nil {
		f.Fatal(err)
	}
	f.Add(valid)
	f.Add([]byte{0x85})

	f.Fuzz(func(t *testing.T, b []byte) {
		rec, err := DecodePublicRecord(b)
		if err != nil {
			return
		}
		again, err := EncodePublicRecord(rec)
		if err != nil {
			t.Fatalf("re-encoding decoded record: %v", err)
		}
		rec2, err := DecodePublicRecord(again)
		if err != nil {
			t.Fatalf("decoding re-encoded record: %v", err)
		}
		if !reflect.DeepEqual(rec, rec2) {
			t.Fatalf("record changed across re-encoding: %+v vs %+v", rec, rec2)
		}
		_, _, _ = ImportPublicRecord(rec)
	})
}

func FuzzProveVerify(f *testing.F) {
	f.Add([]byte("Hello VeChain"), []byte{1})
	f.Add([]byte{0x00, 0x01, 0x02}, []byte{0xFF, 0x00, 0xAA})

	params, err := Setup(testProvider, 79)
	if err != nil {
		f.Fatal(err)
	}
	pm1 := new(big.Int).Sub(params.Order(), big.NewInt(1))

	f.Fuzz(func(t *testing.T, alpha []byte, skSeed []byte) {
		if len(skSeed) == 0 {
			t.Skip()
		}
		// sk = (seed mod (p-1)) + 1
		sk := new(big.Int).SetBytes(skSeed)
		sk.Mod(sk, pm1).Add(sk, big.NewInt(1))

		prover, err := NewProver(DYPlain, params, newKeyPair(params, sk))
		if err != nil {
			t.Fatal(err)
		}
		verifier, err := NewVerifier(DYPlain, prover.PublicKey())
		if err != nil {
			t.Fatal(err)
		}

		x := new(big.Int).SetBytes(alpha)
		y, pi, err := prover.Prove(x)
		if err != nil {
			return
		}
		if !verifier.Verify(x, y, pi) {
			t.Fatalf("self-produced proof rejected")
		}
		if verifier.Verify(new(big.Int).Add(x, big.NewInt(1)), y, pi) {
			t.Fatalf("proof accepted for the wrong input")
		}
	})
}
