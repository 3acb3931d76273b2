// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// PublicParameters is the group shared by a prover and its verifiers. It is
// immutable and safe for concurrent use.
type PublicParameters struct {
	ctx group.Context
	egg group.Element // e(g, g)
}

// Setup initialises a group of order at least k bits.
func Setup(provider group.Provider, k int) (*PublicParameters, error) {
	ctx, err := provider.Init(k)
	if err != nil {
		return nil, xerrors.Errorf("initialising %s group: %w", provider.Name(), err)
	}
	log.Debugw("group initialised", "provider", ctx.Name(), "k", k, "orderBits", ctx.Order().BitLen())
	return newPublicParameters(ctx), nil
}

func newPublicParameters(ctx group.Context) *PublicParameters {
	g := ctx.Generator()
	return &PublicParameters{ctx: ctx, egg: ctx.Pair(g, g)}
}

func (pp *PublicParameters) Group() group.Context {
	return pp.ctx
}

func (pp *PublicParameters) Suite() string {
	return pp.ctx.Name()
}

func (pp *PublicParameters) SecurityParameter() int {
	return pp.ctx.SecurityParameter()
}

func (pp *PublicParameters) Generator() group.Point {
	return pp.ctx.Generator()
}

// Order returns a copy of the group order p.
func (pp *PublicParameters) Order() *big.Int {
	return new(big.Int).Set(pp.ctx.Order())
}

// Equal reports whether both parameters describe the same group.
func (pp *PublicParameters) Equal(o *PublicParameters) bool {
	return o != nil && group.Same(pp.ctx, o.ctx)
}

// KeyPair holds the secret scalar sk and pk = sk·g. The secret never leaves
// the package except through MarshalSecret.
type KeyPair struct {
	ctx group.Context
	sk  *big.Int
	pk  group.Point
}

// GenerateKeys draws sk uniformly from [1, p-1]. A nil r uses
// crypto/rand.Reader.
func GenerateKeys(params *PublicParameters, r io.Reader) (*KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	pm1 := new(big.Int).Sub(params.ctx.Order(), big.NewInt(1))
	sk, err := rand.Int(r, pm1)
	if err != nil {
		return nil, xerrors.Errorf("drawing secret key: %w", err)
	}
	sk.Add(sk, big.NewInt(1))
	return newKeyPair(params, sk), nil
}

func newKeyPair(params *PublicParameters, sk *big.Int) *KeyPair {
	return &KeyPair{ctx: params.ctx, sk: sk, pk: params.ctx.ScalarMult(sk, params.ctx.Generator())}
}

// checkGroup fails with ErrInvalidKey unless kp was made for params.
func (kp *KeyPair) checkGroup(params *PublicParameters) error {
	if kp == nil {
		return xerrors.Errorf("nil key pair: %w", ErrInvalidKey)
	}
	if !group.Same(kp.ctx, params.ctx) {
		return xerrors.Errorf("key pair belongs to %s/%d, not %s/%d: %w",
			kp.ctx.Name(), kp.ctx.SecurityParameter(), params.Suite(), params.SecurityParameter(), ErrInvalidKey)
	}
	return nil
}

// ParseKeyPair reads a secret key written by MarshalSecret.
func ParseKeyPair(params *PublicParameters, b []byte) (*KeyPair, error) {
	if len(b) != scalarSize(params) {
		return nil, xerrors.Errorf("secret key must be %d bytes, got %d: %w", scalarSize(params), len(b), ErrInvalidKey)
	}
	sk := new(big.Int).SetBytes(b)
	if sk.Sign() == 0 || sk.Cmp(params.ctx.Order()) >= 0 {
		return nil, xerrors.Errorf("secret key out of range: %w", ErrInvalidKey)
	}
	return newKeyPair(params, sk), nil
}

// PublicKey returns pk.
func (kp *KeyPair) PublicKey() group.Point {
	return kp.pk
}

// MarshalSecret returns sk as a fixed-width big-endian integer. The result
// must be handled as secret.
func (kp *KeyPair) MarshalSecret(params *PublicParameters) []byte {
	return kp.sk.FillBytes(make([]byte, scalarSize(params)))
}

func scalarSize(params *PublicParameters) int {
	return (params.ctx.Order().BitLen() + 7) / 8
}

// PublicRecord is what a prover hands to its verifiers: the group (suite
// name, k, p, g) and the public key.
type PublicRecord struct {
	Suite string
	K     uint64
	Order []byte // big-endian
	G     []byte
	PK    []byte
}

// ExportPublicRecord packs the parameters and public key for transmission.
func ExportPublicRecord(params *PublicParameters, pk group.Point) (*PublicRecord, error) {
	g, err := params.ctx.Generator().MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("marshalling generator: %w", err)
	}
	pkb, err := pk.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("marshalling public key: %w", err)
	}
	return &PublicRecord{
		Suite: params.Suite(),
		K:     uint64(params.SecurityParameter()),
		Order: params.ctx.Order().Bytes(),
		G:     g,
		PK:    pkb,
	}, nil
}

// ImportPublicRecord rebuilds the parameters and public key from a record
// using the registered provider it names. Every failure wraps
// ErrInvalidPublicRecord.
func ImportPublicRecord(rec *PublicRecord) (*PublicParameters, group.Point, error) {
	params, pk, err := importPublicRecord(rec)
	if err != nil {
		log.Debugw("public record rejected", "err", err)
		return nil, nil, withKind(ErrInvalidPublicRecord, err)
	}
	return params, pk, nil
}

func importPublicRecord(rec *PublicRecord) (*PublicParameters, group.Point, error) {
	if rec == nil {
		return nil, nil, xerrors.New("nil record")
	}
	provider, err := group.Lookup(rec.Suite)
	if err != nil {
		return nil, nil, err
	}
	if rec.K == 0 || rec.K > maxSecurityParameter {
		return nil, nil, xerrors.Errorf("security parameter %d out of range", rec.K)
	}
	ctx, err := provider.Init(int(rec.K))
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(rec.Order, ctx.Order().Bytes()) {
		return nil, nil, xerrors.New("group order does not match the suite")
	}
	g, err := ctx.UnmarshalPoint(rec.G)
	if err != nil {
		return nil, nil, xerrors.Errorf("generator: %w", err)
	}
	if !g.Equal(ctx.Generator()) {
		return nil, nil, xerrors.New("generator does not match the suite")
	}
	pk, err := ctx.UnmarshalPoint(rec.PK)
	if err != nil {
		return nil, nil, xerrors.Errorf("public key: %w", err)
	}
	if pk.Equal(ctx.Identity()) {
		return nil, nil, xerrors.New("public key is the identity")
	}
	return newPublicParameters(ctx), pk, nil
}

// maxSecurityParameter bounds k in records so that decoding cannot ask a
// provider for an absurdly large group.
const maxSecurityParameter = 1 << 16
