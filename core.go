// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"hash"
	"math/big"

	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// core evaluates the Dodis–Yampolskiy function over one group under one
// configuration. It holds no secret and is shared by provers and verifiers.
type core struct {
	*Config
	params *PublicParameters
	hasher func() hash.Hash
}

func newCore(cfg *Config, params *PublicParameters) (*core, error) {
	hasher, err := cfg.hasher(params.ctx.Order())
	if err != nil {
		return nil, err
	}
	return &core{Config: cfg, params: params, hasher: hasher}, nil
}

func (c *core) P() *big.Int {
	return c.params.ctx.Order()
}

// Exponent maps an input to h(x) mod p, or x mod p for unhashed
// configurations.
func (c *core) Exponent(x *big.Int) (*big.Int, error) {
	if x == nil {
		return nil, xerrors.Errorf("nil input: %w", ErrInvalidInput)
	}
	if c.hasher == nil {
		return new(big.Int).Mod(x, c.P()), nil
	}
	if x.Sign() < 0 {
		return nil, xerrors.Errorf("hashed inputs must not be negative: %w", ErrInvalidInput)
	}
	h := hashInput(c.hasher, x)
	return h.Mod(h, c.P()), nil
}

// Invert computes 1/(h + sk) mod p.
func (c *core) Invert(h, sk *big.Int) (*big.Int, error) {
	a := new(big.Int).Add(h, sk)
	a.Mod(a, c.P())
	if a.Sign() == 0 {
		return nil, ErrProofUndefined
	}
	ainv := new(big.Int).ModInverse(a, c.P())
	if ainv == nil {
		return nil, ErrNotInvertible
	}
	return ainv, nil
}

// Proof computes g^(1/(h+sk)).
func (c *core) Proof(ainv *big.Int) group.Point {
	return c.params.ctx.ScalarMult(ainv, c.params.ctx.Generator())
}

// Output computes e(g, π) = e(g, g)^(1/(h+sk)).
func (c *core) Output(pi group.Point) group.Element {
	return c.params.ctx.Pair(c.params.ctx.Generator(), pi)
}

// CheckProof reports whether e(h·g + pk, π) = e(g, g), which holds exactly
// when π = g^(1/(h+sk)) for the sk behind pk.
func (c *core) CheckProof(h *big.Int, pk, pi group.Point) bool {
	ctx := c.params.ctx
	base := ctx.Add(ctx.ScalarMult(h, ctx.Generator()), pk)
	return ctx.Pair(base, pi).Equal(c.params.egg)
}

// sameGroup reports whether ctx is this core's group.
func (c *core) sameGroup(ctx group.Context) bool {
	return group.Same(c.params.ctx, ctx)
}
