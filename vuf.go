// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"math/big"

	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// VUFSigner computes the verifiable unpredictable function g^(1/(x+sk)).
// Unlike the VRF there is no hashing and no separate output: the proof is
// the value.
type VUFSigner struct {
	core   *core
	keys   *KeyPair
	record *PublicRecord
}

// NewVUFSigner fails with ErrInvalidKey if keys were made for another group.
func NewVUFSigner(params *PublicParameters, keys *KeyPair) (*VUFSigner, error) {
	if err := keys.checkGroup(params); err != nil {
		return nil, err
	}
	c, err := newCore(vufConfig, params)
	if err != nil {
		return nil, err
	}
	rec, err := ExportPublicRecord(params, keys.pk)
	if err != nil {
		return nil, err
	}
	return &VUFSigner{core: c, keys: keys, record: rec}, nil
}

// Sign returns g^(1/(x+sk)) with x reduced mod p. It fails with
// ErrProofUndefined when x + sk ≡ 0 (mod p).
func (s *VUFSigner) Sign(x *big.Int) (*Proof, error) {
	pi, err := prove(s.core, s.keys, x)
	if err != nil {
		return nil, err
	}
	return &Proof{ctx: s.core.params.ctx, pi: pi}, nil
}

func (s *VUFSigner) PublicKey() *PublicRecord {
	return s.record.clone()
}

// VUFVerifier checks VUF values against a public record.
type VUFVerifier struct {
	core *core
	pk   group.Point
}

func NewVUFVerifier(rec *PublicRecord) (*VUFVerifier, error) {
	params, pk, err := ImportPublicRecord(rec)
	if err != nil {
		return nil, err
	}
	c, err := newCore(vufConfig, params)
	if err != nil {
		return nil, xerrors.Errorf("building vuf verifier: %w", err)
	}
	return &VUFVerifier{core: c, pk: pk}, nil
}

// Verify reports whether e(x·g + pk, sig) = e(g, g).
func (v *VUFVerifier) Verify(x *big.Int, sig *Proof) bool {
	ok := sig != nil && v.core.sameGroup(sig.ctx)
	if ok {
		h, err := v.core.Exponent(x)
		ok = err == nil && v.core.CheckProof(h, v.pk, sig.pi)
	}
	if !ok {
		metrics.verifications.WithLabelValues(v.core.Name, resultRejected).Inc()
		return false
	}
	metrics.verifications.WithLabelValues(v.core.Name, resultOK).Inc()
	return true
}
