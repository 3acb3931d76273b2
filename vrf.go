// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"context"
	"errors"
	"math/big"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// VRF is implemented by Prover.
type VRF interface {
	Prove(x *big.Int) (*Output, *Proof, error)
	PublicKey() *PublicRecord
}

var _ VRF = (*Prover)(nil)

// Prover holds a secret key and evaluates the VRF. It is safe for concurrent
// use.
type Prover struct {
	core   *core
	keys   *KeyPair
	record *PublicRecord
}

// NewProver returns a prover for keys over params. It fails with
// ErrInvalidKey if keys were made for another group, and with
// ErrParameterTooSmall if cfg hashes inputs and no hash fits the group.
func NewProver(cfg *Config, params *PublicParameters, keys *KeyPair) (*Prover, error) {
	if err := keys.checkGroup(params); err != nil {
		return nil, err
	}
	c, err := newCore(cfg, params)
	if err != nil {
		return nil, xerrors.Errorf("building %s prover: %w", cfg.Name, err)
	}
	rec, err := ExportPublicRecord(params, keys.pk)
	if err != nil {
		return nil, err
	}
	return &Prover{core: c, keys: keys, record: rec}, nil
}

// Prove returns the output y = e(g, g)^(1/(h(x)+sk)) and its proof
// π = g^(1/(h(x)+sk)). It is deterministic in x and the key.
//
// ErrProofUndefined is returned when h(x) + sk ≡ 0 (mod p). It is final for
// that input: do not retry with an input altered in a way that depends on the
// key.
func (p *Prover) Prove(x *big.Int) (*Output, *Proof, error) {
	pi, err := prove(p.core, p.keys, x)
	if err != nil {
		return nil, nil, err
	}
	y := p.core.Output(pi)
	return &Output{ctx: p.core.params.ctx, y: y}, &Proof{ctx: p.core.params.ctx, pi: pi}, nil
}

// PublicKey returns the record verifiers need.
func (p *Prover) PublicKey() *PublicRecord {
	return p.record.clone()
}

func prove(c *core, keys *KeyPair, x *big.Int) (group.Point, error) {
	timer := prometheus.NewTimer(metrics.proofDur.WithLabelValues(c.Name))
	defer timer.ObserveDuration()

	h, err := c.Exponent(x)
	if err != nil {
		metrics.proofs.WithLabelValues(c.Name, resultError).Inc()
		return nil, err
	}
	ainv, err := c.Invert(h, keys.sk)
	if err != nil {
		if errors.Is(err, ErrProofUndefined) {
			metrics.proofs.WithLabelValues(c.Name, resultUndefined).Inc()
		} else {
			metrics.proofs.WithLabelValues(c.Name, resultError).Inc()
		}
		return nil, err
	}
	metrics.proofs.WithLabelValues(c.Name, resultOK).Inc()
	return c.Proof(ainv), nil
}

// Verifier checks VRF outputs against a public record. It is safe for
// concurrent use.
type Verifier struct {
	core *core
	pk   group.Point
}

// NewVerifier imports rec and prepares the hash choice for its group. A bad
// record fails with ErrInvalidPublicRecord.
func NewVerifier(cfg *Config, rec *PublicRecord) (*Verifier, error) {
	params, pk, err := ImportPublicRecord(rec)
	if err != nil {
		return nil, err
	}
	c, err := newCore(cfg, params)
	if err != nil {
		return nil, xerrors.Errorf("building %s verifier: %w", cfg.Name, err)
	}
	return &Verifier{core: c, pk: pk}, nil
}

// Params returns the group the verifier checks proofs in.
func (v *Verifier) Params() *PublicParameters {
	return v.core.params
}

// Verify reports whether y is the output for x and pi proves it. It never
// fails: malformed, mismatched or forged values all give false.
func (v *Verifier) Verify(x *big.Int, y *Output, pi *Proof) bool {
	stage := v.verify(x, y, pi)
	if stage != "" {
		log.Debugw("verification rejected", "config", v.core.Name, "stage", stage)
		metrics.verifications.WithLabelValues(v.core.Name, resultRejected).Inc()
		return false
	}
	metrics.verifications.WithLabelValues(v.core.Name, resultOK).Inc()
	return true
}

// verify returns the name of the first failed check, or "".
func (v *Verifier) verify(x *big.Int, y *Output, pi *Proof) string {
	if y == nil || pi == nil || !v.core.sameGroup(y.ctx) || !v.core.sameGroup(pi.ctx) {
		return "group"
	}
	h, err := v.core.Exponent(x)
	if err != nil {
		return "input"
	}
	if !v.core.CheckProof(h, v.pk, pi.pi) {
		return "proof"
	}
	if !v.core.Output(pi.pi).Equal(y.y) {
		return "output"
	}
	return ""
}

// VerifyBytes decodes y and pi before verifying. Undecodable values fail
// with ErrInvalidOutput or ErrInvalidProof, which is distinct from a false
// result.
func (v *Verifier) VerifyBytes(x *big.Int, y, pi []byte) (bool, error) {
	out, err := DecodeOutput(v.core.params, y)
	if err != nil {
		return false, err
	}
	proof, err := DecodeProof(v.core.params, pi)
	if err != nil {
		return false, err
	}
	return v.Verify(x, out, proof), nil
}

// Evaluation is an input together with its claimed output and proof.
type Evaluation struct {
	Input  *big.Int
	Output *Output
	Proof  *Proof
}

// VerifyBatch verifies independent evaluations in parallel. The result for
// evals[i] is at index i. It only fails if ctx is done first.
func (v *Verifier) VerifyBatch(ctx context.Context, evals []Evaluation) ([]bool, error) {
	results := make([]bool, len(evals))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i := range evals {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e := evals[i]
			results[i] = v.Verify(e.Input, e.Output, e.Proof)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, xerrors.Errorf("verifying batch: %w", err)
	}
	return results, nil
}
