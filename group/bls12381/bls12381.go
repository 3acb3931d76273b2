// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package bls12381 provides the BLS12-381 group as a symmetric pairing.
//
// BLS12-381 has an asymmetric pairing ê: G1×G2 → GT. A point here is the pair
// (a·g1, a·g2) and e(P, Q) = ê(P.g1, Q.g2), which is bilinear and symmetric on
// well-formed pairs. Decoding rejects pairs whose halves have different
// discrete logs, so every point has exactly one encoding.
package bls12381

import (
	"fmt"
	"math/big"

	"github.com/drand/kyber"
	kbls "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/group/mod"
	"github.com/drand/kyber/pairing"

	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// Name is the name the provider is registered under.
const Name = "bls12381"

const (
	g1Size = 48
	g2Size = 96

	// PointSize is the length of an encoded point.
	PointSize = g1Size + g2Size
)

// order is r, the prime order of G1, G2 and GT.
var order, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// MaxSecurityParameter is the largest k the curve satisfies, ⌈log2 r⌉.
var MaxSecurityParameter = order.BitLen()

func init() {
	group.Register(Provider{})
}

// Provider creates BLS12-381 contexts. The zero value is ready to use.
type Provider struct{}

var _ group.Provider = Provider{}

func (Provider) Name() string {
	return Name
}

// Init returns the curve for any 1 <= k <= 255. The curve is fixed, so k is
// only recorded and checked against the order.
func (Provider) Init(k int) (group.Context, error) {
	if k < 1 || k > MaxSecurityParameter {
		return nil, xerrors.Errorf("bls12381 supports 1 <= k <= %d, got %d: %w",
			MaxSecurityParameter, k, group.ErrUnsupportedSecurityParameter)
	}
	suite := kbls.NewBLS12381Suite()
	c := &Context{
		k:     k,
		suite: suite,
		rm1:   mod.NewInt(new(big.Int).Sub(order, big.NewInt(1)), order),
	}
	c.gen = &Point{
		g1: suite.G1().Point().Base(),
		g2: suite.G2().Point().Base(),
	}
	return c, nil
}

// Context is the BLS12-381 group.
type Context struct {
	k     int
	suite pairing.Suite
	gen   *Point
	rm1   kyber.Scalar // r - 1
}

var _ group.Context = (*Context)(nil)

func (c *Context) Name() string {
	return Name
}

func (c *Context) SecurityParameter() int {
	return c.k
}

func (c *Context) Order() *big.Int {
	return order
}

func (c *Context) Generator() group.Point {
	return c.gen
}

func (c *Context) Identity() group.Point {
	return &Point{
		g1: c.suite.G1().Point().Null(),
		g2: c.suite.G2().Point().Null(),
	}
}

func (c *Context) scalar(s *big.Int) kyber.Scalar {
	return mod.NewInt(s, order)
}

func (c *Context) ScalarMult(s *big.Int, p group.Point) group.Point {
	pt := cast(p)
	sc := c.scalar(s)
	return &Point{
		g1: c.suite.G1().Point().Mul(sc, pt.g1),
		g2: c.suite.G2().Point().Mul(sc, pt.g2),
	}
}

func (c *Context) Add(a, b group.Point) group.Point {
	pa, pb := cast(a), cast(b)
	return &Point{
		g1: c.suite.G1().Point().Add(pa.g1, pb.g1),
		g2: c.suite.G2().Point().Add(pa.g2, pb.g2),
	}
}

func (c *Context) Pair(a, b group.Point) group.Element {
	return &Element{gt: c.suite.Pair(cast(a).g1, cast(b).g2)}
}

// UnmarshalPoint decodes g1 || g2 (compressed) and checks that both halves
// lie in the order-r subgroups and share a discrete log.
func (c *Context) UnmarshalPoint(b []byte) (group.Point, error) {
	if len(b) != PointSize {
		return nil, xerrors.Errorf("point must be %d bytes, got %d: %w", PointSize, len(b), group.ErrInvalidEncoding)
	}
	g1 := c.suite.G1().Point()
	if err := g1.UnmarshalBinary(b[:g1Size]); err != nil {
		return nil, xerrors.Errorf("unmarshalling G1 half: %v: %w", err, group.ErrInvalidEncoding)
	}
	g2 := c.suite.G2().Point()
	if err := g2.UnmarshalBinary(b[g1Size:]); err != nil {
		return nil, xerrors.Errorf("unmarshalling G2 half: %v: %w", err, group.ErrInvalidEncoding)
	}
	if !c.inSubgroup(c.suite.G1(), g1) || !c.inSubgroup(c.suite.G2(), g2) {
		return nil, xerrors.Errorf("point not in the order-r subgroup: %w", group.ErrInvalidEncoding)
	}
	// ê(P.g1, g2) = ê(g1, P.g2) iff both halves have the same discrete log.
	left := c.suite.Pair(g1, c.gen.g2)
	right := c.suite.Pair(c.gen.g1, g2)
	if !left.Equal(right) {
		return nil, xerrors.Errorf("inconsistent G1 and G2 halves: %w", group.ErrInvalidEncoding)
	}
	return &Point{g1: g1, g2: g2}, nil
}

// inSubgroup reports whether (r-1)·p + p is the identity.
func (c *Context) inSubgroup(g kyber.Group, p kyber.Point) bool {
	q := g.Point().Mul(c.rm1, p)
	q.Add(q, p)
	return q.Equal(g.Point().Null())
}

func (c *Context) UnmarshalElement(b []byte) (group.Element, error) {
	gt := c.suite.GT().Point()
	if err := gt.UnmarshalBinary(b); err != nil {
		return nil, xerrors.Errorf("unmarshalling GT element: %v: %w", err, group.ErrInvalidEncoding)
	}
	return &Element{gt: gt}, nil
}

func cast(p group.Point) *Point {
	pt, ok := p.(*Point)
	if !ok {
		panic(fmt.Sprintf("bls12381: foreign point type %T", p))
	}
	return pt
}

// Point is a pair (a·g1, a·g2).
type Point struct {
	g1 kyber.Point
	g2 kyber.Point
}

func (p *Point) Equal(o group.Point) bool {
	op, ok := o.(*Point)
	return ok && p.g1.Equal(op.g1) && p.g2.Equal(op.g2)
}

func (p *Point) MarshalBinary() ([]byte, error) {
	b1, err := p.g1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b2, err := p.g2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(b1, b2...), nil
}

func (p *Point) String() string {
	return fmt.Sprintf("bls12381.Point(%s, %s)", p.g1, p.g2)
}

// Element is an element of GT.
type Element struct {
	gt kyber.Point
}

func (e *Element) Equal(o group.Element) bool {
	oe, ok := o.(*Element)
	return ok && e.gt.Equal(oe.gt)
}

func (e *Element) MarshalBinary() ([]byte, error) {
	return e.gt.MarshalBinary()
}

func (e *Element) String() string {
	return "bls12381.Element(" + e.gt.String() + ")"
}
