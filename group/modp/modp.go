// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package modp implements a symmetric pairing group of any size.
//
// G is the additive group Z_p with generator 1, GT is the order-p subgroup of
// Z_q* for a prime q = c·p + 1, and e(a, b) = t^(a·b) mod q. Discrete logs in
// G are trivial, so the group offers no security at all. It exists to run the
// VRF over the small and odd-sized parameters (k = 10, 30, 79, ...) used in
// tests, which no real pairing-friendly curve provides.
//
// Because g = 1, a public key equals its secret key. The provider is therefore
// not registered on import; tests that import records naming modp call
// Register first.
package modp

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/vechain/go-dyvrf/group"
	"golang.org/x/xerrors"
)

// Name is the name the provider is registered under.
const Name = "modp"

const (
	MinSecurityParameter = 3
	MaxSecurityParameter = 1024

	primalityRounds = 32
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

var registerOnce sync.Once

// Register adds the provider to the group registry. Repeated calls are
// no-ops.
func Register() {
	registerOnce.Do(func() {
		group.Register(Provider{})
	})
}

// Provider creates modp groups. The zero value is ready to use.
type Provider struct{}

var (
	_ group.Provider = Provider{}
	_ group.Insecure = Provider{}
)

func (Provider) Name() string {
	return Name
}

// Insecure is always true: discrete logs in G are trivial.
func (Provider) Insecure() bool {
	return true
}

var cache sync.Map // int -> *Context

// Init derives the group for k deterministically: p is the smallest prime
// with exactly k bits, q the smallest prime of the form c·p + 1.
func (Provider) Init(k int) (group.Context, error) {
	if k < MinSecurityParameter || k > MaxSecurityParameter {
		return nil, xerrors.Errorf("modp supports %d <= k <= %d, got %d: %w",
			MinSecurityParameter, MaxSecurityParameter, k, group.ErrUnsupportedSecurityParameter)
	}
	if c, ok := cache.Load(k); ok {
		return c.(*Context), nil
	}
	c := newContext(k)
	actual, _ := cache.LoadOrStore(k, c)
	return actual.(*Context), nil
}

// Context is a modp group. It is immutable once created.
type Context struct {
	k int
	p *big.Int // order of G and GT
	q *big.Int // modulus of GT
	t *big.Int // generator of GT, e(1, 1)

	plen, qlen int
}

var _ group.Context = (*Context)(nil)

func newContext(k int) *Context {
	p := new(big.Int).Lsh(one, uint(k-1))
	p.Add(p, one)
	for !p.ProbablyPrime(primalityRounds) {
		p.Add(p, two)
	}

	// p is odd, so only even cofactors can give an odd q.
	c := big.NewInt(2)
	q := new(big.Int)
	for {
		q.Mul(c, p).Add(q, one)
		if q.ProbablyPrime(primalityRounds) {
			break
		}
		c.Add(c, two)
	}

	// t = h^c has order p unless it is 1.
	t := new(big.Int)
	for h := big.NewInt(2); ; h.Add(h, one) {
		t.Exp(h, c, q)
		if t.Cmp(one) != 0 {
			break
		}
	}

	return &Context{
		k:    k,
		p:    p,
		q:    q,
		t:    t,
		plen: (p.BitLen() + 7) / 8,
		qlen: (q.BitLen() + 7) / 8,
	}
}

func (c *Context) Name() string {
	return Name
}

func (c *Context) SecurityParameter() int {
	return c.k
}

func (c *Context) Order() *big.Int {
	return c.p
}

// Modulus returns the prime q whose multiplicative group contains GT.
func (c *Context) Modulus() *big.Int {
	return c.q
}

func (c *Context) Generator() group.Point {
	return c.point(big.NewInt(1))
}

func (c *Context) Identity() group.Point {
	return c.point(new(big.Int))
}

func (c *Context) ScalarMult(s *big.Int, p group.Point) group.Point {
	v := new(big.Int).Mul(s, c.cast(p).v)
	return c.point(v)
}

func (c *Context) Add(a, b group.Point) group.Point {
	v := new(big.Int).Add(c.cast(a).v, c.cast(b).v)
	return c.point(v)
}

func (c *Context) Pair(a, b group.Point) group.Element {
	e := new(big.Int).Mul(c.cast(a).v, c.cast(b).v)
	e.Mod(e, c.p)
	return &Element{v: new(big.Int).Exp(c.t, e, c.q), size: c.qlen}
}

func (c *Context) UnmarshalPoint(b []byte) (group.Point, error) {
	if len(b) != c.plen {
		return nil, xerrors.Errorf("point must be %d bytes, got %d: %w", c.plen, len(b), group.ErrInvalidEncoding)
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(c.p) >= 0 {
		return nil, xerrors.Errorf("point out of range: %w", group.ErrInvalidEncoding)
	}
	return &Point{v: v, size: c.plen}, nil
}

func (c *Context) UnmarshalElement(b []byte) (group.Element, error) {
	if len(b) != c.qlen {
		return nil, xerrors.Errorf("element must be %d bytes, got %d: %w", c.qlen, len(b), group.ErrInvalidEncoding)
	}
	v := new(big.Int).SetBytes(b)
	if v.Sign() == 0 || v.Cmp(c.q) >= 0 {
		return nil, xerrors.Errorf("element out of range: %w", group.ErrInvalidEncoding)
	}
	if new(big.Int).Exp(v, c.p, c.q).Cmp(one) != 0 {
		return nil, xerrors.Errorf("element not in the order-p subgroup: %w", group.ErrInvalidEncoding)
	}
	return &Element{v: v, size: c.qlen}, nil
}

func (c *Context) point(v *big.Int) *Point {
	return &Point{v: v.Mod(v, c.p), size: c.plen}
}

func (c *Context) cast(p group.Point) *Point {
	pt, ok := p.(*Point)
	if !ok {
		panic(fmt.Sprintf("modp: foreign point type %T", p))
	}
	return pt
}

// Point is an element of (Z_p, +).
type Point struct {
	v    *big.Int
	size int
}

func (p *Point) Equal(o group.Point) bool {
	op, ok := o.(*Point)
	return ok && p.v.Cmp(op.v) == 0
}

func (p *Point) MarshalBinary() ([]byte, error) {
	return p.v.FillBytes(make([]byte, p.size)), nil
}

func (p *Point) String() string {
	return "modp.Point(" + p.v.String() + ")"
}

// Element is an element of the order-p subgroup of Z_q*.
type Element struct {
	v    *big.Int
	size int
}

func (e *Element) Equal(o group.Element) bool {
	oe, ok := o.(*Element)
	return ok && e.v.Cmp(oe.v) == 0
}

func (e *Element) MarshalBinary() ([]byte, error) {
	return e.v.FillBytes(make([]byte, e.size)), nil
}

func (e *Element) String() string {
	return "modp.Element(" + e.v.String() + ")"
}
