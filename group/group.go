// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package group defines the bilinear group a VRF is evaluated in.
//
// A Provider turns a security parameter into a Context. The Context carries
// the group order, the generator and the pairing, so groups for different
// security parameters can live side by side.
package group

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"golang.org/x/xerrors"
)

var (
	ErrUnsupportedSecurityParameter = errors.New("group: unsupported security parameter")
	ErrInvalidEncoding              = errors.New("group: invalid encoding")
	ErrUnknownProvider              = errors.New("group: unknown provider")
)

// Point is an element of the source group G.
type Point interface {
	Equal(Point) bool
	MarshalBinary() ([]byte, error)
	String() string
}

// Element is an element of the target group GT.
type Element interface {
	Equal(Element) bool
	MarshalBinary() ([]byte, error)
	String() string
}

// Context is an initialised group of prime order with a symmetric pairing
// e: G×G → GT. Implementations are immutable and safe for concurrent use.
type Context interface {
	// Name is the name of the provider that created the context.
	Name() string
	SecurityParameter() int
	// Order returns the prime group order. Callers must not modify it.
	Order() *big.Int
	Generator() Point
	// Identity returns the neutral element of G.
	Identity() Point
	ScalarMult(s *big.Int, p Point) Point
	Add(a, b Point) Point
	Pair(a, b Point) Element

	// UnmarshalPoint decodes a point and checks that it belongs to G.
	UnmarshalPoint([]byte) (Point, error)
	// UnmarshalElement decodes an element and checks that it belongs to GT.
	UnmarshalElement([]byte) (Element, error)
}

// Provider creates group contexts.
type Provider interface {
	Name() string
	// Init returns a group whose order is at least k bits long, or an error
	// wrapping ErrUnsupportedSecurityParameter.
	Init(k int) (Context, error)
}

// Insecure is implemented by providers whose groups must never protect real
// keys.
type Insecure interface {
	Insecure() bool
}

// IsInsecure reports whether p declares itself insecure.
func IsInsecure(p Provider) bool {
	i, ok := p.(Insecure)
	return ok && i.Insecure()
}

// Same reports whether a and b describe the same group.
func Same(a, b Context) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.Name() == b.Name() &&
		a.SecurityParameter() == b.SecurityParameter() &&
		a.Order().Cmp(b.Order()) == 0 &&
		a.Generator().Equal(b.Generator())
}

var registry = struct {
	sync.RWMutex
	providers map[string]Provider
}{providers: make(map[string]Provider)}

// Register makes a provider available by name. It panics if a provider with
// the same name is already registered.
func Register(p Provider) {
	registry.Lock()
	defer registry.Unlock()

	name := p.Name()
	if _, dup := registry.providers[name]; dup {
		panic(fmt.Sprintf("group: provider %q registered twice", name))
	}
	registry.providers[name] = p
}

// Lookup returns the provider registered under name.
func Lookup(name string) (Provider, error) {
	registry.RLock()
	defer registry.RUnlock()

	p, ok := registry.providers[name]
	if !ok {
		return nil, xerrors.Errorf("provider %q: %w", name, ErrUnknownProvider)
	}
	return p, nil
}

// Providers returns the sorted names of all registered providers.
func Providers() []string {
	return providers(false)
}

// SecureProviders is Providers without the insecure ones.
func SecureProviders() []string {
	return providers(true)
}

func providers(secureOnly bool) []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.providers))
	for name, p := range registry.providers {
		if secureOnly && IsInsecure(p) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
