// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import "errors"

var (
	// ErrParameterTooSmall means no hash function fits below the group order.
	// Choose a larger security parameter.
	ErrParameterTooSmall = errors.New("dyvrf: group order too small for any hash function")
	// ErrProofUndefined means h(x) + sk ≡ 0 (mod p). It is final for that
	// input and key.
	ErrProofUndefined = errors.New("dyvrf: proof undefined for this input")
	ErrNotInvertible  = errors.New("dyvrf: exponent not invertible")

	ErrInvalidPublicRecord = errors.New("dyvrf: invalid public record")
	ErrInvalidProof        = errors.New("dyvrf: invalid proof")
	ErrInvalidOutput       = errors.New("dyvrf: invalid output")
	ErrInvalidInput        = errors.New("dyvrf: invalid input")
	ErrInvalidKey          = errors.New("dyvrf: invalid key")
)

// kindError tags the error that caused a failure with one of the sentinels
// above. errors.Is matches either.
type kindError struct {
	kind error
	err  error
}

func withKind(kind, err error) error {
	return &kindError{kind: kind, err: err}
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}
