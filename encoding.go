// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"bytes"
	"io"

	"github.com/vechain/go-dyvrf/group"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// Proof is π = g^(1/(h(x)+sk)), an element of G.
type Proof struct {
	ctx group.Context
	pi  group.Point
}

// Point returns π.
func (p *Proof) Point() group.Point {
	return p.pi
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	return p.pi.MarshalBinary()
}

// DecodeProof decodes a proof and checks that it is an element of the group.
func DecodeProof(params *PublicParameters, b []byte) (*Proof, error) {
	pi, err := params.ctx.UnmarshalPoint(b)
	if err != nil {
		return nil, withKind(ErrInvalidProof, err)
	}
	return &Proof{ctx: params.ctx, pi: pi}, nil
}

// Output is the VRF value y = e(g, g)^(1/(h(x)+sk)), an element of GT.
type Output struct {
	ctx group.Context
	y   group.Element
}

// Element returns y.
func (o *Output) Element() group.Element {
	return o.y
}

func (o *Output) Equal(other *Output) bool {
	return other != nil && group.Same(o.ctx, other.ctx) && o.y.Equal(other.y)
}

func (o *Output) MarshalBinary() ([]byte, error) {
	return o.y.MarshalBinary()
}

// DecodeOutput decodes an output and checks that it is an element of GT.
func DecodeOutput(params *PublicParameters, b []byte) (*Output, error) {
	y, err := params.ctx.UnmarshalElement(b)
	if err != nil {
		return nil, withKind(ErrInvalidOutput, err)
	}
	return &Output{ctx: params.ctx, y: y}, nil
}

const (
	publicRecordFields = 5
	// maxRecordFieldLen bounds every string and byte field of an encoded
	// record.
	maxRecordFieldLen = 4096
)

func (r *PublicRecord) clone() *PublicRecord {
	return &PublicRecord{
		Suite: r.Suite,
		K:     r.K,
		Order: bytes.Clone(r.Order),
		G:     bytes.Clone(r.G),
		PK:    bytes.Clone(r.PK),
	}
}

// MarshalCBOR writes the record as the tuple [suite, k, p, g, pk].
func (r *PublicRecord) MarshalCBOR(w io.Writer) error {
	if r == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}

	if _, err := w.Write(cbg.CborEncodeMajorType(cbg.MajArray, publicRecordFields)); err != nil {
		return err
	}
	if len(r.Suite) > maxRecordFieldLen {
		return xerrors.Errorf("suite name too long (%d bytes)", len(r.Suite))
	}
	if _, err := w.Write(cbg.CborEncodeMajorType(cbg.MajTextString, uint64(len(r.Suite)))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, r.Suite); err != nil {
		return err
	}
	if _, err := w.Write(cbg.CborEncodeMajorType(cbg.MajUnsignedInt, r.K)); err != nil {
		return err
	}
	for _, field := range [][]byte{r.Order, r.G, r.PK} {
		if len(field) > maxRecordFieldLen {
			return xerrors.Errorf("record field too long (%d bytes)", len(field))
		}
		if _, err := w.Write(cbg.CborEncodeMajorType(cbg.MajByteString, uint64(len(field)))); err != nil {
			return err
		}
		if _, err := w.Write(field); err != nil {
			return err
		}
	}
	return nil
}

func (r *PublicRecord) UnmarshalCBOR(br io.Reader) error {
	*r = PublicRecord{}

	maj, extra, err := cbg.CborReadHeader(br)
	if err != nil {
		return err
	}
	if maj != cbg.MajArray {
		return xerrors.Errorf("cbor input for public record was not an array (%x)", maj)
	}
	if extra != publicRecordFields {
		return xerrors.Errorf("public record has %d fields, want %d", extra, publicRecordFields)
	}

	suite, err := readCBORField(br, cbg.MajTextString)
	if err != nil {
		return xerrors.Errorf("suite: %w", err)
	}
	r.Suite = string(suite)

	maj, extra, err = cbg.CborReadHeader(br)
	if err != nil {
		return xerrors.Errorf("k: %w", err)
	}
	if maj != cbg.MajUnsignedInt {
		return xerrors.Errorf("k: wrong type (%x)", maj)
	}
	r.K = extra

	if r.Order, err = readCBORField(br, cbg.MajByteString); err != nil {
		return xerrors.Errorf("order: %w", err)
	}
	if r.G, err = readCBORField(br, cbg.MajByteString); err != nil {
		return xerrors.Errorf("generator: %w", err)
	}
	if r.PK, err = readCBORField(br, cbg.MajByteString); err != nil {
		return xerrors.Errorf("public key: %w", err)
	}
	return nil
}

func readCBORField(br io.Reader, want byte) ([]byte, error) {
	maj, extra, err := cbg.CborReadHeader(br)
	if err != nil {
		return nil, err
	}
	if maj != want {
		return nil, xerrors.Errorf("wrong type (%x)", maj)
	}
	if extra > maxRecordFieldLen {
		return nil, xerrors.Errorf("field too long (%d bytes)", extra)
	}
	buf := make([]byte, extra)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodePublicRecord returns the CBOR encoding of rec.
func EncodePublicRecord(rec *PublicRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := rec.MarshalCBOR(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePublicRecord parses a CBOR-encoded record. It only checks the
// encoding; ImportPublicRecord checks the contents.
func DecodePublicRecord(b []byte) (*PublicRecord, error) {
	r := bytes.NewReader(b)
	var rec PublicRecord
	if err := rec.UnmarshalCBOR(r); err != nil {
		return nil, withKind(ErrInvalidPublicRecord, err)
	}
	if r.Len() != 0 {
		return nil, xerrors.Errorf("%d trailing bytes: %w", r.Len(), ErrInvalidPublicRecord)
	}
	return &rec, nil
}
