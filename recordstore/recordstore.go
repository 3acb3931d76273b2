// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package recordstore keeps the public records of known provers so that
// verifiers can be built by prover name.
package recordstore

import (
	"bytes"
	"context"
	"errors"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	"github.com/ipfs/go-datastore/query"
	"golang.org/x/xerrors"

	dyvrf "github.com/vechain/go-dyvrf"
)

var ErrRecordNotFound = errors.New("public record not found")

var recordsPrefix = datastore.NewKey("/records")

// Store maps prover names to public records.
type Store struct {
	ds datastore.Datastore
}

// New creates a store on top of ds. The passed Datastore has to be thread
// safe.
func New(ds datastore.Datastore) *Store {
	return &Store{ds: namespace.Wrap(ds, datastore.NewKey("/dyvrf"))}
}

func keyFor(name string) (datastore.Key, error) {
	if name == "" {
		return datastore.Key{}, xerrors.New("empty prover name")
	}
	key := recordsPrefix.ChildString(name)
	if key.Parent() != recordsPrefix || key.BaseNamespace() != name {
		return datastore.Key{}, xerrors.Errorf("invalid prover name %q", name)
	}
	return key, nil
}

// Put validates rec and stores it under name, replacing any previous record.
func (s *Store) Put(ctx context.Context, name string, rec *dyvrf.PublicRecord) error {
	key, err := keyFor(name)
	if err != nil {
		return err
	}
	if _, _, err := dyvrf.ImportPublicRecord(rec); err != nil {
		return xerrors.Errorf("storing record for %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := rec.MarshalCBOR(&buf); err != nil {
		return xerrors.Errorf("marshalling record for %s: %w", name, err)
	}
	if err := s.ds.Put(ctx, key, buf.Bytes()); err != nil {
		return xerrors.Errorf("writing record for %s: %w", name, err)
	}
	return nil
}

// Get returns the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (*dyvrf.PublicRecord, error) {
	key, err := keyFor(name)
	if err != nil {
		return nil, err
	}
	b, err := s.ds.Get(ctx, key)
	if errors.Is(err, datastore.ErrNotFound) {
		return nil, xerrors.Errorf("record for %s: %w", name, ErrRecordNotFound)
	}
	if err != nil {
		return nil, xerrors.Errorf("accessing record in datastore: %w", err)
	}
	rec, err := dyvrf.DecodePublicRecord(b)
	if err != nil {
		return nil, xerrors.Errorf("unmarshalling record for %s: %w", name, err)
	}
	return rec, nil
}

// Verifier builds a VRF verifier for the prover stored under name.
func (s *Store) Verifier(ctx context.Context, cfg *dyvrf.Config, name string) (*dyvrf.Verifier, error) {
	rec, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return dyvrf.NewVerifier(cfg, rec)
}

// Delete removes the record stored under name. Deleting a missing record is
// not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := keyFor(name)
	if err != nil {
		return err
	}
	return s.ds.Delete(ctx, key)
}

// Names lists the stored prover names in key order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	res, err := s.ds.Query(ctx, query.Query{
		Prefix:   recordsPrefix.String(),
		KeysOnly: true,
		Orders:   []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, xerrors.Errorf("querying records: %w", err)
	}
	defer res.Close()

	entries, err := res.Rest()
	if err != nil {
		return nil, xerrors.Errorf("iterating records: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, datastore.RawKey(e.Key).BaseNamespace())
	}
	return names, nil
}
