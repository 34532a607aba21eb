// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

// Client performs the collection operations over a Transport.
type Client struct {
	transport  Transport
	collection string
}

// NewClient returns a Client for the collection mounted at collection
// (normalized with CollectionPath; empty means DefaultCollectionPath).
func NewClient(transport Transport, collection string) *Client {
	return &Client{
		transport:  transport,
		collection: CollectionPath(collection),
	}
}

// CollectionPath returns the normalized collection path in use.
func (client *Client) CollectionPath() string {
	return client.collection
}

// List returns the full collection in server order.
func (client *Client) List(ctx context.Context) ([]person.Record, error) {
	data, err := client.transport.Get(ctx, client.collection)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	var records []person.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("list persons: decoding response: %w", err)
	}
	return records, nil
}

// Get returns one record.
func (client *Client) Get(ctx context.Context, id person.ID) (person.Record, error) {
	path, err := RecordPath(client.collection, id)
	if err != nil {
		return person.Record{}, fmt.Errorf("get person: %w", err)
	}
	data, err := client.transport.Get(ctx, path)
	if err != nil {
		return person.Record{}, fmt.Errorf("get person %s: %w", id, err)
	}
	record, err := decodeRecord(data)
	if err != nil {
		return person.Record{}, fmt.Errorf("get person %s: %w", id, err)
	}
	return record, nil
}

// Create posts draft without its identifier and returns the record the
// server stored. The returned record's ID is whatever the server sent;
// an empty body yields a record with the zero ID.
func (client *Client) Create(ctx context.Context, draft person.Record) (person.Record, error) {
	draft.ID = person.ID{}
	data, err := client.transport.Post(ctx, client.collection, draft)
	if err != nil {
		return person.Record{}, fmt.Errorf("create person: %w", err)
	}
	record, err := decodeRecord(data)
	if err != nil {
		return person.Record{}, fmt.Errorf("create person: %w", err)
	}
	return record, nil
}

// Update replaces the record identified by record.ID. If the server
// acknowledges with an empty body, the sent record is returned.
func (client *Client) Update(ctx context.Context, record person.Record) (person.Record, error) {
	path, err := RecordPath(client.collection, record.ID)
	if err != nil {
		return person.Record{}, fmt.Errorf("update person: %w", err)
	}
	data, err := client.transport.Put(ctx, path, record)
	if err != nil {
		return person.Record{}, fmt.Errorf("update person %s: %w", record.ID, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return record, nil
	}
	updated, err := decodeRecord(data)
	if err != nil {
		return person.Record{}, fmt.Errorf("update person %s: %w", record.ID, err)
	}
	return updated, nil
}

// Delete removes the record identified by id.
func (client *Client) Delete(ctx context.Context, id person.ID) error {
	path, err := RecordPath(client.collection, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if _, err := client.transport.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete person %s: %w", id, err)
	}
	return nil
}

func decodeRecord(data []byte) (person.Record, error) {
	var record person.Record
	if len(bytes.TrimSpace(data)) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return person.Record{}, fmt.Errorf("decoding response: %w", err)
	}
	return record, nil
}
