// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/loomplan/loom/lib/codec"
	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

// Format version carried inside the CBOR payload. Bump on any
// incompatible payload change.
const formatVersion = 1

// magic identifies a Loom snapshot file. The trailing digit is the
// container layout version, separate from the payload version.
var magic = []byte("LOOMSNP1")

// digestKey is the 32-byte key for BLAKE3 keyed hashing of snapshot
// payloads. A fixed constant: changing it invalidates every existing
// snapshot digest. The byte values are the ASCII encoding of the
// domain name, zero-padded to 32 bytes, so the key is inspectable in
// hex dumps without sacrificing any cryptographic property.
var digestKey = [32]byte{
	'l', 'o', 'o', 'm', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// digestSize is the length of the BLAKE3 digest stored in the header.
const digestSize = 32

var (
	// ErrBadMagic indicates the file does not start with the Loom
	// snapshot magic, or is too short to carry a header at all.
	ErrBadMagic = errors.New("not a loom snapshot")

	// ErrDigestMismatch indicates the payload bytes do not hash to
	// the digest recorded in the header. The file was truncated or
	// modified after it was written.
	ErrDigestMismatch = errors.New("snapshot digest mismatch")

	// ErrUnsupportedVersion indicates the payload was written by a
	// newer format version than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// document is the CBOR payload: the complete state of a plan graph.
type document struct {
	Version int          `cbor:"version"`
	Items   []itemRecord `cbor:"items"`
	Edges   []edgeRecord `cbor:"edges"`
}

// itemRecord is the serialized form of a single work item. Optional
// attributes are pointers or omitempty so a record carries exactly
// what the item carries.
type itemRecord struct {
	ID           uuid.UUID          `cbor:"id"`
	Kind         workitem.Kind      `cbor:"kind"`
	Name         string             `cbor:"name"`
	Link         string             `cbor:"link,omitempty"`
	Owner        string             `cbor:"owner,omitempty"`
	Timeline     *timeline.Timeline `cbor:"timeline,omitempty"`
	Points       *int               `cbor:"points,omitempty"`
	Participants []string           `cbor:"participants,omitempty"`
}

// edgeRecord is one dependency edge. Edges reference items by id;
// order within the slice preserves per-item adjacency order.
type edgeRecord struct {
	From uuid.UUID               `cbor:"from"`
	To   uuid.UUID               `cbor:"to"`
	Type workitem.DependencyType `cbor:"type"`
}

// recordItem converts a live work item into its serialized form.
func recordItem(item workitem.Item) itemRecord {
	record := itemRecord{
		ID:   item.ID(),
		Kind: item.Kind(),
		Name: item.Name(),
	}
	if link, ok := item.Link(); ok {
		record.Link = link
	}
	if owner, ok := item.Owner(); ok {
		record.Owner = owner
	}
	if tl, ok := item.Timeline(); ok {
		record.Timeline = &tl
	}
	if points, ok := item.Points(); ok {
		record.Points = &points
	}
	record.Participants = item.Participants()
	return record
}

// buildItem reconstructs a work item from its serialized form.
func buildItem(record itemRecord) (workitem.Item, error) {
	builder := workitem.Builder{}.WithID(record.ID).WithName(record.Name)
	if record.Link != "" {
		builder = builder.WithLink(record.Link)
	}
	if record.Owner != "" {
		builder = builder.WithOwner(record.Owner)
	}
	if record.Timeline != nil {
		builder = builder.WithTimeline(*record.Timeline)
	}
	if record.Points != nil {
		builder = builder.WithPoints(*record.Points)
	}
	if len(record.Participants) > 0 {
		builder = builder.WithParticipants(record.Participants...)
	}
	item, err := builder.Build(record.Kind)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", record.ID, err)
	}
	return item, nil
}

// Encode serializes the graph into the snapshot wire format.
func Encode(graph *plangraph.Graph) ([]byte, error) {
	doc := document{Version: formatVersion}

	for _, item := range graph.Items() {
		doc.Items = append(doc.Items, recordItem(item))
		deps, _ := graph.Dependencies(item.ID())
		for _, dep := range deps {
			doc.Edges = append(doc.Edges, edgeRecord{
				From: item.ID(),
				To:   dep.TargetID,
				Type: dep.Type,
			})
		}
	}

	payload, err := codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot payload: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(payload, nil)
	digest := payloadDigest(compressed)

	out := make([]byte, 0, len(magic)+digestSize+len(compressed))
	out = append(out, magic...)
	out = append(out, digest[:]...)
	out = append(out, compressed...)
	return out, nil
}

// Decode parses snapshot bytes and rebuilds the graph, re-validating
// every item and edge through the graph's own checks.
func Decode(data []byte) (*plangraph.Graph, error) {
	if len(data) < len(magic)+digestSize {
		return nil, ErrBadMagic
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, ErrBadMagic
	}

	var stored [digestSize]byte
	copy(stored[:], data[len(magic):len(magic)+digestSize])
	compressed := data[len(magic)+digestSize:]

	if payloadDigest(compressed) != stored {
		return nil, ErrDigestMismatch
	}

	payload, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot payload: %w", err)
	}

	var doc document
	if err := codec.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot payload: %w", err)
	}
	if doc.Version > formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	graph := plangraph.New()
	byID := make(map[uuid.UUID]workitem.Item, len(doc.Items))
	for _, record := range doc.Items {
		item, err := buildItem(record)
		if err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
		if err := graph.Insert(item); err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
		byID[item.ID()] = item
	}

	for _, edge := range doc.Edges {
		from, ok := byID[edge.From]
		if !ok {
			return nil, fmt.Errorf("restoring snapshot: edge references unknown item %s", edge.From)
		}
		to, ok := byID[edge.To]
		if !ok {
			return nil, fmt.Errorf("restoring snapshot: edge references unknown item %s", edge.To)
		}
		if err := graph.Connect(from, to, edge.Type); err != nil {
			return nil, fmt.Errorf("restoring snapshot: edge %s -> %s: %w", edge.From, edge.To, err)
		}
	}
	return graph, nil
}

// Save writes a snapshot of the graph to path. The write is not
// atomic; callers that need crash safety should write to a temporary
// file and rename.
func Save(path string, graph *plangraph.Graph) error {
	data, err := Encode(graph)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot file and rebuilds the graph.
func Load(path string) (*plangraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Decode(data)
}

// payloadDigest computes the BLAKE3 keyed digest of the compressed
// payload bytes.
func payloadDigest(compressed []byte) [digestSize]byte {
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(compressed)
	var digest [digestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}
