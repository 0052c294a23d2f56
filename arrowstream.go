// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arrowstream is the public surface of a streaming encoder that
// serializes a columnar query result into the Apache Arrow IPC Streaming
// format as a sequence of independently-producible byte chunks, suitable
// for an HTTP chunked transfer. The implementation lives under
// internal/arrowstream; this file is the thin facade a host service
// embeds.
package arrowstream

import (
	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
	"github.com/queryarrow/arrowstream/internal/arrowstream/stream"
)

// Re-exported data model types (spec §3).
type (
	LogicalType = column.LogicalType
	Column      = column.Column
	Block       = column.Block
	Vector      = column.Vector
	Page        = column.Page
)

// Re-exported logical type names (spec §4.5).
const (
	TypeNull           = column.Null
	TypeUnsupported    = column.Unsupported
	TypeBoolean        = column.Boolean
	TypeInteger        = column.Integer
	TypeCounterInteger = column.CounterInteger
	TypeLong           = column.Long
	TypeCounterLong    = column.CounterLong
	TypeUnsignedLong   = column.UnsignedLong
	TypeDouble         = column.Double
	TypeCounterDouble  = column.CounterDouble
	TypeDate           = column.Date
	TypeKeyword        = column.Keyword
	TypeText           = column.Text
	TypeIP             = column.IP
	TypeVersion        = column.Version
	TypeGeoPoint       = column.GeoPoint
	TypeGeoShape       = column.GeoShape
	TypeCartesianPoint = column.CartesianPoint
	TypeCartesianShape = column.CartesianShape
	TypeSource         = column.Source
)

// NewColumn validates logicalType against the registry and constructs an
// immutable Column, failing fast with an UnsupportedType error otherwise
// (spec §7).
func NewColumn(logicalType LogicalType, name string) (Column, error) {
	return column.NewColumn(logicalType, name)
}

// Config configures an Encoder. The zero value equals DefaultConfig.
type Config struct {
	// StrictValueTransforms selects the ValueTransform failure policy of
	// spec §7: false (default) leaves a failing row's bytes empty and
	// the row otherwise valid; true makes the failure fatal for the
	// response. SPEC_FULL.md §12.
	StrictValueTransforms bool

	// DebugRecycler enables the byte-sink recycler's double-release
	// detector. It costs an extra hash pass per released chunk and is
	// meant for tests, not production traffic.
	DebugRecycler bool
}

// DefaultConfig returns the encoder's default configuration: lenient
// ValueTransform handling, recycler debug checks disabled.
func DefaultConfig() Config {
	return Config{StrictValueTransforms: false, DebugRecycler: false}
}

// Encoder builds ChunkedResponses for a fixed configuration. It holds no
// per-response state and is safe to share across concurrently-served
// responses — each response gets its own producer sequence and recycler
// (spec §5).
type Encoder struct {
	cfg Config
	reg *convert.Registry
}

// NewEncoder constructs an Encoder from cfg.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{cfg: cfg, reg: convert.NewRegistry(cfg.StrictValueTransforms)}
}

// ChunkedResponse is the producer sequence exposed to the transport:
// [Schema] · [Page0 .. PageN-1] · [End] (spec §4.4/§6).
type ChunkedResponse = stream.ChunkedResponse

// Producer is the per-chunk contract the transport pulls against.
type Producer = stream.Producer

// Chunk is a releasable byte range produced by a single EncodeChunk call.
type Chunk = stream.Chunk

// Recycler is the byte sink pool passed to EncodeChunk; construct one
// per response and discard it once the response is fully drained.
type Recycler = stream.Recycler

// NewRecycler constructs a Recycler honoring the Encoder's debug setting.
func (e *Encoder) NewRecycler() *Recycler {
	return stream.NewRecycler(e.cfg.DebugRecycler)
}

// ChunkedResponse returns the ordered sequence of chunk producers for
// cols and pages: length 1 + len(pages) + 1 (spec §6).
func (e *Encoder) ChunkedResponse(cols []Column, pages []Page) *ChunkedResponse {
	return stream.NewChunkedResponse(cols, pages, e.reg)
}
