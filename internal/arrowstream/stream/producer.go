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

package stream

import (
	"github.com/cockroachdb/errors"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
	"github.com/queryarrow/arrowstream/internal/arrowstream/wire"
	"github.com/queryarrow/arrowstream/pkg/metrics"
)

// ErrProducerDone is returned when EncodeChunk is called on a producer
// that has already produced its one chunk, violating the "called only
// while is_done() == false" precondition of spec §4.4.
var ErrProducerDone = errors.New("arrowstream: producer already produced its chunk")

// Producer is the finite-state chunk producer contract of spec §4.4.
type Producer interface {
	IsDone() bool
	EncodeChunk(sizeHint int, recycler *Recycler) (*Chunk, error)
	ContentType() string
}

// SchemaProducer emits the single Arrow Schema message for a response.
type SchemaProducer struct {
	cols []column.Column
	reg  *convert.Registry
	done bool
}

func (p *SchemaProducer) IsDone() bool        { return p.done }
func (p *SchemaProducer) ContentType() string { return ContentType }

func (p *SchemaProducer) EncodeChunk(sizeHint int, recycler *Recycler) (*Chunk, error) {
	if p.done {
		return nil, ErrProducerDone
	}
	p.done = true

	buf := recycler.get()
	if _, err := wire.EncodeSchemaMessage(buf, p.cols, p.reg); err != nil {
		releaseSink(recycler, buf)
		return nil, err
	}

	metrics.ChunksEmitted.WithLabelValues("schema").Inc()
	metrics.BytesEmitted.WithLabelValues("schema").Observe(float64(buf.Len()))
	return newChunk(buf, recycler), nil
}

// PageProducer emits one RecordBatch message for a single page.
type PageProducer struct {
	cols []column.Column
	page column.Page
	reg  *convert.Registry
	done bool
}

func (p *PageProducer) IsDone() bool        { return p.done }
func (p *PageProducer) ContentType() string { return ContentType }

func (p *PageProducer) EncodeChunk(sizeHint int, recycler *Recycler) (*Chunk, error) {
	if p.done {
		return nil, ErrProducerDone
	}
	p.done = true

	buf := recycler.get()
	if _, err := wire.EncodeRecordBatch(buf, p.cols, p.page, p.reg); err != nil {
		releaseSink(recycler, buf)
		return nil, err
	}

	metrics.ChunksEmitted.WithLabelValues("page").Inc()
	metrics.BytesEmitted.WithLabelValues("page").Observe(float64(buf.Len()))
	return newChunk(buf, recycler), nil
}

// EndProducer emits the Arrow IPC end-of-stream marker.
type EndProducer struct {
	done bool
}

func (p *EndProducer) IsDone() bool        { return p.done }
func (p *EndProducer) ContentType() string { return ContentType }

func (p *EndProducer) EncodeChunk(sizeHint int, recycler *Recycler) (*Chunk, error) {
	if p.done {
		return nil, ErrProducerDone
	}
	p.done = true

	buf := recycler.get()
	if _, err := wire.EncodeEndOfStream(buf); err != nil {
		releaseSink(recycler, buf)
		return nil, err
	}

	metrics.ChunksEmitted.WithLabelValues("end").Inc()
	metrics.BytesEmitted.WithLabelValues("end").Observe(float64(buf.Len()))
	return newChunk(buf, recycler), nil
}

// ChunkedResponse is the fixed, ordered producer sequence of spec §4.4:
// one Schema producer, one producer per page, and one End producer.
type ChunkedResponse struct {
	producers []Producer
	next      int
	pageCount int
}

// NewChunkedResponse builds the producer sequence for cols and pages.
// reg must already be constructed with the desired ValueTransform
// policy (spec §7, SPEC_FULL.md §12).
func NewChunkedResponse(cols []column.Column, pages []column.Page, reg *convert.Registry) *ChunkedResponse {
	producers := make([]Producer, 0, len(pages)+2)
	producers = append(producers, &SchemaProducer{cols: cols, reg: reg})
	for _, p := range pages {
		producers = append(producers, &PageProducer{cols: cols, page: p, reg: reg})
	}
	producers = append(producers, &EndProducer{})

	return &ChunkedResponse{producers: producers, pageCount: len(pages)}
}

// Len returns the total number of chunk producers: 1 + page_count + 1.
func (r *ChunkedResponse) Len() int { return len(r.producers) }

// PageCount returns the number of RecordBatch pages in this response,
// exposed purely for transport-side telemetry (SPEC_FULL.md §12).
func (r *ChunkedResponse) PageCount() int { return r.pageCount }

// Next returns the next producer to pull from, in order, and false once
// the sequence is exhausted.
func (r *ChunkedResponse) Next() (Producer, bool) {
	if r.next >= len(r.producers) {
		return nil, false
	}
	p := r.producers[r.next]
	r.next++
	return p, true
}
