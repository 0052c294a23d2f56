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

package wire

import (
	"io"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/cockroachdb/errors"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
	"github.com/queryarrow/arrowstream/pkg/metrics"
)

// ErrDescriptorWriterMismatch indicates a converter produced an unequal
// number of buffer descriptors and writers, violating spec §3's global
// invariant; it signals a converter bug rather than bad input data.
var ErrDescriptorWriterMismatch = errors.New("arrowstream: buffer descriptor/writer count mismatch")

// EncodeRecordBatch assembles and serializes one RecordBatch message for
// page, per spec §4.3: it builds field nodes, buffer descriptors and
// writers for every column, lays out buffer offsets against the
// descriptors alone, then drives the writers to stream the body.
func EncodeRecordBatch(sink io.Writer, cols []column.Column, page column.Page, reg *convert.Registry) (int64, error) {
	numRows := page.PositionCount()
	if len(cols) != len(page.Blocks) {
		return 0, errors.Newf("arrowstream: page has %d blocks, schema has %d columns", len(page.Blocks), len(cols))
	}

	nodes := make([]fieldNodeStruct, 0, len(cols))
	var descriptors []convert.BufferDescriptor
	var writers []convert.BufferWriter

	for i, col := range cols {
		conv, ok := reg.ConverterFor(col.LogicalType())
		if !ok {
			return 0, errors.Wrapf(column.ErrUnsupportedType, "column %q", col.Name())
		}

		nullCount, err := conv.NullCount(page.Blocks[i])
		if err != nil {
			return 0, errors.Wrapf(err, "column %q", col.Name())
		}
		nodes = append(nodes, fieldNodeStruct{length: int64(numRows), nullCount: int64(nullCount)})

		before := len(descriptors)
		if err := conv.Convert(page.Blocks[i], &descriptors, &writers); err != nil {
			metrics.EncodeFailures.WithLabelValues(errorKind(err)).Inc()
			return 0, errors.Wrapf(err, "column %q", col.Name())
		}
		if len(descriptors)-before != len(writers)-before {
			return 0, ErrDescriptorWriterMismatch
		}
	}

	if len(descriptors) != len(writers) {
		return 0, ErrDescriptorWriterMismatch
	}

	bufs := make([]bufferStruct, len(descriptors))
	var bodySize int64
	for i, d := range descriptors {
		padded := padTo8Len(d.Length)
		bufs[i] = bufferStruct{offset: bodySize, length: padded}
		bodySize += padded
	}

	b := flatbuffers.NewBuilder(4096)
	rbOff := buildRecordBatchTable(b, int64(numRows), nodes, bufs)
	msgOff := buildMessage(b, msgHeaderRecordBatch, rbOff, bodySize)
	b.Finish(msgOff)

	written, err := writeFramedMessage(sink, b.FinishedBytes(), func(ch *writeChannel) error {
		for i, d := range descriptors {
			n, err := writers[i](ch)
			if err != nil {
				return errors.Wrap(err, "arrowstream: buffer writer failed")
			}
			if n != d.Length {
				return errors.Newf("arrowstream: buffer %d wrote %d bytes, descriptor declared %d", i, n, d.Length)
			}
			if err := ch.padTo8(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.EncodeFailures.WithLabelValues(errorKind(err)).Inc()
		return written, err
	}

	metrics.RowsEncoded.Add(float64(numRows))
	return written, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, column.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, convert.ErrUnsupportedBlockShape):
		return "unsupported_block_shape"
	case errors.Is(err, convert.ErrOffsetOverflow):
		return "offset_overflow"
	case errors.Is(err, convert.ErrValueTransform):
		return "value_transform"
	case errors.Is(err, ErrSinkWrite):
		return "sink_write"
	default:
		return "other"
	}
}
