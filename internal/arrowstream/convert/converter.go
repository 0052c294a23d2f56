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

// Package convert implements the per-logical-type block converters: the
// strategies that turn an engine-native Block into Arrow field metadata,
// buffer descriptors and the deferred byte writers that produce their
// contents.
package convert

import (
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/cockroachdb/errors"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
)

// ErrUnsupportedBlockShape is returned when a block has no flat vector
// view (a multi-valued cell is present).
var ErrUnsupportedBlockShape = errors.New("arrowstream: block has no flat vector view")

// ErrOffsetOverflow is returned when a variable-width column's cumulative
// byte length exceeds the 32-bit offset range.
var ErrOffsetOverflow = errors.New("arrowstream: offsets buffer exceeds 2^31-1 bytes")

// BufferDescriptor carries only the byte length Arrow needs to compute
// buffer offsets in a RecordBatch header; it owns no bytes.
type BufferDescriptor struct {
	Length int64
}

// BufferWriter is a deferred closure that writes exactly the bytes
// described by its paired BufferDescriptor to w, and reports how many
// bytes it wrote.
type BufferWriter func(w io.Writer) (int64, error)

// FieldNode is the (length, null_count) pair Arrow records once per
// column per page.
type FieldNode struct {
	Length    int64
	NullCount int64
}

// Converter is the per-logical-type strategy described in spec §4.2.
type Converter interface {
	// ArrowFieldType returns the Arrow logical/physical type used in the
	// Schema message for this logical type.
	ArrowFieldType() arrow.DataType

	// NullCount scans block for nulls, returning 0 without scanning when
	// the block declares it cannot contain any.
	NullCount(block column.Block) (int, error)

	// Convert appends buffer descriptors and their paired writers for
	// block to a record batch under construction, in Arrow buffer order.
	Convert(block column.Block, descriptors *[]BufferDescriptor, writers *[]BufferWriter) error
}

// NullCountOf is the shared "scan only if MayHaveNulls" helper every
// converter's NullCount delegates to.
func NullCountOf(block column.Block) int {
	if !block.MayHaveNulls() {
		return 0
	}
	n := 0
	for i := 0; i < block.PositionCount(); i++ {
		if block.IsNull(i) {
			n++
		}
	}
	return n
}

// vectorOf fetches the flat vector view of block, failing with
// ErrUnsupportedBlockShape when the block cannot provide one.
func vectorOf(block column.Block) (column.Vector, error) {
	v, ok := block.AsVector()
	if !ok {
		return nil, ErrUnsupportedBlockShape
	}
	return v, nil
}
