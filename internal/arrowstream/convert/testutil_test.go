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

package convert

import (
	"encoding/binary"
	"io"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
)

// fakeVector is a fixed-shape test double for column.Vector: every
// accessor is backed by plain Go slices so test cases can construct
// arbitrary fixtures without a real query engine.
type fakeVector struct {
	i32   []int32
	i64   []int64
	f64   []float64
	bytes [][]byte
}

func (v fakeVector) Len() int {
	switch {
	case v.i32 != nil:
		return len(v.i32)
	case v.i64 != nil:
		return len(v.i64)
	case v.f64 != nil:
		return len(v.f64)
	default:
		return len(v.bytes)
	}
}
func (v fakeVector) GetI32(i int) int32    { return v.i32[i] }
func (v fakeVector) GetI64(i int) int64    { return v.i64[i] }
func (v fakeVector) GetF64(i int) float64  { return v.f64[i] }
func (v fakeVector) GetBytes(i int) []byte { return v.bytes[i] }

// fakeBlock is a column.Block test double with an explicit null set and
// an optional flat vector view; nulls is nil when the block declares it
// can never contain nulls (exercising validityBytes' fast path).
type fakeBlock struct {
	n      int
	nulls  map[int]bool
	vector column.Vector
	noView bool
}

func (b fakeBlock) PositionCount() int { return b.n }
func (b fakeBlock) MayHaveNulls() bool { return b.nulls != nil }
func (b fakeBlock) IsNull(i int) bool  { return b.nulls != nil && b.nulls[i] }
func (b fakeBlock) AsVector() (column.Vector, bool) {
	if b.noView {
		return nil, false
	}
	return b.vector, true
}

// drainWriters runs every writer against a single buffer in order and
// returns the concatenated bytes written, failing the test via the
// returned error if a writer misbehaves.
func drainWriters(writers []BufferWriter) ([][]byte, error) {
	out := make([][]byte, len(writers))
	for i, w := range writers {
		buf := &collectingWriter{}
		if _, err := w(buf); err != nil {
			return nil, err
		}
		out[i] = buf.data
	}
	return out, nil
}

type collectingWriter struct{ data []byte }

func (w *collectingWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

var _ io.Writer = (*collectingWriter)(nil)

// readOffsets decodes a little-endian int32 offsets buffer into plain ints.
func readOffsets(buf []byte) []int32 {
	n := len(buf) / 4
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}
