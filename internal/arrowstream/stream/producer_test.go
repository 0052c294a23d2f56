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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
)

type fakeVector struct{ i32 []int32 }

func (v fakeVector) Len() int              { return len(v.i32) }
func (v fakeVector) GetI32(i int) int32    { return v.i32[i] }
func (v fakeVector) GetI64(int) int64      { return 0 }
func (v fakeVector) GetF64(int) float64    { return 0 }
func (v fakeVector) GetBytes(int) []byte   { return nil }

type fakeBlock struct {
	n      int
	vector column.Vector
}

func (b fakeBlock) PositionCount() int              { return b.n }
func (b fakeBlock) MayHaveNulls() bool              { return false }
func (b fakeBlock) IsNull(int) bool                 { return false }
func (b fakeBlock) AsVector() (column.Vector, bool) { return b.vector, true }

func mustColumn(t *testing.T, lt column.LogicalType, name string) column.Column {
	t.Helper()
	c, err := column.NewColumn(lt, name)
	require.NoError(t, err)
	return c
}

func TestChunkedResponseEmpty(t *testing.T) {
	reg := convert.NewRegistry(false)
	resp := NewChunkedResponse(nil, nil, reg)

	assert.Equal(t, 2, resp.Len(), "schema + end, no pages")
	assert.Equal(t, 0, resp.PageCount())

	var kinds []string
	for {
		p, ok := resp.Next()
		if !ok {
			break
		}
		assert.False(t, p.IsDone())
		recycler := NewRecycler(false)
		chunk, err := p.EncodeChunk(0, recycler)
		require.NoError(t, err)
		assert.True(t, p.IsDone())
		assert.Equal(t, ContentType, p.ContentType())
		assert.NotZero(t, chunk.Len())
		chunk.Release()
		kinds = append(kinds, "x")
	}
	assert.Len(t, kinds, 2)
}

func TestChunkedResponseSequenceOrder(t *testing.T) {
	reg := convert.NewRegistry(false)
	cols := []column.Column{mustColumn(t, column.Integer, "n")}
	pages := []column.Page{
		{Blocks: []column.Block{fakeBlock{n: 2, vector: fakeVector{i32: []int32{1, 2}}}}},
		{Blocks: []column.Block{fakeBlock{n: 1, vector: fakeVector{i32: []int32{3}}}}},
	}

	resp := NewChunkedResponse(cols, pages, reg)
	require.Equal(t, 4, resp.Len())
	assert.Equal(t, 2, resp.PageCount())

	var types []Producer
	for {
		p, ok := resp.Next()
		if !ok {
			break
		}
		types = append(types, p)
	}
	require.Len(t, types, 4)
	assert.IsType(t, &SchemaProducer{}, types[0])
	assert.IsType(t, &PageProducer{}, types[1])
	assert.IsType(t, &PageProducer{}, types[2])
	assert.IsType(t, &EndProducer{}, types[3])
}

func TestProducerSecondEncodeChunkFails(t *testing.T) {
	reg := convert.NewRegistry(false)
	resp := NewChunkedResponse(nil, nil, reg)
	recycler := NewRecycler(false)

	p, ok := resp.Next()
	require.True(t, ok)

	_, err := p.EncodeChunk(0, recycler)
	require.NoError(t, err)

	_, err = p.EncodeChunk(0, recycler)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProducerDone)
}
