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
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadTo8Len(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 8, 7: 8, 8: 8, 9: 16}
	for in, want := range cases {
		assert.Equal(t, want, padTo8Len(in))
	}
}

func TestWriteChannelPadTo8(t *testing.T) {
	var buf bytes.Buffer
	ch := &writeChannel{w: &buf}

	_, err := ch.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, ch.padTo8())

	assert.Equal(t, int64(8), ch.pos)
	assert.Len(t, buf.Bytes(), 8)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestWriteChannelWrapsSinkErrors(t *testing.T) {
	ch := &writeChannel{w: failingWriter{}}
	_, err := ch.Write([]byte{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkWrite)
}

func TestWriteFramedMessageNoBody(t *testing.T) {
	var buf bytes.Buffer
	metadata := []byte{1, 2, 3, 4, 5}

	n, err := writeFramedMessage(&buf, metadata, nil)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, n, int64(len(out)))
	assert.Equal(t, continuationMarker[:], out[0:4])

	gotLen := binary.LittleEndian.Uint32(out[4:8])
	assert.Equal(t, uint32(8), gotLen, "metadata length is padded to the next multiple of 8")
	assert.Equal(t, metadata, out[8:13])
	assert.Equal(t, []byte{0, 0, 0}, out[13:16], "metadata padding is zero bytes")
	assert.Len(t, out, 16)
}

func TestWriteFramedMessageWithBody(t *testing.T) {
	var buf bytes.Buffer
	metadata := []byte{9, 9, 9, 9, 9, 9, 9, 9} // already 8-aligned

	_, err := writeFramedMessage(&buf, metadata, func(ch *writeChannel) error {
		_, err := ch.Write([]byte{0xAA, 0xBB})
		return err
	})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, []byte{0xAA, 0xBB}, out[16:18])
}
