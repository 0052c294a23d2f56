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
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortenIP(t *testing.T) {
	t.Run("rejects non-16-byte input", func(t *testing.T) {
		_, err := shortenIP([]byte{1, 2, 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})

	t.Run("shortens ipv4-mapped address", func(t *testing.T) {
		addr := append(append([]byte{}, ipv4MappedPrefix[:]...), 10, 0, 0, 1)
		out, err := shortenIP(addr)
		require.NoError(t, err)
		assert.Equal(t, []byte{10, 0, 0, 1}, out)
	})

	t.Run("passes through a genuine ipv6 address", func(t *testing.T) {
		addr := make([]byte, 16)
		for i := range addr {
			addr[i] = byte(i + 1)
		}
		out, err := shortenIP(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, out)
	})
}

func TestVersionToString(t *testing.T) {
	t.Run("rejects empty input", func(t *testing.T) {
		_, err := versionToString(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})

	t.Run("rejects non-multiple-of-4 input", func(t *testing.T) {
		_, err := versionToString([]byte{1, 2, 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})

	t.Run("renders a three-component version", func(t *testing.T) {
		packed := []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3}
		got, err := versionToString(packed)
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", got)
	})
}

func TestSourceToJSON(t *testing.T) {
	t.Run("empty document becomes JSON null", func(t *testing.T) {
		out, err := sourceToJSON(nil)
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})

	t.Run("re-encodes valid JSON canonically", func(t *testing.T) {
		out, err := sourceToJSON([]byte(`{"b":2,"a":1}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1,"b":2}`, string(out))
	})

	t.Run("rejects non-JSON input", func(t *testing.T) {
		_, err := sourceToJSON([]byte("not json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})
}

func TestValidateWKB(t *testing.T) {
	t.Run("rejects empty geometry", func(t *testing.T) {
		err := validateWKB(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})

	t.Run("rejects malformed bytes", func(t *testing.T) {
		err := validateWKB([]byte{0x00, 0x01, 0x02})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTransform)
	})

	t.Run("accepts a valid point", func(t *testing.T) {
		raw, err := wkb.Marshal(orb.Point{1.5, -2.5})
		require.NoError(t, err)
		assert.NoError(t, validateWKB(raw))
	})
}
