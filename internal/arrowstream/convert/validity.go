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
	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
)

// validityBytes returns the ceil(n/8)-byte, LSB-first, 1=valid bitmap
// for a block of n positions. When the block cannot contain nulls, the
// fast path below produces the same bytes a full scan would without
// touching the block.
func validityBytes(block column.Block, n int) []byte {
	out := make([]byte, (n+7)/8)

	if !block.MayHaveNulls() {
		full := n / 8
		for i := 0; i < full; i++ {
			out[i] = 0xFF
		}
		if rem := n % 8; rem != 0 {
			out[full] = byte(1<<uint(rem) - 1)
		}
		return out
	}

	for i := 0; i < n; i++ {
		if !block.IsNull(i) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// packBoolValues bit-packs n boolean values (LSB-first, identical layout
// to validityBytes) where get reports the value at row i.
func packBoolValues(n int, get func(i int) bool) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if get(i) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
