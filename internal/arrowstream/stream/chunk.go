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

// Package stream implements the chunked response producer contract of
// spec §4.4: a finite sequence of chunk producers, each emitting one
// Arrow IPC message as an independently releasable byte range.
package stream

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/queryarrow/arrowstream/internal/arrowstream/log"
)

// ContentType is returned by every producer's ContentType method.
const ContentType = "application/vnd.apache.arrow.stream"

// Recycler is the byte sink pool a producer's EncodeChunk draws from and
// returns to exactly once per chunk, per spec §4.4/§9. It is
// thread-confined to a single producer's pull — concurrent use across
// goroutines is not a supported pattern (spec §5).
type Recycler struct {
	pool  sync.Pool
	debug bool

	mu       sync.Mutex
	lastHash map[*bytes.Buffer]uint64
}

// NewRecycler constructs a Recycler. debug enables a best-effort
// double-release detector that fingerprints buffer contents with xxhash
// at release time; it costs an extra pass over the buffer and is meant
// for tests and diagnostics, not hot-path production use.
func NewRecycler(debug bool) *Recycler {
	r := &Recycler{
		pool: sync.Pool{New: func() interface{} { return new(bytes.Buffer) }},
	}
	if debug {
		r.debug = true
		r.lastHash = make(map[*bytes.Buffer]uint64)
	}
	return r
}

func (r *Recycler) get() *bytes.Buffer {
	buf := r.pool.Get().(*bytes.Buffer)
	buf.Reset()
	if r.debug {
		r.mu.Lock()
		delete(r.lastHash, buf)
		r.mu.Unlock()
	}
	return buf
}

func (r *Recycler) put(buf *bytes.Buffer) {
	if r.debug {
		h := xxhash.Sum64(buf.Bytes())
		r.mu.Lock()
		if prev, ok := r.lastHash[buf]; ok && prev == h && buf.Len() > 0 {
			log.Warn("recycler: buffer released with contents unchanged since last release",
				zap.Uint64("hash", h), zap.Int("len", buf.Len()))
		}
		r.lastHash[buf] = h
		r.mu.Unlock()
	}
	// The buffer is not reset here: get resets it on reacquire, and
	// keeping the contents lets a second release of the same buffer hash
	// the same bytes and trip the detector above.
	r.pool.Put(buf)
}

// Chunk is an opaque, releasable byte reference: a contiguous byte range
// plus a single-shot release hook (spec §3/§9).
type Chunk struct {
	data     []byte
	buf      *bytes.Buffer
	recycler *Recycler
	once     sync.Once
}

func newChunk(buf *bytes.Buffer, recycler *Recycler) *Chunk {
	// Copy out before the buffer can be mutated or recycled; the chunk's
	// bytes must remain valid independent of what the recycler does with
	// buf afterwards.
	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return &Chunk{data: data, buf: buf, recycler: recycler}
}

// Bytes returns the chunk's contents. The slice is a copy of the sink's
// bytes and stays valid after Release.
func (c *Chunk) Bytes() []byte { return c.data }

// Len returns len(c.Bytes()).
func (c *Chunk) Len() int { return len(c.data) }

// Release returns the underlying sink to the recycler. It is safe to
// call more than once; only the first call has an effect.
func (c *Chunk) Release() {
	c.once.Do(func() {
		if c.recycler != nil && c.buf != nil {
			c.recycler.put(c.buf)
		}
	})
}

// releaseSink is used on the error path of EncodeChunk, where no Chunk
// is ever constructed to own the release.
func releaseSink(recycler *Recycler, buf *bytes.Buffer) {
	recycler.put(buf)
}
