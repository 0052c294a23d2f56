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
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// ErrSinkWrite wraps every downstream I/O failure encountered while
// framing a message (spec §7's SinkWrite error kind).
var ErrSinkWrite = errors.New("arrowstream: sink write failed")

// writeChannel is the write channel described in spec §4.3/§9. It keeps
// a single counter, pos, of the bytes delegated to the downstream sink;
// because the deferred buffer writers stream their bytes through the
// channel, pos is also the "virtual current position" that buffer
// padding is computed against, and no bytes are ever owned by Arrow.
type writeChannel struct {
	w   io.Writer
	pos int64
}

func (c *writeChannel) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.pos += int64(n)
	if err != nil {
		return n, errors.Wrap(ErrSinkWrite, err.Error())
	}
	return n, nil
}

// padTo8 writes zero bytes until c.pos is a multiple of 8, relative to
// the virtual current position.
func (c *writeChannel) padTo8() error {
	if rem := c.pos % 8; rem != 0 {
		if _, err := c.Write(make([]byte, 8-rem)); err != nil {
			return err
		}
	}
	return nil
}

// padTo8Len rounds n up to the next multiple of 8.
func padTo8Len(n int64) int64 {
	if rem := n % 8; rem != 0 {
		return n + (8 - rem)
	}
	return n
}

// writeFramedMessage writes one complete Arrow IPC message: the
// continuation-and-length prefix, the flatbuffer-encoded metadata
// (padded to 8 bytes), and — when body is non-nil — the message body.
// It returns the total number of bytes written to sink.
func writeFramedMessage(sink io.Writer, metadata []byte, body func(ch *writeChannel) error) (int64, error) {
	ch := &writeChannel{w: sink}

	if _, err := ch.Write(continuationMarker[:]); err != nil {
		return ch.pos, err
	}

	paddedLen := padTo8Len(int64(len(metadata)))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(paddedLen))
	if _, err := ch.Write(lenBuf[:]); err != nil {
		return ch.pos, err
	}

	if _, err := ch.Write(metadata); err != nil {
		return ch.pos, err
	}
	if pad := paddedLen - int64(len(metadata)); pad > 0 {
		if _, err := ch.Write(make([]byte, pad)); err != nil {
			return ch.pos, err
		}
	}

	if body != nil {
		if err := body(ch); err != nil {
			return ch.pos, err
		}
	}

	return ch.pos, nil
}
