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

// Package wire hand-encodes the Arrow IPC streaming format's flatbuffer
// messages (Message, Schema, RecordBatch) directly against the buffer
// descriptor/writer pairs produced by package convert, instead of
// routing through apache/arrow/go's own ipc.Writer — which expects
// materialized memory.Buffers and offers no per-message chunk boundary.
// See DESIGN.md, "deferred-bytes pattern".
package wire

// Values below mirror the enums declared in Arrow's Message.fbs and
// Schema.fbs flatbuffer schemas (org.apache.arrow.flatbuf namespace).
const (
	metadataVersionV5 int16 = 4

	msgHeaderSchema      uint8 = 1
	msgHeaderRecordBatch uint8 = 3

	typeNull       uint8 = 1
	typeInt        uint8 = 2
	typeFloatingPt uint8 = 3
	typeBinary     uint8 = 4
	typeUtf8       uint8 = 5
	typeBool       uint8 = 6
	typeTimestamp  uint8 = 10

	precisionDouble int16 = 2

	timeUnitMillisecond int16 = 1
)

// continuationMarker precedes every Arrow IPC message, including the
// final end-of-stream marker.
var continuationMarker = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}

// endOfStream is the complete 8-byte Arrow IPC stream terminator:
// continuation marker followed by a zero metadata length.
var endOfStream = [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}
