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
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	flatbuffers "github.com/google/flatbuffers/go"
)

// buildFieldType encodes the Type union member for dt and returns its
// discriminant byte together with the table offset, per Schema.fbs.
func buildFieldType(b *flatbuffers.Builder, dt arrow.DataType) (uint8, flatbuffers.UOffsetT) {
	switch dt.ID() {
	case arrow.NULL:
		b.StartObject(0)
		return typeNull, b.EndObject()

	case arrow.BOOL:
		b.StartObject(0)
		return typeBool, b.EndObject()

	case arrow.INT32:
		b.StartObject(2)
		b.PrependBoolSlot(1, true, false)
		b.PrependInt32Slot(0, 32, 0)
		return typeInt, b.EndObject()

	case arrow.INT64:
		b.StartObject(2)
		b.PrependBoolSlot(1, true, false)
		b.PrependInt32Slot(0, 64, 0)
		return typeInt, b.EndObject()

	case arrow.UINT64:
		b.StartObject(2)
		b.PrependBoolSlot(1, false, false)
		b.PrependInt32Slot(0, 64, 0)
		return typeInt, b.EndObject()

	case arrow.FLOAT64:
		b.StartObject(1)
		b.PrependInt16Slot(0, precisionDouble, 0)
		return typeFloatingPt, b.EndObject()

	case arrow.BINARY:
		b.StartObject(0)
		return typeBinary, b.EndObject()

	case arrow.STRING:
		b.StartObject(0)
		return typeUtf8, b.EndObject()

	case arrow.TIMESTAMP:
		b.StartObject(2)
		b.PrependInt16Slot(0, timeUnitMillisecond, 0)
		return typeTimestamp, b.EndObject()

	default:
		panic(fmt.Sprintf("arrowstream/wire: unhandled arrow type %s", dt))
	}
}

// buildField encodes one Schema.fbs Field table: name, nullable, its
// Type union, and always-empty dictionary/children/custom_metadata.
func buildField(b *flatbuffers.Builder, f arrow.Field) flatbuffers.UOffsetT {
	nameOff := b.CreateString(f.Name)
	typeTypeByte, typeOff := buildFieldType(b, f.Type)

	b.StartObject(7)
	b.PrependUOffsetTSlot(3, typeOff, 0)
	b.PrependByteSlot(2, typeTypeByte, 0)
	b.PrependBoolSlot(1, f.Nullable, false)
	b.PrependUOffsetTSlot(0, nameOff, 0)
	return b.EndObject()
}

// buildSchemaTable encodes the Schema.fbs Schema table for fields, in
// declared order, with little-endian (default) endianness.
func buildSchemaTable(b *flatbuffers.Builder, fields []arrow.Field) flatbuffers.UOffsetT {
	fieldOffs := make([]flatbuffers.UOffsetT, len(fields))
	for i, f := range fields {
		fieldOffs[i] = buildField(b, f)
	}

	const uoffsetSize = 4
	b.StartVector(uoffsetSize, len(fieldOffs), uoffsetSize)
	for i := len(fieldOffs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(fieldOffs[i])
	}
	fieldsVec := b.EndVector(len(fieldOffs))

	b.StartObject(4)
	b.PrependUOffsetTSlot(1, fieldsVec, 0)
	return b.EndObject()
}

// buildMessage encodes the Message.fbs envelope around header, per
// Arrow IPC framing: metadata version, header union, and body length.
func buildMessage(b *flatbuffers.Builder, headerType uint8, headerOff flatbuffers.UOffsetT, bodyLength int64) flatbuffers.UOffsetT {
	b.StartObject(5)
	b.PrependInt64Slot(3, bodyLength, 0)
	b.PrependUOffsetTSlot(2, headerOff, 0)
	b.PrependByteSlot(1, headerType, 0)
	b.PrependInt16Slot(0, metadataVersionV5, 0)
	return b.EndObject()
}

// fieldNodeStruct and bufferStruct mirror Message.fbs's FieldNode and
// Buffer structs: fixed 16-byte {int64, int64} pairs, inlined into their
// containing vector without per-element offsets.
type fieldNodeStruct struct{ length, nullCount int64 }
type bufferStruct struct{ offset, length int64 }

func buildFieldNodesVector(b *flatbuffers.Builder, nodes []fieldNodeStruct) flatbuffers.UOffsetT {
	const struSize, struAlign = 16, 8
	b.StartVector(struSize, len(nodes), struAlign)
	for i := len(nodes) - 1; i >= 0; i-- {
		b.Prep(struAlign, struSize)
		b.PrependInt64(nodes[i].nullCount)
		b.PrependInt64(nodes[i].length)
	}
	return b.EndVector(len(nodes))
}

func buildBuffersVector(b *flatbuffers.Builder, bufs []bufferStruct) flatbuffers.UOffsetT {
	const struSize, struAlign = 16, 8
	b.StartVector(struSize, len(bufs), struAlign)
	for i := len(bufs) - 1; i >= 0; i-- {
		b.Prep(struAlign, struSize)
		b.PrependInt64(bufs[i].length)
		b.PrependInt64(bufs[i].offset)
	}
	return b.EndVector(len(bufs))
}

// buildRecordBatchTable encodes the Message.fbs RecordBatch table:
// length, field nodes, and body buffers. Compression is always omitted
// (body compression is disabled, spec §1 Non-goals).
func buildRecordBatchTable(b *flatbuffers.Builder, numRows int64, nodes []fieldNodeStruct, bufs []bufferStruct) flatbuffers.UOffsetT {
	buffersVec := buildBuffersVector(b, bufs)
	nodesVec := buildFieldNodesVector(b, nodes)

	b.StartObject(4)
	b.PrependUOffsetTSlot(2, buffersVec, 0)
	b.PrependUOffsetTSlot(1, nodesVec, 0)
	b.PrependInt64Slot(0, numRows, 0)
	return b.EndObject()
}
