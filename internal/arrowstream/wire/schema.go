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
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/cockroachdb/errors"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
)

// EncodeSchemaMessage writes the single Arrow Schema message for cols to
// sink (spec §4.4, Schema producer) and returns the bytes written.
func EncodeSchemaMessage(sink io.Writer, cols []column.Column, reg *convert.Registry) (int64, error) {
	fields := make([]arrow.Field, len(cols))
	for i, col := range cols {
		f, ok := reg.ArrowField(col)
		if !ok {
			return 0, errors.Wrapf(column.ErrUnsupportedType, "column %q", col.Name())
		}
		fields[i] = f
	}

	b := flatbuffers.NewBuilder(1024)
	schemaOff := buildSchemaTable(b, fields)
	msgOff := buildMessage(b, msgHeaderSchema, schemaOff, 0)
	b.Finish(msgOff)

	return writeFramedMessage(sink, b.FinishedBytes(), nil)
}

// EncodeEndOfStream writes the 8-byte Arrow IPC end-of-stream marker.
func EncodeEndOfStream(sink io.Writer) (int64, error) {
	n, err := sink.Write(endOfStream[:])
	if err != nil {
		return int64(n), errors.Wrap(ErrSinkWrite, err.Error())
	}
	return int64(n), nil
}
