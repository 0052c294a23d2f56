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
	"math"

	"github.com/apache/arrow/go/v17/arrow"
	"go.uber.org/zap"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/log"
	"github.com/queryarrow/arrowstream/pkg/metrics"
)

// valueTransform maps a raw row's bytes to the bytes actually stored in
// the values buffer. A nil transform is the identity (keyword/text and
// NewBinaryPassthroughConverter); geo columns use a transform that
// validates the WKB bytes and passes them through unchanged.
type valueTransform func(raw []byte) ([]byte, error)

// VarWidthConverter implements the variable-width string/binary
// converter of spec §4.2 for keyword/text/ip/version/_source/geo_*.
type VarWidthConverter struct {
	fieldType arrow.DataType
	transform valueTransform
	// strict controls the ValueTransform failure policy (spec §7): when
	// true a transform failure is fatal; when false the row's bytes
	// become empty and the row is otherwise left valid.
	strict bool
	typeName string
}

var _ Converter = (*VarWidthConverter)(nil)

func NewKeywordConverter(strict bool) *VarWidthConverter {
	return &VarWidthConverter{fieldType: arrow.BinaryTypes.String, strict: strict, typeName: "keyword"}
}

func NewBinaryPassthroughConverter(arrowType arrow.DataType, typeName string, strict bool) *VarWidthConverter {
	return &VarWidthConverter{fieldType: arrowType, strict: strict, typeName: typeName}
}

func NewIPConverter(strict bool) *VarWidthConverter {
	return &VarWidthConverter{
		fieldType: arrow.BinaryTypes.Binary,
		transform: shortenIP,
		strict:    strict,
		typeName:  "ip",
	}
}

func NewVersionConverter(strict bool) *VarWidthConverter {
	return &VarWidthConverter{
		fieldType: arrow.BinaryTypes.String,
		transform: func(raw []byte) ([]byte, error) {
			s, err := versionToString(raw)
			if err != nil {
				return nil, err
			}
			return []byte(s), nil
		},
		strict:   strict,
		typeName: "version",
	}
}

func NewSourceConverter(strict bool) *VarWidthConverter {
	return &VarWidthConverter{
		fieldType: arrow.BinaryTypes.String,
		transform: sourceToJSON,
		strict:    strict,
		typeName:  "_source",
	}
}

func NewGeoConverter(typeName string, strict bool) *VarWidthConverter {
	return &VarWidthConverter{
		fieldType: arrow.BinaryTypes.Binary,
		transform: func(raw []byte) ([]byte, error) {
			if err := validateWKB(raw); err != nil {
				return nil, err
			}
			return raw, nil
		},
		strict:   strict,
		typeName: typeName,
	}
}

func (c *VarWidthConverter) ArrowFieldType() arrow.DataType { return c.fieldType }

func (c *VarWidthConverter) NullCount(block column.Block) (int, error) {
	return NullCountOf(block), nil
}

func (c *VarWidthConverter) Convert(block column.Block, descriptors *[]BufferDescriptor, writers *[]BufferWriter) error {
	n := block.PositionCount()
	vec, err := vectorOf(block)
	if err != nil {
		return err
	}

	validity := validityBytes(block, n)

	rows := make([][]byte, n)
	offsets := make([]byte, (n+1)*4)
	var total int64
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(offsets[i*4:], uint32(total))

		if block.MayHaveNulls() && block.IsNull(i) {
			rows[i] = nil
			continue
		}

		raw := vec.GetBytes(i)
		var out []byte
		if c.transform == nil {
			out = append([]byte(nil), raw...)
		} else {
			out, err = c.transform(raw)
			if err != nil {
				if c.strict {
					return err
				}
				log.Warn("value transform failed, emitting empty bytes",
					zap.String("logical_type", c.typeName), zap.Int("row", i), zap.Error(err))
				metrics.ValueTransformDowngrades.WithLabelValues(c.typeName).Inc()
				out = nil
			}
		}
		rows[i] = out
		total += int64(len(out))
		if total > math.MaxInt32 {
			return ErrOffsetOverflow
		}
	}
	binary.LittleEndian.PutUint32(offsets[n*4:], uint32(total))

	values := make([]byte, 0, total)
	for _, r := range rows {
		values = append(values, r...)
	}

	*descriptors = append(*descriptors, BufferDescriptor{Length: int64(len(validity))})
	*writers = append(*writers, byteWriter(validity))

	*descriptors = append(*descriptors, BufferDescriptor{Length: int64(len(offsets))})
	*writers = append(*writers, byteWriter(offsets))

	*descriptors = append(*descriptors, BufferDescriptor{Length: int64(len(values))})
	*writers = append(*writers, byteWriter(values))

	return nil
}

func byteWriter(data []byte) BufferWriter {
	return func(w io.Writer) (int64, error) {
		n, err := w.Write(data)
		return int64(n), err
	}
}
