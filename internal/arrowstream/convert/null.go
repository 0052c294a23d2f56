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
	"github.com/apache/arrow/go/v17/arrow"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
)

// NullConverter implements the null converter of spec §4.2 for the
// "null" and "unsupported" logical types: it declares a Null Arrow type,
// emits no buffers, and every row is null.
type NullConverter struct{}

var _ Converter = NullConverter{}

func (NullConverter) ArrowFieldType() arrow.DataType { return arrow.Null }

func (NullConverter) NullCount(block column.Block) (int, error) {
	return block.PositionCount(), nil
}

func (NullConverter) Convert(block column.Block, descriptors *[]BufferDescriptor, writers *[]BufferWriter) error {
	return nil
}
