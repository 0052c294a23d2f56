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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
)

func TestNewRegistryCoversEveryLogicalType(t *testing.T) {
	reg := NewRegistry(false)

	allTypes := []column.LogicalType{
		column.Null, column.Unsupported, column.Boolean, column.Integer,
		column.CounterInteger, column.Long, column.CounterLong,
		column.UnsignedLong, column.Double, column.CounterDouble,
		column.Date, column.Keyword, column.Text, column.IP, column.Version,
		column.Source, column.GeoPoint, column.GeoShape,
		column.CartesianPoint, column.CartesianShape,
	}

	for _, lt := range allTypes {
		c, ok := reg.ConverterFor(lt)
		require.Truef(t, ok, "logical type %q must have a registered converter", lt)
		assert.NotNil(t, c.ArrowFieldType())
	}
}

func TestArrowFieldUnknownType(t *testing.T) {
	reg := NewRegistry(false)
	_, ok := reg.ArrowField(column.Column{})
	assert.False(t, ok)
}
