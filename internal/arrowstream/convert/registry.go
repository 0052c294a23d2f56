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

// Registry is the static table mapping logical type names to their
// converter, spec §4.5/§4.6. It is built once per Config and is
// immutable and safe for concurrent read-only use thereafter.
type Registry struct {
	converters map[column.LogicalType]Converter
}

// NewRegistry builds the closed registry of converters. strictValueTransforms
// selects the ValueTransform failure policy (spec §7) for every
// value-transforming converter (ip, version, _source, geo_*).
func NewRegistry(strictValueTransforms bool) *Registry {
	nc := NullConverter{}
	r := &Registry{converters: map[column.LogicalType]Converter{
		column.Null:           nc,
		column.Unsupported:    nc,
		column.Boolean:        NewBooleanConverter(),
		column.Integer:        NewInt32Converter(),
		column.CounterInteger: NewInt32Converter(),
		column.Long:           NewInt64Converter(),
		column.CounterLong:    NewInt64Converter(),
		column.UnsignedLong:   NewUint64Converter(),
		column.Double:         NewFloat64Converter(),
		column.CounterDouble:  NewFloat64Converter(),
		column.Date:           NewDateMillisConverter(),
		column.Keyword:        NewKeywordConverter(strictValueTransforms),
		column.Text:           NewKeywordConverter(strictValueTransforms),
		column.IP:             NewIPConverter(strictValueTransforms),
		column.Version:        NewVersionConverter(strictValueTransforms),
		column.Source:         NewSourceConverter(strictValueTransforms),
		column.GeoPoint:       NewGeoConverter("geo_point", strictValueTransforms),
		column.GeoShape:       NewGeoConverter("geo_shape", strictValueTransforms),
		column.CartesianPoint: NewGeoConverter("cartesian_point", strictValueTransforms),
		column.CartesianShape: NewGeoConverter("cartesian_shape", strictValueTransforms),
	}}
	return r
}

// ConverterFor returns the converter registered for logicalType. Column
// construction already validates logicalType against the closed set in
// package column, so an unregistered type here indicates the registry
// and column packages have drifted out of sync.
func (r *Registry) ConverterFor(logicalType column.LogicalType) (Converter, bool) {
	c, ok := r.converters[logicalType]
	return c, ok
}

// ArrowField builds the Arrow Field descriptor for col: its declared
// type, name, and (always empty, per spec §4.4) children list.
func (r *Registry) ArrowField(col column.Column) (arrow.Field, bool) {
	c, ok := r.ConverterFor(col.LogicalType())
	if !ok {
		return arrow.Field{}, false
	}
	return arrow.Field{Name: col.Name(), Type: c.ArrowFieldType(), Nullable: true}, true
}
