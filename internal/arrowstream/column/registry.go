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

package column

import (
	"github.com/cockroachdb/errors"
)

// ErrUnsupportedType is wrapped and returned by NewColumn when a logical
// type name is not in the registry's closed set.
var ErrUnsupportedType = errors.New("arrowstream: unsupported logical type")

// knownTypes is the closed set of logical type names the encoder accepts.
// It is intentionally independent of the converter registry in package
// convert so that column construction never needs to import it.
var knownTypes = map[LogicalType]struct{}{
	Null: {}, Unsupported: {}, Boolean: {}, Integer: {}, CounterInteger: {},
	Long: {}, CounterLong: {}, UnsignedLong: {}, Double: {}, CounterDouble: {},
	Date: {}, Keyword: {}, Text: {}, IP: {}, Version: {}, GeoPoint: {},
	GeoShape: {}, CartesianPoint: {}, CartesianShape: {}, Source: {},
}

// NewColumn validates logicalType against the closed registry and
// constructs an immutable Column. It fails fast with ErrUnsupportedType
// for an unknown name, per spec §7.
func NewColumn(logicalType LogicalType, name string) (Column, error) {
	if _, ok := knownTypes[logicalType]; !ok {
		return Column{}, errors.Wrapf(ErrUnsupportedType, "logical type %q (column %q)", logicalType, name)
	}
	return Column{logicalType: logicalType, name: name}, nil
}
