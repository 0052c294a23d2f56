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

package stream

import (
	"github.com/cockroachdb/errors"

	"github.com/queryarrow/arrowstream/internal/arrowstream/column"
	"github.com/queryarrow/arrowstream/internal/arrowstream/convert"
	"github.com/queryarrow/arrowstream/internal/arrowstream/wire"
)

// ErrorKind is the closed set of error classifications a transport can
// branch on without importing the encoder's internal packages (spec §7:
// UnsupportedType, OffsetOverflow, ValueTransform, SinkWrite, plus the
// producer-protocol violation and a catch-all).
type ErrorKind string

const (
	KindUnsupportedType       ErrorKind = "unsupported_type"
	KindUnsupportedBlockShape ErrorKind = "unsupported_block_shape"
	KindOffsetOverflow        ErrorKind = "offset_overflow"
	KindValueTransform        ErrorKind = "value_transform"
	KindSinkWrite             ErrorKind = "sink_write"
	KindProducerDone          ErrorKind = "producer_done"
	KindOther                 ErrorKind = "other"
)

// Classify maps an error returned from a Producer's EncodeChunk to the
// ErrorKind a transport should use for logging and retry decisions. A
// transport should treat every kind except KindProducerDone as terminal
// for the owning ChunkedResponse (spec §4.4: a producer becomes done on
// both success and failure).
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrProducerDone):
		return KindProducerDone
	case errors.Is(err, column.ErrUnsupportedType):
		return KindUnsupportedType
	case errors.Is(err, convert.ErrUnsupportedBlockShape):
		return KindUnsupportedBlockShape
	case errors.Is(err, convert.ErrOffsetOverflow):
		return KindOffsetOverflow
	case errors.Is(err, convert.ErrValueTransform):
		return KindValueTransform
	case errors.Is(err, wire.ErrSinkWrite):
		return KindSinkWrite
	default:
		return KindOther
	}
}

// Fatal reports whether kind represents a failure that should abort the
// in-flight HTTP response rather than merely being logged. Per spec §7,
// every classified encode error is fatal to the response; only the
// producer-protocol misuse case is a caller bug rather than a data or
// I/O failure, and is reported separately so callers can distinguish
// "bad input" from "bad caller".
func (k ErrorKind) Fatal() bool {
	return k != KindProducerDone
}
