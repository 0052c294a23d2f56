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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arrowstream"

var (
	// ChunksEmitted counts chunks produced by kind (schema/page/end).
	ChunksEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_emitted_total",
			Help:      "Number of Arrow IPC chunks emitted, by chunk kind.",
		},
		[]string{"kind"},
	)

	// BytesEmitted tracks the size distribution of emitted chunks.
	BytesEmitted = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_bytes",
			Help:      "Size in bytes of emitted Arrow IPC chunks, by chunk kind.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
		[]string{"kind"},
	)

	// RowsEncoded counts rows encoded into RecordBatch messages.
	RowsEncoded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_encoded_total",
			Help:      "Number of rows encoded across all pages.",
		},
	)

	// EncodeFailures counts fatal encode errors by error kind.
	EncodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_failures_total",
			Help:      "Number of fatal encode failures, by error kind.",
		},
		[]string{"kind"},
	)

	// ValueTransformDowngrades counts non-fatal ValueTransform failures
	// that were downgraded to empty bytes, by logical type.
	ValueTransformDowngrades = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_transform_downgrades_total",
			Help:      "Number of ValueTransform failures downgraded to empty bytes, by logical type.",
		},
		[]string{"logical_type"},
	)
)

func init() {
	prometheus.MustRegister(ChunksEmitted, BytesEmitted, RowsEncoded, EncodeFailures, ValueTransformDowngrades)
}
