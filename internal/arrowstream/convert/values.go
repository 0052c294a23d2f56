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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb/encoding/wkb"
)

// ErrValueTransform is wrapped by every per-row value transform failure.
var ErrValueTransform = errors.New("arrowstream: value transform rejected input")

// ipv4MappedPrefix is the ::ffff:0:0/96 prefix: 10 zero bytes followed by
// 0xff, 0xff.
var ipv4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// shortenIP shortens a 16-byte IPv4-in-IPv6 address to its trailing 4
// bytes; any other 16-byte value passes through unchanged. Input must be
// exactly 16 bytes.
func shortenIP(addr []byte) ([]byte, error) {
	if len(addr) != 16 {
		return nil, errors.Wrapf(ErrValueTransform, "ip value must be 16 bytes, got %d", len(addr))
	}
	if bytes.Equal(addr[:12], ipv4MappedPrefix[:]) {
		out := make([]byte, 4)
		copy(out, addr[12:])
		return out, nil
	}
	out := make([]byte, 16)
	copy(out, addr)
	return out, nil
}

// versionToString renders a packed version encoding to its canonical
// textual form. The packed encoding is a sequence of big-endian uint32
// numeric components, rendered joined by "."; input whose length is not
// a non-empty multiple of 4 is rejected. Pre-release or build suffixes
// are not decoded: every 4-byte group is rendered as a number.
func versionToString(packed []byte) (string, error) {
	if len(packed) == 0 || len(packed)%4 != 0 {
		return "", errors.Wrapf(ErrValueTransform, "packed version must be a non-empty multiple of 4 bytes, got %d", len(packed))
	}

	n := len(packed) / 4
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		off := i * 4
		v := uint32(packed[off])<<24 | uint32(packed[off+1])<<16 | uint32(packed[off+2])<<8 | uint32(packed[off+3])
		parts = append(parts, fmt.Sprintf("%d", v))
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out, nil
}

// sourceToJSON re-encodes a self-describing document to canonical JSON
// bytes. When the input is already valid JSON it is re-marshaled through
// map[string]interface{}/[]interface{} to obtain a canonical byte form;
// any other shape is rejected as a ValueTransform failure — the full
// tagged-binary decoder for the engine's native document format is an
// external collaborator outside this encoder's scope (spec §1).
func sourceToJSON(doc []byte) ([]byte, error) {
	if len(doc) == 0 {
		return []byte("null"), nil
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrapf(ErrValueTransform, "source document is not valid JSON: %s", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(ErrValueTransform, "failed to re-encode source document")
	}
	return out, nil
}

// validateWKB structurally validates a well-known-binary geometry without
// transforming it: the bytes are passed through unchanged on success.
func validateWKB(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(ErrValueTransform, "empty geometry")
	}
	if _, err := wkb.Unmarshal(raw); err != nil {
		return errors.Wrapf(ErrValueTransform, "invalid WKB geometry: %s", err)
	}
	return nil
}
