// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package borsh

import (
	"math"
	"strconv"
	"strings"
)

// DefaultMaxSequenceLength is the largest length prefix a default Codec accepts,
// which is every count the u32 prefix can express. Decoding stays bounded by the
// input regardless, since a declared count must fit in the remaining bytes.
const DefaultMaxSequenceLength = math.MaxUint32

// Codec encodes and decodes values. A Codec holds only configuration and is
// safe for concurrent use
type Codec struct {
	maxSequenceLength uint32
}

// CodecOptionFunc is a type that represents functions that modify the Codec config
type CodecOptionFunc func(*Codec)

// WithMaxSequenceLength specifies the largest element or byte count a length prefix may
// declare. Decoding reports larger counts as ErrInvalidEncoding, and encoding refuses
// values that would produce them with a MismatchError
func WithMaxSequenceLength(maxLength uint32) CodecOptionFunc {
	return func(c *Codec) {
		c.maxSequenceLength = maxLength
	}
}

// NewCodec returns a Codec with the provided options applied
func NewCodec(opts ...CodecOptionFunc) *Codec {
	c := &Codec{
		maxSequenceLength: DefaultMaxSequenceLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = NewCodec()

// Encode encodes v according to s using the default codec
func Encode(v Value, s *Schema) ([]byte, error) {
	return defaultCodec.Encode(v, s)
}

// Decode decodes a value of schema s from the start of data using the default codec.
// It returns the value and the number of bytes consumed
func Decode(data []byte, s *Schema) (Value, int, error) {
	return defaultCodec.Decode(data, s)
}

// DecodeExact is like Decode but fails with ErrTrailingBytes when data holds more
// than one value
func DecodeExact(data []byte, s *Schema) (Value, error) {
	return defaultCodec.DecodeExact(data, s)
}

// path tracks the position within a schema tree. It's only rendered when an
// error is reported
type path struct {
	parent *path
	name   string
	index  int
}

func rootPath(s *Schema) *path {
	return &path{name: s.String(), index: -1}
}

func (p *path) field(name string) *path {
	return &path{parent: p, name: name, index: -1}
}

func (p *path) item(index int) *path {
	return &path{parent: p, index: index}
}

func (p *path) String() string {
	var parts []string
	for cur := p; cur != nil; cur = cur.parent {
		if cur.index >= 0 {
			parts = append(parts, "["+strconv.Itoa(cur.index)+"]")
			continue
		}
		if cur.parent != nil {
			parts = append(parts, "."+cur.name)
		} else {
			parts = append(parts, cur.name)
		}
	}
	var sb strings.Builder
	for idx := len(parts) - 1; idx >= 0; idx-- {
		sb.WriteString(parts[idx])
	}
	return sb.String()
}
