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

// Package bench provides benchmark fixtures for the codec, the address deriver and
// the IDL registry.
package bench

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/internal/testdata"
)

// CodecFixture is a schema with a value of that schema and its encoding
type CodecFixture struct {
	Name   string
	Schema *borsh.Schema
	Value  borsh.Value
	Data   []byte
}

// LoadCodecFixture returns the named fixture. The name should be one of: "bar",
// "foo", "state", "state2" or "wide"
func LoadCodecFixture(name string) (*CodecFixture, error) {
	var schema *borsh.Schema
	var value borsh.Value
	switch strings.ToLower(name) {
	case "bar":
		schema, value = testdata.BarStructSchema(), testdata.DefaultBarStruct()
	case "foo":
		schema, value = testdata.FooStructSchema(), testdata.DefaultFooStruct()
	case "state":
		schema, value = testdata.StateSchema(), testdata.DefaultState()
	case "state2":
		schema, value = testdata.State2Schema(), testdata.DefaultState2()
	case "wide":
		schema, value = WideSequence(4096)
	default:
		return nil, fmt.Errorf("unknown fixture: %s", name)
	}
	data, err := borsh.Encode(value, schema)
	if err != nil {
		return nil, fmt.Errorf("encode fixture %s: %w", name, err)
	}
	return &CodecFixture{
		Name:   strings.ToLower(name),
		Schema: schema,
		Value:  value,
		Data:   data,
	}, nil
}

// CodecFixtureNames lists the fixtures known to LoadCodecFixture
func CodecFixtureNames() []string {
	return []string{"bar", "foo", "state", "state2", "wide"}
}

// WideSequence returns a sequence of count FooStruct records, which stresses the
// per-element paths of the codec
func WideSequence(count int) (*borsh.Schema, borsh.Value) {
	items := make([]borsh.Value, count)
	for idx := range items {
		items[idx] = testdata.DefaultFooStruct()
	}
	return borsh.SequenceOf(testdata.FooStructSchema()), borsh.NewSequence(items...)
}
