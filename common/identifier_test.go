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

package common_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/blinklabs-io/goborsh/cbor"
	"github.com/blinklabs-io/goborsh/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	testDefs := []struct {
		input       string
		expectedErr bool
		firstByte   byte
	}{
		{
			input:     "11111111111111111111111111111111",
			firstByte: 0x00,
		},
		{
			// SPL token program
			input:     "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
			firstByte: 0x06,
		},
		{
			input:       "",
			expectedErr: true,
		},
		{
			// '0' is not part of the base58 alphabet
			input:       "0OIl",
			expectedErr: true,
		},
		{
			// Valid base58, wrong length
			input:       "3mJr7AoUXx2Wqd",
			expectedErr: true,
		},
	}
	for _, testDef := range testDefs {
		id, err := common.ParseIdentifier(testDef.input)
		if testDef.expectedErr {
			require.Error(t, err, "input %q", testDef.input)
			assert.True(t, errors.Is(err, common.ErrInvalidIdentifier))
			continue
		}
		require.NoError(t, err, "input %q", testDef.input)
		assert.Equal(t, testDef.firstByte, id[0])
		assert.Equal(t, testDef.input, id.String())
	}
}

func TestIdentifierZero(t *testing.T) {
	var id common.Identifier
	assert.True(t, id.IsZero())
	assert.Equal(t, "11111111111111111111111111111111", id.String())
	id[31] = 1
	assert.False(t, id.IsZero())
}

func TestIdentifierJSON(t *testing.T) {
	id := common.MustParseIdentifier("EPZP2wrcRtMxrAPJCXVEQaYD9eH7fH7h12YqKDcd4aS7")
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"EPZP2wrcRtMxrAPJCXVEQaYD9eH7fH7h12YqKDcd4aS7"`, string(data))
	var decoded common.Identifier
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &decoded))
}

func TestIdentifierCBOR(t *testing.T) {
	var id common.Identifier
	data, err := cbor.Encode(id)
	require.NoError(t, err)
	// 32-byte bytestring header followed by 32 zero bytes
	require.Len(t, data, 2+common.IdentifierSize)
	assert.Equal(t, byte(0x58), data[0])
	assert.Equal(t, byte(0x20), data[1])
	var decoded common.Identifier
	_, err = cbor.Decode(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}
