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

package borsh_test

import (
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/common"
	"github.com/blinklabs-io/goborsh/internal/test"
	"github.com/blinklabs-io/goborsh/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var encodeTestDefs = []struct {
	name     string
	value    borsh.Value
	schema   *borsh.Schema
	expected string
}{
	{name: "bool true", value: borsh.NewBool(true), schema: borsh.BoolType, expected: "01"},
	{name: "bool false", value: borsh.NewBool(false), schema: borsh.BoolType, expected: "00"},
	{name: "u8", value: borsh.NewU8(0xfe), schema: borsh.U8Type, expected: "fe"},
	{name: "u16", value: borsh.NewU16(0x1234), schema: borsh.U16Type, expected: "3412"},
	{name: "u32", value: borsh.NewU32(0xdeadbeef), schema: borsh.U32Type, expected: "efbeadde"},
	{name: "u64", value: borsh.NewU64(math.MaxUint64), schema: borsh.U64Type, expected: "ffffffffffffffff"},
	{name: "i8", value: borsh.NewI8(-1), schema: borsh.I8Type, expected: "ff"},
	{name: "i16", value: borsh.NewI16(-2), schema: borsh.I16Type, expected: "feff"},
	{name: "i32", value: borsh.NewI32(math.MinInt32), schema: borsh.I32Type, expected: "00000080"},
	{name: "i64", value: borsh.NewI64(-3), schema: borsh.I64Type, expected: "fdffffffffffffff"},
	{
		name:     "u128",
		value:    borsh.NewU128(big.NewInt(1)),
		schema:   borsh.U128Type,
		expected: "01000000000000000000000000000000",
	},
	{
		name:     "u128 nil is zero",
		value:    borsh.NewU128(nil),
		schema:   borsh.U128Type,
		expected: "00000000000000000000000000000000",
	},
	{
		name:     "i128 minus one",
		value:    borsh.NewI128(big.NewInt(-1)),
		schema:   borsh.I128Type,
		expected: "ffffffffffffffffffffffffffffffff",
	},
	{
		name:     "i128 min",
		value:    borsh.NewI128(test.BigInt("-170141183460469231731687303715884105728")),
		schema:   borsh.I128Type,
		expected: "00000000000000000000000000000080",
	},
	{name: "f32", value: borsh.NewF32(1.0), schema: borsh.F32Type, expected: "0000803f"},
	{name: "f64", value: borsh.NewF64(-2.5), schema: borsh.F64Type, expected: "00000000000004c0"},
	{name: "bytes", value: borsh.NewBytes([]byte{1, 2}), schema: borsh.BytesType, expected: "020000000102"},
	{name: "empty bytes", value: borsh.NewBytes(nil), schema: borsh.BytesType, expected: "00000000"},
	{name: "text", value: borsh.NewText("hé"), schema: borsh.TextType, expected: "0300000068c3a9"},
	{
		name:     "identifier",
		value:    borsh.NewIdentifier(common.Identifier{31: 0xaa}),
		schema:   borsh.IdentifierType,
		expected: "00000000000000000000000000000000000000000000000000000000000000aa",
	},
	{
		name:     "fixed array",
		value:    borsh.NewFixedArray(borsh.NewU8(1), borsh.NewU8(2), borsh.NewU8(3)),
		schema:   borsh.ArrayOf(3, borsh.U8Type),
		expected: "010203",
	},
	{
		name:     "sequence",
		value:    borsh.NewSequence(borsh.NewU16(1), borsh.NewU16(2)),
		schema:   borsh.SequenceOf(borsh.U16Type),
		expected: "0200000001000200",
	},
	{name: "option absent", value: borsh.None(), schema: borsh.OptionOf(borsh.U8Type), expected: "00"},
	{name: "option present", value: borsh.Some(borsh.NewU8(7)), schema: borsh.OptionOf(borsh.U8Type), expected: "0107"},
	{
		name:     "record",
		value:    testdata.DefaultBarStruct(),
		schema:   testdata.BarStructSchema(),
		expected: testdata.DefaultBarStructHex,
	},
	{
		name: "union named",
		value: borsh.NewStructVariant(testdata.FooEnumNamed,
			borsh.Named("bool_field", borsh.NewBool(true)),
			borsh.Named("u8_field", borsh.NewU8(20)),
			borsh.Named("nested", testdata.DefaultBarStruct()),
		),
		schema:   testdata.FooEnumSchema(),
		expected: "020114010a",
	},
	{
		name:     "union unit",
		value:    borsh.NewUnit(testdata.FooEnumNoFields),
		schema:   testdata.FooEnumSchema(),
		expected: "06",
	},
	{
		name:     "union single empty sequence",
		value:    borsh.NewTuple(testdata.FooEnumVecStruct, borsh.NewSequence()),
		schema:   testdata.FooEnumSchema(),
		expected: "0500000000",
	},
	{
		name:     "union single absent option",
		value:    borsh.NewTuple(testdata.FooEnumOptionStruct, borsh.None()),
		schema:   testdata.FooEnumSchema(),
		expected: "0400",
	},
	{
		name:     "nested record",
		value:    testdata.DefaultFooStruct(),
		schema:   testdata.FooStructSchema(),
		expected: testdata.DefaultFooStructHex,
	},
	{
		name:     "sequence of options",
		value:    testdata.DefaultState2(),
		schema:   testdata.State2Schema(),
		expected: testdata.DefaultState2Hex,
	},
	{
		name:     "account with every kind",
		value:    testdata.DefaultState(),
		schema:   testdata.StateSchema(),
		expected: testdata.DefaultStateHex,
	},
}

func TestEncodeDecode(t *testing.T) {
	for _, testDef := range encodeTestDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := borsh.Encode(testDef.value, testDef.schema)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, hex.EncodeToString(data))
			size, err := borsh.EncodedSize(testDef.value, testDef.schema)
			require.NoError(t, err)
			assert.Equal(t, len(data), size)
			decoded, n, err := borsh.Decode(data, testDef.schema)
			require.NoError(t, err)
			assert.Equal(t, len(data), n)
			assert.True(
				t,
				decoded.Equal(testDef.value),
				"decoded value differs\n  got: %#v\n  wanted: %#v",
				decoded,
				testDef.value,
			)
		})
	}
}

func TestDefaultStateLength(t *testing.T) {
	data, err := borsh.Encode(testdata.DefaultState(), testdata.StateSchema())
	require.NoError(t, err)
	assert.Len(t, data, testdata.DefaultStateEncodedBytes)
}

func TestUnionNamedVariantLayout(t *testing.T) {
	nested := borsh.RecordOf("Empty")
	schema := borsh.UnionOf("Seven",
		borsh.UnitVariant("A"),
		borsh.SingleVariant("B", borsh.U8Type),
		borsh.TupleVariant("C", borsh.U8Type, borsh.U16Type),
		borsh.StructVariant("D",
			borsh.NamedField("bool_field", borsh.BoolType),
			borsh.NamedField("u8_field", borsh.U8Type),
			borsh.NamedField("nested", nested),
		),
		borsh.UnitVariant("E"),
		borsh.SingleVariant("F", borsh.TextType),
		borsh.UnitVariant("G"),
	)
	require.NoError(t, schema.Validate())
	value := borsh.NewStructVariant(3,
		borsh.Named("bool_field", borsh.NewBool(true)),
		borsh.Named("u8_field", borsh.NewU8(20)),
		borsh.Named("nested", borsh.NewRecord()),
	)
	nestedData, err := borsh.Encode(borsh.NewRecord(), nested)
	require.NoError(t, err)
	data, err := borsh.Encode(value, schema)
	require.NoError(t, err)
	require.Len(t, data, 1+1+1+len(nestedData))
	assert.Equal(t, []byte{0x03, 0x01, 0x14}, data[:3])
	// Re-encoding the same variant always yields the same ordinal
	for rangeIdx := 0; rangeIdx < 5; rangeIdx++ {
		again, err := borsh.Encode(value, schema)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	}
}

func TestOptionLength(t *testing.T) {
	schema := borsh.OptionOf(testdata.FooStructSchema())
	absent, err := borsh.Encode(borsh.None(), schema)
	require.NoError(t, err)
	assert.Len(t, absent, 1)
	inner, err := borsh.Encode(testdata.DefaultFooStruct(), testdata.FooStructSchema())
	require.NoError(t, err)
	present, err := borsh.Encode(borsh.Some(testdata.DefaultFooStruct()), schema)
	require.NoError(t, err)
	assert.Len(t, present, 1+len(inner))
	assert.Equal(t, inner, present[1:])
}

func TestDecodeErrors(t *testing.T) {
	testDefs := []struct {
		name        string
		data        string
		schema      *borsh.Schema
		expectedErr error
	}{
		{name: "empty input", data: "", schema: borsh.U8Type, expectedErr: borsh.ErrTruncatedInput},
		{name: "short u32", data: "0102", schema: borsh.U32Type, expectedErr: borsh.ErrTruncatedInput},
		{name: "bool byte", data: "02", schema: borsh.BoolType, expectedErr: borsh.ErrInvalidEncoding},
		{name: "option byte", data: "0207", schema: borsh.OptionOf(borsh.U8Type), expectedErr: borsh.ErrInvalidEncoding},
		{name: "union ordinal", data: "07", schema: testdata.FooEnumSchema(), expectedErr: borsh.ErrInvalidEncoding},
		{name: "union ordinal max", data: "ff", schema: testdata.FooEnumSchema(), expectedErr: borsh.ErrInvalidEncoding},
		{name: "empty union", data: "00", schema: borsh.UnionOf("Never"), expectedErr: borsh.ErrInvalidEncoding},
		{name: "invalid utf-8", data: "01000000ff", schema: borsh.TextType, expectedErr: borsh.ErrInvalidEncoding},
		{name: "short bytes", data: "0500000001", schema: borsh.BytesType, expectedErr: borsh.ErrTruncatedInput},
		{
			name:        "sequence longer than input",
			data:        "050000000100000000000000",
			schema:      borsh.SequenceOf(borsh.U64Type),
			expectedErr: borsh.ErrTruncatedInput,
		},
		{
			name:        "huge sequence",
			data:        "ffffffff",
			schema:      borsh.SequenceOf(borsh.RecordOf("Empty")),
			expectedErr: borsh.ErrInvalidEncoding,
		},
		{name: "short identifier", data: "0000", schema: borsh.IdentifierType, expectedErr: borsh.ErrTruncatedInput},
		{name: "nil schema", data: "00", schema: nil, expectedErr: borsh.ErrInvalidSchema},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, n, err := borsh.Decode(test.DecodeHexString(testDef.data), testDef.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, testDef.expectedErr), "unexpected error: %s", err)
			assert.Equal(t, 0, n)
		})
	}
}

func TestDecodeErrorPath(t *testing.T) {
	data := test.DecodeHexString(testdata.DefaultStateHex)
	// Corrupt the ordinal of the last union field
	data[len(data)-1] = 0x09
	_, _, err := borsh.Decode(data, testdata.StateSchema())
	require.Error(t, err)
	var decodeErr *borsh.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "State.enum_field4", decodeErr.Path)
	assert.Equal(t, len(data)-1, decodeErr.Offset)
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	data := test.DecodeHexString(testdata.DefaultStateHex)
	schema := testdata.StateSchema()
	for cut := 0; cut < len(data); cut++ {
		_, _, err := borsh.Decode(data[:cut], schema)
		require.Error(t, err, "prefix length %d", cut)
		assert.ErrorIs(t, err, borsh.ErrTruncatedInput, "prefix length %d", cut)
	}
}

func TestDecodeExact(t *testing.T) {
	data := append(test.DecodeHexString(testdata.DefaultBarStructHex), 0x00)
	_, n, err := borsh.Decode(data, testdata.BarStructSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = borsh.DecodeExact(data, testdata.BarStructSchema())
	assert.ErrorIs(t, err, borsh.ErrTrailingBytes)
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
	v, err := borsh.DecodeExact(data[:2], testdata.BarStructSchema())
	require.NoError(t, err)
	assert.True(t, v.Equal(testdata.DefaultBarStruct()))
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data := test.DecodeHexString("03000000010203")
	v, _, err := borsh.Decode(data, borsh.BytesType)
	require.NoError(t, err)
	data[4] = 0xff
	assert.Equal(t, []byte{1, 2, 3}, v.Bytes)
}

func TestMaxSequenceLength(t *testing.T) {
	codec := borsh.NewCodec(borsh.WithMaxSequenceLength(2))
	schema := borsh.SequenceOf(borsh.U8Type)
	_, _, err := codec.Decode(test.DecodeHexString("020000000102"), schema)
	require.NoError(t, err)
	_, _, err = codec.Decode(test.DecodeHexString("03000000010203"), schema)
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
	_, _, err = codec.Decode(test.DecodeHexString("03000000616263"), borsh.TextType)
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
	// The encoder refuses what the decoder would reject
	_, err = codec.Encode(borsh.NewSequence(borsh.NewU8(1), borsh.NewU8(2), borsh.NewU8(3)), schema)
	assert.ErrorIs(t, err, borsh.ErrSchemaMismatch)
	_, err = codec.Encode(borsh.NewText("abc"), borsh.TextType)
	assert.ErrorIs(t, err, borsh.ErrSchemaMismatch)
	_, err = codec.EncodedSize(borsh.NewBytes([]byte{1, 2, 3}), borsh.BytesType)
	assert.ErrorIs(t, err, borsh.ErrSchemaMismatch)
	// Anything the encoder accepts decodes, and its prefixes are truncated input
	data, err := codec.Encode(borsh.NewBytes([]byte{1, 2}), borsh.BytesType)
	require.NoError(t, err)
	v, err := codec.DecodeExact(data, borsh.BytesType)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, v.Bytes)
	for cut := 0; cut < len(data); cut++ {
		_, _, err := codec.Decode(data[:cut], borsh.BytesType)
		assert.ErrorIs(t, err, borsh.ErrTruncatedInput, "prefix length %d", cut)
	}
}

func TestDefaultCodecLargeBytes(t *testing.T) {
	payload := make([]byte, 1<<24+1)
	payload[len(payload)-1] = 0x7f
	data, err := borsh.Encode(borsh.NewBytes(payload), borsh.BytesType)
	require.NoError(t, err)
	require.Len(t, data, len(payload)+4)
	v, err := borsh.DecodeExact(data, borsh.BytesType)
	require.NoError(t, err)
	assert.Equal(t, payload, v.Bytes)
	_, _, err = borsh.Decode(data[:10], borsh.BytesType)
	assert.ErrorIs(t, err, borsh.ErrTruncatedInput)
}

func TestZeroSizedSequence(t *testing.T) {
	schema := borsh.SequenceOf(borsh.RecordOf("Empty"))
	// A bare count claiming a million empty records must fail without building them
	_, _, err := borsh.Decode(test.DecodeHexString("00001000"), schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
	var decodeErr *borsh.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 0, decodeErr.Offset)
	_, _, err = borsh.Decode(test.DecodeHexString("ffffffff"), borsh.SequenceOf(borsh.ArrayOf(0, borsh.U64Type)))
	assert.ErrorIs(t, err, borsh.ErrInvalidEncoding)
	// The empty sequence is the only encodable value
	data, err := borsh.Encode(borsh.NewSequence(), schema)
	require.NoError(t, err)
	assert.Equal(t, "00000000", hex.EncodeToString(data))
	v, err := borsh.DecodeExact(data, schema)
	require.NoError(t, err)
	assert.Empty(t, v.Items)
	_, err = borsh.Encode(borsh.NewSequence(borsh.NewRecord()), schema)
	assert.ErrorIs(t, err, borsh.ErrSchemaMismatch)
	assert.ErrorIs(t, schema.Validate(), borsh.ErrInvalidSchema)
}

func TestEncodeMismatch(t *testing.T) {
	fooEnum := testdata.FooEnumSchema()
	testDefs := []struct {
		name   string
		value  borsh.Value
		schema *borsh.Schema
	}{
		{name: "wrong kind", value: borsh.NewU16(1), schema: borsh.U8Type},
		{name: "u8 overflow", value: borsh.Value{Kind: borsh.KindU8, Uint: 300}, schema: borsh.U8Type},
		{name: "u32 overflow", value: borsh.Value{Kind: borsh.KindU32, Uint: 1 << 32}, schema: borsh.U32Type},
		{name: "i8 overflow", value: borsh.Value{Kind: borsh.KindI8, Int: 128}, schema: borsh.I8Type},
		{name: "i16 underflow", value: borsh.Value{Kind: borsh.KindI16, Int: -32769}, schema: borsh.I16Type},
		{name: "negative u128", value: borsh.NewU128(big.NewInt(-1)), schema: borsh.U128Type},
		{
			name:   "u128 overflow",
			value:  borsh.NewU128(test.BigInt("340282366920938463463374607431768211456")),
			schema: borsh.U128Type,
		},
		{
			name:   "i128 overflow",
			value:  borsh.NewI128(test.BigInt("170141183460469231731687303715884105728")),
			schema: borsh.I128Type,
		},
		{name: "invalid text", value: borsh.NewText("\xff"), schema: borsh.TextType},
		{
			name:   "array length",
			value:  borsh.NewFixedArray(borsh.NewBool(true)),
			schema: borsh.ArrayOf(3, borsh.BoolType),
		},
		{
			name:   "sequence item",
			value:  borsh.NewSequence(borsh.NewU8(1), borsh.NewBool(true)),
			schema: borsh.SequenceOf(borsh.U8Type),
		},
		{
			name:   "record field name",
			value:  borsh.NewRecord(borsh.Named("other_field", borsh.NewU8(1)), borsh.Named("some_field", borsh.NewBool(true))),
			schema: testdata.BarStructSchema(),
		},
		{
			name:   "record field count",
			value:  borsh.NewRecord(borsh.Named("some_field", borsh.NewBool(true))),
			schema: testdata.BarStructSchema(),
		},
		{name: "variant out of range", value: borsh.NewUnit(7), schema: fooEnum},
		{name: "negative variant", value: borsh.NewUnit(-1), schema: fooEnum},
		{
			name:   "unit with payload",
			value:  borsh.NewTuple(testdata.FooEnumNoFields, borsh.NewU8(1)),
			schema: fooEnum,
		},
		{
			name:   "tuple item count",
			value:  borsh.NewTuple(testdata.FooEnumUnnamed, borsh.NewBool(true)),
			schema: fooEnum,
		},
		{
			name:   "named variant with items",
			value:  borsh.NewTuple(testdata.FooEnumNamed, borsh.NewBool(true), borsh.NewU8(1), testdata.DefaultBarStruct()),
			schema: fooEnum,
		},
		{
			name:   "option element",
			value:  borsh.Some(borsh.NewU16(1)),
			schema: borsh.OptionOf(borsh.U8Type),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := borsh.Encode(testDef.value, testDef.schema)
			require.Error(t, err)
			assert.Nil(t, data)
			assert.ErrorIs(t, err, borsh.ErrSchemaMismatch)
			var mismatchErr *borsh.MismatchError
			assert.True(t, errors.As(err, &mismatchErr))
		})
	}
}

func TestEncodeMismatchPath(t *testing.T) {
	state := testdata.DefaultState()
	idx, ok := testdata.StateSchema().FieldIndex("vec_field")
	require.True(t, ok)
	state.Fields[idx].Value.Items[2] = borsh.NewU32(100)
	_, err := borsh.Encode(state, testdata.StateSchema())
	var mismatchErr *borsh.MismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, "State.vec_field[2]", mismatchErr.Path)
}

func TestEncodeNilSchema(t *testing.T) {
	_, err := borsh.Encode(borsh.NewBool(true), nil)
	assert.ErrorIs(t, err, borsh.ErrInvalidSchema)
}

func TestConcurrentUse(t *testing.T) {
	schema := testdata.StateSchema()
	expected := test.DecodeHexString(testdata.DefaultStateHex)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for rangeIdx := 0; rangeIdx < 8; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rangeIdx := 0; rangeIdx < 20; rangeIdx++ {
				data, err := borsh.Encode(testdata.DefaultState(), schema)
				if err != nil {
					errs <- err
					return
				}
				if _, _, err := borsh.Decode(data, schema); err != nil {
					errs <- err
					return
				}
				if hex.EncodeToString(data) != hex.EncodeToString(expected) {
					errs <- errors.New("encoding differs between goroutines")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
