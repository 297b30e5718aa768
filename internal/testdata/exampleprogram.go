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

// Package testdata provides the example program fixture shared by tests: its IDL,
// the schemas of its account types and their default values.
package testdata

import (
	_ "embed"
	"math/big"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/common"
)

// ExampleProgramIDL is the IDL of the example program. It exercises every type a
// client generator must support plus several PDA seed patterns
//
//go:embed example_program.json
var ExampleProgramIDL []byte

const ExampleProgramID = "3rTQ3R4B2PxZrAyx7EUefySPgZY8RhJf16cZajbmrzp8"

// Seed constants declared by the example program
const (
	MySeedStr        = "hi"
	MySeedU8  uint8  = 1
	MySeedU32 uint32 = 2
	MySeedU64 uint64 = 3
)

var MySeed = []byte("hi")

// Derived addresses of the example program's seeded accounts
const (
	InitMyAccountAddress     = "E5x9uCNR8uHaNfp5f6SDHcrVVzoaaV1BLptortfpiNGb"
	InitMyAccountBump        = 252
	NestedAccountAddress     = "H8dohNtxveF3jzNBHhsNLs2ZJStR5r7tDLX378o3aign"
	NestedAccountBump        = 255
	StateDiscriminatorHex    = "d8926b5e684bb6b1"
	InitMyAccountSighashHex  = "203b05cd5e45e37a"
	DefaultBarStructHex      = "010a"
	DefaultFooStructHex      = "7be703010a01000000010a01010a02010f010a"
	DefaultState2Hex         = "0200000000010a00000000000000"
	DefaultStateEncodedBytes = 248
)

// Inputs and outputs for the seeds of the argAccount account of initMyAccount,
// which mixes a constant, an instruction argument and another account's key
const (
	ArgAccountSeedA   uint8 = 7
	ArgAccountBase          = "EPZP2wrcRtMxrAPJCXVEQaYD9eH7fH7h12YqKDcd4aS7"
	ArgAccountAddress       = "EVoXJbCTQHrPEYqJ8c3JcGjcYQzA8UHeqTWvjBLsJnAb"
	ArgAccountBump          = 251
)

// Discriminators that aren't derived from State
const (
	State2DiscriminatorHex         = "6a61ffa1facdb9c0"
	InitializeSighashHex           = "afaf6d1f0d989bed"
	InitializeWithValuesSighashHex = "dc4908d5b245b58d"
	MyEventDiscriminatorHex        = "60b8c5f38b025a94"
)

// DefaultStateHex is the encoding of DefaultState
const DefaultStateHex = "01ea8589f3fe85d30296492dfd69b64020f1470900000000000080f6ffffffffffffbf" +
	"7b14d6b48065d24109000000000000000000000000000080f6ffffffffffffffffffffffffffffbf" +
	"040000000102fffe0500000068656c6c6f" +
	"c6ef51e4e98047c3067b89b42fca35e50534f0ec8fb32348917310acb00ef2ec" +
	"05000000010000000000000002000000000000006400000000000000e803000000000000ffffffffffffffff" +
	"010000007be703010a01000000010a01010a02010f010a" +
	"00" +
	"017be703010a01000000010a01010a02010f010a" +
	"7be703010a01000000010a01010a02010f010a" +
	"010001" +
	"00000a010a" +
	"020114010a" +
	"03010a" +
	"06"

// FooEnum variant ordinals
const (
	FooEnumUnnamed = iota
	FooEnumUnnamedSingle
	FooEnumNamed
	FooEnumStruct
	FooEnumOptionStruct
	FooEnumVecStruct
	FooEnumNoFields
)

func BarStructSchema() *borsh.Schema {
	return borsh.RecordOf("BarStruct",
		borsh.NamedField("some_field", borsh.BoolType),
		borsh.NamedField("other_field", borsh.U8Type),
	)
}

func FooEnumSchema() *borsh.Schema {
	bar := BarStructSchema()
	return borsh.UnionOf("FooEnum",
		borsh.TupleVariant("Unnamed", borsh.BoolType, borsh.U8Type, bar),
		borsh.SingleVariant("UnnamedSingle", bar),
		borsh.StructVariant("Named",
			borsh.NamedField("bool_field", borsh.BoolType),
			borsh.NamedField("u8_field", borsh.U8Type),
			borsh.NamedField("nested", bar),
		),
		borsh.SingleVariant("Struct", bar),
		borsh.SingleVariant("OptionStruct", borsh.OptionOf(bar)),
		borsh.SingleVariant("VecStruct", borsh.SequenceOf(bar)),
		borsh.UnitVariant("NoFields"),
	)
}

func FooStructSchema() *borsh.Schema {
	bar := BarStructSchema()
	return borsh.RecordOf("FooStruct",
		borsh.NamedField("field1", borsh.U8Type),
		borsh.NamedField("field2", borsh.U16Type),
		borsh.NamedField("nested", bar),
		borsh.NamedField("vec_nested", borsh.SequenceOf(bar)),
		borsh.NamedField("option_nested", borsh.OptionOf(bar)),
		borsh.NamedField("enum_field", FooEnumSchema()),
	)
}

func StateSchema() *borsh.Schema {
	foo := FooStructSchema()
	fooEnum := FooEnumSchema()
	return borsh.RecordOf("State",
		borsh.NamedField("bool_field", borsh.BoolType),
		borsh.NamedField("u8_field", borsh.U8Type),
		borsh.NamedField("i8_field", borsh.I8Type),
		borsh.NamedField("u16_field", borsh.U16Type),
		borsh.NamedField("i16_field", borsh.I16Type),
		borsh.NamedField("u32_field", borsh.U32Type),
		borsh.NamedField("i32_field", borsh.I32Type),
		borsh.NamedField("f32_field", borsh.F32Type),
		borsh.NamedField("u64_field", borsh.U64Type),
		borsh.NamedField("i64_field", borsh.I64Type),
		borsh.NamedField("f64_field", borsh.F64Type),
		borsh.NamedField("u128_field", borsh.U128Type),
		borsh.NamedField("i128_field", borsh.I128Type),
		borsh.NamedField("bytes_field", borsh.BytesType),
		borsh.NamedField("string_field", borsh.TextType),
		borsh.NamedField("pubkey_field", borsh.IdentifierType),
		borsh.NamedField("vec_field", borsh.SequenceOf(borsh.U64Type)),
		borsh.NamedField("vec_struct_field", borsh.SequenceOf(foo)),
		borsh.NamedField("option_field", borsh.OptionOf(borsh.BoolType)),
		borsh.NamedField("option_struct_field", borsh.OptionOf(foo)),
		borsh.NamedField("struct_field", foo),
		borsh.NamedField("array_field", borsh.ArrayOf(3, borsh.BoolType)),
		borsh.NamedField("enum_field1", fooEnum),
		borsh.NamedField("enum_field2", fooEnum),
		borsh.NamedField("enum_field3", fooEnum),
		borsh.NamedField("enum_field4", fooEnum),
	)
}

func State2Schema() *borsh.Schema {
	return borsh.RecordOf("State2",
		borsh.NamedField("vec_of_option", borsh.SequenceOf(borsh.OptionOf(borsh.U64Type))),
	)
}

func DefaultBarStruct() borsh.Value {
	return borsh.NewRecord(
		borsh.Named("some_field", borsh.NewBool(true)),
		borsh.Named("other_field", borsh.NewU8(10)),
	)
}

func DefaultFooStruct() borsh.Value {
	return borsh.NewRecord(
		borsh.Named("field1", borsh.NewU8(123)),
		borsh.Named("field2", borsh.NewU16(999)),
		borsh.Named("nested", DefaultBarStruct()),
		borsh.Named("vec_nested", borsh.NewSequence(DefaultBarStruct())),
		borsh.Named("option_nested", borsh.Some(DefaultBarStruct())),
		borsh.Named("enum_field", borsh.NewStructVariant(FooEnumNamed,
			borsh.Named("bool_field", borsh.NewBool(true)),
			borsh.Named("u8_field", borsh.NewU8(15)),
			borsh.Named("nested", DefaultBarStruct()),
		)),
	)
}

func DefaultState() borsh.Value {
	u128, _ := new(big.Int).SetString("170141183460469231731687303715884105737", 10)
	i128, _ := new(big.Int).SetString("-85070591730234615865843651857942052874", 10)
	return borsh.NewRecord(
		borsh.Named("bool_field", borsh.NewBool(true)),
		borsh.Named("u8_field", borsh.NewU8(234)),
		borsh.Named("i8_field", borsh.NewI8(-123)),
		borsh.Named("u16_field", borsh.NewU16(62345)),
		borsh.Named("i16_field", borsh.NewI16(-31234)),
		borsh.Named("u32_field", borsh.NewU32(1234567891)),
		borsh.Named("i32_field", borsh.NewI32(-1234567891)),
		borsh.Named("f32_field", borsh.NewF32(123456.5)),
		borsh.Named("u64_field", borsh.NewU64(9223372036854775817)),
		borsh.Named("i64_field", borsh.NewI64(-4611686018427387914)),
		borsh.Named("f64_field", borsh.NewF64(1234567891.345)),
		borsh.Named("u128_field", borsh.NewU128(u128)),
		borsh.Named("i128_field", borsh.NewI128(i128)),
		borsh.Named("bytes_field", borsh.NewBytes([]byte{1, 2, 255, 254})),
		borsh.Named("string_field", borsh.NewText("hello")),
		borsh.Named("pubkey_field", borsh.NewIdentifier(
			common.MustParseIdentifier("EPZP2wrcRtMxrAPJCXVEQaYD9eH7fH7h12YqKDcd4aS7"),
		)),
		borsh.Named("vec_field", borsh.NewSequence(
			borsh.NewU64(1),
			borsh.NewU64(2),
			borsh.NewU64(100),
			borsh.NewU64(1000),
			borsh.NewU64(18446744073709551615),
		)),
		borsh.Named("vec_struct_field", borsh.NewSequence(DefaultFooStruct())),
		borsh.Named("option_field", borsh.None()),
		borsh.Named("option_struct_field", borsh.Some(DefaultFooStruct())),
		borsh.Named("struct_field", DefaultFooStruct()),
		borsh.Named("array_field", borsh.NewFixedArray(
			borsh.NewBool(true),
			borsh.NewBool(false),
			borsh.NewBool(true),
		)),
		borsh.Named("enum_field1", borsh.NewTuple(FooEnumUnnamed,
			borsh.NewBool(false),
			borsh.NewU8(10),
			DefaultBarStruct(),
		)),
		borsh.Named("enum_field2", borsh.NewStructVariant(FooEnumNamed,
			borsh.Named("bool_field", borsh.NewBool(true)),
			borsh.Named("u8_field", borsh.NewU8(20)),
			borsh.Named("nested", DefaultBarStruct()),
		)),
		borsh.Named("enum_field3", borsh.NewTuple(FooEnumStruct, DefaultBarStruct())),
		borsh.Named("enum_field4", borsh.NewUnit(FooEnumNoFields)),
	)
}

func DefaultState2() borsh.Value {
	return borsh.NewRecord(
		borsh.Named("vec_of_option", borsh.NewSequence(
			borsh.None(),
			borsh.Some(borsh.NewU64(10)),
		)),
	)
}
