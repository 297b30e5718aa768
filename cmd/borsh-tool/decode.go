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

package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/idl"
	"github.com/spf13/pflag"
)

type decodeFlags struct {
	flagset   *pflag.FlagSet
	idlPath   string
	kind      string
	name      string
	useBase64 bool
}

func newDecodeFlags() *decodeFlags {
	f := &decodeFlags{
		flagset: pflag.NewFlagSet("decode", pflag.ExitOnError),
	}
	f.flagset.StringVar(&f.idlPath, "idl", "", "path to the program IDL")
	f.flagset.StringVar(
		&f.kind,
		"kind",
		"account",
		"what the data holds: account, instruction, event or type",
	)
	f.flagset.StringVar(
		&f.name,
		"name",
		"",
		"name of the account or type (accounts are detected from the discriminator when omitted)",
	)
	f.flagset.BoolVar(&f.useBase64, "base64", false, "data is base64 rather than hex")
	return f
}

func runDecode(f *globalFlags) {
	decodeFlags := newDecodeFlags()
	err := decodeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(decodeFlags.flagset.Args()) < 1 {
		fmt.Printf("ERROR: you must specify the data to decode\n")
		os.Exit(1)
	}
	var data []byte
	input := strings.TrimSpace(decodeFlags.flagset.Arg(0))
	if decodeFlags.useBase64 {
		data, err = base64.StdEncoding.DecodeString(input)
	} else {
		data, err = hex.DecodeString(strings.TrimPrefix(input, "0x"))
	}
	if err != nil {
		fmt.Printf("ERROR: invalid data: %s\n", err)
		os.Exit(1)
	}
	r := loadRegistry(decodeFlags.idlPath)

	var name string
	var v borsh.Value
	var schema *borsh.Schema
	switch decodeFlags.kind {
	case "account":
		coder := idl.NewAccountCoder(r)
		if decodeFlags.name != "" {
			name = decodeFlags.name
			v, err = coder.DecodeAs(name, data)
		} else {
			name, v, err = coder.Decode(data)
		}
		if err == nil {
			schema, err = r.Account(name)
		}
	case "instruction":
		name, v, err = idl.NewInstructionCoder(r).Decode(data)
		if err == nil {
			schema, err = r.Instruction(name)
		}
	case "event":
		name, v, err = idl.NewEventCoder(r).Decode(data)
		if err == nil {
			schema, err = r.Event(name)
		}
	case "type":
		if decodeFlags.name == "" {
			fmt.Printf("ERROR: you must specify --name with --kind type\n")
			os.Exit(1)
		}
		name = decodeFlags.name
		schema, err = r.Type(name)
		if err == nil {
			v, err = borsh.DecodeExact(data, schema)
		}
	default:
		fmt.Printf("ERROR: unknown kind: %s\n", decodeFlags.kind)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	out, err := borsh.MarshalJSONValue(v, schema)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s\n", name, out)
}
