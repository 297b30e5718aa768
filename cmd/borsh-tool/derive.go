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
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blinklabs-io/goborsh/common"
	"github.com/blinklabs-io/goborsh/pda"
	"github.com/spf13/pflag"
)

type deriveFlags struct {
	flagset *pflag.FlagSet
	program string
	seeds   []string
}

func newDeriveFlags() *deriveFlags {
	f := &deriveFlags{
		flagset: pflag.NewFlagSet("derive", pflag.ExitOnError),
	}
	f.flagset.StringVar(&f.program, "program", "", "program address (base58)")
	f.flagset.StringArrayVar(
		&f.seeds,
		"seed",
		nil,
		"seed in kind:value form, where kind is one of string, hex, key, u8, u16, u32, u64, i8, i16, i32 or i64 (repeatable)",
	)
	return f
}

func runDerive(f *globalFlags) {
	deriveFlags := newDeriveFlags()
	err := deriveFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if deriveFlags.program == "" {
		fmt.Printf("ERROR: you must specify --program\n")
		os.Exit(1)
	}
	program, err := common.ParseIdentifier(deriveFlags.program)
	if err != nil {
		fmt.Printf("ERROR: invalid program address: %s\n", err)
		os.Exit(1)
	}
	seeds := make([]pda.Seed, 0, len(deriveFlags.seeds))
	for _, spec := range deriveFlags.seeds {
		seed, err := parseSeed(spec)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		seeds = append(seeds, seed)
	}
	addr, bump, err := pda.FindAddress(program, seeds...)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("address: %s\nbump: %d\n", addr, bump)
}

// parseSeed parses a seed given as kind:value
func parseSeed(spec string) (pda.Seed, error) {
	kind, value, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("seed %q: expected kind:value", spec)
	}
	switch kind {
	case "string":
		return pda.String(value), nil
	case "hex":
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", spec, err)
		}
		return pda.Bytes(b), nil
	case "key":
		id, err := common.ParseIdentifier(value)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", spec, err)
		}
		return pda.Key(id), nil
	case "u8", "u16", "u32", "u64":
		bits, _ := strconv.Atoi(kind[1:])
		v, err := strconv.ParseUint(value, 0, bits)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", spec, err)
		}
		switch bits {
		case 8:
			return pda.Uint8(uint8(v)), nil
		case 16:
			return pda.Uint16(uint16(v)), nil
		case 32:
			return pda.Uint32(uint32(v)), nil
		}
		return pda.Uint64(v), nil
	case "i8", "i16", "i32", "i64":
		bits, _ := strconv.Atoi(kind[1:])
		v, err := strconv.ParseInt(value, 0, bits)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", spec, err)
		}
		switch bits {
		case 8:
			return pda.Int8(int8(v)), nil
		case 16:
			return pda.Int16(int16(v)), nil
		case 32:
			return pda.Int32(int32(v)), nil
		}
		return pda.Int64(v), nil
	}
	return nil, fmt.Errorf("seed %q: unknown kind %s", spec, kind)
}
