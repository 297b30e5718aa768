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
	"fmt"
	"os"

	"github.com/blinklabs-io/goborsh/idl"
	"github.com/spf13/pflag"
)

type discriminatorFlags struct {
	flagset *pflag.FlagSet
	kind    string
}

func newDiscriminatorFlags() *discriminatorFlags {
	f := &discriminatorFlags{
		flagset: pflag.NewFlagSet("discriminator", pflag.ExitOnError),
	}
	f.flagset.StringVar(&f.kind, "kind", "account", "account, instruction or event")
	return f
}

func runDiscriminator(f *globalFlags) {
	discFlags := newDiscriminatorFlags()
	err := discFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(discFlags.flagset.Args()) < 1 {
		fmt.Printf("ERROR: you must specify a name\n")
		os.Exit(1)
	}
	for _, name := range discFlags.flagset.Args() {
		var disc idl.Discriminator
		switch discFlags.kind {
		case "account":
			disc = idl.AccountDiscriminator(name)
		case "instruction":
			disc = idl.InstructionDiscriminator(name)
		case "event":
			disc = idl.EventDiscriminator(name)
		default:
			fmt.Printf("ERROR: unknown kind: %s\n", discFlags.kind)
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", name, disc)
	}
}
