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

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/idl"
	"github.com/spf13/pflag"
)

type sizeFlags struct {
	flagset *pflag.FlagSet
	idlPath string
}

func newSizeFlags() *sizeFlags {
	f := &sizeFlags{
		flagset: pflag.NewFlagSet("size", pflag.ExitOnError),
	}
	f.flagset.StringVar(&f.idlPath, "idl", "", "path to the program IDL")
	return f
}

// runSize prints the space to allocate for each account type, or for the named
// account types only
func runSize(f *globalFlags) {
	sizeFlags := newSizeFlags()
	err := sizeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	r := loadRegistry(sizeFlags.idlPath)
	coder := idl.NewAccountCoder(r)
	names := sizeFlags.flagset.Args()
	if len(names) == 0 {
		names = r.AccountNames()
	}
	for _, name := range names {
		space, err := coder.AccountSpace(name)
		if err != nil {
			fmt.Printf("%s: %s\n", name, err)
			continue
		}
		s, err := r.Account(name)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		if static, ok := borsh.StaticSize(s); ok {
			fmt.Printf("%s: %d bytes (fixed)\n", name, idl.DiscriminatorSize+static)
			continue
		}
		fmt.Printf("%s: %d bytes (maximum)\n", name, space)
	}
}
