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

	"github.com/spf13/pflag"
)

type snapshotFlags struct {
	flagset *pflag.FlagSet
	idlPath string
	output  string
}

func newSnapshotFlags() *snapshotFlags {
	f := &snapshotFlags{
		flagset: pflag.NewFlagSet("snapshot", pflag.ExitOnError),
	}
	f.flagset.StringVar(&f.idlPath, "idl", "", "path to the program IDL")
	f.flagset.StringVarP(&f.output, "output", "o", "", "file to write the CBOR snapshot to")
	return f
}

func runSnapshot(f *globalFlags) {
	snapFlags := newSnapshotFlags()
	err := snapFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if snapFlags.output == "" {
		fmt.Printf("ERROR: you must specify --output\n")
		os.Exit(1)
	}
	r := loadRegistry(snapFlags.idlPath)
	data, err := r.Snapshot()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(snapFlags.output, data, 0o644); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(data), snapFlags.output)
}
