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
	"log/slog"
	"os"

	"github.com/blinklabs-io/goborsh/idl"
	"github.com/spf13/pflag"
)

type globalFlags struct {
	flagset *pflag.FlagSet
	debug   bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: pflag.NewFlagSet(os.Args[0], pflag.ExitOnError),
	}
	// Subcommand flags are parsed by each subcommand
	f.flagset.SetInterspersed(false)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	return f
}

func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	slog.SetDefault(f.logger())

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "derive":
			runDerive(f)
		case "decode":
			runDecode(f)
		case "discriminator":
			runDiscriminator(f)
		case "size":
			runSize(f)
		case "snapshot":
			runSnapshot(f)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf("You must specify a subcommand (derive, decode, discriminator, size or snapshot)\n")
		os.Exit(1)
	}
}

func loadRegistry(path string) *idl.Registry {
	if path == "" {
		fmt.Printf("ERROR: you must specify --idl\n")
		os.Exit(1)
	}
	doc, err := idl.ReadFile(path)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	r, err := idl.NewRegistry(doc, idl.WithLogger(slog.Default()))
	if err != nil {
		fmt.Printf("ERROR: failed to resolve IDL: %s\n", err)
		os.Exit(1)
	}
	return r
}
