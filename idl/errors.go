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

package idl

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType           = errors.New("unknown type")
	ErrUnknownAccount        = errors.New("unknown account")
	ErrUnknownInstruction    = errors.New("unknown instruction")
	ErrUnknownEvent          = errors.New("unknown event")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrCyclicType            = errors.New("cyclic type definition")
	ErrDuplicateName         = errors.New("duplicate name")
	ErrUnknownDiscriminator  = errors.New("unknown discriminator")
	ErrDiscriminatorMismatch = errors.New("discriminator mismatch")
	ErrUnboundedSize         = errors.New("type has no maximum size")
	ErrUnsupportedSeed       = errors.New("unsupported seed")
	ErrMissingProgramID      = errors.New("program ID not known")
)

// ProgramError is a custom error declared by the program
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%d: %s", e.Code, e.Name)
	}
	return fmt.Sprintf("%d: %s: %s", e.Code, e.Name, e.Msg)
}
