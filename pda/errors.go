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

package pda

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation is returned when a seed is too long or there are too many seeds
	ErrConstraintViolation = errors.New("seed constraint violation")
	// ErrDerivationExhausted is returned when no bump value yields an off-curve address
	ErrDerivationExhausted = errors.New("unable to find a viable program address bump seed")
	// ErrInvalidSeeds is returned by CreateAddress when the seeds hash to a point on the curve
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")
)

// SeedError reports a seed that exceeds MaxSeedLength
type SeedError struct {
	Index  int
	Length int
}

func (e *SeedError) Error() string {
	return fmt.Sprintf(
		"%s: seed %d is %d bytes, maximum is %d",
		ErrConstraintViolation,
		e.Index,
		e.Length,
		MaxSeedLength,
	)
}

func (e *SeedError) Unwrap() error {
	return ErrConstraintViolation
}
