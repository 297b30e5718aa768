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
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/goborsh/common"
)

const (
	// MaxSeedLength is the maximum length of a single seed in bytes
	MaxSeedLength = 32
	// MaxSeeds is the maximum number of seeds, including the bump seed added by FindAddress
	MaxSeeds = 16
	// Marker is appended to every hash input so a derived address can't collide
	// with the hash of some other structure
	Marker = "ProgramDerivedAddress"
)

// FindAddress searches bump values from 255 down to 0 and returns the first address
// that is not a valid curve point along with its bump. The result depends only on
// the inputs
func FindAddress(namespace common.Identifier, seeds ...Seed) (common.Identifier, uint8, error) {
	return findAddress(namespace, seeds, IsOnCurve)
}

// CreateAddress hashes the seeds exactly as given, without searching for a bump.
// It returns ErrInvalidSeeds when the result lies on the curve
func CreateAddress(namespace common.Identifier, seeds ...Seed) (common.Identifier, error) {
	if len(seeds) > MaxSeeds {
		return common.Identifier{}, fmt.Errorf(
			"%w: %d seeds, maximum is %d",
			ErrConstraintViolation,
			len(seeds),
			MaxSeeds,
		)
	}
	if err := checkSeeds(seeds); err != nil {
		return common.Identifier{}, err
	}
	addr := hashAddress(namespace, seeds, nil)
	if IsOnCurve(addr[:]) {
		return common.Identifier{}, ErrInvalidSeeds
	}
	return addr, nil
}

// IsOnCurve reports whether b decodes to a point on the edwards25519 curve
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func findAddress(
	namespace common.Identifier,
	seeds []Seed,
	onCurve func([]byte) bool,
) (common.Identifier, uint8, error) {
	// The bump takes up one seed slot
	if len(seeds) > MaxSeeds-1 {
		return common.Identifier{}, 0, fmt.Errorf(
			"%w: %d seeds, maximum is %d",
			ErrConstraintViolation,
			len(seeds),
			MaxSeeds-1,
		)
	}
	if err := checkSeeds(seeds); err != nil {
		return common.Identifier{}, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		addr := hashAddress(namespace, seeds, []byte{byte(bump)})
		if !onCurve(addr[:]) {
			return addr, uint8(bump), nil
		}
	}
	return common.Identifier{}, 0, ErrDerivationExhausted
}

func checkSeeds(seeds []Seed) error {
	for idx, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return &SeedError{Index: idx, Length: len(seed)}
		}
	}
	return nil
}

func hashAddress(namespace common.Identifier, seeds []Seed, bump []byte) common.Identifier {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(bump)
	h.Write(namespace[:])
	h.Write([]byte(Marker))
	var ret common.Identifier
	h.Sum(ret[:0])
	return ret
}
