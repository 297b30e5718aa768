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

// Package pda derives program addresses: 32-byte identifiers computed from a
// program namespace and a list of seeds that are guaranteed not to be valid
// edwards25519 public keys, so no private key can ever sign for them.
//
// The hash input is every seed in order, followed by the bump byte (FindAddress
// only), the 32-byte namespace and the marker string "ProgramDerivedAddress".
// SHA-256 of that input is the candidate address.
package pda
