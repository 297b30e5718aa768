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

// Package cbor provides CBOR encoding/decoding helpers used for schema snapshots
// and identifier interchange.
//
// This package wraps github.com/fxamacker/cbor/v2 with a fixed deterministic
// encoding mode, so that the same schema always produces the same snapshot bytes.
//
// # Key Types
//
//   - StructAsArray: Embed to encode struct fields as CBOR array instead of map
//   - MajorType: Peek at the type of an encoded item before decoding it
//
// # Encoding Gotchas
//
//  1. Map keys are sorted using the core deterministic ordering
//  2. Decode returns the number of bytes read, so trailing data can be detected
//  3. Unknown struct fields are rejected on decode
package cbor
