// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sbe is a flyweight runtime for Simple Binary Encoding (SBE)
// messages. It reads and writes typed fields in place over a caller-owned
// byte region, without allocating or copying, producing bytes identical to
// those of other SBE implementations.
//
// The runtime is made of four pieces, which generated message types are a
// mechanical application of:
//
//   - [Buffer], a bounds-checked, endianness-aware accessor over a byte
//     region.
//   - [Message], which lays out a header, a fixed block, repeating groups and
//     var-data fields in one region, and implements schema evolution through
//     the acting block length and version.
//   - [Group], the dimension header and forward-only cursor over repeating
//     elements.
//   - The var-data protocol ([GetVarData], [PutVarData]), a uint32 length
//     followed by raw bytes.
//
// Fixed fields live at schema-declared offsets in their block and can be
// touched in any order. Groups and var-data fields live at the limit, a
// cursor shared by a message and everything in it, and must be touched in
// declaration order, exactly once per pass; doing otherwise fails with
// [ErrAccessOrder] or [ErrAlreadyConsumed]. To read a message again, wrap it
// again.
//
// # Concurrency
//
// Nothing in this package blocks. A [Buffer] and the flyweights over it must
// not be used concurrently, but independent buffers may be used from any
// number of goroutines.
//
// # Related packages
//
// Package [buf.build/go/sbe/ir] describes schemas as data, and
// [buf.build/go/sbe/otf] decodes messages using only such a description.
package sbe
