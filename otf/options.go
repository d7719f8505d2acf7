// Copyright 2025 Buf Technologies, Inc.
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

package otf

// Option configures a [Decoder].
type Option struct{ apply func(*options) }

type options struct {
	enumNumbers bool
	noConstants bool
	rawTime     bool
}

// WithEnumNumbers renders enums as their encoded values rather than their
// names.
func WithEnumNumbers(enable bool) Option {
	return Option{func(o *options) { o.enumNumbers = enable }}
}

// WithConstants controls whether constant fields, which take no space on the
// wire, are rendered. They are by default.
func WithConstants(enable bool) Option {
	return Option{func(o *options) { o.noConstants = !enable }}
}

// WithRawTimestamps renders fields with the UTCTimestamp semantic type as
// plain numbers, instead of RFC 3339 strings.
func WithRawTimestamps(enable bool) Option {
	return Option{func(o *options) { o.rawTime = enable }}
}
