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

package sbe

import (
	"fmt"
	"math"

	"buf.build/go/sbe/internal/dbg"
	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/zc"
)

// VarLengthSize is the size of the length prefix of a var-data field.
const VarLengthSize = 4

// VarField describes a variable-length field as declared in its schema.
//
// Var-data fields are encoded at the limit as a uint32 length followed by
// that many bytes, so they must be visited in declaration order, after all
// groups at the same level.
type VarField struct {
	Name string
	ID   uint16
	// Position of this field among the groups and var-data fields of its
	// parent, in declaration order.
	Ordinal  int
	Since    uint16
	Encoding string // Character encoding, such as "UTF-8"; empty for raw bytes.
}

// enter checks that vf may be touched next in b's scope. ok is false if the
// field is not in the acting version, in which case it is consumed right away.
//
// Otherwise the caller commits the scope once the field is actually read or
// written, so that a failed access can be retried and fail the same way.
func (vf *VarField) enter(b Block) (cursor *Cursor, scope *scope, ok bool, err error) {
	cursor, scope, err = b.state()
	if err != nil {
		return nil, nil, false, withField(err, vf.Name)
	}
	if err := scope.check(cursor, vf.Ordinal, vf.Name); err != nil {
		return nil, nil, false, err
	}
	if b.ActingVersion() < vf.Since {
		scope.commit()
		return cursor, scope, false, nil
	}
	return cursor, scope, true, nil
}

// consume reads the length prefix at the limit, then moves the limit past the
// whole field. Returns the range of the payload.
func (vf *VarField) consume(b Block) (zc.Range, error) {
	cursor, scope, ok, err := vf.enter(b)
	if !ok || err != nil {
		return 0, err
	}

	start := cursor.limit
	n, err := Get[uint32](cursor.buf, start, b.Order())
	if err != nil {
		return 0, withField(err, vf.Name)
	}
	if _, err := cursor.advance(VarLengthSize + int(n)); err != nil {
		return 0, withField(err, vf.Name)
	}
	scope.commit()

	r := zc.New(start+VarLengthSize, int(n))
	debug.Log([]any{"%s", vf.Name}, "var", "%v %v", r, dbg.Hex(r.Bytes(cursor.buf.Bytes()), 16))
	return r, nil
}

// GetVarData reads a var-data field at b's limit, copying at most len(dst)
// bytes of it into dst, and returns the number of bytes copied.
//
// The limit always moves past the whole field, whether or not it was all
// copied. A field that is not in the acting version reads as empty and does
// not move the limit.
func GetVarData(b Block, vf *VarField, dst []byte) (int, error) {
	r, err := vf.consume(b)
	if err != nil {
		return 0, err
	}
	return copy(dst, r.Bytes(b.Buffer().Bytes())), nil
}

// SkipVarData moves b's limit past a var-data field without copying it, and
// returns the field's length.
func SkipVarData(b Block, vf *VarField) (int, error) {
	r, err := vf.consume(b)
	return r.Len(), err
}

// VarDataBytes is like [GetVarData], but returns the payload without copying
// it. The result aliases b's buffer.
func VarDataBytes(b Block, vf *VarField) ([]byte, error) {
	r, err := vf.consume(b)
	if err != nil {
		return nil, err
	}
	return r.Bytes(b.Buffer().Bytes()), nil
}

// VarDataString is like [GetVarData], but returns the payload as a new string.
func VarDataString(b Block, vf *VarField) (string, error) {
	r, err := vf.consume(b)
	if err != nil {
		return "", err
	}
	return string(r.Bytes(b.Buffer().Bytes())), nil
}

// VarDataLength returns the length of the var-data field at b's limit without
// consuming it.
func VarDataLength(b Block, vf *VarField) (int, error) {
	cursor, scope, err := b.state()
	if err != nil {
		return 0, withField(err, vf.Name)
	}
	if err := scope.check(cursor, vf.Ordinal, vf.Name); err != nil {
		return 0, err
	}
	if b.ActingVersion() < vf.Since {
		return 0, nil
	}

	n, err := Get[uint32](cursor.buf, cursor.limit, b.Order())
	return int(n), withField(err, vf.Name)
}

// PutVarData writes src as a var-data field at b's limit, and moves the limit
// past it. Returns len(src).
func PutVarData(b Block, vf *VarField, src []byte) (int, error) {
	if uint64(len(src)) > math.MaxUint32 {
		return 0, &Error{
			code: errCodeCountOverflow, offset: b.Limit(), field: vf.Name,
			detail: fmt.Sprintf("length %d", len(src)),
		}
	}

	cursor, scope, ok, err := vf.enter(b)
	if !ok || err != nil {
		return 0, err
	}

	start, err := cursor.advance(VarLengthSize + len(src))
	if err != nil {
		return 0, withField(err, vf.Name)
	}
	if err := Put(cursor.buf, start, b.Order(), uint32(len(src))); err != nil {
		return 0, withField(err, vf.Name)
	}
	scope.commit()
	copy(cursor.buf.Bytes()[start+VarLengthSize:], src)
	return len(src), nil
}

// PutVarDataString is like [PutVarData], for strings.
func PutVarDataString(b Block, vf *VarField, src string) (int, error) {
	return PutVarData(b, vf, []byte(src))
}
