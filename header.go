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

// HeaderSize is the size of a message header.
const HeaderSize = 8

// Header is the decoded contents of a message header.
type Header struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

// MessageHeader is a flyweight over the header that precedes every message:
// block length, template id, schema id and version, each a uint16.
type MessageHeader struct {
	buf    *Buffer
	offset int
	order  ByteOrder
}

// Wrap positions h at offset in buf, checking that the whole header fits.
func (h *MessageHeader) Wrap(buf *Buffer, offset int, order ByteOrder) error {
	if buf == nil {
		return &Error{code: errCodeNotWrapped, offset: offset, field: "messageHeader"}
	}
	if offset < 0 {
		return errRange(offset, HeaderSize, buf.Capacity())
	}
	if err := buf.CheckLimit(offset + HeaderSize); err != nil {
		return err
	}
	*h = MessageHeader{buf, offset, order}
	return nil
}

// Offset returns the offset h is wrapped at.
func (h *MessageHeader) Offset() int { return h.offset }

func (h *MessageHeader) get(at int) (uint16, error) {
	if h.buf == nil {
		return 0, &Error{code: errCodeNotWrapped, offset: -1, field: "messageHeader"}
	}
	return Get[uint16](h.buf, h.offset+at, h.order)
}

func (h *MessageHeader) set(at int, v uint16) error {
	if h.buf == nil {
		return &Error{code: errCodeNotWrapped, offset: -1, field: "messageHeader"}
	}
	return Put(h.buf, h.offset+at, h.order, v)
}

func (h *MessageHeader) BlockLength() (uint16, error) { return h.get(0) }
func (h *MessageHeader) TemplateID() (uint16, error)  { return h.get(2) }
func (h *MessageHeader) SchemaID() (uint16, error)    { return h.get(4) }
func (h *MessageHeader) Version() (uint16, error)     { return h.get(6) }

func (h *MessageHeader) SetBlockLength(v uint16) error { return h.set(0, v) }
func (h *MessageHeader) SetTemplateID(v uint16) error  { return h.set(2, v) }
func (h *MessageHeader) SetSchemaID(v uint16) error    { return h.set(4, v) }
func (h *MessageHeader) SetVersion(v uint16) error     { return h.set(6, v) }

// Read decodes all four header fields.
func (h *MessageHeader) Read() (Header, error) {
	var (
		hdr Header
		err error
	)
	for i, p := range [...]*uint16{&hdr.BlockLength, &hdr.TemplateID, &hdr.SchemaID, &hdr.Version} {
		if *p, err = h.get(2 * i); err != nil {
			return Header{}, err
		}
	}
	return hdr, nil
}

// Write encodes all four header fields.
func (h *MessageHeader) Write(hdr Header) error {
	for i, v := range [...]uint16{hdr.BlockLength, hdr.TemplateID, hdr.SchemaID, hdr.Version} {
		if err := h.set(2*i, v); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes the declared values of t into the header.
func (h *MessageHeader) Apply(t *Template) error {
	return h.Write(Header{
		BlockLength: uint16(t.BlockLength),
		TemplateID:  t.ID,
		SchemaID:    t.SchemaID,
		Version:     t.Version,
	})
}
