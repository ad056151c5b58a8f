// Package cdr implements the subset of OMG CDR (XCDR1, plain little-endian)
// used to serialize ROS2 messages for the rmw layer.
package cdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// EncapsulationHeaderSize is the length of the representation header
// preceding every serialized ROS2 message.
const EncapsulationHeaderSize = 4

// Representation identifiers
const (
	ReprCDRBigEndian    uint16 = 0x0000
	ReprCDRLittleEndian uint16 = 0x0001
)

var (
	ErrShortBuffer         = errors.New("cdr: buffer too short")
	ErrUnsupportedEncoding = errors.New("cdr: unsupported representation")
)

// Encoder appends CDR-encoded primitives to a buffer. Alignment is computed
// relative to the end of the encapsulation header.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder that has already written a little-endian
// encapsulation header.
func NewEncoder(sizeHint int) *Encoder {
	e := &Encoder{buf: make([]byte, 0, EncapsulationHeaderSize+sizeHint)}
	e.buf = binary.BigEndian.AppendUint16(e.buf, ReprCDRLittleEndian)
	e.buf = append(e.buf, 0, 0) // options
	return e
}

func (e *Encoder) align(n int) {
	for (len(e.buf)-EncapsulationHeaderSize)%n != 0 {
		e.buf = append(e.buf, 0)
	}
}

// WriteFloat64 writes an 8-byte aligned IEEE-754 double.
func (e *Encoder) WriteFloat64(v float64) {
	e.align(8)
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
}

// WriteUint32 writes a 4-byte aligned unsigned integer.
func (e *Encoder) WriteUint32(v uint32) {
	e.align(4)
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// WriteString writes a length-prefixed, NUL-terminated string.
func (e *Encoder) WriteString(s string) {
	e.WriteUint32(uint32(len(s) + 1))
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
}

// Bytes returns the encoded message including the header.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder reads CDR-encoded primitives.
type Decoder struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// NewDecoder validates the encapsulation header and returns a decoder
// positioned at the first field.
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < EncapsulationHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need encapsulation header", ErrShortBuffer, len(data))
	}
	d := &Decoder{buf: data, pos: EncapsulationHeaderSize}
	switch repr := binary.BigEndian.Uint16(data[0:2]); repr {
	case ReprCDRLittleEndian:
		d.order = binary.LittleEndian
	case ReprCDRBigEndian:
		d.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnsupportedEncoding, repr)
	}
	return d, nil
}

func (d *Decoder) align(n int) {
	for (d.pos-EncapsulationHeaderSize)%n != 0 {
		d.pos++
	}
}

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, d.pos, len(d.buf))
	}
	return nil
}

// ReadFloat64 reads an 8-byte aligned double.
func (d *Decoder) ReadFloat64() (float64, error) {
	d.align(8)
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := math.Float64frombits(d.order.Uint64(d.buf[d.pos:]))
	d.pos += 8
	return v, nil
}

// ReadUint32 reads a 4-byte aligned unsigned integer.
func (d *Decoder) ReadUint32() (uint32, error) {
	d.align(4)
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := d.order.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// ReadString reads a length-prefixed, NUL-terminated string.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUint32()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)-1])
	d.pos += int(n)
	return s, nil
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}
