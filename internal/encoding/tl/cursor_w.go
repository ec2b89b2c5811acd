// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// An Encoder writes TL values into w. Like the Decoder it latches the first
// failed write and ignores everything after it.
type Encoder struct {
	w   io.Writer
	err error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}

	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
		return
	}

	if n != len(b) {
		e.err = &ErrorPartialWrite{Has: n, Want: len(b)}
	}
}

// CheckErr must be called after encoding has been finished. If this function
// returns a non-nil value, the encoding has failed and the resulting data
// should not be used.
func (e *Encoder) CheckErr() error {
	return e.err
}

// PutBool writes a full boolean object. True and false each have their own
// constructor, so a bool is just one of two CRC constants.
func (e *Encoder) PutBool(v bool) {
	crc := CrcFalse
	if v {
		crc = CrcTrue
	}

	e.PutUint(crc)
}

func (e *Encoder) putUint8(v uint8) {
	tmp := [1]byte{v}
	e.write(tmp[:])
}

func (e *Encoder) PutUint(v uint32) {
	buf := make([]byte, WordLen)
	binary.LittleEndian.PutUint32(buf, v)
	e.write(buf)
}

// PutCRC is an alias for Encoder.PutUint, used for constructor tags.
func (e *Encoder) PutCRC(v uint32) {
	e.PutUint(v)
}

func (e *Encoder) PutInt(v int32) {
	e.PutUint(uint32(v))
}

func (e *Encoder) PutLong(v int64) {
	buf := make([]byte, LongLen)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	e.write(buf)
}

func (e *Encoder) PutDouble(v float64) {
	buf := make([]byte, DoubleLen)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	e.write(buf)
}

// PutMessage writes b as a length-prefixed value padded to a 4-byte
// boundary. Sizes below 254 use a single length byte, larger ones a
// MagicNumber byte followed by a 3-byte little-endian length.
func (e *Encoder) PutMessage(b []byte) {
	size := len(b)
	pad := 0

	maxLen := 1 << 24 // 3 bytes for the length when the first one is 0xfe
	if size >= maxLen {
		e.err = fmt.Errorf("message entity too large: expect less than %v, got %v", maxLen, size)
		return
	}

	switch {
	case size == 0: // optimization for empty messages
		e.PutUint(0)
		return
	case size < MagicNumber:
		pad = padding4(size + 1)
		e.putUint8(uint8(size))
	default:
		pad = padding4(size)
		e.PutUint(uint32(size)<<bitsInByte | MagicNumber)
	}

	e.write(b)

	if pad > 0 {
		var zero [WordLen]byte
		e.write(zero[:pad])
	}
}

func (e *Encoder) PutString(msg string) {
	e.PutMessage([]byte(msg))
}

func (e *Encoder) PutRawBytes(b []byte) {
	e.write(b)
}

// padding4 returns how many zero bytes complete length to a 4-byte boundary.
func padding4(length int) int {
	if length%WordLen == 0 {
		return 0
	}
	return WordLen - length%WordLen
}
