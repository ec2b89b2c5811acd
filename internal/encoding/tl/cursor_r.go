// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
)

// A Decoder reads TL values from a single message buffer. The cursor is
// forward-only: every Pop consumes bytes and advances it. The first failure
// latches into the decoder, all following Pops become no-ops, so call sites
// may run a batch of reads and check Err once.
//
// A Decoder serves one message and is not safe for concurrent use.
type Decoder struct {
	buf *bytes.Reader
	err error
}

// NewDecoder returns a new decoder that reads from r.
// The reader is drained up front: TL can't be decoded from partial data.
func NewDecoder(r io.Reader) (*Decoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading data before decoding")
	}

	return &Decoder{buf: bytes.NewReader(data)}, nil
}

// NewDecoderBytes decodes directly from a byte slice.
func NewDecoderBytes(data []byte) *Decoder {
	return &Decoder{buf: bytes.NewReader(data)}
}

// Err returns the first error the decoder hit, if any.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) read(buf []byte) {
	if d.err != nil {
		return
	}

	n, err := d.buf.Read(buf)
	if err != nil {
		d.unread(n)
		d.err = &ErrUnexpectedEOB{Want: len(buf), Got: n}
		return
	}

	if n != len(buf) {
		d.unread(n)
		d.err = &ErrUnexpectedEOB{Want: len(buf), Got: n}
	}
}

func (d *Decoder) unread(count int) {
	for i := 0; i < count; i++ {
		if d.buf.UnreadByte() != nil {
			return
		}
	}
}

func (d *Decoder) PopLong() int64 {
	val := make([]byte, LongLen)
	d.read(val)
	if d.err != nil {
		return 0
	}

	return int64(binary.LittleEndian.Uint64(val))
}

func (d *Decoder) PopDouble() float64 {
	val := make([]byte, DoubleLen)
	d.read(val)
	if d.err != nil {
		return 0
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(val))
}

func (d *Decoder) PopUint() uint32 {
	val := make([]byte, WordLen)
	d.read(val)
	if d.err != nil {
		return 0
	}

	return binary.LittleEndian.Uint32(val)
}

func (d *Decoder) PopRawBytes(size int) []byte {
	val := make([]byte, size)
	d.read(val)
	if d.err != nil {
		return nil
	}

	return val
}

// PopBool reads a full boolean object (boolTrue or boolFalse constructor).
// Bit-only booleans live in the flags word and never reach the buffer.
func (d *Decoder) PopBool() bool {
	crc := d.PopUint()
	if d.err != nil {
		return false
	}

	switch crc {
	case CrcTrue:
		return true
	case CrcFalse:
		return false
	default:
		d.err = &ErrUnknownConstructor{Type: "Bool", Got: crc, Want: []uint32{CrcTrue, CrcFalse}}
		return false
	}
}

func (d *Decoder) PopNull() {
	crc := d.PopUint()
	if d.err != nil {
		return
	}

	if crc != CrcNull {
		d.err = fmt.Errorf("not a null value, actually: %#v", crc)
	}
}

// PopCRC is an alias for Decoder.PopUint, read as a constructor tag.
func (d *Decoder) PopCRC() uint32 {
	return d.PopUint()
}

func (d *Decoder) PopInt() int32 {
	return int32(d.PopUint())
}

func (d *Decoder) PopInt128() *Int128 {
	val := d.PopRawBytes(Int128Len)
	if d.err != nil {
		return nil
	}

	return int128FromBytes(val)
}

func (d *Decoder) PopInt256() *Int256 {
	val := d.PopRawBytes(Int256Len)
	if d.err != nil {
		return nil
	}

	return int256FromBytes(val)
}

// PopMessage reads a length-prefixed string of bytes including its padding.
// Values shorter than 254 bytes carry a 1-byte length, longer ones start
// with MagicNumber followed by a 3-byte little-endian length. Padding bytes
// must be zero.
func (d *Decoder) PopMessage() []byte {
	val := []byte{0}

	d.read(val)
	if d.err != nil {
		return nil
	}

	firstByte := val[0]

	var realSize int
	var lenNumberSize int

	if firstByte != MagicNumber {
		realSize = int(firstByte)
		lenNumberSize = 1
	} else {
		val = make([]byte, WordLen-1)
		d.read(val)
		if d.err != nil {
			d.err = errors.Wrapf(d.err, "reading last %v bytes of message size", WordLen-1)
			return nil
		}

		val = append(val, 0x0)

		realSize = int(binary.LittleEndian.Uint32(val))
		lenNumberSize = WordLen
	}

	// check against what is actually buffered before allocating: the
	// 3-byte form can declare up to 16 MB that was never sent
	if remaining := d.buf.Len(); realSize > remaining {
		d.err = errors.Wrapf(
			&ErrUnexpectedEOB{Want: realSize, Got: remaining},
			"reading message data with len of %v", realSize,
		)
		return nil
	}

	buf := make([]byte, realSize)
	d.read(buf)
	if d.err != nil {
		d.err = errors.Wrapf(d.err, "reading message data with len of %v", realSize)
		return nil
	}

	readLen := lenNumberSize + realSize
	if readLen%WordLen != 0 {
		voidBytes := make([]byte, WordLen-readLen%WordLen)
		d.read(voidBytes)
		if d.err != nil {
			d.err = errors.Wrapf(d.err, "reading %v last void bytes", WordLen-readLen%WordLen)
			return nil
		}

		for _, b := range voidBytes {
			if b != 0 {
				d.err = fmt.Errorf("some of void bytes doesn't equal zero: %#v", voidBytes)
				return nil
			}
		}
	}

	return buf
}

// PopString reads a length-prefixed utf-8 string.
func (d *Decoder) PopString() string {
	return string(d.PopMessage())
}
