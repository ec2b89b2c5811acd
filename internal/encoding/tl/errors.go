// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"fmt"
	"strings"
)

// ErrUnknownConstructor is returned when a union decoder meets a constructor
// tag that doesn't belong to any of the union's variants. Decoding stops at
// the tag, nothing past it is consumed.
type ErrUnknownConstructor struct {
	Type string   // union name, e.g. "ChatFull"
	Got  uint32   // tag found on the wire
	Want []uint32 // tags the union accepts
}

func (e *ErrUnknownConstructor) Error() string {
	want := make([]string, 0, len(e.Want))
	for _, crc := range e.Want {
		want = append(want, fmt.Sprintf("0x%08x", crc))
	}

	return fmt.Sprintf("unknown constructor for %v: got 0x%08x, want one of [%v]",
		e.Type, e.Got, strings.Join(want, ", "))
}

// ErrInvalidVectorCRC is returned when a value expected to be a vector
// doesn't start with the vector constructor.
type ErrInvalidVectorCRC struct {
	Got uint32
}

func (e *ErrInvalidVectorCRC) Error() string {
	return fmt.Sprintf("not a vector: 0x%08x, want: 0x%08x", e.Got, CrcVector)
}

// ErrVectorTooLong is returned when a vector's declared element count
// exceeds the ceiling of the call site. The check runs before any element
// is allocated or read.
type ErrVectorTooLong struct {
	Count int
	Limit int
}

func (e *ErrVectorTooLong) Error() string {
	return fmt.Sprintf("vector too long: %v elements, limit %v", e.Count, e.Limit)
}

// ErrUnexpectedEOB is returned when the buffer ends in the middle of a value.
type ErrUnexpectedEOB struct {
	Want int
	Got  int
}

func (e *ErrUnexpectedEOB) Error() string {
	return fmt.Sprintf("unexpected end of buffer: want %v bytes, got %v", e.Want, e.Got)
}

type ErrorPartialWrite struct {
	Has  int
	Want int
}

func (e *ErrorPartialWrite) Error() string {
	return fmt.Sprintf("write failed: wrote only %v bytes, expected %v", e.Has, e.Want)
}
