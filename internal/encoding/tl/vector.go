// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"github.com/pkg/errors"
)

// DecodeVector reads a bounded vector: the vector constructor, the element
// count, then count elements via elem. The count is validated against limit
// BEFORE anything is allocated, so a hostile length can't drive a huge
// allocation. Ceilings are per call site, not per element type.
func DecodeVector[T any](d *Decoder, limit int, elem func(*Decoder) (T, error)) ([]T, error) {
	if d.err != nil {
		return nil, d.err
	}

	crc := d.PopCRC()
	if d.err != nil {
		return nil, errors.Wrap(d.err, "read vector crc")
	}
	if crc != CrcVector {
		d.err = &ErrInvalidVectorCRC{Got: crc}
		return nil, d.err
	}

	count := int(d.PopInt())
	if d.err != nil {
		return nil, errors.Wrap(d.err, "read vector size")
	}
	if count < 0 || count > limit {
		d.err = &ErrVectorTooLong{Count: count, Limit: limit}
		return nil, d.err
	}

	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		v, err := elem(d)
		if err != nil {
			err = errors.Wrapf(err, "vector element %v", i)
			d.err = err
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Element readers for vectors of bare primitives.

func PopLongElem(d *Decoder) (int64, error) {
	v := d.PopLong()
	return v, d.Err()
}

func PopIntElem(d *Decoder) (int32, error) {
	v := d.PopInt()
	return v, d.Err()
}
