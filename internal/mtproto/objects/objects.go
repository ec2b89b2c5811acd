// Copyright (c) 2024 Wiregram Authors

// Package objects holds the hand-written protocol records this client
// decodes. Every record decodes itself explicitly through the tl cursor;
// unions dispatch on the constructor tag through a flat per-type table.
package objects

import (
	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

// Vector ceilings. Chosen per call site, far above anything a well-behaved
// server sends but small enough to stop a hostile length from driving a
// giant allocation.
const (
	MaxParticipants     = 10000
	MaxRecentRequesters = 100
	MaxPhotoSizes       = 100
	MaxProgressiveSizes = 50
	MaxFingerprints     = 16
)

func popString(d *tl.Decoder) (string, error) {
	v := d.PopString()
	return v, d.Err()
}

func popBool(d *tl.Decoder) (bool, error) {
	v := d.PopBool()
	return v, d.Err()
}

// popCRC reads the constructor tag of the next object.
func popCRC(d *tl.Decoder) (uint32, error) {
	crc := d.PopCRC()
	if err := d.Err(); err != nil {
		return 0, errors.Wrap(err, "read constructor")
	}
	return crc, nil
}
