// Copyright (c) 2024 Wiregram Authors

package keys

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidKeySize means the key's modulus length is unusable for the
// operation. The handshake only ever encrypts against 2048-bit keys.
type ErrInvalidKeySize struct {
	Bits int
}

func (e *ErrInvalidKeySize) Error() string {
	return fmt.Sprintf("invalid key size: %v bits (expected 2048)", e.Bits)
}

// ErrDataTooLarge means the plaintext does not fit the key with the
// requested padding.
type ErrDataTooLarge struct {
	Size int
	Max  int
}

func (e *ErrDataTooLarge) Error() string {
	return fmt.Sprintf("data too large: %v bytes (max %v)", e.Size, e.Max)
}

// ErrNotImplemented marks operations the key exchange never needs but the
// interface still exposes.
var ErrNotImplemented = errors.New("not implemented")
