// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"crypto/rand"
	"math/big"
)

// Int128 is a 16-byte nonce value. On the wire it is raw big-endian bytes
// with no length prefix.
type Int128 struct {
	*big.Int
}

func NewInt128() *Int128 {
	return &Int128{Int: new(big.Int)}
}

func RandomInt128() *Int128 {
	i := NewInt128()
	i.SetBytes(randBytes(Int128Len))
	return i
}

// Bytes returns the value as exactly 16 big-endian bytes.
func (i *Int128) Bytes() []byte {
	buf := make([]byte, Int128Len)
	i.FillBytes(buf)
	return buf
}

func int128FromBytes(b []byte) *Int128 {
	return &Int128{Int: new(big.Int).SetBytes(b)}
}

// Int256 is a 32-byte nonce value, encoded like Int128.
type Int256 struct {
	*big.Int
}

func NewInt256() *Int256 {
	return &Int256{Int: new(big.Int)}
}

func RandomInt256() *Int256 {
	i := NewInt256()
	i.SetBytes(randBytes(Int256Len))
	return i
}

// Bytes returns the value as exactly 32 big-endian bytes.
func (i *Int256) Bytes() []byte {
	buf := make([]byte, Int256Len)
	i.FillBytes(buf)
	return buf
}

func int256FromBytes(b []byte) *Int256 {
	return &Int256{Int: new(big.Int).SetBytes(b)}
}

func randBytes(n int) []byte {
	buf := make([]byte, n)
	// crypto/rand never fails on supported platforms
	_, _ = rand.Read(buf)
	return buf
}
