// Copyright (c) 2024 Wiregram Authors

// Package utils holds the small shared helpers of the client: hashing,
// randomness and the leveled logger.
package utils

import (
	cr "crypto/rand"
	"crypto/sha1"
)

const Sha1Len = sha1.Size

func Sha1Byte(input []byte) []byte {
	r := sha1.Sum(input)
	return r[:]
}

func Sha1(input string) []byte {
	r := sha1.Sum([]byte(input))
	return r[:]
}

func RandomBytes(size int) []byte {
	b := make([]byte, size)
	_, _ = cr.Read(b)
	return b
}
