// Copyright (c) 2024 Wiregram Authors

package tl

// Object is anything that travels on the wire under a constructor tag.
type Object interface {
	CRC() uint32
}

// Marshaler overrides the reflection-based encoding for types that need
// full control over their wire layout.
type Marshaler interface {
	MarshalTL(*Encoder) error
}

// Unmarshaler is the decoding contract. Every record decodes itself
// explicitly, there is no reflection on the decode path.
type Unmarshaler interface {
	UnmarshalTL(*Decoder) error
}
