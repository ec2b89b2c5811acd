// Copyright (c) 2024 Wiregram Authors

package tl

// Flags is the conditional-field bitmask a record reads right after its
// constructor tag. Bit-only booleans are answered from the word itself;
// for value-carrying optional fields the bit says whether the value
// follows in the buffer.
type Flags uint32

// Has reports whether bit is set.
func (f Flags) Has(bit int) bool {
	return f&(1<<uint(bit)) != 0
}

// PopFlags reads the flags word of the current record.
func (d *Decoder) PopFlags() Flags {
	return Flags(d.PopUint())
}

// ReadIf runs read only when the flag bit is set and returns the value by
// pointer, nil meaning absent. A clear bit consumes nothing: the cursor
// stays exactly where it was.
func ReadIf[T any](d *Decoder, flags Flags, bit int, read func(*Decoder) (T, error)) (*T, error) {
	if !flags.Has(bit) {
		return nil, nil
	}

	v, err := read(d)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
