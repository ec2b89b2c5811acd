// Copyright (c) 2024 Wiregram Authors

package objects_test

import (
	"bytes"
	"encoding/hex"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

func Hexed(in string) []byte {
	res, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return res
}

func encodeWith(fill func(e *tl.Encoder)) []byte {
	buf := bytes.NewBuffer(nil)
	e := tl.NewEncoder(buf)
	fill(e)
	if err := e.CheckErr(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
