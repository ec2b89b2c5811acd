// Copyright (c) 2024 Wiregram Authors

package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregram/wiregram/internal/encoding/tl"
	"github.com/wiregram/wiregram/internal/mtproto/objects"
)

func TestDecodeResPQ(t *testing.T) {
	nonce := tl.NewInt128()
	nonce.SetInt64(1111)
	serverNonce := tl.NewInt128()
	serverNonce.SetInt64(2222)
	pq := []byte{0x17, 0xed, 0x48, 0x94, 0x1a, 0x08, 0xf9, 0x81}

	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcResPQ)
		e.PutRawBytes(nonce.Bytes())
		e.PutRawBytes(serverNonce.Bytes())
		e.PutMessage(pq)
		e.PutCRC(tl.CrcVector)
		e.PutInt(2)
		e.PutLong(-4344800451088585951)
		e.PutLong(1562291298945373506)
	})

	res, err := objects.DecodeResPQ(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	assert.Equal(t, nonce.Bytes(), res.Nonce.Bytes())
	assert.Equal(t, serverNonce.Bytes(), res.ServerNonce.Bytes())
	assert.Equal(t, pq, res.Pq)
	assert.Equal(t, []int64{-4344800451088585951, 1562291298945373506}, res.Fingerprints)
}

func TestDecodeResPQTooManyFingerprints(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcResPQ)
		e.PutRawBytes(make([]byte, 32)) // both nonces
		e.PutMessage([]byte{1})
		e.PutCRC(tl.CrcVector)
		e.PutInt(17)
	})

	_, err := objects.DecodeResPQ(tl.NewDecoderBytes(encoded))

	var tooLong *tl.ErrVectorTooLong
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, objects.MaxFingerprints, tooLong.Limit)
}

func TestDecodeResPQWrongConstructor(t *testing.T) {
	_, err := objects.DecodeResPQ(tl.NewDecoderBytes(Hexed("ffffffff")))

	var unknownErr *tl.ErrUnknownConstructor
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "ResPQ", unknownErr.Type)
	assert.Equal(t, []uint32{objects.CrcResPQ}, unknownErr.Want)
}

func TestPQInnerDataMarshal(t *testing.T) {
	nonce := tl.NewInt128()
	nonce.SetInt64(5)
	serverNonce := tl.NewInt128()
	serverNonce.SetInt64(6)
	newNonce := tl.NewInt256()
	newNonce.SetInt64(7)

	inner := &objects.PQInnerData{
		Pq:          []byte{0x17, 0xed},
		P:           []byte{0x01},
		Q:           []byte{0x02},
		Nonce:       nonce,
		ServerNonce: serverNonce,
		NewNonce:    newNonce,
	}

	got, err := tl.Marshal(inner)
	require.NoError(t, err)

	want := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPQInnerData)
		e.PutMessage([]byte{0x17, 0xed})
		e.PutMessage([]byte{0x01})
		e.PutMessage([]byte{0x02})
		e.PutRawBytes(nonce.Bytes())
		e.PutRawBytes(serverNonce.Bytes())
		e.PutRawBytes(newNonce.Bytes())
	})
	assert.Equal(t, want, got)
}

func TestDecodeServerDHParamsOk(t *testing.T) {
	answer := []byte{0xaa, 0xbb, 0xcc}

	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcServerDHParamsOk)
		e.PutRawBytes(make([]byte, 16))
		e.PutRawBytes(make([]byte, 16))
		e.PutMessage(answer)
	})

	params, err := objects.DecodeServerDHParams(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	ok, isOk := params.(*objects.ServerDHParamsOk)
	require.True(t, isOk)
	assert.Equal(t, answer, ok.EncryptedAnswer)
}

func TestDecodeServerDHParamsFail(t *testing.T) {
	hash := tl.NewInt128()
	hash.SetInt64(42)

	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcServerDHParamsFail)
		e.PutRawBytes(make([]byte, 16))
		e.PutRawBytes(make([]byte, 16))
		e.PutRawBytes(hash.Bytes())
	})

	params, err := objects.DecodeServerDHParams(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	fail, isFail := params.(*objects.ServerDHParamsFail)
	require.True(t, isFail)
	assert.Equal(t, hash.Bytes(), fail.NewNonceHash.Bytes())
}

func TestDecodeServerDHParamsUnknown(t *testing.T) {
	_, err := objects.DecodeServerDHParams(tl.NewDecoderBytes(Hexed("ffffffff")))

	var unknownErr *tl.ErrUnknownConstructor
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "ServerDHParams", unknownErr.Type)
	assert.ElementsMatch(t,
		[]uint32{objects.CrcServerDHParamsOk, objects.CrcServerDHParamsFail},
		unknownErr.Want)
}
