// Copyright (c) 2024 Wiregram Authors

package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregram/wiregram/internal/encoding/tl"
	"github.com/wiregram/wiregram/internal/mtproto/objects"
)

func TestPhotoEmptyDecode(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhotoEmpty)
		e.PutLong(404)
	})

	photo, err := objects.DecodePhoto(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	empty, ok := photo.(*objects.PhotoEmpty)
	require.True(t, ok)
	assert.Equal(t, int64(404), empty.ID)
}

func TestPhotoDecode(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhoto)
		e.PutUint(1 << 0) // has_stickers
		e.PutLong(100)
		e.PutLong(200)
		e.PutMessage([]byte{0xde, 0xad})
		e.PutInt(1700000000)
		e.PutCRC(tl.CrcVector)
		e.PutInt(2)
		e.PutCRC(objects.CrcPhotoSize)
		e.PutString("m")
		e.PutInt(320)
		e.PutInt(240)
		e.PutInt(12345)
		e.PutCRC(objects.CrcPhotoStrippedSize)
		e.PutString("i")
		e.PutMessage([]byte{1, 2, 3})
		e.PutInt(4) // dc_id
	})

	photo, err := objects.DecodePhoto(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	obj, ok := photo.(*objects.PhotoObj)
	require.True(t, ok)
	assert.True(t, obj.HasStickers)
	assert.Equal(t, int64(100), obj.ID)
	assert.Equal(t, int64(200), obj.AccessHash)
	assert.Equal(t, []byte{0xde, 0xad}, obj.FileReference)
	assert.Equal(t, int32(1700000000), obj.Date)
	assert.Equal(t, int32(4), obj.DcID)
	assert.Nil(t, obj.VideoSizes)

	require.Len(t, obj.Sizes, 2)
	size, ok := obj.Sizes[0].(*objects.PhotoSizeObj)
	require.True(t, ok)
	assert.Equal(t, "m", size.Type)
	assert.Equal(t, int32(320), size.W)
	assert.Equal(t, int32(240), size.H)
	assert.Equal(t, int32(12345), size.Size)

	stripped, ok := obj.Sizes[1].(*objects.PhotoStrippedSize)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, stripped.Bytes)
}

func TestPhotoWithVideoSizes(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhoto)
		e.PutUint(1 << 1) // video_sizes present
		e.PutLong(1)
		e.PutLong(2)
		e.PutMessage(nil)
		e.PutInt(0)
		e.PutCRC(tl.CrcVector)
		e.PutInt(0)
		e.PutCRC(tl.CrcVector)
		e.PutInt(1)
		e.PutString("u")
		e.PutMessage([]byte{9})
		e.PutInt(2)
	})

	photo, err := objects.DecodePhoto(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	obj := photo.(*objects.PhotoObj)
	require.Len(t, obj.VideoSizes, 1)
	assert.Equal(t, "u", obj.VideoSizes[0].Type)
	assert.Equal(t, []byte{9}, obj.VideoSizes[0].Data)
	assert.Equal(t, int32(2), obj.DcID)
}

func TestPhotoSizeProgressive(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhotoSizeProgressive)
		e.PutString("y")
		e.PutInt(800)
		e.PutInt(600)
		e.PutCRC(tl.CrcVector)
		e.PutInt(3)
		e.PutInt(100)
		e.PutInt(2000)
		e.PutInt(30000)
	})

	size, err := objects.DecodePhotoSize(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	progressive, ok := size.(*objects.PhotoSizeProgressive)
	require.True(t, ok)
	assert.Equal(t, "y", progressive.Type)
	assert.Equal(t, []int32{100, 2000, 30000}, progressive.Sizes)
}

func TestPhotoSizeProgressiveTooManySizes(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhotoSizeProgressive)
		e.PutString("y")
		e.PutInt(800)
		e.PutInt(600)
		e.PutCRC(tl.CrcVector)
		e.PutInt(51)
	})

	_, err := objects.DecodePhotoSize(tl.NewDecoderBytes(encoded))

	var tooLong *tl.ErrVectorTooLong
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, objects.MaxProgressiveSizes, tooLong.Limit)
}

func TestPhotoSizesTooMany(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcPhoto)
		e.PutUint(0)
		e.PutLong(1)
		e.PutLong(2)
		e.PutMessage(nil)
		e.PutInt(0)
		e.PutCRC(tl.CrcVector)
		e.PutInt(101)
	})

	_, err := objects.DecodePhoto(tl.NewDecoderBytes(encoded))

	var tooLong *tl.ErrVectorTooLong
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, objects.MaxPhotoSizes, tooLong.Limit)
}

func TestPhotoSizeUnknownConstructor(t *testing.T) {
	_, err := objects.DecodePhotoSize(tl.NewDecoderBytes(Hexed("ffffffff")))

	var unknownErr *tl.ErrUnknownConstructor
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "PhotoSize", unknownErr.Type)
	assert.Len(t, unknownErr.Want, 6)
}
