// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const (
	CrcPhotoEmpty uint32 = 0x2331b22d
	CrcPhoto      uint32 = 0xfb197a65

	CrcPhotoSizeEmpty       uint32 = 0x0017e23c
	CrcPhotoSize            uint32 = 0x75c78e60
	CrcPhotoCachedSize      uint32 = 0x021e1ad6
	CrcPhotoStrippedSize    uint32 = 0xe0b0bc2e
	CrcPhotoSizeProgressive uint32 = 0xfa3efb95
	CrcPhotoPathSize        uint32 = 0xd8214d41
)

// Photo is either a placeholder or a full photo with its size list.
//
// photoEmpty#2331b22d id:long = Photo;
// photo#fb197a65 flags:# has_stickers:flags.0?true id:long access_hash:long
//
//	file_reference:bytes date:int sizes:Vector<PhotoSize>
//	video_sizes:flags.1?Vector<VideoSize> dc_id:int = Photo;
type Photo interface {
	tl.Object
	tl.Unmarshaler
	ImplementsPhoto()
}

var photoCrcs = []uint32{CrcPhotoEmpty, CrcPhoto}

var photoVariants = map[uint32]func() Photo{
	CrcPhotoEmpty: func() Photo { return &PhotoEmpty{} },
	CrcPhoto:      func() Photo { return &PhotoObj{} },
}

func DecodePhoto(d *tl.Decoder) (Photo, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := photoVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "Photo", Got: crc, Want: photoCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

type PhotoEmpty struct {
	ID int64
}

func (*PhotoEmpty) CRC() uint32 {
	return CrcPhotoEmpty
}

func (*PhotoEmpty) ImplementsPhoto() {}

func (p *PhotoEmpty) UnmarshalTL(d *tl.Decoder) error {
	p.ID = d.PopLong()
	return d.Err()
}

type PhotoObj struct {
	HasStickers   bool
	ID            int64
	AccessHash    int64
	FileReference []byte
	Date          int32
	Sizes         []PhotoSize
	VideoSizes    []VideoSize
	DcID          int32
}

func (*PhotoObj) CRC() uint32 {
	return CrcPhoto
}

func (*PhotoObj) ImplementsPhoto() {}

func (p *PhotoObj) UnmarshalTL(d *tl.Decoder) error {
	flags := d.PopFlags()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "read flags")
	}

	p.HasStickers = flags.Has(0)
	p.ID = d.PopLong()
	p.AccessHash = d.PopLong()
	p.FileReference = d.PopMessage()
	p.Date = d.PopInt()
	if err := d.Err(); err != nil {
		return err
	}

	sizes, err := tl.DecodeVector(d, MaxPhotoSizes, popPhotoSize)
	if err != nil {
		return errors.Wrap(err, "sizes")
	}
	p.Sizes = sizes

	if flags.Has(1) {
		videoSizes, err := tl.DecodeVector(d, MaxPhotoSizes, popVideoSize)
		if err != nil {
			return errors.Wrap(err, "video_sizes")
		}
		p.VideoSizes = videoSizes
	}

	p.DcID = d.PopInt()
	return d.Err()
}

// PhotoSize covers every way a photo thumbnail can be carried.
//
// photoSizeEmpty#e17e23c type:string = PhotoSize;
// photoSize#75c78e60 type:string w:int h:int size:int = PhotoSize;
// photoCachedSize#21e1ad6 type:string w:int h:int bytes:bytes = PhotoSize;
// photoStrippedSize#e0b0bc2e type:string bytes:bytes = PhotoSize;
// photoSizeProgressive#fa3efb95 type:string w:int h:int sizes:Vector<int> = PhotoSize;
// photoPathSize#d8214d41 type:string bytes:bytes = PhotoSize;
type PhotoSize interface {
	tl.Object
	tl.Unmarshaler
	ImplementsPhotoSize()
}

var photoSizeCrcs = []uint32{
	CrcPhotoSizeEmpty,
	CrcPhotoSize,
	CrcPhotoCachedSize,
	CrcPhotoStrippedSize,
	CrcPhotoSizeProgressive,
	CrcPhotoPathSize,
}

var photoSizeVariants = map[uint32]func() PhotoSize{
	CrcPhotoSizeEmpty:       func() PhotoSize { return &PhotoSizeEmpty{} },
	CrcPhotoSize:            func() PhotoSize { return &PhotoSizeObj{} },
	CrcPhotoCachedSize:      func() PhotoSize { return &PhotoCachedSize{} },
	CrcPhotoStrippedSize:    func() PhotoSize { return &PhotoStrippedSize{} },
	CrcPhotoSizeProgressive: func() PhotoSize { return &PhotoSizeProgressive{} },
	CrcPhotoPathSize:        func() PhotoSize { return &PhotoPathSize{} },
}

func DecodePhotoSize(d *tl.Decoder) (PhotoSize, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := photoSizeVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "PhotoSize", Got: crc, Want: photoSizeCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

func popPhotoSize(d *tl.Decoder) (PhotoSize, error) {
	return DecodePhotoSize(d)
}

type PhotoSizeEmpty struct {
	Type string
}

func (*PhotoSizeEmpty) CRC() uint32 {
	return CrcPhotoSizeEmpty
}

func (*PhotoSizeEmpty) ImplementsPhotoSize() {}

func (p *PhotoSizeEmpty) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	return d.Err()
}

type PhotoSizeObj struct {
	Type string
	W    int32
	H    int32
	Size int32
}

func (*PhotoSizeObj) CRC() uint32 {
	return CrcPhotoSize
}

func (*PhotoSizeObj) ImplementsPhotoSize() {}

func (p *PhotoSizeObj) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	p.W = d.PopInt()
	p.H = d.PopInt()
	p.Size = d.PopInt()
	return d.Err()
}

type PhotoCachedSize struct {
	Type  string
	W     int32
	H     int32
	Bytes []byte
}

func (*PhotoCachedSize) CRC() uint32 {
	return CrcPhotoCachedSize
}

func (*PhotoCachedSize) ImplementsPhotoSize() {}

func (p *PhotoCachedSize) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	p.W = d.PopInt()
	p.H = d.PopInt()
	p.Bytes = d.PopMessage()
	return d.Err()
}

type PhotoStrippedSize struct {
	Type  string
	Bytes []byte
}

func (*PhotoStrippedSize) CRC() uint32 {
	return CrcPhotoStrippedSize
}

func (*PhotoStrippedSize) ImplementsPhotoSize() {}

func (p *PhotoStrippedSize) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	p.Bytes = d.PopMessage()
	return d.Err()
}

type PhotoSizeProgressive struct {
	Type  string
	W     int32
	H     int32
	Sizes []int32
}

func (*PhotoSizeProgressive) CRC() uint32 {
	return CrcPhotoSizeProgressive
}

func (*PhotoSizeProgressive) ImplementsPhotoSize() {}

func (p *PhotoSizeProgressive) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	p.W = d.PopInt()
	p.H = d.PopInt()
	if err := d.Err(); err != nil {
		return err
	}

	sizes, err := tl.DecodeVector(d, MaxProgressiveSizes, tl.PopIntElem)
	if err != nil {
		return errors.Wrap(err, "sizes")
	}
	p.Sizes = sizes

	return nil
}

type PhotoPathSize struct {
	Type  string
	Bytes []byte
}

func (*PhotoPathSize) CRC() uint32 {
	return CrcPhotoPathSize
}

func (*PhotoPathSize) ImplementsPhotoSize() {}

func (p *PhotoPathSize) UnmarshalTL(d *tl.Decoder) error {
	p.Type = d.PopString()
	p.Bytes = d.PopMessage()
	return d.Err()
}

// VideoSize is read as a type marker plus an opaque payload.
type VideoSize struct {
	Type string
	Data []byte
}

func popVideoSize(d *tl.Decoder) (VideoSize, error) {
	v := VideoSize{
		Type: d.PopString(),
		Data: d.PopMessage(),
	}
	return v, d.Err()
}
