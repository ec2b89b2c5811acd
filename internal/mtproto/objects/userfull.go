// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const CrcUserFull uint32 = 0xa02bc13e

// UserFull is full info about a user. Single constructor, so there is no
// union around it. The head of the real object is decoded; trailing
// business and gift data is left alone.
type UserFull struct {
	Blocked                 bool
	PhoneCallsAvailable     bool
	PhoneCallsPrivate       bool
	CanPinMessage           bool
	HasScheduled            bool
	VideoCallsAvailable     bool
	VoiceMessagesForbidden  bool
	TranslationsDisabled    bool
	ID                      int64
	About                   *string
	PersonalPhoto           Photo
	ProfilePhoto            Photo
	FallbackPhoto           Photo
	NotifySettings          *PeerNotifySettings
	BotInfo                 *BotInfo
	PinnedMsgID             *int32
	CommonChatsCount        int32
	FolderID                *int32
	TTLPeriod               *int32
	PrivateForwardName      *string
}

func (*UserFull) CRC() uint32 {
	return CrcUserFull
}

func DecodeUserFull(d *tl.Decoder) (*UserFull, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}
	if crc != CrcUserFull {
		return nil, &tl.ErrUnknownConstructor{Type: "UserFull", Got: crc, Want: []uint32{CrcUserFull}}
	}

	user := &UserFull{}
	if err := user.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *UserFull) UnmarshalTL(d *tl.Decoder) error {
	flags := d.PopFlags()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "read flags")
	}

	u.Blocked = flags.Has(0)
	u.PhoneCallsAvailable = flags.Has(4)
	u.PhoneCallsPrivate = flags.Has(5)
	u.CanPinMessage = flags.Has(7)
	u.HasScheduled = flags.Has(12)
	u.VideoCallsAvailable = flags.Has(13)
	u.VoiceMessagesForbidden = flags.Has(20)
	u.TranslationsDisabled = flags.Has(23)

	u.ID = d.PopLong()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "id")
	}

	var err error
	if u.About, err = tl.ReadIf(d, flags, 1, popString); err != nil {
		return errors.Wrap(err, "about")
	}

	if u.PersonalPhoto, err = readPhotoIf(d, flags, 21); err != nil {
		return errors.Wrap(err, "personal_photo")
	}
	if u.ProfilePhoto, err = readPhotoIf(d, flags, 2); err != nil {
		return errors.Wrap(err, "profile_photo")
	}
	if u.FallbackPhoto, err = readPhotoIf(d, flags, 22); err != nil {
		return errors.Wrap(err, "fallback_photo")
	}

	settings, err := DecodePeerNotifySettings(d)
	if err != nil {
		return errors.Wrap(err, "notify_settings")
	}
	u.NotifySettings = settings

	if flags.Has(3) {
		u.BotInfo = &BotInfo{} // body not parsed yet
	}

	if u.PinnedMsgID, err = tl.ReadIf(d, flags, 6, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "pinned_msg_id")
	}

	u.CommonChatsCount = d.PopInt()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "common_chats_count")
	}

	if u.FolderID, err = tl.ReadIf(d, flags, 11, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "folder_id")
	}
	if u.TTLPeriod, err = tl.ReadIf(d, flags, 14, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "ttl_period")
	}
	if u.PrivateForwardName, err = tl.ReadIf(d, flags, 16, popString); err != nil {
		return errors.Wrap(err, "private_forward_name")
	}

	return nil
}

func readPhotoIf(d *tl.Decoder, flags tl.Flags, bit int) (Photo, error) {
	if !flags.Has(bit) {
		return nil, nil
	}
	return DecodePhoto(d)
}
