// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const (
	CrcPeerNotifySettings      uint32 = 0x99622c0c
	CrcInputPeerNotifySettings uint32 = 0xcacb6ae2

	CrcNotificationSoundDefault  uint32 = 0x97e8bebe
	CrcNotificationSoundNone     uint32 = 0x6f0c34df
	CrcNotificationSoundLocal    uint32 = 0x830b9ae4
	CrcNotificationSoundRingtone uint32 = 0xff6c8049
)

// PeerNotifySettings controls how notifications behave for one peer. Every
// field is conditional; all eleven ride on the same flags word.
//
// peerNotifySettings#99622c0c flags:# show_previews:flags.0?Bool silent:flags.1?Bool
//
//	mute_until:flags.2?int ios_sound:flags.3?NotificationSound
//	android_sound:flags.4?NotificationSound other_sound:flags.5?NotificationSound
//	stories_muted:flags.6?Bool stories_hide_sender:flags.7?Bool
//	stories_ios_sound:flags.8?NotificationSound
//	stories_android_sound:flags.9?NotificationSound
//	stories_other_sound:flags.10?NotificationSound = PeerNotifySettings;
type PeerNotifySettings struct {
	ShowPreviews        *bool
	Silent              *bool
	MuteUntil           *int32
	IosSound            NotificationSound
	AndroidSound        NotificationSound
	OtherSound          NotificationSound
	StoriesMuted        *bool
	StoriesHideSender   *bool
	StoriesIosSound     NotificationSound
	StoriesAndroidSound NotificationSound
	StoriesOtherSound   NotificationSound
}

func (*PeerNotifySettings) CRC() uint32 {
	return CrcPeerNotifySettings
}

func DecodePeerNotifySettings(d *tl.Decoder) (*PeerNotifySettings, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}
	if crc != CrcPeerNotifySettings {
		return nil, &tl.ErrUnknownConstructor{
			Type: "PeerNotifySettings",
			Got:  crc,
			Want: []uint32{CrcPeerNotifySettings},
		}
	}

	settings := &PeerNotifySettings{}
	if err := settings.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *PeerNotifySettings) UnmarshalTL(d *tl.Decoder) error {
	flags := d.PopFlags()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "read flags")
	}

	var err error
	if s.ShowPreviews, err = tl.ReadIf(d, flags, 0, popBool); err != nil {
		return errors.Wrap(err, "show_previews")
	}
	if s.Silent, err = tl.ReadIf(d, flags, 1, popBool); err != nil {
		return errors.Wrap(err, "silent")
	}
	if s.MuteUntil, err = tl.ReadIf(d, flags, 2, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "mute_until")
	}
	if s.IosSound, err = readSoundIf(d, flags, 3); err != nil {
		return errors.Wrap(err, "ios_sound")
	}
	if s.AndroidSound, err = readSoundIf(d, flags, 4); err != nil {
		return errors.Wrap(err, "android_sound")
	}
	if s.OtherSound, err = readSoundIf(d, flags, 5); err != nil {
		return errors.Wrap(err, "other_sound")
	}
	if s.StoriesMuted, err = tl.ReadIf(d, flags, 6, popBool); err != nil {
		return errors.Wrap(err, "stories_muted")
	}
	if s.StoriesHideSender, err = tl.ReadIf(d, flags, 7, popBool); err != nil {
		return errors.Wrap(err, "stories_hide_sender")
	}
	if s.StoriesIosSound, err = readSoundIf(d, flags, 8); err != nil {
		return errors.Wrap(err, "stories_ios_sound")
	}
	if s.StoriesAndroidSound, err = readSoundIf(d, flags, 9); err != nil {
		return errors.Wrap(err, "stories_android_sound")
	}
	if s.StoriesOtherSound, err = readSoundIf(d, flags, 10); err != nil {
		return errors.Wrap(err, "stories_other_sound")
	}

	return nil
}

func readSoundIf(d *tl.Decoder, flags tl.Flags, bit int) (NotificationSound, error) {
	if !flags.Has(bit) {
		return nil, nil
	}
	return DecodeNotificationSound(d)
}

// InputPeerNotifySettings is the outbound counterpart, encoded through
// tl.Marshal with flag tags.
//
// inputPeerNotifySettings#cacb6ae2 flags:# show_previews:flags.0?Bool silent:flags.1?Bool
//
//	mute_until:flags.2?int sound:flags.3?NotificationSound
//	stories_muted:flags.6?Bool stories_hide_sender:flags.7?Bool
//	stories_sound:flags.8?NotificationSound = InputPeerNotifySettings;
type InputPeerNotifySettings struct {
	ShowPreviews      bool              `tl:"flag:0"`
	Silent            bool              `tl:"flag:1"`
	MuteUntil         int32             `tl:"flag:2"`
	Sound             NotificationSound `tl:"flag:3"`
	StoriesMuted      bool              `tl:"flag:6"`
	StoriesHideSender bool              `tl:"flag:7"`
	StoriesSound      NotificationSound `tl:"flag:8"`
}

func (*InputPeerNotifySettings) CRC() uint32 {
	return CrcInputPeerNotifySettings
}

// NotificationSound is the sound union: default, none, a local file or an
// uploaded ringtone.
type NotificationSound interface {
	tl.Object
	tl.Unmarshaler
	ImplementsNotificationSound()
}

var notificationSoundCrcs = []uint32{
	CrcNotificationSoundDefault,
	CrcNotificationSoundNone,
	CrcNotificationSoundLocal,
	CrcNotificationSoundRingtone,
}

var notificationSoundVariants = map[uint32]func() NotificationSound{
	CrcNotificationSoundDefault:  func() NotificationSound { return &NotificationSoundDefault{} },
	CrcNotificationSoundNone:     func() NotificationSound { return &NotificationSoundNone{} },
	CrcNotificationSoundLocal:    func() NotificationSound { return &NotificationSoundLocal{} },
	CrcNotificationSoundRingtone: func() NotificationSound { return &NotificationSoundRingtone{} },
}

func DecodeNotificationSound(d *tl.Decoder) (NotificationSound, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := notificationSoundVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "NotificationSound", Got: crc, Want: notificationSoundCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

type NotificationSoundDefault struct{}

func (*NotificationSoundDefault) CRC() uint32 {
	return CrcNotificationSoundDefault
}

func (*NotificationSoundDefault) ImplementsNotificationSound() {}

func (*NotificationSoundDefault) UnmarshalTL(*tl.Decoder) error {
	return nil
}

func (*NotificationSoundDefault) String() string {
	return "Default"
}

type NotificationSoundNone struct{}

func (*NotificationSoundNone) CRC() uint32 {
	return CrcNotificationSoundNone
}

func (*NotificationSoundNone) ImplementsNotificationSound() {}

func (*NotificationSoundNone) UnmarshalTL(*tl.Decoder) error {
	return nil
}

func (*NotificationSoundNone) String() string {
	return "None"
}

// notificationSoundLocal#830b9ae4 title:string data:string
type NotificationSoundLocal struct {
	Title string
	Data  string
}

func (*NotificationSoundLocal) CRC() uint32 {
	return CrcNotificationSoundLocal
}

func (*NotificationSoundLocal) ImplementsNotificationSound() {}

func (s *NotificationSoundLocal) UnmarshalTL(d *tl.Decoder) error {
	s.Title = d.PopString()
	s.Data = d.PopString()
	return d.Err()
}

func (s *NotificationSoundLocal) String() string {
	return fmt.Sprintf("Local(%v)", s.Title)
}

// notificationSoundRingtone#ff6c8049 id:long
type NotificationSoundRingtone struct {
	ID int64
}

func (*NotificationSoundRingtone) CRC() uint32 {
	return CrcNotificationSoundRingtone
}

func (*NotificationSoundRingtone) ImplementsNotificationSound() {}

func (s *NotificationSoundRingtone) UnmarshalTL(d *tl.Decoder) error {
	s.ID = d.PopLong()
	return d.Err()
}

func (s *NotificationSoundRingtone) String() string {
	return fmt.Sprintf("Ringtone(%v)", s.ID)
}
