// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const (
	CrcChatFull    uint32 = 0x2633421b
	CrcChannelFull uint32 = 0xe4e0b29d

	CrcChatParticipants          uint32 = 0x3cbc93f8
	CrcChatParticipantsForbidden uint32 = 0x8763d3e1
)

// ChatFull is the full-info union: chatFull for basic groups, channelFull
// for channels and supergroups.
type ChatFull interface {
	tl.Object
	tl.Unmarshaler
	ImplementsChatFull()
}

var chatFullCrcs = []uint32{CrcChatFull, CrcChannelFull}

var chatFullVariants = map[uint32]func() ChatFull{
	CrcChatFull:    func() ChatFull { return &ChatFullObj{} },
	CrcChannelFull: func() ChatFull { return &ChannelFull{} },
}

func DecodeChatFull(d *tl.Decoder) (ChatFull, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := chatFullVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "ChatFull", Got: crc, Want: chatFullCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

// ChatFullObj is full info about a basic group.
//
// chatFull#2633421b flags:# can_set_username:flags.7?true has_scheduled:flags.8?true
//
//	translations_disabled:flags.19?true id:long about:string participants:ChatParticipants
//	chat_photo:flags.2?Photo notify_settings:PeerNotifySettings
//	exported_invite:flags.13?ExportedChatInvite bot_info:flags.3?Vector<BotInfo>
//	pinned_msg_id:flags.6?int folder_id:flags.11?int call:flags.12?InputGroupCall
//	ttl_period:flags.14?int groupcall_default_join_as:flags.15?Peer
//	theme_emoticon:flags.16?string requests_pending:flags.17?int
//	recent_requesters:flags.17?Vector<long> available_reactions:flags.18?ChatReactions
//	reactions_limit:flags.20?int = ChatFull;
type ChatFullObj struct {
	CanSetUsername         bool
	HasScheduled           bool
	TranslationsDisabled   bool
	ID                     int64
	About                  string
	Participants           ChatParticipants
	ChatPhoto              Photo
	NotifySettings         *PeerNotifySettings
	ExportedInvite         *ExportedChatInvite
	BotInfo                []BotInfo
	PinnedMsgID            *int32
	FolderID               *int32
	Call                   *InputGroupCall
	TTLPeriod              *int32
	GroupcallDefaultJoinAs Peer
	ThemeEmoticon          *string
	RequestsPending        *int32
	RecentRequesters       []int64
	AvailableReactions     *ChatReactions
	ReactionsLimit         *int32
}

func (*ChatFullObj) CRC() uint32 {
	return CrcChatFull
}

func (*ChatFullObj) ImplementsChatFull() {}

func (c *ChatFullObj) UnmarshalTL(d *tl.Decoder) error {
	flags := d.PopFlags()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "read flags")
	}

	c.CanSetUsername = flags.Has(7)
	c.HasScheduled = flags.Has(8)
	c.TranslationsDisabled = flags.Has(19)

	c.ID = d.PopLong()
	c.About = d.PopString()
	if err := d.Err(); err != nil {
		return err
	}

	participants, err := DecodeChatParticipants(d)
	if err != nil {
		return errors.Wrap(err, "participants")
	}
	c.Participants = participants

	if flags.Has(2) {
		photo, err := DecodePhoto(d)
		if err != nil {
			return errors.Wrap(err, "chat_photo")
		}
		c.ChatPhoto = photo
	}

	settings, err := DecodePeerNotifySettings(d)
	if err != nil {
		return errors.Wrap(err, "notify_settings")
	}
	c.NotifySettings = settings

	// placeholder bodies: the invite, call and reactions objects are
	// acknowledged but not parsed yet
	if flags.Has(13) {
		c.ExportedInvite = &ExportedChatInvite{}
	}

	if flags.Has(3) {
		botInfo, err := decodeBotInfoVector(d)
		if err != nil {
			return errors.Wrap(err, "bot_info")
		}
		c.BotInfo = botInfo
	}

	if c.PinnedMsgID, err = tl.ReadIf(d, flags, 6, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "pinned_msg_id")
	}
	if c.FolderID, err = tl.ReadIf(d, flags, 11, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "folder_id")
	}

	if flags.Has(12) {
		c.Call = &InputGroupCall{}
	}

	if c.TTLPeriod, err = tl.ReadIf(d, flags, 14, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "ttl_period")
	}

	if flags.Has(15) {
		peer, err := DecodePeer(d)
		if err != nil {
			return errors.Wrap(err, "groupcall_default_join_as")
		}
		c.GroupcallDefaultJoinAs = peer
	}

	if c.ThemeEmoticon, err = tl.ReadIf(d, flags, 16, popString); err != nil {
		return errors.Wrap(err, "theme_emoticon")
	}
	if c.RequestsPending, err = tl.ReadIf(d, flags, 17, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "requests_pending")
	}

	// bit 17 gates both the pending count and the requester list
	if flags.Has(17) {
		requesters, err := tl.DecodeVector(d, MaxRecentRequesters, tl.PopLongElem)
		if err != nil {
			return errors.Wrap(err, "recent_requesters")
		}
		c.RecentRequesters = requesters
	}

	if flags.Has(18) {
		c.AvailableReactions = &ChatReactions{}
	}

	if c.ReactionsLimit, err = tl.ReadIf(d, flags, 20, tl.PopIntElem); err != nil {
		return errors.Wrap(err, "reactions_limit")
	}

	return nil
}

// ChannelFull is full info about a channel. Only the head of the real
// constructor is decoded; channels report participant lists through a
// separate query, so Participants is always the Unknown placeholder.
type ChannelFull struct {
	CanSetUsername bool
	HasScheduled   bool
	ID             int64
	About          string
	Participants   ChatParticipants
	ChatPhoto      Photo
	NotifySettings *PeerNotifySettings
}

func (*ChannelFull) CRC() uint32 {
	return CrcChannelFull
}

func (*ChannelFull) ImplementsChatFull() {}

func (c *ChannelFull) UnmarshalTL(d *tl.Decoder) error {
	flags := d.PopFlags()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "read flags")
	}

	c.CanSetUsername = flags.Has(6)
	c.HasScheduled = flags.Has(19)

	c.ID = d.PopLong()
	c.About = d.PopString()
	if err := d.Err(); err != nil {
		return err
	}

	c.Participants = &ChatParticipantsUnknown{}

	if flags.Has(2) {
		photo, err := DecodePhoto(d)
		if err != nil {
			return errors.Wrap(err, "chat_photo")
		}
		c.ChatPhoto = photo
	}

	settings, err := DecodePeerNotifySettings(d)
	if err != nil {
		return errors.Wrap(err, "notify_settings")
	}
	c.NotifySettings = settings

	return nil
}

// ChatParticipants is the participant-list union of a basic group.
type ChatParticipants interface {
	tl.Object
	tl.Unmarshaler
	ImplementsChatParticipants()
}

var chatParticipantsCrcs = []uint32{CrcChatParticipants, CrcChatParticipantsForbidden}

var chatParticipantsVariants = map[uint32]func() ChatParticipants{
	CrcChatParticipants:          func() ChatParticipants { return &ChatParticipantsObj{} },
	CrcChatParticipantsForbidden: func() ChatParticipants { return &ChatParticipantsForbidden{} },
}

func DecodeChatParticipants(d *tl.Decoder) (ChatParticipants, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := chatParticipantsVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "ChatParticipants", Got: crc, Want: chatParticipantsCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

// chatParticipants#3cbc93f8 chat_id:long participants:Vector<ChatParticipant> version:int
type ChatParticipantsObj struct {
	ChatID       int64
	Participants []ChatParticipant
	Version      int32
}

func (*ChatParticipantsObj) CRC() uint32 {
	return CrcChatParticipants
}

func (*ChatParticipantsObj) ImplementsChatParticipants() {}

func (c *ChatParticipantsObj) UnmarshalTL(d *tl.Decoder) error {
	c.ChatID = d.PopLong()
	if err := d.Err(); err != nil {
		return errors.Wrap(err, "chat_id")
	}

	participants, err := tl.DecodeVector(d, MaxParticipants, popChatParticipant)
	if err != nil {
		return errors.Wrap(err, "participants")
	}
	c.Participants = participants

	c.Version = d.PopInt()
	return errors.Wrap(d.Err(), "version")
}

// chatParticipantsForbidden#8763d3e1 flags:# chat_id:long ...
type ChatParticipantsForbidden struct {
	ChatID int64
}

func (*ChatParticipantsForbidden) CRC() uint32 {
	return CrcChatParticipantsForbidden
}

func (*ChatParticipantsForbidden) ImplementsChatParticipants() {}

func (c *ChatParticipantsForbidden) UnmarshalTL(d *tl.Decoder) error {
	d.PopFlags() // self_participant not decoded
	c.ChatID = d.PopLong()
	return d.Err()
}

// ChatParticipantsUnknown stands in where a channel carries no inline
// participant list. It never appears on the wire, so an unknown tag still
// fails the union dispatch.
type ChatParticipantsUnknown struct{}

func (*ChatParticipantsUnknown) CRC() uint32 {
	return 0
}

func (*ChatParticipantsUnknown) ImplementsChatParticipants() {}

func (*ChatParticipantsUnknown) UnmarshalTL(*tl.Decoder) error {
	return nil
}

// ChatParticipant is a single member of a basic group.
type ChatParticipant struct {
	UserID int64
}

func popChatParticipant(d *tl.Decoder) (ChatParticipant, error) {
	userID := d.PopLong()
	return ChatParticipant{UserID: userID}, d.Err()
}

// ExportedChatInvite is acknowledged but not parsed yet.
type ExportedChatInvite struct {
	Link string
}

// InputGroupCall is acknowledged but not parsed yet.
type InputGroupCall struct {
	ID         int64
	AccessHash int64
}

// ChatReactions is acknowledged but not parsed yet.
type ChatReactions struct{}

// BotInfo entries are counted on the wire, bodies are not parsed yet.
type BotInfo struct {
	Description string
}

func decodeBotInfoVector(d *tl.Decoder) ([]BotInfo, error) {
	return tl.DecodeVector(d, MaxParticipants, func(*tl.Decoder) (BotInfo, error) {
		return BotInfo{}, nil
	})
}
