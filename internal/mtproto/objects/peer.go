// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const (
	CrcPeerUser    uint32 = 0x59511722
	CrcPeerChat    uint32 = 0x36c6019a
	CrcPeerChannel uint32 = 0xa2a5371e
)

// Peer points at a user, a basic group or a channel.
//
// peerUser#59511722 user_id:long = Peer;
// peerChat#36c6019a chat_id:long = Peer;
// peerChannel#a2a5371e channel_id:long = Peer;
type Peer interface {
	tl.Object
	tl.Unmarshaler
	ImplementsPeer()
}

var peerCrcs = []uint32{CrcPeerUser, CrcPeerChat, CrcPeerChannel}

var peerVariants = map[uint32]func() Peer{
	CrcPeerUser:    func() Peer { return &PeerUser{} },
	CrcPeerChat:    func() Peer { return &PeerChat{} },
	CrcPeerChannel: func() Peer { return &PeerChannel{} },
}

func DecodePeer(d *tl.Decoder) (Peer, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := peerVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "Peer", Got: crc, Want: peerCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

type PeerUser struct {
	UserID int64
}

func (*PeerUser) CRC() uint32 {
	return CrcPeerUser
}

func (*PeerUser) ImplementsPeer() {}

func (p *PeerUser) UnmarshalTL(d *tl.Decoder) error {
	p.UserID = d.PopLong()
	return d.Err()
}

type PeerChat struct {
	ChatID int64
}

func (*PeerChat) CRC() uint32 {
	return CrcPeerChat
}

func (*PeerChat) ImplementsPeer() {}

func (p *PeerChat) UnmarshalTL(d *tl.Decoder) error {
	p.ChatID = d.PopLong()
	return d.Err()
}

type PeerChannel struct {
	ChannelID int64
}

func (*PeerChannel) CRC() uint32 {
	return CrcPeerChannel
}

func (*PeerChannel) ImplementsPeer() {}

func (p *PeerChannel) UnmarshalTL(d *tl.Decoder) error {
	p.ChannelID = d.PopLong()
	return d.Err()
}
