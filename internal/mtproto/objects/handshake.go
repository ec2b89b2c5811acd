// Copyright (c) 2024 Wiregram Authors

package objects

import (
	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

const (
	CrcResPQ              uint32 = 0x05162463
	CrcPQInnerData        uint32 = 0x83c95aec
	CrcServerDHParamsOk   uint32 = 0xd0e8075c
	CrcServerDHParamsFail uint32 = 0x79cb045d
)

// ResPQ is the server's opening answer of the auth handshake: the nonces,
// the pq challenge and the fingerprints of the RSA keys it will accept.
//
// resPQ#05162463 nonce:int128 server_nonce:int128 pq:string
//
//	server_public_key_fingerprints:Vector<long> = ResPQ;
type ResPQ struct {
	Nonce        *tl.Int128
	ServerNonce  *tl.Int128
	Pq           []byte
	Fingerprints []int64
}

func (*ResPQ) CRC() uint32 {
	return CrcResPQ
}

func DecodeResPQ(d *tl.Decoder) (*ResPQ, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}
	if crc != CrcResPQ {
		return nil, &tl.ErrUnknownConstructor{Type: "ResPQ", Got: crc, Want: []uint32{CrcResPQ}}
	}

	res := &ResPQ{}
	if err := res.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *ResPQ) UnmarshalTL(d *tl.Decoder) error {
	r.Nonce = d.PopInt128()
	r.ServerNonce = d.PopInt128()
	r.Pq = d.PopMessage()
	if err := d.Err(); err != nil {
		return err
	}

	fingerprints, err := tl.DecodeVector(d, MaxFingerprints, tl.PopLongElem)
	if err != nil {
		return errors.Wrap(err, "fingerprints")
	}
	r.Fingerprints = fingerprints

	return nil
}

// PQInnerData is the client's proof of work, built locally and sent only
// inside the RSA envelope. Outbound, so it encodes through tl.Marshal.
//
// p_q_inner_data#83c95aec pq:string p:string q:string nonce:int128
//
//	server_nonce:int128 new_nonce:int256 = P_Q_inner_data;
type PQInnerData struct {
	Pq          []byte
	P           []byte
	Q           []byte
	Nonce       *tl.Int128
	ServerNonce *tl.Int128
	NewNonce    *tl.Int256
}

func (*PQInnerData) CRC() uint32 {
	return CrcPQInnerData
}

// ServerDHParams is the server's answer to the encrypted inner data.
//
// server_DH_params_ok#d0e8075c nonce:int128 server_nonce:int128
//
//	encrypted_answer:string = Server_DH_Params;
//
// server_DH_params_fail#79cb045d nonce:int128 server_nonce:int128
//
//	new_nonce_hash:int128 = Server_DH_Params;
type ServerDHParams interface {
	tl.Object
	tl.Unmarshaler
	ImplementsServerDHParams()
}

var serverDHParamsCrcs = []uint32{CrcServerDHParamsOk, CrcServerDHParamsFail}

var serverDHParamsVariants = map[uint32]func() ServerDHParams{
	CrcServerDHParamsOk:   func() ServerDHParams { return &ServerDHParamsOk{} },
	CrcServerDHParamsFail: func() ServerDHParams { return &ServerDHParamsFail{} },
}

func DecodeServerDHParams(d *tl.Decoder) (ServerDHParams, error) {
	crc, err := popCRC(d)
	if err != nil {
		return nil, err
	}

	newVariant, ok := serverDHParamsVariants[crc]
	if !ok {
		return nil, &tl.ErrUnknownConstructor{Type: "ServerDHParams", Got: crc, Want: serverDHParamsCrcs}
	}

	obj := newVariant()
	if err := obj.UnmarshalTL(d); err != nil {
		return nil, err
	}

	return obj, nil
}

type ServerDHParamsOk struct {
	Nonce           *tl.Int128
	ServerNonce     *tl.Int128
	EncryptedAnswer []byte
}

func (*ServerDHParamsOk) CRC() uint32 {
	return CrcServerDHParamsOk
}

func (*ServerDHParamsOk) ImplementsServerDHParams() {}

func (s *ServerDHParamsOk) UnmarshalTL(d *tl.Decoder) error {
	s.Nonce = d.PopInt128()
	s.ServerNonce = d.PopInt128()
	s.EncryptedAnswer = d.PopMessage()
	return d.Err()
}

type ServerDHParamsFail struct {
	Nonce        *tl.Int128
	ServerNonce  *tl.Int128
	NewNonceHash *tl.Int128
}

func (*ServerDHParamsFail) CRC() uint32 {
	return CrcServerDHParamsFail
}

func (*ServerDHParamsFail) ImplementsServerDHParams() {}

func (s *ServerDHParamsFail) UnmarshalTL(d *tl.Decoder) error {
	s.Nonce = d.PopInt128()
	s.ServerNonce = d.PopInt128()
	s.NewNonceHash = d.PopInt128()
	return d.Err()
}
