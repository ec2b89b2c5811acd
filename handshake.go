// Copyright (c) 2024 Wiregram Authors

// Package wiregram implements the client side of the MTProto key
// exchange up to the RSA envelope: decoding the server's challenge,
// splitting pq and encrypting the proof of work against a trusted key.
//
// https://core.telegram.org/mtproto/auth_key
package wiregram

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/wiregram/wiregram/internal/encoding/tl"
	"github.com/wiregram/wiregram/internal/keys"
	"github.com/wiregram/wiregram/internal/math"
	"github.com/wiregram/wiregram/internal/mtproto/objects"
	"github.com/wiregram/wiregram/internal/utils"
)

// rsaBlockLen is the block a 2048-bit key encrypts; the hash-and-message
// body is one byte shorter so the representative stays under the modulus.
const (
	rsaBlockLen = 256
	hashMsgLen  = 255
)

// Handshake drives one key exchange attempt. Not safe for concurrent use,
// each connection runs its own.
type Handshake struct {
	trusted  *keys.Store
	log      *utils.Logger
	nonce    *tl.Int128
	newNonce *tl.Int256
}

func NewHandshake(trusted *keys.Store) *Handshake {
	return &Handshake{
		trusted:  trusted,
		log:      utils.NewLogger("handshake"),
		nonce:    tl.RandomInt128(),
		newNonce: tl.RandomInt256(),
	}
}

// Nonce is the client nonce sent with req_pq, kept to match the server's
// answers against.
func (h *Handshake) Nonce() *tl.Int128 {
	return h.nonce
}

// ReqDHParams is everything req_DH_params carries to the server after the
// challenge is solved.
type ReqDHParams struct {
	Nonce                *tl.Int128
	ServerNonce          *tl.Int128
	P                    []byte
	Q                    []byte
	PublicKeyFingerprint int64
	EncryptedData        []byte
}

// HandleResPQ consumes the server's resPQ answer: verifies the nonce,
// picks a trusted key by fingerprint, factorizes pq and seals the inner
// data in the RSA envelope.
func (h *Handshake) HandleResPQ(data []byte) (*ReqDHParams, error) {
	res, err := objects.DecodeResPQ(tl.NewDecoderBytes(data))
	if err != nil {
		h.log.Debug("resPQ decode failed: ", err)
		return nil, errors.Wrap(err, "decode resPQ")
	}

	if h.nonce.Cmp(res.Nonce.Int) != 0 {
		return nil, errors.New("resPQ: nonce mismatch")
	}

	key, err := h.trusted.Match(res.Fingerprints)
	if err != nil {
		return nil, errors.Wrap(err, "resPQ")
	}

	// real servers send pq as 8 bytes, anything longer is hostile
	if len(res.Pq) > tl.LongLen {
		return nil, errors.Errorf("resPQ: pq too long: %v bytes", len(res.Pq))
	}

	pq := new(big.Int).SetBytes(res.Pq)
	p, q := math.Factorize(pq)
	if p == nil || q == nil {
		return nil, errors.Errorf("factorize: no factors for pq %v", pq)
	}

	inner, err := tl.Marshal(&objects.PQInnerData{
		Pq:          res.Pq,
		P:           p.Bytes(),
		Q:           q.Bytes(),
		Nonce:       h.nonce,
		ServerNonce: res.ServerNonce,
		NewNonce:    h.newNonce,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal inner data")
	}

	encrypted, err := sealInnerData(key, inner)
	if err != nil {
		return nil, err
	}

	h.log.Debug("resPQ solved, key fingerprint ", key.Fingerprint())

	return &ReqDHParams{
		Nonce:                h.nonce,
		ServerNonce:          res.ServerNonce,
		P:                    p.Bytes(),
		Q:                    q.Bytes(),
		PublicKeyFingerprint: key.Fingerprint(),
		EncryptedData:        encrypted,
	}, nil
}

// sealInnerData builds the 255-byte hash-and-message block, sha1 of the
// message first, random fill after, and raw-RSA encrypts it as one block.
func sealInnerData(key *keys.PublicKey, message []byte) ([]byte, error) {
	if len(message)+utils.Sha1Len > hashMsgLen {
		return nil, errors.Errorf("inner data too long: %v bytes", len(message))
	}

	hashAndMsg := make([]byte, hashMsgLen)
	n := copy(hashAndMsg, utils.Sha1Byte(message))
	n += copy(hashAndMsg[n:], message)
	copy(hashAndMsg[n:], utils.RandomBytes(hashMsgLen-n))

	block := make([]byte, rsaBlockLen)
	copy(block[rsaBlockLen-hashMsgLen:], hashAndMsg)

	encrypted, err := key.EncryptRaw(block)
	if err != nil {
		return nil, errors.Wrap(err, "seal inner data")
	}
	return encrypted, nil
}

// HandleServerDHParams consumes the answer to req_DH_params. A fail
// constructor or a nonce mismatch aborts the attempt.
func (h *Handshake) HandleServerDHParams(serverNonce *tl.Int128, data []byte) (*objects.ServerDHParamsOk, error) {
	params, err := objects.DecodeServerDHParams(tl.NewDecoderBytes(data))
	if err != nil {
		h.log.Debug("server DH params decode failed: ", err)
		return nil, errors.Wrap(err, "decode server DH params")
	}

	ok, isOk := params.(*objects.ServerDHParamsOk)
	if !isOk {
		return nil, errors.New("server rejected DH params")
	}

	if h.nonce.Cmp(ok.Nonce.Int) != 0 {
		return nil, errors.New("server DH params: nonce mismatch")
	}
	if serverNonce.Cmp(ok.ServerNonce.Int) != 0 {
		return nil, errors.New("server DH params: server nonce mismatch")
	}

	return ok, nil
}
