// Copyright (c) 2024 Wiregram Authors

// Package keys wraps crypto/rsa with the key handling the auth handshake
// needs: MTProto fingerprints, the three encryption paddings and PEM/DER
// loading in the formats servers and config files actually use.
package keys

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"math/big"

	"github.com/pkg/errors"
	"github.com/xelaj/go-dry"

	"github.com/wiregram/wiregram/internal/encoding/tl"
)

// oaepOverhead is the fixed cost of OAEP padding on a 2048-bit key,
// matching the server-side bound rather than the SHA-256 minimum.
const oaepOverhead = 42

const bitsInByte = 8

// PublicKey is an RSA public key with its MTProto fingerprint computed
// once up front.
type PublicKey struct {
	key         *rsa.PublicKey
	fingerprint int64
	bits        int
}

func NewPublicKey(key *rsa.PublicKey) *PublicKey {
	return &PublicKey{
		key:         key,
		fingerprint: fingerprintOf(key),
		bits:        key.Size() * bitsInByte,
	}
}

// fingerprintOf derives the fingerprint the way servers expect: n and e
// serialized as TL bytes with no constructor, sha1 over the buffer, bytes
// 12..20 read as a little-endian int64.
//
// https://core.telegram.org/mtproto/auth_key
func fingerprintOf(key *rsa.PublicKey) int64 {
	exponent := big.NewInt(int64(key.E))

	buf := bytes.NewBuffer(nil)
	e := tl.NewEncoder(buf)
	e.PutMessage(key.N.Bytes())
	e.PutMessage(exponent.Bytes())

	hash := sha1.Sum(buf.Bytes())
	return int64(binary.LittleEndian.Uint64(hash[12:20]))
}

func (k *PublicKey) Fingerprint() int64 {
	return k.fingerprint
}

func (k *PublicKey) Bits() int {
	return k.bits
}

// Size returns the key size in bytes.
func (k *PublicKey) Size() int {
	return k.bits / bitsInByte
}

// EncryptOAEP encrypts with OAEP(SHA-256). The handshake path, so the key
// must be exactly 2048 bits.
func (k *PublicKey) EncryptOAEP(data []byte) ([]byte, error) {
	if k.bits != 2048 {
		return nil, &ErrInvalidKeySize{Bits: k.bits}
	}

	max := k.Size() - oaepOverhead
	if len(data) > max {
		return nil, &ErrDataTooLarge{Size: len(data), Max: max}
	}

	encrypted, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, k.key, data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt oaep")
	}
	return encrypted, nil
}

// EncryptPKCS1v15 encrypts with the legacy v1.5 padding.
func (k *PublicKey) EncryptPKCS1v15(data []byte) ([]byte, error) {
	encrypted, err := rsa.EncryptPKCS1v15(rand.Reader, k.key, data)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt pkcs1v15")
	}
	return encrypted, nil
}

// EncryptRaw is textbook RSA on a full block, no padding. The handshake
// builds its own 255-byte hash-and-message block and encrypts it whole.
func (k *PublicKey) EncryptRaw(data []byte) ([]byte, error) {
	if len(data) != k.Size() {
		return nil, &ErrDataTooLarge{Size: len(data), Max: k.Size()}
	}

	m := new(big.Int).SetBytes(data)
	if m.Cmp(k.key.N) >= 0 {
		return nil, errors.New("message representative out of range")
	}

	c := new(big.Int).Exp(m, big.NewInt(int64(k.key.E)), k.key.N)

	out := make([]byte, k.Size())
	c.FillBytes(out)
	return out, nil
}

// Verify is not needed by the handshake and stays unimplemented.
func (k *PublicKey) Verify(signature, data []byte) error {
	return ErrNotImplemented
}

func (k *PublicKey) ToPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(k.key),
	})
}

func (k *PublicKey) ToDER() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(k.key)
	if err != nil {
		return nil, errors.Wrap(err, "encode der")
	}
	return der, nil
}

// PublicKeyFromPEM parses a single PEM block. PKCS#1 first, that is what
// MTProto servers publish, then PKIX.
func PublicKeyFromPEM(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no pem block found")
	}
	return PublicKeyFromDER(block.Bytes)
}

func PublicKeyFromDER(der []byte) (*PublicKey, error) {
	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return NewPublicKey(key), nil
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an rsa public key")
	}
	return NewPublicKey(key), nil
}

// ReadFromFile loads every PEM block in the file as a public key.
func ReadFromFile(path string) ([]*PublicKey, error) {
	if !dry.FileExists(path) {
		return nil, errors.Errorf("file %s not found", path)
	}

	data, err := dry.FileGetBytes(path)
	if err != nil {
		return nil, err
	}

	keys := make([]*PublicKey, 0)
	for {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}

		key, err := PublicKeyFromDER(block.Bytes)
		if err != nil {
			const offset = 1 // counting from zero
			return nil, errors.Wrapf(err, "failed to parse key at offset %d", len(data)-len(rest)+offset)
		}

		keys = append(keys, key)
		data = rest
	}

	return keys, nil
}

// PrivateKey is the decrypting side, used by tests and local tooling
// rather than the client path.
type PrivateKey struct {
	key  *rsa.PrivateKey
	bits int
}

func NewPrivateKey(key *rsa.PrivateKey) *PrivateKey {
	return &PrivateKey{key: key, bits: key.Size() * bitsInByte}
}

// Generate makes a fresh key. Only the two real-world sizes are allowed.
func Generate(bits int) (*PrivateKey, error) {
	if bits != 2048 && bits != 4096 {
		return nil, &ErrInvalidKeySize{Bits: bits}
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrap(err, "key generation failed")
	}
	return NewPrivateKey(key), nil
}

func (k *PrivateKey) Bits() int {
	return k.bits
}

func (k *PrivateKey) Public() *PublicKey {
	return NewPublicKey(&k.key.PublicKey)
}

func (k *PrivateKey) DecryptOAEP(ciphertext []byte) ([]byte, error) {
	decrypted, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, k.key, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt oaep")
	}
	return decrypted, nil
}

func (k *PrivateKey) DecryptPKCS1v15(ciphertext []byte) ([]byte, error) {
	decrypted, err := rsa.DecryptPKCS1v15(rand.Reader, k.key, ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt pkcs1v15")
	}
	return decrypted, nil
}

func (k *PrivateKey) ToPEM() ([]byte, error) {
	der, err := k.ToDER()
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

func (k *PrivateKey) ToDER() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(k.key)
	if err != nil {
		return nil, errors.Wrap(err, "encode pkcs8")
	}
	return der, nil
}

// PrivateKeyFromPEM parses a private key PEM block, PKCS#1 then PKCS#8.
func PrivateKeyFromPEM(data []byte) (*PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no pem block found")
	}
	return PrivateKeyFromDER(block.Bytes)
}

func PrivateKeyFromDER(der []byte) (*PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return NewPrivateKey(key), nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an rsa private key")
	}
	return NewPrivateKey(key), nil
}
