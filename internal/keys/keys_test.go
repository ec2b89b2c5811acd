// Copyright (c) 2024 Wiregram Authors

package keys_test

import (
	"bytes"
	"crypto/rsa"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregram/wiregram/internal/keys"
)

var (
	testKeyOnce sync.Once
	testKey     *keys.PrivateKey
)

// testPrivateKey generates one 2048-bit key and shares it across tests,
// generation is the slow part.
func testPrivateKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := keys.Generate(2048)
		if err != nil {
			panic(err)
		}
		testKey = key
	})
	return testKey
}

func TestGenerateKeySizes(t *testing.T) {
	key := testPrivateKey(t)
	assert.Equal(t, 2048, key.Bits())

	public := key.Public()
	assert.Equal(t, 2048, public.Bits())
	assert.Equal(t, 256, public.Size())
}

func TestGenerateRejectsWeakKey(t *testing.T) {
	_, err := keys.Generate(1024)

	var sizeErr *keys.ErrInvalidKeySize
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 1024, sizeErr.Bits)
	assert.Contains(t, err.Error(), "1024")
}

func TestEncryptOAEPRoundTrip(t *testing.T) {
	key := testPrivateKey(t)
	public := key.Public()

	plaintext := bytes.Repeat([]byte{0xab}, 150)
	ciphertext, err := public.EncryptOAEP(plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, 256)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := key.DecryptOAEP(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptOAEPIsRandomized(t *testing.T) {
	public := testPrivateKey(t).Public()

	first, err := public.EncryptOAEP([]byte("same input"))
	require.NoError(t, err)
	second, err := public.EncryptOAEP([]byte("same input"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEncryptOAEPDataTooLarge(t *testing.T) {
	public := testPrivateKey(t).Public()

	_, err := public.EncryptOAEP(make([]byte, 215))

	var tooLarge *keys.ErrDataTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 215, tooLarge.Size)
	assert.Equal(t, 214, tooLarge.Max)
}

func TestEncryptOAEPWrongKeySize(t *testing.T) {
	// a synthetic 4096-bit modulus, the size gate fires before any
	// crypto touches the key
	n := new(big.Int).Lsh(big.NewInt(1), 4095)
	n.Add(n, big.NewInt(1))
	public := keys.NewPublicKey(&rsa.PublicKey{N: n, E: 65537})

	_, err := public.EncryptOAEP([]byte("data"))

	var sizeErr *keys.ErrInvalidKeySize
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 4096, sizeErr.Bits)
}

func TestEncryptPKCS1v15RoundTrip(t *testing.T) {
	key := testPrivateKey(t)
	public := key.Public()

	plaintext := []byte("legacy padding path")
	ciphertext, err := public.EncryptPKCS1v15(plaintext)
	require.NoError(t, err)

	decrypted, err := key.DecryptPKCS1v15(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptRaw(t *testing.T) {
	public := testPrivateKey(t).Public()

	block := make([]byte, 256)
	block[0] = 0x01 // keep m well under the modulus
	block[255] = 0xff

	first, err := public.EncryptRaw(block)
	require.NoError(t, err)
	assert.Len(t, first, 256)

	// no padding means no randomness
	second, err := public.EncryptRaw(block)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncryptRawWrongBlockSize(t *testing.T) {
	public := testPrivateKey(t).Public()

	_, err := public.EncryptRaw(make([]byte, 255))

	var tooLarge *keys.ErrDataTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 255, tooLarge.Size)
	assert.Equal(t, 256, tooLarge.Max)
}

func TestEncryptRawOutOfRange(t *testing.T) {
	public := testPrivateKey(t).Public()

	_, err := public.EncryptRaw(bytes.Repeat([]byte{0xff}, 256))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestVerifyNotImplemented(t *testing.T) {
	public := testPrivateKey(t).Public()

	err := public.Verify([]byte("sig"), []byte("data"))
	assert.ErrorIs(t, err, keys.ErrNotImplemented)
}

func TestPublicKeyPEMRoundTrip(t *testing.T) {
	public := testPrivateKey(t).Public()

	parsed, err := keys.PublicKeyFromPEM(public.ToPEM())
	require.NoError(t, err)

	assert.Equal(t, public.Bits(), parsed.Bits())
	assert.Equal(t, public.Fingerprint(), parsed.Fingerprint())
}

func TestPublicKeyDERRoundTrip(t *testing.T) {
	public := testPrivateKey(t).Public()

	der, err := public.ToDER()
	require.NoError(t, err)

	parsed, err := keys.PublicKeyFromDER(der)
	require.NoError(t, err)
	assert.Equal(t, public.Fingerprint(), parsed.Fingerprint())
}

func TestPrivateKeyPEMRoundTrip(t *testing.T) {
	key := testPrivateKey(t)

	encoded, err := key.ToPEM()
	require.NoError(t, err)

	parsed, err := keys.PrivateKeyFromPEM(encoded)
	require.NoError(t, err)
	assert.Equal(t, key.Bits(), parsed.Bits())
	assert.Equal(t, key.Public().Fingerprint(), parsed.Public().Fingerprint())
}

func TestPrivateKeyDERRoundTrip(t *testing.T) {
	key := testPrivateKey(t)

	der, err := key.ToDER()
	require.NoError(t, err)

	parsed, err := keys.PrivateKeyFromDER(der)
	require.NoError(t, err)
	assert.Equal(t, key.Bits(), parsed.Bits())
	assert.Equal(t, key.Public().Fingerprint(), parsed.Public().Fingerprint())
}

func TestPublicKeyFromPEMGarbage(t *testing.T) {
	_, err := keys.PublicKeyFromPEM([]byte("not a pem block"))
	assert.Error(t, err)
}

func TestFingerprintIsStable(t *testing.T) {
	key := testPrivateKey(t)

	first := key.Public().Fingerprint()
	second := key.Public().Fingerprint()
	assert.Equal(t, first, second)
	assert.NotZero(t, first)
}
