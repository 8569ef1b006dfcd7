package crypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "1e99423a4ed27608a15a2616a2b0e9e52ced330ac530edcc32c8ffc6a526aedd"

func TestPayloadFormat(t *testing.T) {
	payload := Payload("0xA", "0xB", "12.50")
	assert.Equal(t, "0xA:0xB:12.50", payload)

	// The amount string is embedded untouched, trailing zeros included.
	assert.Equal(t, "a:b:1.00", Payload("a", "b", "1.00"))
}

func TestDigestKnownVectors(t *testing.T) {
	vectors := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, v := range vectors {
		d := Digest(v.in)
		if got := hex.EncodeToString(d[:]); got != v.want {
			t.Errorf("Digest(%q) = %s, want %s", v.in, got, v.want)
		}
	}
}

func TestSignDeterministic(t *testing.T) {
	digest := Digest(Payload("0xA", "0xB", "12.50"))

	sig1, err := Sign(digest, testKeyHex)
	require.NoError(t, err)
	sig2, err := Sign(digest, testKeyHex)
	require.NoError(t, err)

	assert.Equal(t, sig1, sig2, "RFC6979 signing must be byte-identical for identical inputs")
}

func TestSignSelfVerify(t *testing.T) {
	digest := Digest(Payload("0xA", "0xB", "0.000001"))

	sig, err := Sign(digest, testKeyHex)
	require.NoError(t, err)

	pub, err := PublicKeyFromPrivate(testKeyHex)
	require.NoError(t, err)
	assert.True(t, Verify(digest, sig, pub))

	// A different digest must not verify against the same signature.
	other := Digest(Payload("0xA", "0xB", "0.000002"))
	assert.False(t, Verify(other, sig, pub))
}

func TestSignRejectsMalformedKeys(t *testing.T) {
	digest := Digest("payload")

	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"non-hex", strings.Repeat("zz", 32)},
		{"short", "abcd"},
		{"long", strings.Repeat("ab", 33)},
		{"zero scalar", strings.Repeat("00", 32)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Sign(digest, tc.key)
			assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
		})
	}
}

func TestVerifyRejectsGarbageSignature(t *testing.T) {
	digest := Digest("payload")
	pub, err := PublicKeyFromPrivate(testKeyHex)
	require.NoError(t, err)

	assert.False(t, Verify(digest, "not-hex", pub))
	assert.False(t, Verify(digest, "deadbeef", pub))
}

func TestValidateKeyHex(t *testing.T) {
	assert.NoError(t, ValidateKeyHex(testKeyHex))
	assert.Error(t, ValidateKeyHex("abc"))
}
