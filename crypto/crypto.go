package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ErrInvalidKeyMaterial is returned for malformed private keys (non-hex,
// wrong length, or the zero scalar). Signing never substitutes a default
// key.
var ErrInvalidKeyMaterial = errors.New("crypto: invalid private key material")

// privKeyLen is the raw secp256k1 scalar length in bytes.
const privKeyLen = 32

// PrivKeyHexLen is the expected hex length of a private key as entered by
// the user.
const PrivKeyHexLen = 2 * privKeyLen

// Payload builds the canonical string that is hashed and signed for a
// transfer. The colon-joined triple is a wire contract with the ledger's
// verifier and must stay byte-for-byte stable.
func Payload(sender, receiver, amount string) string {
	return fmt.Sprintf("%s:%s:%s", sender, receiver, amount)
}

// Digest computes the SHA-256 digest of a payload. Pure and deterministic.
func Digest(payload string) [sha256.Size]byte {
	return sha256.Sum256([]byte(payload))
}

// parsePrivKey decodes and validates raw hex key material.
func parsePrivKey(privKeyHex string) (*secp256k1.PrivateKey, error) {
	raw, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, ErrInvalidKeyMaterial
	}
	if len(raw) != privKeyLen {
		return nil, ErrInvalidKeyMaterial
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	if priv.Key.IsZero() {
		return nil, ErrInvalidKeyMaterial
	}
	return priv, nil
}

// Sign produces a DER-encoded ECDSA signature over digest using the
// secp256k1 curve, hex-represented. Nonce derivation is RFC6979, so
// identical (digest, key) inputs always yield byte-identical signatures.
func Sign(digest [sha256.Size]byte, privKeyHex string) (string, error) {
	priv, err := parsePrivKey(privKeyHex)
	if err != nil {
		return "", err
	}
	defer priv.Zero()

	sig := secpecdsa.Sign(priv, digest[:])
	return hex.EncodeToString(sig.Serialize()), nil
}

// Verify checks a hex DER signature over digest against a public key.
func Verify(digest [sha256.Size]byte, sigHex string, pub *secp256k1.PublicKey) bool {
	raw, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}
	sig, err := secpecdsa.ParseDERSignature(raw)
	if err != nil {
		return false
	}
	return sig.Verify(digest[:], pub)
}

// PublicKeyFromPrivate derives the public key for self-verification before
// submission.
func PublicKeyFromPrivate(privKeyHex string) (*secp256k1.PublicKey, error) {
	priv, err := parsePrivKey(privKeyHex)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	return priv.PubKey(), nil
}

// ValidateKeyHex reports whether key material has the expected shape
// without deriving anything from it. Used by the pre-confirmation form
// check so malformed keys fail before the PIN gate.
func ValidateKeyHex(privKeyHex string) error {
	priv, err := parsePrivKey(privKeyHex)
	if err != nil {
		return err
	}
	priv.Zero()
	return nil
}
