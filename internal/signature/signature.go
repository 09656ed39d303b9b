// Package signature verifies the HMAC-SHA256 signatures GitHub sends in the
// X-Hub-Signature-256 header of webhook deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/ghreceiver/internal/logfields"
)

// Prefix is prepended by GitHub to the hex encoded HMAC-SHA256 digest.
const Prefix = "sha256="

const loggerName = "signature"

// Sign returns the header value GitHub would send for body signed with secret.
func Sign(body []byte, secret string) string {
	return Prefix + hexDigest(body, secret)
}

func hexDigest(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	// hash.Hash.Write never returns an error
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify returns true if signatureHeader is the HMAC-SHA256 of body keyed with
// secret.
// signatureHeader is either "sha256=<hex>" or the bare hex digest. A header
// carrying any other algorithm prefix, malformed hex or a digest of the wrong
// length is rejected.
// Verify never returns true when an error happens during verification, an
// empty secret or signature always fails.
func Verify(body []byte, signatureHeader, secret string) (verified bool) {
	logger := zap.L().Named(loggerName)

	defer func() {
		if r := recover(); r != nil {
			logger.Error(
				"verifying signature panicked, rejecting signature",
				logfields.Event("signature_verification_panicked"),
				zap.Any("panic", r),
			)
			verified = false
		}
	}()

	if secret == "" || signatureHeader == "" {
		return false
	}

	hexSig, ok := normalize(signatureHeader)
	if !ok {
		logger.Debug(
			"signature has an unsupported algorithm prefix",
			logfields.Event("signature_unsupported_algorithm"),
		)
		return false
	}

	if _, err := hex.DecodeString(hexSig); err != nil {
		logger.Debug(
			"signature is not hex encoded",
			logfields.Event("signature_malformed_hex"),
			zap.Error(err),
		)
		return false
	}

	expected := hexDigest(body, secret)

	// GitHub sends lowercase hex, the comparison is done on the encoded form
	// and is case-sensitive.
	if len(hexSig) != len(expected) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(hexSig), []byte(expected)) == 1
}

// normalize strips the sha256= prefix.
// It returns false if the signature starts with a different algorithm prefix.
func normalize(sig string) (string, bool) {
	if strings.HasPrefix(sig, Prefix) {
		return strings.TrimPrefix(sig, Prefix), true
	}

	if strings.Contains(sig, "=") {
		return "", false
	}

	return sig, true
}
