package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// HashBytes returns the hash of bytes as a hex string using the specified algorithm.
// Supported algorithms: "sha256" and "blake3".
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		return hashBytesSha256(data), nil
	case HashAlgoBLAKE3:
		return hashBytesBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// DigestSchemeString returns the digest of data prefixed with its scheme,
// e.g. "sha256:9f86d0...". This is the form carried in payload-digest
// record fields.
func DigestSchemeString(data []byte, algo HashAlgo) (string, error) {
	digest, err := HashBytes(data, algo)
	if err != nil {
		return "", err
	}
	return string(algo) + ":" + digest, nil
}

// SchemeOf extracts the scheme prefix of a digest-scheme string, or ""
// when the string carries no scheme.
func SchemeOf(digestScheme string) string {
	i := strings.IndexByte(digestScheme, ':')
	if i < 0 {
		return ""
	}
	return digestScheme[:i]
}

func hashBytesSha256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashBytesBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
