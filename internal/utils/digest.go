package utils

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// CalculateChecksum calculates a specific checksum for data
func CalculateChecksum(data []byte, hashType string) (string, error) {
	var h hash.Hash

	switch hashType {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		h = sha256.New()
	}

	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum checks data against an "algo:hexdigest" specification, as
// published next to pkg_summary files on mirrors.
func VerifyChecksum(data []byte, spec string) error {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid checksum spec %q, want algo:hexdigest", spec)
	}

	got, err := CalculateChecksum(data, parts[0])
	if err != nil {
		return err
	}

	if !strings.EqualFold(got, parts[1]) {
		return fmt.Errorf("%s checksum mismatch: got %s, want %s", parts[0], got, parts[1])
	}
	return nil
}
