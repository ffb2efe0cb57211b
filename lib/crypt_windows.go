//go:build windows

package lib

import "errors"

// crypt(3) has no Windows counterpart; checkpass remains available for
// verifying hashes produced elsewhere.
func cryptPlatform(password, salt string) (string, error) {
	return "", errors.New("crypt is not supported on this platform")
}
