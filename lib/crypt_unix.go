//go:build !windows

package lib

import (
	unixcrypt "github.com/amoghe/go-crypt"
)

// cryptPlatform hashes with the system crypt(3); the salt selects the
// scheme ("$6$..." for SHA-512, a two-character salt for DES).
func cryptPlatform(password, salt string) (string, error) {
	return unixcrypt.Crypt(password, salt)
}
