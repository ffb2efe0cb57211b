package lib

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	gocrypt "github.com/sergeymakinen/go-crypt"
	_ "github.com/sergeymakinen/go-crypt/des"
	_ "github.com/sergeymakinen/go-crypt/sha512"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/ripemd160"

	"bliks/types"
)

// ============================================================================
// CRYPTO AND ENCODING BUILTINS
// ============================================================================

// runHash stores the hex digest of a string. The algorithm argument is a
// fixed parameter, so the set of digests used by a program is known at
// resolve time.
func runHash(ctx *Context, args []types.Value) error {
	algo := types.ToString(args[1])
	var h hash.Hash
	switch algo {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	case "ripemd160":
		h = ripemd160.New()
	default:
		return fmt.Errorf("unknown hash algorithm '%s'", algo)
	}
	h.Write([]byte(types.ToString(args[2])))
	return ctx.Store(args[0].(float64), hex.EncodeToString(h.Sum(nil)))
}

func runEncode64(ctx *Context, args []types.Value) error {
	enc := base64.StdEncoding.EncodeToString([]byte(types.ToString(args[1])))
	return ctx.Store(args[0].(float64), enc)
}

func runDecode64(ctx *Context, args []types.Value) error {
	dec, err := base64.StdEncoding.DecodeString(types.ToString(args[1]))
	if err != nil {
		return errors.New("invalid base64 input")
	}
	return ctx.Store(args[0].(float64), string(dec))
}

// runBcrypt hashes a password with a random salt; the result differs
// between runs by design.
func runBcrypt(ctx *Context, args []types.Value) error {
	h, err := bcrypt.GenerateFromPassword([]byte(types.ToString(args[1])), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt failed: %v", err)
	}
	return ctx.Store(args[0].(float64), string(h))
}

func runBcryptcheck(ctx *Context, args []types.Value) error {
	err := bcrypt.CompareHashAndPassword([]byte(types.ToString(args[1])), []byte(types.ToString(args[2])))
	return ctx.Store(args[0].(float64), boolValue(err == nil))
}

// runCrypt produces a crypt(3) hash; the implementation is platform
// specific (see crypt_unix.go and crypt_windows.go).
func runCrypt(ctx *Context, args []types.Value) error {
	h, err := cryptPlatform(types.ToString(args[1]), types.ToString(args[2]))
	if err != nil {
		return err
	}
	return ctx.Store(args[0].(float64), h)
}

// runCheckpass verifies a crypt-style hash against a password using a
// pure Go implementation, so checking works on every platform even
// where generation does not.
func runCheckpass(ctx *Context, args []types.Value) error {
	err := gocrypt.Check(types.ToString(args[1]), types.ToString(args[2]))
	return ctx.Store(args[0].(float64), boolValue(err == nil))
}
