package utils

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var ErrPasswordMismatch = errors.New("password does not match")

// argonConfig is a var so tests can swap in a cheaper memory cost.
var argonConfig = argon2.DefaultConfig()

func HashPassword(password string) (string, error) {
	encoded, err := argonConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// CheckPassword returns ErrPasswordMismatch for a wrong password and any
// decoding error for a malformed hash.
func CheckPassword(encodedHash, password string) error {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return err
	}
	if !ok {
		return ErrPasswordMismatch
	}
	return nil
}
