package auth

import "errors"

// ErrInvalidCredentials covers unknown email, password-less accounts and
// wrong passwords alike, so responses never reveal which half failed.
var ErrInvalidCredentials = errors.New("invalid credentials")
