package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNameTaken      = errors.New("user name already taken")
	ErrUserNotFound       = errors.New("user not found")
)
