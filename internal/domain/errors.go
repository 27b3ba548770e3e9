package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound          = errors.New("account not found")
	ErrSecretNotFound           = errors.New("secret not found")
	ErrInvalidAccount           = errors.New("invalid account")
	ErrWrongAccountType         = errors.New("wrong account type")
	ErrDecoding                 = errors.New("failed to decode provider response")
	ErrReauthenticationRequired = errors.New("reauthentication required")
)

// WrongAccountTypeError is returned when an account is handed to a flow that
// cannot renew it.
type WrongAccountTypeError struct {
	Expected AccountKind
	Got      AccountKind
}

func (e *WrongAccountTypeError) Error() string {
	got := string(e.Got)
	if got == "" {
		got = "none"
	}
	return fmt.Sprintf("wrong account type in authentication flow: expected %s, got %s", e.Expected, got)
}

func (e *WrongAccountTypeError) Is(target error) bool {
	return target == ErrWrongAccountType
}
