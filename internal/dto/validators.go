package dto

import (
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var userNamePattern = regexp.MustCompile(`^\d{11}$`)

// MinPasswordLength is the shortest password accepted on registration.
const MinPasswordLength = 10

// RegisterValidators adds the custom binding rules used by the request DTOs.
// now is the clock the billdate rule compares against.
func RegisterValidators(v *validator.Validate, now func() time.Time) error {
	if err := v.RegisterValidation("username11", func(fl validator.FieldLevel) bool {
		return userNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("billdate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(now().AddDate(0, -2, 0))
	})
}

// IsStrongPassword reports whether p is long enough and mixes letters with digits.
func IsStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return false
	}
	var letter, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
