// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"regexp"
	"strings"
)

// emailPattern is deliberately lenient: anything@anything.tld. Real
// validation happens server-side via the OTP round trip; this only
// catches obvious typos before a network call is spent.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors holds per-field inline validation messages. A zero value
// means the form is submittable.
type FieldErrors struct {
	Name     string
	Email    string
	Password string
}

// OK reports whether no field failed validation.
func (e FieldErrors) OK() bool {
	return e.Name == "" && e.Email == "" && e.Password == ""
}

// ValidateCredentials checks the login/register form client-side. Any
// failing field aborts the submit; no network call is made on
// validation failure.
func ValidateCredentials(mode Mode, name, email, password string) FieldErrors {
	var errs FieldErrors

	if mode == ModeRegister && strings.TrimSpace(name) == "" {
		errs.Name = "Name is required"
	}
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Email = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs.Email = "Enter a valid email address"
	}
	if password == "" {
		errs.Password = "Password is required"
	}

	return errs
}

// ValidateOTP checks the one-time code format: six digits.
func ValidateOTP(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Enter the code from your email"
	}
	if len(code) != 6 {
		return "The code is 6 digits"
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "The code contains digits only"
		}
	}
	return ""
}
