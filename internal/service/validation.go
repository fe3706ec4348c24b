package service

import (
	"net/mail"
	"net/url"
)

// validEmail reports whether s parses as an RFC 5322 address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// validWebsite reports whether s is an absolute http or https URL.
func validWebsite(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// normalizeOptional maps an empty optional field to NULL. Callers pass fields
// the client explicitly supplied; nil stays nil.
func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
