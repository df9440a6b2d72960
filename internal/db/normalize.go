package db

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentifier canonicalizes email addresses and user names before they
// are stored or looked up, so the unique constraints and login lookups are not
// defeated by trivial encoding differences in otherwise equal strings.
func NormalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return norm.NFC.String(s)
}
