// Package normalize provides helper functions for consistent string
// normalization. Use these instead of scattered strings.ToLower and
// strings.TrimSpace calls so lookups behave the same everywhere.
package normalize

import "strings"

// Username normalizes a login username by trimming whitespace and
// lowercasing. OTP generation and verification must agree on this or a
// code requested for "Admin" can never be redeemed by "admin".
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email normalizes an email address by trimming whitespace and lowercasing.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code normalizes a one-time code by trimming whitespace.
func Code(s string) string {
	return strings.TrimSpace(s)
}

// DiscountCode normalizes a discount code: trimmed and uppercased, the
// form codes are displayed and compared in.
func DiscountCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
