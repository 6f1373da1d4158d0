package util

import (
	"net/http"
	"strings"
	"unicode/utf8"
)

// UnknownVisitor is the identity used when no network-origin header is present.
const UnknownVisitor = "unknown"

// maxVisitorIdentityLen matches the like tables' ip_address column width.
const maxVisitorIdentityLen = 64

// VisitorIdentity derives the unauthenticated visitor key used to deduplicate likes:
// the first X-Forwarded-For entry, else X-Real-IP, else UnknownVisitor.
// The value is client-controlled and must be treated as opaque.
func VisitorIdentity(h http.Header) string {
	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return clampIdentity(first)
		}
	}
	if realIP := strings.TrimSpace(h.Get("X-Real-IP")); realIP != "" {
		return clampIdentity(realIP)
	}
	return UnknownVisitor
}

// clampIdentity cuts s to the column width without splitting a character.
func clampIdentity(s string) string {
	if len(s) <= maxVisitorIdentityLen {
		return s
	}
	cut := maxVisitorIdentityLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
