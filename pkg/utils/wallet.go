package utils

import "regexp"

// Stellar public keys are 56-char strkeys starting with G.
var walletRe = regexp.MustCompile(`^G[A-Z2-7]{55}$`)

// IsWalletAddress reports whether s looks like a Stellar account address.
func IsWalletAddress(s string) bool {
	return walletRe.MatchString(s)
}

// MaskAddress shortens a wallet address for display ("GABC...WXYZ").
// Empty input maps to the anonymous placeholder used across the app.
func MaskAddress(addr string) string {
	if addr == "" {
		return "Anonim"
	}
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}

// ValidateUsername checks if username contains only allowed characters
func ValidateUsername(username string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
	return re.MatchString(username)
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
