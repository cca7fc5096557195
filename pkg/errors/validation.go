package errors

import (
	"strings"
	"unicode"
)

// MaxCandidates bounds the candidate count. Ballot tokens and elimination
// orders are encoded one byte per candidate.
const MaxCandidates = 255

// ValidateCandidateCount checks that an election has a usable number of
// candidates. A single candidate is allowed: it wins without eliminations.
func ValidateCandidateCount(c int) error {
	if c < 1 {
		return New(ErrCodeInvalidConfig, "candidate count must be positive, got %d", c)
	}
	if c > MaxCandidates {
		return New(ErrCodeInvalidConfig, "candidate count %d exceeds maximum %d", c, MaxCandidates)
	}
	return nil
}

// ValidateCoalitionSize checks that k ballots can be freed from a profile
// of n ballots.
func ValidateCoalitionSize(k, n int) error {
	if k < 0 {
		return New(ErrCodeInvalidCoalitionSize, "coalition size cannot be negative, got %d", k)
	}
	if k > n {
		return New(ErrCodeInvalidCoalitionSize, "coalition size %d exceeds profile size %d", k, n)
	}
	return nil
}

// ValidatePath validates a local file path used for inputs and outputs.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURI validates a backend connection string for safety.
// It only checks the scheme; drivers do the rest.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "URI cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URI %q must use one of the schemes %v", raw, schemes)
}
