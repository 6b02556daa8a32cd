package domain

import "strings"

// MinCredentialLength is the minimal plausible length of an API
// credential. The pipeline holds the credential as an opaque bearer
// string; this shape check is the only validation it performs.
const MinCredentialLength = 20

// ValidateCredential performs the minimal shape check on a
// caller-supplied credential. It never validates the credential against
// the provider.
func ValidateCredential(credential string) error {
	trimmed := strings.TrimSpace(credential)
	if trimmed == "" || len(trimmed) < MinCredentialLength || strings.ContainsAny(trimmed, " \t\n") {
		return ErrInvalidCredential
	}
	return nil
}
