// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"golang.org/x/text/secure/precis"

	"github.com/taibuivan/usergate/internal/platform/validate"
)

// CanonicalUsername maps a raw identity to the form stored and signed into
// tokens, using the PRECIS UsernameCasePreserved profile (RFC 8265).
//
// Width variants are folded and unassigned or control code points are
// rejected, so two visually identical names cannot both be registered.
// Case is preserved and significant.
func CanonicalUsername(raw string) (string, error) {
	canonical, err := precis.UsernameCasePreserved.String(raw)
	if err != nil || canonical == "" {
		return "", validate.FieldErr(FieldUsername, "Username contains characters that are not allowed")
	}
	if len([]rune(canonical)) > MaxUsernameLength {
		return "", validate.FieldErr(FieldUsername, "Username is too long")
	}
	return canonical, nil
}
