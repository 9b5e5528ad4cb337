package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL derives the default avatar from the account email.
// 200px, PG rated, with the "mystery man" fallback for unregistered emails.
// Gravatar hashes the lowercased address, independent of how the email is
// stored.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
