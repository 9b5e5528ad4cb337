package domain

import (
	"time"

	"github.com/google/uuid"
)

// SocialPlatforms enumerates the platforms a profile may link. Upserts build
// the social map only from the supplied keys.
var SocialPlatforms = []string{"youtube", "twitter", "facebook", "linkedin", "instagram"}

// Profile is the developer profile aggregate. Skills keep input order and
// Experience is ordered newest first.
type Profile struct {
	ProfileID      uuid.UUID
	UserID         uuid.UUID
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         []string
	Social         map[string]string
	Experience     []Experience
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Experience struct {
	ExperienceID uuid.UUID
	Title        string
	Company      string
	Location     string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
	CreatedAt    time.Time
}

// KnownSocialPlatform reports whether platform is one of the supported keys.
func KnownSocialPlatform(platform string) bool {
	for _, p := range SocialPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}
