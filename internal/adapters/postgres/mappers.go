package postgres

import (
	"encoding/json"

	"github.com/KoustavFrost/devconnector/internal/domain"
)

func toDomainUser(rec userModel) domain.User {
	return domain.User{
		UserID:       rec.UserID,
		Name:         rec.Name,
		Email:        rec.Email,
		AvatarURL:    rec.AvatarURL,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toDomainProfile(rec profileModel, links []socialLinkModel, experiences []experienceModel) domain.Profile {
	profile := domain.Profile{
		ProfileID:      rec.ProfileID,
		UserID:         rec.UserID,
		Company:        rec.Company,
		Website:        rec.Website,
		Location:       rec.Location,
		Status:         rec.Status,
		Bio:            rec.Bio,
		GithubUsername: rec.GithubUsername,
		Skills:         unmarshalSkills(rec.Skills),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if len(links) > 0 {
		profile.Social = make(map[string]string, len(links))
		for _, link := range links {
			profile.Social[link.Platform] = link.URL
		}
	}
	profile.Experience = make([]domain.Experience, 0, len(experiences))
	for _, exp := range experiences {
		profile.Experience = append(profile.Experience, domain.Experience{
			ExperienceID: exp.ExperienceID,
			Title:        exp.Title,
			Company:      exp.Company,
			Location:     exp.Location,
			From:         exp.FromDate,
			To:           exp.ToDate,
			Current:      exp.Current,
			Description:  exp.Description,
			CreatedAt:    exp.CreatedAt,
		})
	}
	return profile
}

func marshalSkills(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	raw, _ := json.Marshal(skills)
	return string(raw)
}

func unmarshalSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return []string{}
	}
	return skills
}
