package application_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/domain"
)

func register(t *testing.T, f *fixture, name, email, password string) uuid.UUID {
	t.Helper()
	res, err := f.service.Register(context.Background(), application.RegisterRequest{
		Name: name, Email: email, Password: password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	claims, err := f.service.ValidateToken(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("validate fresh token: %v", err)
	}
	return claims.UserID
}

func strptr(s string) *string { return &s }

func TestRegisterIssuesTokenAndRejectsDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	res, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "Jane Dev", Email: " jane@example.com ", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("register should return a token")
	}

	user, err := f.users.GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("expected trimmed email lookup to succeed: %v", err)
	}
	if user.AvatarURL == "" {
		t.Fatalf("expected derived avatar url")
	}
	if user.PasswordHash != "hash:secret123" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}

	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "Jane Again", Email: "jane@example.com", Password: "other456",
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists on duplicate email, got %v", err)
	}
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	register(t, f, "Jane Dev", "jane@example.com", "secret123")

	// A case variant is a distinct credential key and gets its own account.
	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "Other Jane", Email: "Jane@Example.com", Password: "secret456",
	}); err != nil {
		t.Fatalf("case-variant email should register separately: %v", err)
	}

	if _, err := f.service.Login(ctx, application.LoginRequest{
		Email: "JANE@EXAMPLE.COM", Password: "secret123",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown case variant must not match an existing account, got %v", err)
	}
}

func TestTokenTimestampsAdvanceWithTheClock(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "Jane Dev", Email: "jane@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	second, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "John Dev", Email: "john@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	firstClaims, err := f.service.ValidateToken(ctx, first.Token)
	if err != nil {
		t.Fatalf("validate first token: %v", err)
	}
	secondClaims, err := f.service.ValidateToken(ctx, second.Token)
	if err != nil {
		t.Fatalf("validate second token: %v", err)
	}
	if !secondClaims.IssuedAt.After(firstClaims.IssuedAt) {
		t.Fatalf("later token must carry a later IssuedAt: first %s, second %s",
			firstClaims.IssuedAt, secondClaims.IssuedAt)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	register(t, f, "Jane Dev", "jane@example.com", "secret123")

	_, wrongPassErr := f.service.Login(ctx, application.LoginRequest{
		Email: "jane@example.com", Password: "not-the-password",
	})
	_, unknownErr := f.service.Login(ctx, application.LoginRequest{
		Email: "nobody@example.com", Password: "secret123",
	})

	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassErr)
	}
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if wrongPassErr.Error() != unknownErr.Error() {
		t.Fatalf("failure modes must be indistinguishable: %q vs %q", wrongPassErr, unknownErr)
	}
}

func TestLoginReturnsValidToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	res, err := f.service.Login(ctx, application.LoginRequest{
		Email: "jane@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := f.service.ValidateToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("token user mismatch: got %s want %s", claims.UserID, userID)
	}

	user, err := f.service.CurrentUser(ctx, claims.UserID)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if user.Email != "jane@example.com" || user.Name != "Jane Dev" {
		t.Fatalf("unexpected current user: %+v", user)
	}
}

func TestValidateTokenRejectsUnknownToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.service.ValidateToken(context.Background(), "bogus"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRegisterRateLimited(t *testing.T) {
	t.Parallel()

	f := newFixtureWithConfig(application.Config{
		RegisterRateLimitThreshold: 2,
		RegisterRateLimitWindow:    time.Minute,
	})
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := f.service.Register(ctx, application.RegisterRequest{
			Name: "User", Email: email, Password: "secret123", IPAddress: "10.0.0.1",
		}); err != nil {
			t.Fatalf("register %d should pass: %v", i, err)
		}
	}
	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name: "User", Email: "c@example.com", Password: "secret123", IPAddress: "10.0.0.1",
	}); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited above threshold, got %v", err)
	}
}

func TestUpsertProfileParsesSkills(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	res, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status: strptr("Developer"),
		Skills: strptr("node, react ,  express"),
	})
	if err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}
	want := []string{"node", "react", "express"}
	if !reflect.DeepEqual(res.Skills, want) {
		t.Fatalf("skills parse mismatch: got %v want %v", res.Skills, want)
	}
	if res.User.Name != "Jane Dev" {
		t.Fatalf("expected public user projection, got %+v", res.User)
	}
}

func TestUpsertProfileSparseUpdateLeavesAbsentFieldsUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status:  strptr("Developer"),
		Skills:  strptr("go,postgres"),
		Company: strptr("Acme"),
	}); err != nil {
		t.Fatalf("initial upsert failed: %v", err)
	}

	res, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Bio: strptr("hello world"),
	})
	if err != nil {
		t.Fatalf("sparse upsert failed: %v", err)
	}
	if res.Bio != "hello world" {
		t.Fatalf("bio should update, got %q", res.Bio)
	}
	if !reflect.DeepEqual(res.Skills, []string{"go", "postgres"}) {
		t.Fatalf("skills must stay untouched, got %v", res.Skills)
	}
	if res.Status != "Developer" || res.Company != "Acme" {
		t.Fatalf("absent fields must stay untouched: %+v", res)
	}
}

func TestUpsertProfileSocialBuiltFromSuppliedKeys(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	res, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status:  strptr("Developer"),
		Skills:  strptr("go"),
		Youtube: strptr("https://youtube.com/@jane"),
		Twitter: strptr("https://twitter.com/jane"),
	})
	if err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}
	want := map[string]string{
		"youtube": "https://youtube.com/@jane",
		"twitter": "https://twitter.com/jane",
	}
	if !reflect.DeepEqual(res.Social, want) {
		t.Fatalf("social mismatch: got %v want %v", res.Social, want)
	}

	// No social fields supplied: the stored set stays as-is.
	res, err = f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{Bio: strptr("bio")})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if !reflect.DeepEqual(res.Social, want) {
		t.Fatalf("social must stay untouched, got %v", res.Social)
	}

	// A single supplied key replaces the whole set.
	res, err = f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Linkedin: strptr("https://linkedin.com/in/jane"),
	})
	if err != nil {
		t.Fatalf("third upsert failed: %v", err)
	}
	if !reflect.DeepEqual(res.Social, map[string]string{"linkedin": "https://linkedin.com/in/jane"}) {
		t.Fatalf("social should be rebuilt from supplied keys, got %v", res.Social)
	}
}

func TestAddExperiencePrependsNewestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.AddExperience(ctx, userID, application.AddExperienceRequest{
		Title: "Junior Engineer", Company: "Acme", From: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
	}); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound without a profile, got %v", err)
	}

	if _, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status: strptr("Developer"), Skills: strptr("go"),
	}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}

	if _, err := f.service.AddExperience(ctx, userID, application.AddExperienceRequest{
		Title: "Junior Engineer", Company: "Acme", From: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("first add experience failed: %v", err)
	}
	res, err := f.service.AddExperience(ctx, userID, application.AddExperienceRequest{
		Title: "Senior Engineer", Company: "Globex", From: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("second add experience failed: %v", err)
	}

	if len(res.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(res.Experience))
	}
	if res.Experience[0].Title != "Senior Engineer" || res.Experience[1].Title != "Junior Engineer" {
		t.Fatalf("expected newest-first ordering, got %q then %q",
			res.Experience[0].Title, res.Experience[1].Title)
	}
}

func TestDeleteExperienceRemovesEntry(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status: strptr("Developer"), Skills: strptr("go"),
	}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}
	res, err := f.service.AddExperience(ctx, userID, application.AddExperienceRequest{
		Title: "Engineer", Company: "Acme", From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add experience failed: %v", err)
	}

	res, err = f.service.DeleteExperience(ctx, userID, res.Experience[0].ExperienceID)
	if err != nil {
		t.Fatalf("delete experience failed: %v", err)
	}
	if len(res.Experience) != 0 {
		t.Fatalf("expected empty experience list, got %d entries", len(res.Experience))
	}
}

func TestGetMyProfileWithoutProfile(t *testing.T) {
	t.Parallel()

	f := newFixture()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.GetMyProfile(context.Background(), userID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetProfileByUserIDServesFromCache(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status: strptr("Developer"), Skills: strptr("go"),
	}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}

	first, err := f.service.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}

	// Mutate storage behind the cache; the cached copy should win.
	f.profiles.mu.Lock()
	p := f.profiles.profiles[userID]
	p.Status = "changed underneath"
	f.profiles.profiles[userID] = p
	f.profiles.mu.Unlock()

	second, err := f.service.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if second.Status != first.Status {
		t.Fatalf("expected cached status %q, got %q", first.Status, second.Status)
	}
}

func TestListProfilesCarriesUserProjection(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	janeID := register(t, f, "Jane Dev", "jane@example.com", "secret123")
	register(t, f, "No Profile", "empty@example.com", "secret123")

	if _, err := f.service.UpsertProfile(ctx, janeID, application.UpsertProfileRequest{
		Status: strptr("Developer"), Skills: strptr("go"),
	}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}

	profiles, err := f.service.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list profiles failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].User.Name != "Jane Dev" || profiles[0].User.AvatarURL == "" {
		t.Fatalf("expected public user projection, got %+v", profiles[0].User)
	}
}

func TestDeleteAccountIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := register(t, f, "Jane Dev", "jane@example.com", "secret123")

	if _, err := f.service.UpsertProfile(ctx, userID, application.UpsertProfileRequest{
		Status: strptr("Developer"), Skills: strptr("go"),
	}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}

	if err := f.service.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := f.service.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("repeated delete should succeed: %v", err)
	}

	if _, err := f.service.CurrentUser(ctx, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected deleted user to be gone, got %v", err)
	}
	if _, err := f.service.GetMyProfile(ctx, userID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected deleted profile to be gone, got %v", err)
	}
}
