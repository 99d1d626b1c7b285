package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"casedesk-backend/models"

	"github.com/stretchr/testify/require"
)

func TestUserRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &models.User{Email: " A@X.com ", FullName: "A", Password: "p1", IsEnabled: true}
	require.NoError(t, r.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	require.Equal(t, "a@x.com", u.Email)

	err := r.Create(ctx, &models.User{Email: "a@X.COM", Password: "p2"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 1, r.Count())

	got, ok := r.GetByEmail(ctx, "A@x.com")
	require.True(t, ok)
	require.Equal(t, u.ID, got.ID)

	_, ok = r.GetByID(ctx, "missing")
	require.False(t, ok)
}

func TestUserRepositoryConcurrentSignUpSameEmail(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Create(ctx, &models.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, r.Count())
}

func TestUserRepositoryMutations(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := &models.User{Email: "b@x.com", IsEnabled: true}
	require.NoError(t, r.Create(ctx, u))

	require.True(t, r.SetEnabled(ctx, u.ID, false))
	require.False(t, r.SetEnabled(ctx, "nope", false))
	got, _ := r.GetByID(ctx, u.ID)
	require.False(t, got.IsEnabled)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.True(t, r.RecordSignIn(ctx, u.ID, at))
	got, _ = r.GetByID(ctx, u.ID)
	require.NotNil(t, got.LastSignInAt)
	require.True(t, at.Equal(*got.LastSignInAt))
}

func TestProfileAndAlertUpsert(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfileRepository()
	profiles.Create(ctx, &models.Profile{UserID: "u1", FullName: "A", IsEnabled: true})

	name := "B"
	p := profiles.Upsert(ctx, "u1", func(p *models.Profile) { p.FullName = name })
	require.Equal(t, "B", p.FullName)
	require.True(t, p.IsEnabled)

	require.True(t, profiles.SetEnabled(ctx, "u1", false))
	require.False(t, profiles.SetEnabled(ctx, "u2", false))

	alerts := NewAlertSettingsRepository()
	s := alerts.Upsert(ctx, "u1", func(s *models.AlertSettings) { s.SMSAlerts = true })
	require.True(t, s.EmailAlerts)
	require.True(t, s.SMSAlerts)

	got, ok := alerts.GetByUserID(ctx, "u1")
	require.True(t, ok)
	require.Equal(t, *s, *got)
}

func TestPermissionRepository(t *testing.T) {
	ctx := context.Background()
	r := NewPermissionRepository()

	require.Equal(t, []string{}, r.Get(ctx, "u1"))
	require.Equal(t, []string{"disputes.create"}, r.Missing(ctx, "u1", []string{"disputes.create"}))

	r.Replace(ctx, "u1", []string{"disputes.create", "x", "disputes.create"})
	require.Equal(t, []string{"disputes.create", "x"}, r.Get(ctx, "u1"))
	require.Empty(t, r.Missing(ctx, "u1", []string{"disputes.create"}))
	require.True(t, r.Has(ctx, "u1", "x"))

	r.Replace(ctx, "u1", []string{"y"})
	require.Equal(t, []string{"y"}, r.Get(ctx, "u1"))

	r.EnsureAdmin(ctx, "u1")
	r.EnsureAdmin(ctx, "u1")
	got := r.Get(ctx, "u1")
	require.Len(t, got, 1+len(models.DefaultAdminPermissions))
	require.True(t, r.Has(ctx, "u1", models.PermAdminManage))
}

func TestSessionRepositoryIndexesBothTokens(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepository()
	now := time.Now()
	s := &models.Session{
		UserID:           "u1",
		AccessToken:      "acc",
		RefreshToken:     "ref",
		ExpiresAt:        now.Add(time.Hour),
		RefreshExpiresAt: now.Add(24 * time.Hour),
	}
	r.Save(ctx, s)
	require.Equal(t, 2, r.Count())

	got, ok := r.GetByAccessToken(ctx, "acc")
	require.True(t, ok)
	require.Equal(t, "u1", got.UserID)

	_, ok = r.GetByAccessToken(ctx, "ref")
	require.False(t, ok)
	_, ok = r.GetByRefreshToken(ctx, "acc")
	require.False(t, ok)

	got, ok = r.GetByRefreshToken(ctx, "ref")
	require.True(t, ok)
	require.Equal(t, "acc", got.AccessToken)

	r.Revoke(ctx, got)
	_, ok = r.GetByAccessToken(ctx, "acc")
	require.False(t, ok)
	_, ok = r.GetByRefreshToken(ctx, "ref")
	require.False(t, ok)
	require.Equal(t, 0, r.Count())

	// revoking twice is a no-op
	r.Revoke(ctx, got)
}

func TestSessionRepositoryKeepsExpiredAccessUntilRefreshExpiry(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepository()
	now := time.Now()
	r.Save(ctx, &models.Session{
		UserID:           "u1",
		AccessToken:      "acc",
		RefreshToken:     "ref",
		ExpiresAt:        now.Add(-time.Minute),
		RefreshExpiresAt: now.Add(time.Hour),
	})

	s, ok := r.GetByAccessToken(ctx, "acc")
	require.True(t, ok)
	require.True(t, s.AccessExpired(time.Now()))
	require.False(t, s.RefreshExpired(time.Now()))
}

func TestDisputeRepositoryOwnership(t *testing.T) {
	ctx := context.Background()
	r := NewDisputeRepository()

	d := &models.Dispute{UserID: "owner", Title: "Late fee", Amount: 42.5}
	r.Create(ctx, d)
	require.NotEmpty(t, d.ID)
	require.Equal(t, models.DisputeStatusOpen, d.Status)
	require.NotNil(t, d.Documents)

	_, ok := r.GetOwned(ctx, d.ID, "intruder")
	require.False(t, ok)

	closed := models.DisputeStatusClosed
	_, ok = r.UpdateOwned(ctx, d.ID, "intruder", models.DisputeUpdate{Status: &closed})
	require.False(t, ok)

	got, ok := r.UpdateOwned(ctx, d.ID, "owner", models.DisputeUpdate{Status: &closed})
	require.True(t, ok)
	require.Equal(t, models.DisputeStatusClosed, got.Status)
	require.Equal(t, "Late fee", got.Title)
	require.Equal(t, 42.5, got.Amount)

	got, ok = r.AppendDocuments(ctx, d.ID, "owner", []models.DisputeFileMetadata{{Filename: "a.pdf", SizeBytes: 3}})
	require.True(t, ok)
	require.Len(t, got.Documents, 1)

	// returned copies do not alias the stored record
	got.Documents[0].Filename = "mutated"
	again, _ := r.GetByID(ctx, d.ID)
	require.Equal(t, "a.pdf", again.Documents[0].Filename)

	require.False(t, r.DeleteOwned(ctx, d.ID, "intruder"))
	require.True(t, r.DeleteOwned(ctx, d.ID, "owner"))
	require.False(t, r.DeleteOwned(ctx, d.ID, "owner"))
	require.Empty(t, r.ListByUserID(ctx, "owner"))
}

func TestLitigationRepositoryListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewLitigationRepository()
	for i := 0; i < 5; i++ {
		r.Create(ctx, &models.LitigationCase{UserID: "u1", DocketNumber: fmt.Sprintf("D-%d", i)})
	}
	other := &models.LitigationCase{UserID: "u2", DocketNumber: "X"}
	r.Create(ctx, other)

	list := r.ListByUserID(ctx, "u1")
	require.Len(t, list, 5)
	for i, c := range list {
		require.Equal(t, fmt.Sprintf("D-%d", i), c.DocketNumber)
		require.Equal(t, models.LitigationStatusDraft, c.Status)
	}

	require.False(t, r.DeleteOwned(ctx, other.ID, "u1"))
	require.True(t, r.DeleteOwned(ctx, other.ID, "u2"))
	_, ok := r.GetByID(ctx, other.ID)
	require.False(t, ok)
}

func TestCourseRepositoryTitleUniquenessAndIDs(t *testing.T) {
	ctx := context.Background()
	r := NewCourseRepository()

	first := &models.Course{Title: "Contracts 101", Description: "Basics"}
	require.NoError(t, r.Create(ctx, first))
	require.Equal(t, 1, first.ID)

	second := &models.Course{Title: "Torts", Description: "Civil wrongs"}
	require.NoError(t, r.Create(ctx, second))
	require.Equal(t, 2, second.ID)

	err := r.Create(ctx, &models.Course{Title: "Contracts 101", Description: "again"})
	require.ErrorIs(t, err, ErrCourseTitleTaken)

	// titles compare exactly
	require.NoError(t, r.Create(ctx, &models.Course{Title: "contracts 101", Description: "lower"}))

	got, ok := r.GetByID(ctx, 2)
	require.True(t, ok)
	require.Equal(t, "Torts", got.Title)
	_, ok = r.GetByID(ctx, 99)
	require.False(t, ok)

	list := r.List(ctx)
	require.Len(t, list, 3)
	require.Equal(t, []int{1, 2, 3}, []int{list[0].ID, list[1].ID, list[2].ID})
}

func TestCourseRepositoryConcurrentSameTitle(t *testing.T) {
	ctx := context.Background()
	r := NewCourseRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Create(ctx, &models.Course{Title: "Evidence", Description: "d"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, ErrCourseTitleTaken)
		}
	}
	require.Equal(t, 1, created)
	require.Len(t, r.List(ctx), 1)
}
