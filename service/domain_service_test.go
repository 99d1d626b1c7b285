package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"casedesk-backend/models"
	"casedesk-backend/storage"

	"github.com/stretchr/testify/require"
)

func TestDisputeServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := &recordingNotifier{}
	svc := NewDisputeService(WithDisputeRepository(f.store.Disputes), WithDisputeNotifier(n))

	d, err := svc.CreateDispute(ctx, CreateDisputeRequest{UserID: "u1", Title: "Late fee", Amount: 42.5})
	require.NoError(t, err)
	require.Equal(t, models.DisputeStatusOpen, d.Status)
	require.Equal(t, 42.5, d.Amount)
	require.Empty(t, d.Documents)
	require.Equal(t, []string{d.ID}, n.disputes)

	pending := models.DisputeStatusPending
	updated, err := svc.UpdateDispute(ctx, UpdateDisputeRequest{UserID: "u1", DisputeID: d.ID, Update: models.DisputeUpdate{Status: &pending}})
	require.NoError(t, err)
	require.Equal(t, models.DisputeStatusPending, updated.Status)
	require.Equal(t, "Late fee", updated.Title)

	_, err = svc.UpdateDispute(ctx, UpdateDisputeRequest{UserID: "u2", DisputeID: d.ID, Update: models.DisputeUpdate{Status: &pending}})
	require.ErrorIs(t, err, ErrDisputeNotFound)
	_, err = svc.GetDispute(ctx, "u2", d.ID)
	require.ErrorIs(t, err, ErrDisputeNotFound)
	require.ErrorIs(t, svc.DeleteDispute(ctx, "u2", d.ID), ErrDisputeNotFound)

	list, err := svc.ListDisputes(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, svc.DeleteDispute(ctx, "u1", d.ID))
	require.ErrorIs(t, svc.DeleteDispute(ctx, "u1", d.ID), ErrDisputeNotFound)
}

func TestLitigationServiceBulkCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := &recordingNotifier{}
	svc := NewLitigationService(WithLitigationRepository(f.store.Litigation), WithLitigationNotifier(n))

	created, err := svc.BulkCreate(ctx, BulkCreateRequest{UserID: "u1", Cases: []LitigationCaseInput{
		{DocketNumber: "1", CaseName: "A v B", Amount: 1},
		{DocketNumber: "2", CaseName: "C v D", Status: models.LitigationStatusFiled, Amount: 2},
	}})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, models.LitigationStatusDraft, created[0].Status)
	require.Equal(t, models.LitigationStatusFiled, created[1].Status)
	require.Equal(t, []int{2}, n.uploads)

	require.ErrorIs(t, svc.DeleteCase(ctx, "u2", created[0].ID), ErrCaseNotFound)
	require.NoError(t, svc.DeleteCase(ctx, "u1", created[0].ID))

	list, err := svc.ListCases(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "2", list[0].DocketNumber)
}

func TestProfileServicePartialUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signUp(t, "a@x.com", "p1")
	svc := NewProfileService(WithProfileRepository(f.store.Profiles), WithAlertSettingsRepository(f.store.Alerts))

	avatar := "https://cdn.example.com/a.png"
	p, err := svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: res.UserID, AvatarURL: &avatar})
	require.NoError(t, err)
	require.Equal(t, "Name", p.FullName)
	require.Equal(t, avatar, *p.AvatarURL)

	empty := ""
	p, err = svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: res.UserID, AvatarURL: &empty})
	require.NoError(t, err)
	require.Nil(t, p.AvatarURL)

	sms := true
	a, err := svc.UpdateAlerts(ctx, UpdateAlertsRequest{UserID: res.UserID, SMSAlerts: &sms})
	require.NoError(t, err)
	require.True(t, a.EmailAlerts)
	require.True(t, a.SMSAlerts)

	got, err := svc.GetAlerts(ctx, res.UserID)
	require.NoError(t, err)
	require.Equal(t, *a, *got)

	_, err = svc.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.signUp(t, "a@x.com", "p1")
	f.signUp(t, "b@x.com", "p2")
	_, err := f.auth.SignIn(ctx, SignInRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	svc := NewAdminService(WithAdminStore(f.store))
	require.NoError(t, svc.SetPermissions(ctx, a.UserID, []string{models.PermDisputesCreate}))
	require.ErrorIs(t, svc.SetPermissions(ctx, "nobody", nil), ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, a.UserID, users[0].Profile.UserID)
	require.Equal(t, []string{models.PermDisputesCreate}, users[0].Permissions)
	require.NotNil(t, users[0].LastSignIn)
	require.Nil(t, users[1].LastSignIn)
	require.Equal(t, []string{}, users[1].Permissions)

	require.NoError(t, svc.SetAccess(ctx, a.UserID, false))
	u, _ := f.store.Users.GetByID(ctx, a.UserID)
	p, _ := f.store.Profiles.GetByUserID(ctx, a.UserID)
	require.False(t, u.IsEnabled)
	require.False(t, p.IsEnabled)
	require.ErrorIs(t, svc.SetAccess(ctx, "nobody", true), ErrUserNotFound)
}

type failingStorage struct {
	storage.Storage
	failOn string
}

func (s failingStorage) Upload(ctx context.Context, userID, filename string, data io.Reader, size int64) (string, int64, error) {
	if filename == s.failOn {
		return "", 0, errors.New("disk full")
	}
	return s.Storage.Upload(ctx, userID, filename, data, size)
}

func upload(name, body string) FileUpload {
	return FileUpload{
		Filename: name,
		Size:     int64(len(body)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader([]byte(body))), nil },
	}
}

func TestFileServiceUploadAndOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := t.TempDir()
	local, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	disputes := NewDisputeService(WithDisputeRepository(f.store.Disputes))
	d, err := disputes.CreateDispute(ctx, CreateDisputeRequest{UserID: "u1", Title: "t", Amount: 1})
	require.NoError(t, err)

	svc := NewFileService(WithStorage(local), WithFileDisputeRepository(f.store.Disputes))

	_, err = svc.UploadDocuments(ctx, UploadDocumentsRequest{UserID: "u1", DisputeID: d.ID})
	require.ErrorIs(t, err, ErrNoFiles)
	_, err = svc.UploadDocuments(ctx, UploadDocumentsRequest{UserID: "u2", DisputeID: d.ID, Files: []FileUpload{upload("a.txt", "x")}})
	require.ErrorIs(t, err, ErrDisputeNotFound)

	docs, err := svc.UploadDocuments(ctx, UploadDocumentsRequest{UserID: "u1", DisputeID: d.ID, Files: []FileUpload{
		upload("a.txt", "hello"),
		upload("../b.pdf", "pdf!"),
	}})
	require.NoError(t, err)
	require.Equal(t, []models.DisputeFileMetadata{
		{Filename: "a.txt", URL: "/storage/u1/a.txt", SizeBytes: 5},
		{Filename: "b.pdf", URL: "/storage/u1/b.pdf", SizeBytes: 4},
	}, docs)

	stored, err := disputes.GetDispute(ctx, "u1", d.ID)
	require.NoError(t, err)
	require.Equal(t, docs, stored.Documents)

	onDisk, err := os.ReadFile(filepath.Join(root, "u1", "b.pdf"))
	require.NoError(t, err)
	require.Equal(t, "pdf!", string(onDisk))

	rc, name, err := svc.OpenDocument(ctx, "u1", "u1", "a.txt")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "a.txt", name)
	require.Equal(t, "hello", string(body))

	_, _, err = svc.OpenDocument(ctx, "u2", "u1", "a.txt")
	require.ErrorIs(t, err, ErrFileNotFound)
	_, _, err = svc.OpenDocument(ctx, "u1", "u1", "missing.txt")
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileServicePartialFailureKeepsEarlierFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := t.TempDir()
	local, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	d := &models.Dispute{UserID: "u1", Title: "t"}
	f.store.Disputes.Create(ctx, d)

	svc := NewFileService(WithStorage(failingStorage{Storage: local, failOn: "second.txt"}), WithFileDisputeRepository(f.store.Disputes))
	_, err = svc.UploadDocuments(ctx, UploadDocumentsRequest{UserID: "u1", DisputeID: d.ID, Files: []FileUpload{
		upload("first.txt", "1"),
		upload("second.txt", "2"),
	}})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "u1", "first.txt"))
	require.NoError(t, statErr)

	stored, _ := f.store.Disputes.GetByID(ctx, d.ID)
	require.Empty(t, stored.Documents)
}

func TestCourseServiceCatalogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCourseService(WithCourseRepository(f.store.Courses))

	c, err := svc.CreateCourse(ctx, CreateCourseRequest{Title: "Contracts 101", Description: "Basics"})
	require.NoError(t, err)
	require.Equal(t, 1, c.ID)

	_, err = svc.CreateCourse(ctx, CreateCourseRequest{Title: "Contracts 101", Description: "dup"})
	require.ErrorIs(t, err, ErrCourseTitleTaken)
	require.Equal(t, "Course title must be unique", err.Error())

	got, err := svc.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Basics", got.Description)

	_, err = svc.GetCourse(ctx, 42)
	require.ErrorIs(t, err, ErrCourseNotFound)

	list, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
