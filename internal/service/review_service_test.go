package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligasur/arena-console/internal/models"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

type fakeRegistrationClient struct {
	event    models.Event
	snapshot models.RegistrationSnapshot

	submitErr      error
	submitted      [][]models.DocumentReview
	submitResponse *models.RegistrationSnapshot

	// When set, SubmitDocumentReview signals submitStarted and then parks
	// until submitRelease closes, so tests can hold a submission open.
	submitStarted chan struct{}
	submitRelease chan struct{}
}

func (f *fakeRegistrationClient) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event := f.event
	return &event, nil
}

func (f *fakeRegistrationClient) GetRegistration(ctx context.Context, eventID, institutionID int64) (*models.RegistrationSnapshot, error) {
	snapshot := f.snapshot
	return &snapshot, nil
}

func (f *fakeRegistrationClient) SubmitDocumentReview(ctx context.Context, eventID, institutionID int64, reviews []models.DocumentReview) (*models.RegistrationSnapshot, error) {
	if f.submitStarted != nil {
		f.submitStarted <- struct{}{}
		<-f.submitRelease
	}
	f.submitted = append(f.submitted, reviews)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitResponse != nil {
		snapshot := *f.submitResponse
		return &snapshot, nil
	}
	snapshot := f.snapshot
	return &snapshot, nil
}

func reviewFixture(stage models.Stage) *fakeRegistrationClient {
	return &fakeRegistrationClient{
		event: models.Event{ID: 7, Stage: stage},
		snapshot: models.RegistrationSnapshot{
			EventID:       7,
			InstitutionID: 3,
			Stage:         stage,
			Students: []models.Student{
				{
					ID: 1,
					Documents: []models.Document{
						{ID: 101, Status: models.DocumentPending},
						{ID: 102, Status: models.DocumentApproved},
					},
				},
			},
		},
	}
}

func TestReviewOpenSeedsOverlayFromReviewedDocuments(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	svc := NewReviewService(client, nil)

	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, view.Editable)
	// Only the already-reviewed document seeds the overlay.
	assert.Equal(t, 1, view.PendingEdits)
	assert.Equal(t, models.DocumentApproved, view.Effective[102].Status)
	assert.Equal(t, models.DocumentPending, view.Effective[101].Status)
}

func TestReviewOpenReadOnlyOutsideReviewStages(t *testing.T) {
	client := reviewFixture(models.StageChampionship)
	svc := NewReviewService(client, nil)

	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.False(t, view.Editable)

	_, err = svc.Edit(view.SessionID, 101, DocumentPatch{Note: strPtr("hola")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestReviewEditDefaultsAndMerges(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	svc := NewReviewService(client, nil)

	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)

	// First touch creates a pending entry carrying only the note.
	view, err = svc.Edit(view.SessionID, 101, DocumentPatch{Note: strPtr("falta firma")})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentPending, view.Effective[101].Status)
	assert.Equal(t, "falta firma", view.Effective[101].Note)

	// A later status edit keeps the note.
	status := models.DocumentCorrectionRequested
	view, err = svc.Edit(view.SessionID, 101, DocumentPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentCorrectionRequested, view.Effective[101].Status)
	assert.Equal(t, "falta firma", view.Effective[101].Note)
}

func TestReviewEditRejectsUnknownDocumentAndStatus(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	svc := NewReviewService(client, nil)

	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)

	_, err = svc.Edit(view.SessionID, 999, DocumentPatch{Note: strPtr("x")})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	bad := models.DocumentStatus("bogus")
	_, err = svc.Edit(view.SessionID, 101, DocumentPatch{Status: &bad})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReviewSubmitSendsOnlyOverlayEntries(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	updated := client.snapshot
	updated.Students[0].Documents = []models.Document{
		{ID: 101, Status: models.DocumentCorrectionRequested, ReviewNote: "falta firma"},
		{ID: 102, Status: models.DocumentApproved},
	}
	client.submitResponse = &updated

	svc := NewReviewService(client, nil)
	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)

	status := models.DocumentCorrectionRequested
	_, err = svc.Edit(view.SessionID, 101, DocumentPatch{Status: &status, Note: strPtr("falta firma")})
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), view.SessionID)
	require.NoError(t, err)
	require.Len(t, client.submitted, 1)
	// Seeded entry for 102 plus the touched 101; untouched pending docs are absent.
	assert.Len(t, client.submitted[0], 2)
	assert.Equal(t, models.DocumentCorrectionRequested, result.Effective[101].Status)
	// The committed snapshot re-seeds the overlay with the reviewed documents.
	assert.Equal(t, 2, result.PendingEdits)
}

func TestReviewSubmitEmptyOverlayIsLocalNoop(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	// Strip the pre-reviewed document so the overlay seeds empty.
	client.snapshot.Students[0].Documents[1].Status = models.DocumentPending

	svc := NewReviewService(client, nil)
	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Zero(t, view.PendingEdits)

	_, err = svc.Submit(context.Background(), view.SessionID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, client.submitted, "empty overlay must never reach the network")
}

func TestReviewSubmitFailureKeepsLocalState(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	client.submitErr = appErrors.Clone(appErrors.ErrUpstream, "boom")

	svc := NewReviewService(client, nil)
	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)

	status := models.DocumentCorrectionRequested
	_, err = svc.Edit(view.SessionID, 101, DocumentPatch{Status: &status})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), view.SessionID)
	require.Error(t, err)

	// The overlay survives the failure and a retry resubmits it.
	client.submitErr = nil
	result, err := svc.Submit(context.Background(), view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentCorrectionRequested, result.Effective[101].Status)
}

func TestReviewSubmitWhilePendingIsBusy(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	client.submitStarted = make(chan struct{})
	client.submitRelease = make(chan struct{})

	svc := NewReviewService(client, nil)
	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)

	status := models.DocumentCorrectionRequested
	_, err = svc.Edit(view.SessionID, 101, DocumentPatch{Status: &status})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), view.SessionID)
		done <- err
	}()
	<-client.submitStarted

	// A second submit while the first is outstanding is refused, not queued.
	_, err = svc.Submit(context.Background(), view.SessionID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBusy.Code, appErrors.FromError(err).Code)

	close(client.submitRelease)
	require.NoError(t, <-done)
	assert.Len(t, client.submitted, 1)
}

func TestReviewCloseDiscardsSession(t *testing.T) {
	client := reviewFixture(models.StageAudit)
	svc := NewReviewService(client, nil)

	view, err := svc.Open(context.Background(), 7, 3)
	require.NoError(t, err)
	svc.Close(view.SessionID)

	_, err = svc.Submit(context.Background(), view.SessionID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func strPtr(s string) *string {
	return &s
}
