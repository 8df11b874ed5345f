package service_test

import (
	"context"
	"testing"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"
	"labtrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOwnerRepo is an in-memory OwnerRepository for testing.
type stubOwnerRepo struct {
	requests    map[uuid.UUID]*model.RetestRequest
	preferences map[string]*model.OwnerPreference
}

func newStubOwnerRepo() *stubOwnerRepo {
	return &stubOwnerRepo{
		requests:    make(map[uuid.UUID]*model.RetestRequest),
		preferences: make(map[string]*model.OwnerPreference),
	}
}

func (r *stubOwnerRepo) CreateRetestRequest(_ context.Context, req *model.RetestRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now().UTC()
	r.requests[req.ID] = req
	return nil
}

func (r *stubOwnerRepo) FindRetestRequest(_ context.Context, id uuid.UUID) (*model.RetestRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, errStubNotFound
	}
	return req, nil
}

func (r *stubOwnerRepo) ListRetestRequests(_ context.Context, ownerEmail string) ([]model.RetestRequest, error) {
	var out []model.RetestRequest
	for _, req := range r.requests {
		if ownerEmail == "" || req.OwnerEmail == ownerEmail {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubOwnerRepo) UpdateRetestRequest(_ context.Context, req *model.RetestRequest) error {
	r.requests[req.ID] = req
	return nil
}

func (r *stubOwnerRepo) FindPreference(_ context.Context, ownerEmail string) (*model.OwnerPreference, error) {
	pref, ok := r.preferences[ownerEmail]
	if !ok {
		return nil, errStubNotFound
	}
	return pref, nil
}

func (r *stubOwnerRepo) UpsertPreference(_ context.Context, pref *model.OwnerPreference) error {
	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	r.preferences[pref.OwnerEmail] = pref
	return nil
}

var _ repository.OwnerRepository = (*stubOwnerRepo)(nil)

func TestRetestRequest_Flow(t *testing.T) {
	reportRepo := newStubReportRepo()
	reportID := seedReport(t, reportRepo, model.FinalApproved)
	svc := service.NewOwnerService(newStubOwnerRepo(), reportRepo)

	created, err := svc.CreateRetestRequest(context.Background(), dto.CreateRetestRequest{
		ReportID:   reportID.String(),
		OwnerEmail: "owner@acme.test",
		Remarks:    "values look off, please re-run",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RetestPending, created.Status)

	// Owner sees their own requests
	list, err := svc.ListRetestRequests(context.Background(), "owner@acme.test")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Approval flags the report for retesting
	reply := "scheduled for Monday"
	answered, err := svc.RespondRetestRequest(context.Background(), uuid.MustParse(created.ID), dto.RespondRetestRequest{
		Status:        model.RetestApproved,
		AdminResponse: &reply,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RetestApproved, answered.Status)

	rep, err := reportRepo.FindByID(context.Background(), reportID)
	require.NoError(t, err)
	assert.True(t, rep.RetestingRequested)

	// Re-answering an already answered request is rejected (except completion)
	_, err = svc.RespondRetestRequest(context.Background(), uuid.MustParse(created.ID), dto.RespondRetestRequest{
		Status: model.RetestRejected,
	})
	require.Error(t, err)

	_, err = svc.RespondRetestRequest(context.Background(), uuid.MustParse(created.ID), dto.RespondRetestRequest{
		Status: model.RetestCompleted,
	})
	require.NoError(t, err)
}

func TestRetestRequest_UnknownReport(t *testing.T) {
	svc := service.NewOwnerService(newStubOwnerRepo(), newStubReportRepo())

	_, err := svc.CreateRetestRequest(context.Background(), dto.CreateRetestRequest{
		ReportID:   uuid.NewString(),
		OwnerEmail: "owner@acme.test",
		Remarks:    "re-run please",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOwnerPreferences_DefaultsAndUpsert(t *testing.T) {
	svc := service.NewOwnerService(newStubOwnerRepo(), newStubReportRepo())

	// Never saved: defaults with email notifications on
	pref, err := svc.GetPreference(context.Background(), "owner@acme.test")
	require.NoError(t, err)
	assert.True(t, pref.EmailNotifications)
	assert.False(t, pref.SMSNotifications)

	phone := "+91-9000000000"
	sms := true
	saved, err := svc.UpsertPreference(context.Background(), "owner@acme.test", dto.UpsertOwnerPreferenceRequest{
		OwnerPhone:       &phone,
		SMSNotifications: &sms,
	})
	require.NoError(t, err)
	assert.True(t, saved.SMSNotifications)
	assert.True(t, saved.EmailNotifications)
	require.NotNil(t, saved.OwnerPhone)

	// Partial update keeps the untouched channels
	off := false
	saved, err = svc.UpsertPreference(context.Background(), "owner@acme.test", dto.UpsertOwnerPreferenceRequest{
		EmailNotifications: &off,
	})
	require.NoError(t, err)
	assert.False(t, saved.EmailNotifications)
	assert.True(t, saved.SMSNotifications)
}
