package service

import (
	"context"
	"fmt"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/model"
	"labtrack/internal/repository"

	"github.com/google/uuid"
)

type OwnerService interface {
	CreateRetestRequest(ctx context.Context, req dto.CreateRetestRequest) (*dto.RetestRequestResponse, error)
	ListRetestRequests(ctx context.Context, ownerEmail string) ([]dto.RetestRequestResponse, error)
	RespondRetestRequest(ctx context.Context, id uuid.UUID, req dto.RespondRetestRequest) (*dto.RetestRequestResponse, error)
	GetPreference(ctx context.Context, ownerEmail string) (*dto.OwnerPreferenceResponse, error)
	UpsertPreference(ctx context.Context, ownerEmail string, req dto.UpsertOwnerPreferenceRequest) (*dto.OwnerPreferenceResponse, error)
}

type ownerService struct {
	repo       repository.OwnerRepository
	reportRepo repository.ReportRepository
}

func NewOwnerService(repo repository.OwnerRepository, reportRepo repository.ReportRepository) OwnerService {
	return &ownerService{repo: repo, reportRepo: reportRepo}
}

func (s *ownerService) CreateRetestRequest(ctx context.Context, req dto.CreateRetestRequest) (*dto.RetestRequestResponse, error) {
	reportID, err := uuid.Parse(req.ReportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report_id: %w", err)
	}
	if _, err := s.reportRepo.FindByID(ctx, reportID); err != nil {
		return nil, ErrNotFound
	}

	rr := &model.RetestRequest{
		ReportID:   reportID,
		OwnerEmail: req.OwnerEmail,
		OwnerPhone: req.OwnerPhone,
		Remarks:    req.Remarks,
		Status:     model.RetestPending,
	}
	if err := s.repo.CreateRetestRequest(ctx, rr); err != nil {
		return nil, err
	}
	return retestToResponse(rr), nil
}

func (s *ownerService) ListRetestRequests(ctx context.Context, ownerEmail string) ([]dto.RetestRequestResponse, error) {
	rrs, err := s.repo.ListRetestRequests(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RetestRequestResponse, len(rrs))
	for i := range rrs {
		out[i] = *retestToResponse(&rrs[i])
	}
	return out, nil
}

// RespondRetestRequest records the staff decision. Approving a request also
// flags the report so lab staff see retesting is expected.
func (s *ownerService) RespondRetestRequest(ctx context.Context, id uuid.UUID, req dto.RespondRetestRequest) (*dto.RetestRequestResponse, error) {
	rr, err := s.repo.FindRetestRequest(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if rr.Status != model.RetestPending && req.Status != model.RetestCompleted {
		return nil, &FieldErrors{Fields: map[string]string{
			"status": fmt.Sprintf("request was already answered with %s", rr.Status),
		}}
	}

	rr.Status = req.Status
	rr.AdminResponse = req.AdminResponse
	if err := s.repo.UpdateRetestRequest(ctx, rr); err != nil {
		return nil, err
	}

	if req.Status == model.RetestApproved {
		if rep, err := s.reportRepo.FindByID(ctx, rr.ReportID); err == nil {
			rep.RetestingRequested = true
			_ = s.reportRepo.Update(ctx, rep)
		}
	}
	return retestToResponse(rr), nil
}

func (s *ownerService) GetPreference(ctx context.Context, ownerEmail string) (*dto.OwnerPreferenceResponse, error) {
	pref, err := s.repo.FindPreference(ctx, ownerEmail)
	if err != nil {
		// No stored row yet; report the defaults
		return &dto.OwnerPreferenceResponse{
			OwnerEmail:         ownerEmail,
			EmailNotifications: true,
		}, nil
	}
	return preferenceToResponse(pref), nil
}

func (s *ownerService) UpsertPreference(ctx context.Context, ownerEmail string, req dto.UpsertOwnerPreferenceRequest) (*dto.OwnerPreferenceResponse, error) {
	pref := &model.OwnerPreference{
		OwnerEmail:         ownerEmail,
		EmailNotifications: true,
	}
	if existing, err := s.repo.FindPreference(ctx, ownerEmail); err == nil {
		pref = existing
	}

	if req.OwnerPhone != nil {
		pref.OwnerPhone = req.OwnerPhone
	}
	if req.EmailNotifications != nil {
		pref.EmailNotifications = *req.EmailNotifications
	}
	if req.WhatsappNotifications != nil {
		pref.WhatsappNotifications = *req.WhatsappNotifications
	}
	if req.SMSNotifications != nil {
		pref.SMSNotifications = *req.SMSNotifications
	}

	if err := s.repo.UpsertPreference(ctx, pref); err != nil {
		return nil, err
	}
	return preferenceToResponse(pref), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func retestToResponse(rr *model.RetestRequest) *dto.RetestRequestResponse {
	return &dto.RetestRequestResponse{
		ID:            rr.ID.String(),
		ReportID:      rr.ReportID.String(),
		OwnerEmail:    rr.OwnerEmail,
		OwnerPhone:    rr.OwnerPhone,
		Remarks:       rr.Remarks,
		Status:        rr.Status,
		AdminResponse: rr.AdminResponse,
		CreatedAt:     rr.CreatedAt.Format(time.RFC3339),
	}
}

func preferenceToResponse(pref *model.OwnerPreference) *dto.OwnerPreferenceResponse {
	return &dto.OwnerPreferenceResponse{
		OwnerEmail:            pref.OwnerEmail,
		OwnerPhone:            pref.OwnerPhone,
		EmailNotifications:    pref.EmailNotifications,
		WhatsappNotifications: pref.WhatsappNotifications,
		SMSNotifications:      pref.SMSNotifications,
	}
}
