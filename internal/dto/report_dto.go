package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateReportRequest struct {
	LabTestID   string  `json:"labtest_id"   validate:"required,uuid"`
	FinalStatus *string `json:"final_status" validate:"omitempty,oneof=DRAFT READY_FOR_APPROVAL"`
	CommChannel *string `json:"comm_channel" validate:"omitempty,oneof=COURIER IN_PERSON EMAIL"`
}

type UpdateReportRequest struct {
	FinalStatus            *string `json:"final_status" validate:"omitempty,oneof=DRAFT READY_FOR_APPROVAL APPROVED REJECTED"`
	RetestingRequested     *bool   `json:"retesting_requested"`
	CommStatus             *string `json:"comm_status"  validate:"omitempty,oneof=PENDING DISPATCHED DELIVERED"`
	CommChannel            *string `json:"comm_channel" validate:"omitempty,oneof=COURIER IN_PERSON EMAIL"`
	CommunicatedToAccounts *bool   `json:"communicated_to_accounts"`
}

type ApproveReportRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required,max=255"`
}

// ReportFilter is bound from the query string of GET /v1/reports.
type ReportFilter struct {
	FinalStatus string `form:"final_status" validate:"omitempty,oneof=DRAFT READY_FOR_APPROVAL APPROVED REJECTED"`
	LabTestID   string `form:"labtest_id"   validate:"omitempty,uuid"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReportResponse struct {
	ID                     string  `json:"id"`
	LabTestID              string  `json:"labtest_id"`
	RetestingRequested     bool    `json:"retesting_requested"`
	FinalStatus            string  `json:"final_status"`
	ApprovedBy             *string `json:"approved_by"`
	CommStatus             string  `json:"comm_status"`
	CommChannel            string  `json:"comm_channel"`
	CommunicatedToAccounts bool    `json:"communicated_to_accounts"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`

	// Flattened lab test + receipt context for list/detail views
	ReceiptID       *string `json:"receipt_id,omitempty"`
	LabDocNo        *string `json:"lab_doc_no,omitempty"`
	LabPerson       *string `json:"lab_person,omitempty"`
	TestStatus      *string `json:"test_status,omitempty"`
	LabReportStatus *string `json:"lab_report_status,omitempty"`
	ReceiverName    *string `json:"receiver_name,omitempty"`
	Branch          *string `json:"branch,omitempty"`
	Company         *string `json:"company,omitempty"`
}

type ReportListResponse struct {
	Data  []ReportResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
