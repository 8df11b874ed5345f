package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateLabTestRequest struct {
	ReceiptID string  `json:"receipt_id" validate:"required,uuid"`
	LabDocNo  string  `json:"lab_doc_no" validate:"required,max=100"`
	LabPerson string  `json:"lab_person" validate:"required,max=255"`
	Remarks   *string `json:"remarks"`
}

type UpdateLabTestRequest struct {
	TestStatus      *string `json:"test_status"       validate:"omitempty,oneof=QUEUED IN_PROGRESS COMPLETED FAILED NEEDS_RETEST ON_HOLD"`
	LabReportStatus *string `json:"lab_report_status" validate:"omitempty,oneof=NOT_STARTED DRAFT READY SIGNED_OFF"`
	Remarks         *string `json:"remarks"`
}

type TransferLabTestRequest struct {
	FromUser string `json:"from_user" validate:"required,max=255"`
	ToUser   string `json:"to_user"   validate:"required,max=255"`
	Reason   string `json:"reason"    validate:"required"`
}

// LabTestFilter is bound from the query string of GET /v1/labtests.
type LabTestFilter struct {
	Status    string `form:"status"     validate:"omitempty,oneof=QUEUED IN_PROGRESS COMPLETED FAILED NEEDS_RETEST ON_HOLD"`
	ReceiptID string `form:"receipt_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LabTestResponse struct {
	ID              string  `json:"id"`
	ReceiptID       string  `json:"receipt_id"`
	LabDocNo        string  `json:"lab_doc_no"`
	LabPerson       string  `json:"lab_person"`
	TestStatus      string  `json:"test_status"`
	LabReportStatus string  `json:"lab_report_status"`
	Remarks         *string `json:"remarks"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type LabTransferResponse struct {
	ID            string `json:"id"`
	LabTestID     string `json:"labtest_id"`
	FromUser      string `json:"from_user"`
	ToUser        string `json:"to_user"`
	Reason        string `json:"reason"`
	TransferredAt string `json:"transferred_at"`
}

// LabTestDetailResponse includes the transfer audit trail.
type LabTestDetailResponse struct {
	LabTestResponse
	Transfers []LabTransferResponse `json:"transfers"`
}

type LabTestListResponse struct {
	Data  []LabTestResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
