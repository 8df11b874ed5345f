package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateReceiptRequest struct {
	ReceiverName     string `json:"receiver_name"  validate:"required,max=255"`
	ContactNumber    string `json:"contact_number" validate:"required,max=50"`
	Date             string `json:"date"           validate:"required,datetime=2006-01-02"`
	Branch           string `json:"branch"         validate:"required,max=100"`
	Company          string `json:"company"        validate:"required,max=255"`
	CountOfBoxes     int    `json:"count_of_boxes" validate:"required,min=1"`
	ReceivingMode    string `json:"receiving_mode" validate:"required,oneof=PERSON COURIER"`
	ForwardToCentral bool   `json:"forward_to_central"`
	// AWBNo is conditionally required, see the workflow intake rule
	AWBNo *string `json:"awb_no" validate:"omitempty,max=100"`
}

type UpdateReceiptRequest struct {
	ReceiverName     *string `json:"receiver_name"  validate:"omitempty,max=255"`
	ContactNumber    *string `json:"contact_number" validate:"omitempty,max=50"`
	Date             *string `json:"date"           validate:"omitempty,datetime=2006-01-02"`
	Branch           *string `json:"branch"         validate:"omitempty,max=100"`
	Company          *string `json:"company"        validate:"omitempty,max=255"`
	CountOfBoxes     *int    `json:"count_of_boxes" validate:"omitempty,min=1"`
	ReceivingMode    *string `json:"receiving_mode" validate:"omitempty,oneof=PERSON COURIER"`
	ForwardToCentral *bool   `json:"forward_to_central"`
	AWBNo            *string `json:"awb_no" validate:"omitempty,max=100"`
}

// ReceiptFilter is bound from the query string of GET /v1/receipts.
type ReceiptFilter struct {
	Branch   string `form:"branch"`
	Receiver string `form:"receiver"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReceiptResponse struct {
	ID               string  `json:"id"`
	ReceiverName     string  `json:"receiver_name"`
	ContactNumber    string  `json:"contact_number"`
	Date             string  `json:"date"`
	Branch           string  `json:"branch"`
	Company          string  `json:"company"`
	CountOfBoxes     int     `json:"count_of_boxes"`
	ReceivingMode    string  `json:"receiving_mode"`
	ForwardToCentral bool    `json:"forward_to_central"`
	AWBNo            *string `json:"awb_no"`
	TrackingNumber   string  `json:"tracking_number"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type ReceiptListResponse struct {
	Data  []ReceiptResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ReceiptStatsResponse summarizes intake volume for the dashboard.
type ReceiptStatsResponse struct {
	TotalReceipts      int64            `json:"total_receipts"`
	ByReceivingMode    map[string]int64 `json:"by_receiving_mode"`
	ByBranch           map[string]int64 `json:"by_branch"`
	WithAWB            int64            `json:"with_awb"`
	ForwardedToCentral int64            `json:"forwarded_to_central"`
}
