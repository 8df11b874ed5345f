package dto

// ─── Tracking ────────────────────────────────────────────────────────────────

// TrackFilter is bound from the query string of GET /v1/owner/track.
// Exactly one of the lookup keys must be present.
type TrackFilter struct {
	AWB      string `form:"awb"`
	Receipt  string `form:"receipt"`
	Invoice  string `form:"invoice"`
	Tracking string `form:"tracking"`
}

// TimelineStep is one entry of the owner-facing progress timeline.
type TimelineStep struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Done      bool    `json:"done"`
	Current   bool    `json:"current"`
	Timestamp *string `json:"timestamp"`
}

type TrackReceiptInfo struct {
	ID               string  `json:"id"`
	ReceiverName     string  `json:"receiver_name"`
	Branch           string  `json:"branch"`
	Company          string  `json:"company"`
	ReceivingMode    string  `json:"receiving_mode"`
	ForwardToCentral bool    `json:"forward_to_central"`
	AWBNo            *string `json:"awb_no"`
	TrackingNumber   string  `json:"tracking_number"`
	CreatedAt        string  `json:"created_at"`
}

type TrackResponse struct {
	CurrentStep string           `json:"current_step"`
	ReceiptInfo TrackReceiptInfo `json:"receipt_info"`
	Timeline    []TimelineStep   `json:"timeline"`
}

// ─── Retest requests ─────────────────────────────────────────────────────────

type CreateRetestRequest struct {
	ReportID   string  `json:"report_id"   validate:"required,uuid"`
	OwnerEmail string  `json:"owner_email" validate:"required,email"`
	OwnerPhone *string `json:"owner_phone" validate:"omitempty,max=20"`
	Remarks    string  `json:"remarks"     validate:"required"`
}

type RespondRetestRequest struct {
	Status        string  `json:"status" validate:"required,oneof=APPROVED REJECTED COMPLETED"`
	AdminResponse *string `json:"admin_response"`
}

type RetestRequestResponse struct {
	ID            string  `json:"id"`
	ReportID      string  `json:"report_id"`
	OwnerEmail    string  `json:"owner_email"`
	OwnerPhone    *string `json:"owner_phone"`
	Remarks       string  `json:"remarks"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"admin_response"`
	CreatedAt     string  `json:"created_at"`
}

// ─── Owner preferences ───────────────────────────────────────────────────────

type UpsertOwnerPreferenceRequest struct {
	OwnerPhone            *string `json:"owner_phone" validate:"omitempty,max=20"`
	EmailNotifications    *bool   `json:"email_notifications"`
	WhatsappNotifications *bool   `json:"whatsapp_notifications"`
	SMSNotifications      *bool   `json:"sms_notifications"`
}

type OwnerPreferenceResponse struct {
	OwnerEmail            string  `json:"owner_email"`
	OwnerPhone            *string `json:"owner_phone"`
	EmailNotifications    bool    `json:"email_notifications"`
	WhatsappNotifications bool    `json:"whatsapp_notifications"`
	SMSNotifications      bool    `json:"sms_notifications"`
}
