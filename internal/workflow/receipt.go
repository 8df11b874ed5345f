// Package workflow holds the pure domain rules for the sample lifecycle:
// receipt intake validation, the lab test / report / invoice state machines,
// and the transfer rules. No I/O; services call in here before touching
// the store.
package workflow

import "strings"

// ReceiptInput carries the cross-field data needed by the intake rule.
type ReceiptInput struct {
	ReceiverName     string
	ContactNumber    string
	Date             string
	Branch           string
	Company          string
	CountBoxes       int
	ReceivingMode    string
	ForwardToCentral bool
	AWBNo            *string
}

// ValidateReceipt checks the intake payload and returns field-scoped
// messages. The one cross-field rule in the system: the AWB number is
// required exactly when the shipment arrives by courier, or when a
// non-central branch forwards the sample to the central lab.
func ValidateReceipt(in ReceiptInput, centralBranch string) map[string]string {
	fields := make(map[string]string)

	if in.ReceiverName == "" {
		fields["receiver_name"] = "receiver name is required"
	}
	if in.ContactNumber == "" {
		fields["contact_number"] = "contact number is required"
	}
	if in.Date == "" {
		fields["date"] = "receipt date is required"
	}
	if in.Branch == "" {
		fields["branch"] = "branch is required"
	}
	if in.Company == "" {
		fields["company"] = "company is required"
	}
	if in.CountBoxes < 1 {
		fields["count_of_boxes"] = "box count must be at least 1"
	}
	if in.ReceivingMode != "PERSON" && in.ReceivingMode != "COURIER" {
		fields["receiving_mode"] = "receiving mode must be PERSON or COURIER"
	}

	if AWBRequired(in.ReceivingMode, in.Branch, in.ForwardToCentral, centralBranch) {
		if in.AWBNo == nil || *in.AWBNo == "" {
			fields["awb_no"] = "AWB number is required for courier shipments and central forwards"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// AWBRequired reports whether the intake payload must carry an AWB number.
// The branch comparison ignores case; intake forms capitalize inconsistently.
func AWBRequired(receivingMode, branch string, forwardToCentral bool, centralBranch string) bool {
	if receivingMode == "COURIER" {
		return true
	}
	return !strings.EqualFold(branch, centralBranch) && forwardToCentral
}
