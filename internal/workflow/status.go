package workflow

import (
	"fmt"

	"labtrack/internal/model"
)

// testTransitions is the allowed-move table for a lab test's execution status.
// NEEDS_RETEST and ON_HOLD may re-enter IN_PROGRESS; COMPLETED and FAILED are
// terminal for the execution axis.
var testTransitions = map[string][]string{
	model.TestQueued:      {model.TestInProgress},
	model.TestInProgress:  {model.TestCompleted, model.TestFailed, model.TestNeedsRetest, model.TestOnHold},
	model.TestNeedsRetest: {model.TestInProgress},
	model.TestOnHold:      {model.TestInProgress},
}

// labReportRank orders the report drafting statuses; moves must be forward.
var labReportRank = map[string]int{
	model.LabReportNotStarted: 0,
	model.LabReportDraft:      1,
	model.LabReportReady:      2,
	model.LabReportSignedOff:  3,
}

// finalTransitions is the report approval workflow.
var finalTransitions = map[string][]string{
	model.FinalDraft:            {model.FinalReadyForApproval},
	model.FinalReadyForApproval: {model.FinalApproved, model.FinalRejected},
}

// invoiceTransitions is the billing lifecycle. Any non-terminal status may be
// marked paid or cancelled; the issue and send steps may be skipped. PAID and
// CANCELLED have no way out.
var invoiceTransitions = map[string][]string{
	model.InvoiceDraft:  {model.InvoiceIssued, model.InvoiceSent, model.InvoicePaid, model.InvoiceCancelled},
	model.InvoiceIssued: {model.InvoiceSent, model.InvoicePaid, model.InvoiceCancelled},
	model.InvoiceSent:   {model.InvoicePaid, model.InvoiceCancelled},
}

func allowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTestStatus validates a test_status move.
func CheckTestStatus(from, to string) error {
	if from == to {
		return nil
	}
	if !allowed(testTransitions, from, to) {
		return fmt.Errorf("test status cannot move from %s to %s", from, to)
	}
	return nil
}

// CheckLabReportStatus validates a lab_report_status move. The drafting axis
// is monotonic; SIGNED_OFF additionally requires the test to be COMPLETED.
func CheckLabReportStatus(from, to, testStatus string) error {
	fromRank, ok := labReportRank[from]
	if !ok {
		return fmt.Errorf("unknown lab report status %q", from)
	}
	toRank, ok := labReportRank[to]
	if !ok {
		return fmt.Errorf("unknown lab report status %q", to)
	}
	if toRank < fromRank {
		return fmt.Errorf("lab report status cannot regress from %s to %s", from, to)
	}
	if to == model.LabReportSignedOff && testStatus != model.TestCompleted {
		return fmt.Errorf("lab report cannot be signed off while the test is %s", testStatus)
	}
	return nil
}

// CheckFinalStatus validates a report final_status move.
func CheckFinalStatus(from, to string) error {
	if from == to {
		return nil
	}
	if !allowed(finalTransitions, from, to) {
		return fmt.Errorf("report status cannot move from %s to %s", from, to)
	}
	return nil
}

// CheckApproval validates the explicit approve action. Only a report in
// READY_FOR_APPROVAL can be approved, and an approver must be named.
func CheckApproval(currentStatus, approvedBy string) error {
	if approvedBy == "" {
		return fmt.Errorf("approved_by is required")
	}
	if currentStatus == model.FinalApproved {
		return fmt.Errorf("report is already approved")
	}
	if currentStatus != model.FinalReadyForApproval {
		return fmt.Errorf("report cannot be approved while it is %s", currentStatus)
	}
	return nil
}

// CheckInvoiceStatus validates an invoice status move.
func CheckInvoiceStatus(from, to string) error {
	if from == to {
		return nil
	}
	if !allowed(invoiceTransitions, from, to) {
		return fmt.Errorf("invoice status cannot move from %s to %s", from, to)
	}
	return nil
}

// InvoiceTerminal reports whether an invoice status admits no further moves.
func InvoiceTerminal(status string) bool {
	return status == model.InvoicePaid || status == model.InvoiceCancelled
}
