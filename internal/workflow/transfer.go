package workflow

// TransferInput carries the fields of a lab test reassignment.
type TransferInput struct {
	CurrentPerson string
	FromUser      string
	ToUser        string
	Reason        string
}

// ValidateTransfer enforces the reassignment rules: the initiator must be the
// current lab person, the target must be someone else, and a reason is
// mandatory because the transfer row is an immutable audit record.
func ValidateTransfer(in TransferInput) map[string]string {
	fields := make(map[string]string)

	if in.FromUser == "" {
		fields["from_user"] = "from_user is required"
	} else if in.FromUser != in.CurrentPerson {
		fields["from_user"] = "from_user must be the current lab person"
	}
	if in.ToUser == "" {
		fields["to_user"] = "to_user is required"
	} else if in.ToUser == in.FromUser {
		fields["to_user"] = "to_user must differ from from_user"
	}
	if in.Reason == "" {
		fields["reason"] = "a transfer reason is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
