package record

import "strings"

// ValidateInput checks the fields required for a record to be stored.
// Comments are optional. Date and time formats are not checked, and an end
// time before the start time is accepted.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.Date) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.StartTime) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.EndTime) == "" {
		return ErrInvalidInput
	}
	return nil
}
