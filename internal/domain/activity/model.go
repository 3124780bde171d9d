package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeRecordAdded     ActivityType = "record_added"
	TypeRecordDeleted   ActivityType = "record_deleted"
	TypeRecordsImported ActivityType = "records_imported"
	TypeRecordsExported ActivityType = "records_exported"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	RecordID     *int64       `json:"record_id,omitempty"`
	BatchID      string       `json:"batch_id,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
