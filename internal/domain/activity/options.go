package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	RecordID     *int64
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
