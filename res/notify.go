package res

const (
	COURSE_SHEET = "course"
	PT_SHEET     = "pt"
	SEE_SHEET    = "see"
	NAMELIST     = "namelist"
	SEMESTER     = "semester"
	BATCH        = "batch"
)

const (
	CREATED = "created"
	UPDATED = "updated"
	DELETED = "deleted"
)

// Payload of attainment.sheet_updated
type SheetEvent struct {
	ID       string `json:"_id"`
	User     string `json:"user"`
	Semester string `json:"semester,omitempty"`
	Kind     string `json:"kind"`
	Action   string `json:"action"`
}

// Payload of attainment.published
type PublishedReport struct {
	User     string `json:"user"`
	Batch    string `json:"batch"`
	Semester string `json:"semester"`
	Key      string `json:"key"`
	URL      string `json:"url"`
}
