package chat

import "time"

// Role tags a transcript turn with its speaker.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Valid reports whether the role is one of the two known speakers.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAI
}

// Turn is one message in the session transcript. Immutable once appended.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is the portable form of a turn used by the save/load document.
// IDs and timestamps are deliberately dropped so exported logs stay stable
// across sessions.
type Record struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ToRecords projects turns into their portable form, preserving order.
func ToRecords(turns []Turn) []Record {
	records := make([]Record, 0, len(turns))
	for _, turn := range turns {
		records = append(records, Record{Role: turn.Role, Text: turn.Text})
	}
	return records
}
