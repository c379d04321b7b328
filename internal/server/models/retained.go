package models

import "time"

// RetainedPlaintext is a debug copy of a record's content kept outside the
// envelope. It only exists when the server retains plaintext for debugging.
type RetainedPlaintext struct {
	RecordID  string
	Content   []byte
	UpdatedAt time.Time
}
