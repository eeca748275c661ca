// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared between the retitle stages.
package types

// Column names the transform reads or writes. Every other column in the input
// passes through untouched.
const (
	ColConversationID  = "conversation_id"
	ColTitle           = "title"
	ColFirstName       = "first_name"
	ColTopic           = "topic"
	ColPrimaryEmotions = "primary_emotions"
	ColEmotion         = "emotion"
	ColNotes           = "notes"
)

// Record is one CSV data row keyed by header column name.
type Record map[string]string

// Get returns the value for key, or "" when the key is absent.
func (r Record) Get(key string) string {
	return r[key]
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Values returns the record's values in the given column order. Columns the
// record does not carry are emitted as empty strings.
func (r Record) Values(columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = r[c]
	}
	return row
}
