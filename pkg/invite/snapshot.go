// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package invite

// Record is a single invite code as reported by the chat platform.
// Identity is the code, scoped to one guild.
type Record struct {
	Code      string
	InviterID string // empty when the platform generated the invite
	Uses      int
}

// HasInviter reports whether the invite has a concrete owning user.
func (r Record) HasInviter() bool {
	return r.InviterID != ""
}

// Snapshot is the set of invite codes of one guild at a point in time.
// It keeps the order in which records were added; Resolve walks that order.
type Snapshot struct {
	codes   []string
	records map[string]Record
}

// NewSnapshot builds a snapshot from records in the given order.
// A repeated code replaces the earlier record but keeps its position.
func NewSnapshot(records ...Record) Snapshot {
	s := Snapshot{
		codes:   make([]string, 0, len(records)),
		records: make(map[string]Record, len(records)),
	}
	for _, r := range records {
		if _, exists := s.records[r.Code]; !exists {
			s.codes = append(s.codes, r.Code)
		}
		s.records[r.Code] = r
	}
	return s
}

// Get returns the record for a code.
func (s Snapshot) Get(code string) (Record, bool) {
	r, ok := s.records[code]
	return r, ok
}

// Codes returns the codes in snapshot order.
func (s Snapshot) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Records returns the records in snapshot order.
func (s Snapshot) Records() []Record {
	out := make([]Record, 0, len(s.codes))
	for _, code := range s.codes {
		out = append(out, s.records[code])
	}
	return out
}

// Len returns the number of codes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.codes)
}
