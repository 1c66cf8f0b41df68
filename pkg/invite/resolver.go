// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package invite

// Attribution identifies the invite used by a new member and its owner.
type Attribution struct {
	InviterID string
	Code      string
}

// Resolve finds the invite whose use count increased between two snapshots.
//
// Codes are visited in the order of the old snapshot and the first code whose
// uses strictly increased decides the result. A code missing from the new
// snapshot is skipped (the invite may have been deleted on its last use). The
// inviter is read from the old snapshot only; if the first increased code has
// no inviter there the join is not attributed.
func Resolve(old, current Snapshot) (*Attribution, bool) {
	for _, code := range old.codes {
		before := old.records[code]
		after, ok := current.records[code]
		if !ok {
			continue
		}
		if after.Uses <= before.Uses {
			continue
		}

		if before.InviterID == "" {
			return nil, false
		}
		return &Attribution{InviterID: before.InviterID, Code: code}, true
	}
	return nil, false
}
