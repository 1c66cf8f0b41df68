// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rank

import (
	"fmt"
)

// Tier is an ordered reward level: None < Gold < Platinum.
type Tier int

const (
	TierNone Tier = iota
	TierGold
	TierPlatinum
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "None"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier maps a display name back to a tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "None", "none", "":
		return TierNone, nil
	case "Gold", "gold":
		return TierGold, nil
	case "Platinum", "platinum":
		return TierPlatinum, nil
	}
	return TierNone, fmt.Errorf("unknown tier: %q", s)
}

// Thresholds are the credit counts needed for each tier. Gold <= Platinum.
type Thresholds struct {
	Gold     int
	Platinum int
}

// Validate checks the threshold ordering.
func (t Thresholds) Validate() error {
	if t.Gold <= 0 {
		return fmt.Errorf("gold threshold must be positive, got %d", t.Gold)
	}
	if t.Platinum < t.Gold {
		return fmt.Errorf("platinum threshold %d is below gold threshold %d", t.Platinum, t.Gold)
	}
	return nil
}

// For returns the threshold of a tier; TierNone needs nothing.
func (t Thresholds) For(tier Tier) int {
	switch tier {
	case TierGold:
		return t.Gold
	case TierPlatinum:
		return t.Platinum
	default:
		return 0
	}
}

// RoleSet maps tiers to platform role IDs.
type RoleSet struct {
	Initiate string
	Gold     string
	Platinum string
}

// RoleFor returns the role ID of a reward tier, empty for TierNone.
func (r RoleSet) RoleFor(tier Tier) string {
	switch tier {
	case TierGold:
		return r.Gold
	case TierPlatinum:
		return r.Platinum
	default:
		return ""
	}
}

// HeldTier derives the tier a member currently holds from their role IDs.
// Role membership is the source of truth for past promotions; the highest
// held reward role wins.
func (r RoleSet) HeldTier(roleIDs []string) Tier {
	held := TierNone
	for _, id := range roleIDs {
		switch {
		case id == "":
			continue
		case id == r.Platinum:
			return TierPlatinum
		case id == r.Gold:
			held = TierGold
		}
	}
	return held
}
