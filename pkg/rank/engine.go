// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rank

// Decision is the role transition computed for one evaluation.
// Grant and Revoke are TierNone when no change of that kind is due.
type Decision struct {
	Target   Tier
	Grant    Tier
	Revoke   Tier
	Announce bool
}

// Changed reports whether the decision touches any role.
func (d Decision) Changed() bool {
	return d.Grant != TierNone || d.Revoke != TierNone
}

// Evaluate decides the role transition for a credit count and the tier the
// member currently holds. It is a one-way ratchet: there is no demotion.
func Evaluate(credit int, held Tier, th Thresholds) Decision {
	if credit >= th.Platinum && held != TierPlatinum {
		d := Decision{Target: TierPlatinum, Grant: TierPlatinum, Announce: true}
		if held == TierGold {
			d.Revoke = TierGold
		}
		return d
	}

	if credit >= th.Gold && held != TierGold && held != TierPlatinum {
		return Decision{Target: TierGold, Grant: TierGold, Announce: true}
	}

	return Decision{Target: held}
}
