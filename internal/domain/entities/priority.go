package entities

// PriorityTier is the categorical label shown next to a priority score.
type PriorityTier string

const (
	TierHighest PriorityTier = "Highest"
	TierHigh    PriorityTier = "High"
	TierMedium  PriorityTier = "Medium"
	TierNormal  PriorityTier = "Normal"
)

// TierForScore maps a numeric priority score to its tier. Lower bounds are
// inclusive: 70+ Highest, 50-69 High, 30-49 Medium, below 30 Normal.
func TierForScore(score int) PriorityTier {
	switch {
	case score >= 70:
		return TierHighest
	case score >= 50:
		return TierHigh
	case score >= 30:
		return TierMedium
	default:
		return TierNormal
	}
}

// PriorityBadges are boolean augmentations displayed alongside the score.
// They are independent of the numeric value.
type PriorityBadges struct {
	SingleMother bool `json:"singleMother"`
	Disabled     bool `json:"disabled"`
	Orphanage    bool `json:"orphanage"`
	LargeFamily  bool `json:"largeFamily"`
	LowIncome    bool `json:"lowIncome"`
}

// BadgesForUser derives the display badges from a receiver's attributes.
func BadgesForUser(u *User) PriorityBadges {
	return PriorityBadges{
		SingleMother: u.IsSingleMother,
		Disabled:     u.IsDisabled,
		Orphanage:    u.IsOrphanage,
		LargeFamily:  u.FamilySize > 5,
		LowIncome:    u.MonthlyIncomeRange == IncomeBelow30k,
	}
}

// ComputePriorityScore maps a verified receiver's declared attributes to a
// 0-100 need score. Income bracket contributes the base, demographic flags
// add fixed weights, and items already received this month reduce the score
// so allotment usage rotates donations across receivers.
func ComputePriorityScore(u *User) int {
	score := 0

	switch u.MonthlyIncomeRange {
	case IncomeBelow30k:
		score += 30
	case Income30kTo50k:
		score += 20
	case Income50kTo1L:
		score += 10
	}

	if u.IsSingleMother {
		score += 15
	}
	if u.IsDisabled {
		score += 15
	}
	if u.IsOrphanage {
		score += 20
	}

	if u.FamilySize > 5 {
		score += 15
	} else if u.FamilySize > 1 {
		extra := (u.FamilySize - 1) * 2
		if extra > 10 {
			extra = 10
		}
		score += extra
	}

	score -= u.ItemsReceivedThisMonth * 10

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// PriorityLevelForScore converts a 0-100 score to the 0-10 star level shown
// on profiles.
func PriorityLevelForScore(score int) int {
	return score / 10
}
