package pairing

// QCS bands for feed diversification. Candidates are bucketed by their own
// score, not the requester's.
type qcsBand struct {
	min int // exclusive, except the lowest band which includes 0
	max int // inclusive
}

var feedBands = [4]qcsBand{
	{min: 80, max: 100},
	{min: 60, max: 80},
	{min: 40, max: 60},
	{min: 0, max: 40},
}

// bandQuotas derives per-band slot counts from the target size at the fixed
// 20/30/20/30 proportions; the lowest band absorbs rounding remainder.
func bandQuotas(targetSize int) [4]int {
	var quotas [4]int
	quotas[0] = targetSize * 2 / 10
	quotas[1] = targetSize * 3 / 10
	quotas[2] = targetSize * 2 / 10
	quotas[3] = targetSize - quotas[0] - quotas[1] - quotas[2]
	return quotas
}

func (b qcsBand) contains(qcs int) bool {
	if b.min == 0 {
		return qcs >= 0 && qcs <= b.max
	}
	return qcs > b.min && qcs <= b.max
}

// Distribute buckets candidates into QCS bands and fills each band's quota in
// pool order. Short bands are not backfilled from other bands; the result is
// simply truncated to targetSize.
func Distribute(candidates []*Candidate, targetSize int) []*Candidate {
	if targetSize < 1 {
		return nil
	}

	quotas := bandQuotas(targetSize)
	selected := make([]*Candidate, 0, targetSize)

	for i, band := range feedBands {
		taken := 0
		for _, candidate := range candidates {
			if taken >= quotas[i] || len(selected) >= targetSize {
				break
			}
			if band.contains(candidate.QCS) {
				selected = append(selected, candidate)
				taken++
			}
		}
	}

	if len(selected) > targetSize {
		selected = selected[:targetSize]
	}
	return selected
}
