package blackjack

// DefaultStandOn is the total at which the house dealer stops drawing.
const DefaultStandOn = 17

// DealerPolicy is the fixed drawing rule of the dealer.
type DealerPolicy struct {
	StandOn int
}

// DefaultDealerPolicy draws to 16 and stands on 17.
func DefaultDealerPolicy() DealerPolicy {
	return DealerPolicy{StandOn: DefaultStandOn}
}

// ShouldHit reports whether the dealer draws another card on score.
func (p DealerPolicy) ShouldHit(s Score) bool {
	total, ok := s.Total()
	return ok && total < p.StandOn
}
