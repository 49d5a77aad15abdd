package statistics

import (
	"fmt"
	"math"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Round           int               // Index of the round within the run
	Seed            uint64            // Generator seed for this round (for replay)
	Outcome         blackjack.Outcome // Result from the player's side
	Player          blackjack.Score   // Player's final score
	Dealer          blackjack.Score   // Dealer's final score
	PlayerCards     int               // Cards held by the player at the end
	DealerCards     int               // Cards held by the dealer at the end
	PlayerBlackjack bool              // Player was dealt a natural
	DealerBlackjack bool              // Dealer was dealt a natural
}

// NewRoundResult records a finished round. Naturals are judged on the first
// two cards of each hand since the dealer may have drawn more after the deal.
func NewRoundResult(index int, seed uint64, r *blackjack.Round, outcome blackjack.Outcome) RoundResult {
	return RoundResult{
		Round:           index,
		Seed:            seed,
		Outcome:         outcome,
		Player:          r.Player().Value(),
		Dealer:          r.Dealer().Value(),
		PlayerCards:     r.Player().Len(),
		DealerCards:     r.Dealer().Len(),
		PlayerBlackjack: r.Player().IsBlackjack(),
		DealerBlackjack: isNatural(r.Dealer()),
	}
}

func isNatural(h *blackjack.Hand) bool {
	cards := h.Cards()
	if len(cards) < 2 {
		return false
	}
	total, ok := blackjack.Evaluate(cards[:2]).Total()
	return ok && total == blackjack.Target
}

// bustSlot indexes DealerFinals for a bust dealer.
const bustSlot = blackjack.Target + 1

// Statistics aggregates simulated rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64 // Sum of squares for variance calculation

	PlayerWins int
	DealerWins int
	Pushes     int

	PlayerBusts      int
	DealerBusts      int
	PlayerBlackjacks int
	DealerBlackjacks int

	// DealerFinals counts dealer final totals; index 22 counts busts.
	DealerFinals [bustSlot + 1]int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(r RoundResult) {
	net := float64(r.Outcome.Net())
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net

	switch r.Outcome {
	case blackjack.PlayerWins:
		s.PlayerWins++
	case blackjack.DealerWins:
		s.DealerWins++
	default:
		s.Pushes++
	}

	if r.Player.IsBust() {
		s.PlayerBusts++
	}
	if total, ok := r.Dealer.Total(); ok {
		s.DealerFinals[total]++
	} else {
		s.DealerBusts++
		s.DealerFinals[bustSlot]++
	}
	if r.PlayerBlackjack {
		s.PlayerBlackjacks++
	}
	if r.DealerBlackjack {
		s.DealerBlackjacks++
	}
}

// Merge folds the counts of o into s. Workers keep private Statistics and
// merge them once they finish.
func (s *Statistics) Merge(o *Statistics) {
	s.Rounds += o.Rounds
	s.SumNet += o.SumNet
	s.SumNet2 += o.SumNet2
	s.PlayerWins += o.PlayerWins
	s.DealerWins += o.DealerWins
	s.Pushes += o.Pushes
	s.PlayerBusts += o.PlayerBusts
	s.DealerBusts += o.DealerBusts
	s.PlayerBlackjacks += o.PlayerBlackjacks
	s.DealerBlackjacks += o.DealerBlackjacks
	for i := range s.DealerFinals {
		s.DealerFinals[i] += o.DealerFinals[i]
	}
}

// Mean returns the average net result per round (+1 win, -1 loss, 0 push)
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the net result
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Rate returns n as a fraction of all rounds
func (s *Statistics) Rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// DealerFinal returns how often the dealer finished on total. Pass
// blackjack.Bust to count busts.
func (s *Statistics) DealerFinal(score blackjack.Score) int {
	total, ok := score.Total()
	if !ok {
		return s.DealerFinals[bustSlot]
	}
	if total < 0 || total > blackjack.Target {
		return 0
	}
	return s.DealerFinals[total]
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if total := s.PlayerWins + s.DealerWins + s.Pushes; total != s.Rounds {
		return fmt.Errorf("outcomes total (%d) does not match rounds (%d)", total, s.Rounds)
	}

	if net := float64(s.PlayerWins - s.DealerWins); math.Abs(net-s.SumNet) > 1e-6 {
		return fmt.Errorf("ledger mismatch: wins-losses=%.0f, SumNet=%.6f", net, s.SumNet)
	}

	finals := 0
	for _, n := range s.DealerFinals {
		finals += n
	}
	if finals != s.Rounds {
		return fmt.Errorf("dealer finals total (%d) does not match rounds (%d)", finals, s.Rounds)
	}
	if s.DealerFinals[bustSlot] != s.DealerBusts {
		return fmt.Errorf("dealer busts (%d) do not match bust finals (%d)", s.DealerBusts, s.DealerFinals[bustSlot])
	}

	return nil
}
