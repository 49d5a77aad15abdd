package simulator

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/statistics"
)

// WriteSummary prints a readable summary of simulation results
func WriteSummary(w io.Writer, stats *statistics.Statistics, label string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (%s) ===\n", label)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Player wins:   %d (%.2f%%)\n", stats.PlayerWins, 100*stats.Rate(stats.PlayerWins))
	fmt.Fprintf(w, "Dealer wins:   %d (%.2f%%)\n", stats.DealerWins, 100*stats.Rate(stats.DealerWins))
	fmt.Fprintf(w, "Pushes:        %d (%.2f%%)\n", stats.Pushes, 100*stats.Rate(stats.Pushes))

	fmt.Fprintf(w, "\n=== NET RESULT ===\n")
	fmt.Fprintf(w, "Mean: %+.4f per round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%+.4f, %+.4f]\n", low, high)

	fmt.Fprintf(w, "\n=== HANDS ===\n")
	fmt.Fprintf(w, "Player busts: %d (%.2f%%)\n", stats.PlayerBusts, 100*stats.Rate(stats.PlayerBusts))
	fmt.Fprintf(w, "Player blackjacks: %d, dealer blackjacks: %d\n", stats.PlayerBlackjacks, stats.DealerBlackjacks)

	fmt.Fprintf(w, "\n=== DEALER FINAL TOTALS ===\n")
	for total := 0; total <= blackjack.Target; total++ {
		n := stats.DealerFinal(blackjack.Points(total))
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "%d: %d (%.2f%%)\n", total, n, 100*stats.Rate(n))
	}
	fmt.Fprintf(w, "bust: %d (%.2f%%)\n", stats.DealerBusts, 100*stats.Rate(stats.DealerBusts))
}
