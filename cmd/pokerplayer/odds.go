package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kevsman/pokerplayer/internal/equity"
	"github.com/kevsman/pokerplayer/poker"
)

// OddsCmd runs a standalone equity estimate for a hand against a number of
// random opponents.
type OddsCmd struct {
	Hole       string `kong:"arg,help='Hole cards, e.g. AsKd'"`
	Board      string `kong:"short='b',help='Community cards, e.g. Td7s8h'"`
	Opponents  int    `kong:"short='o',default='1',help='Number of opponents'"`
	Iterations int    `kong:"short='i',default='10000',help='Monte Carlo iterations'"`
	Seed       *int64 `kong:"help='Random seed for reproducible results'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *OddsCmd) Run() error {
	logger := setupLogger("info", c.Debug)

	hole := splitCards(c.Hole)
	if len(hole) != 2 {
		return fmt.Errorf("expected 2 hole cards, got %d", len(hole))
	}
	board := splitCards(c.Board)
	if len(board) > 5 {
		return fmt.Errorf("board cannot have more than 5 cards")
	}
	if _, err := poker.ParseCards(append(append([]string{}, hole...), board...)); err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	}

	calc := equity.NewCalculator(logger, seed)
	start := time.Now()
	result := calc.Calculate(context.Background(), hole, board, c.Opponents, c.Iterations)
	elapsed := time.Since(start)

	eval := poker.EvaluateBestHand(hole, board)
	fmt.Printf("%s %s\n", labelStyle.Render("Hand:"), handStyle.Render(eval.Description))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Win:\t%.1f%%\n", result.WinProbability*100)
	fmt.Fprintf(w, "Tie:\t%.1f%%\n", result.TieProbability*100)
	fmt.Fprintf(w, "Equity:\t%.1f%%\n", result.Equity*100)
	if len(board) >= 3 && len(board) < 5 {
		fmt.Fprintf(w, "Outs:\t%d\n", equity.EstimateOuts(hole, board))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Debug("simulation complete", "trials", result.Simulations, "elapsed", elapsed)
	return nil
}

// splitCards tokenizes card input, accepting both spaced ("As Kd") and
// compact ("AsKd") forms, with letter or symbol suits and "10" for tens.
func splitCards(input string) []string {
	var cards []string
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	for _, tok := range fields {
		var cur strings.Builder
		for _, r := range tok {
			cur.WriteRune(r)
			switch r {
			case 's', 'h', 'd', 'c', '♠', '♥', '♦', '♣':
				cards = append(cards, cur.String())
				cur.Reset()
			}
		}
		if cur.Len() > 0 {
			cards = append(cards, cur.String())
		}
	}
	return cards
}
