package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/kevsman/pokerplayer/advisor"
	"github.com/kevsman/pokerplayer/internal/config"
	"github.com/kevsman/pokerplayer/poker"
)

// AdviseCmd reads a table snapshot and prints the advised action.
type AdviseCmd struct {
	Snapshot string `kong:"arg,optional,default='-',help='Snapshot JSON file, or - for stdin'"`
	Player   *int   `kong:"short='p',help='Index of the player to advise (default: the player whose turn it is)'"`
	JSON     bool   `kong:"help='Print the decision as JSON'"`
	Config   string `kong:"default='advisor.hcl',env='POKERPLAYER_CONFIG',help='Path to the HCL config file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	foldStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	checkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	raiseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func (c *AdviseCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Logging.Level, c.Debug)

	table, err := readSnapshot(c.Snapshot)
	if err != nil {
		return err
	}

	index := -1
	if c.Player != nil {
		index = *c.Player
	} else {
		for i, p := range table.Players {
			if p.HasTurn {
				index = i
				break
			}
		}
	}
	if index < 0 || index >= len(table.Players) {
		return fmt.Errorf("no player to advise for (use --player)")
	}

	engine, err := advisor.NewEngine(advisor.Config{
		BigBlind:                 cfg.Game.BigBlind,
		SmallBlind:               cfg.Game.SmallBlind,
		TournamentLevel:          cfg.Game.TournamentLevel,
		PreflopAggression:        cfg.Strategy.PreflopAggression,
		PostflopAggression:       cfg.Strategy.PostflopAggression,
		BluffFrequency:           cfg.Strategy.BluffFrequency,
		SemiBluffFrequency:       cfg.Strategy.SemiBluffFrequency,
		ContinuationBetFrequency: cfg.Strategy.ContinuationBetFrequency,
		Simulations:              cfg.Strategy.EquitySimulations,
		Seed:                     cfg.Strategy.EquitySeed,
	}, logger)
	if err != nil {
		return err
	}

	decision, err := engine.MakeDecision(context.Background(), table, index)
	if err != nil {
		return err
	}

	if c.JSON {
		out, err := json.Marshal(decision)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	player := table.Players[index]
	eval := poker.EvaluateBestHand(player.Hand, table.CommunityCards)
	fmt.Printf("%s %s\n", labelStyle.Render("Hand:"), handStyle.Render(eval.Description))
	fmt.Printf("%s %s\n", labelStyle.Render("Advice:"), renderDecision(decision))
	return nil
}

func renderDecision(d advisor.Decision) string {
	switch d.Action {
	case poker.ActionFold:
		return foldStyle.Render("FOLD")
	case poker.ActionCheck:
		return checkStyle.Render("CHECK")
	case poker.ActionCall:
		return checkStyle.Render(fmt.Sprintf("CALL %.2f", d.Amount))
	case poker.ActionRaise:
		return raiseStyle.Render(fmt.Sprintf("RAISE to %.2f", d.Amount))
	default:
		return d.Action.String()
	}
}

func readSnapshot(path string) (*advisor.TableSnapshot, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var table advisor.TableSnapshot
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &table, nil
}
