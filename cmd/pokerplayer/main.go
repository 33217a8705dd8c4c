package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Advise  AdviseCmd        `cmd:"" help:"Advise an action for a table snapshot"`
	Serve   ServeCmd         `cmd:"" help:"Run the advisory WebSocket server"`
	Odds    OddsCmd          `cmd:"" help:"Estimate hand equity and outs"`
}

func main() {
	// Optional .env for local overrides; a missing file is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerplayer"),
		kong.Description("Poker decision advisor: equity, opponent modeling, and bet sizing"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
