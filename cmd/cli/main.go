package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/daybook/internal/buildinfo"
	"github.com/dmitrijs2005/daybook/internal/cli"
	"github.com/dmitrijs2005/daybook/internal/config"
	"github.com/dmitrijs2005/daybook/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewDefault()

	app := cli.NewApp(cfg, log)

	if err := app.Command().ExecuteContext(ctx); err != nil {
		log.Error(ctx, "command failed", "error", err)
		os.Exit(1)
	}
}
