package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ide-config/internal/cli"
)

const (
	cmdName   = "ideconfig"
	shortDesc = "Point local IDE project settings at the devenv environment."
	longDesc  = `ideconfig patches the IDE settings in .idea/ so the editor uses the local
development environment:

  dataSources.xml  MySQL data source "neos-local" (DB_PORT, DB_USER)
  php.xml          PHP interpreter "PHP devenv.sh"
  workspace.xml    workspace interpreter selection
  misc.xml         Neos plugin enabled

Missing files are created. Unrelated settings are left untouched, and running
it again with the same environment changes nothing.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		stop()
		os.Exit(1)
	}
}
