// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/cmd"
)

const gamejoltDoc = `
gamejolt exercises the game API from the command line. Every call is
signed with the private key held in the configuration file, which by
default is gamejolt.yaml in the current directory:

    game-id: 869827
    private-key: <the game private key>
    username: alice
    user-token: t0k3n

User scoped commands use the username and user-token from the file.
`

// NewSuperCommand returns the gamejolt command with all subcommands
// registered. A nil transport selects the default HTTP client.
func NewSuperCommand(transport api.Transport) *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:                 "gamejolt",
		Purpose:              "Call the game API",
		Doc:                  gamejoltDoc,
		DefaultLoggingConfig: "<root>=WARNING",
	})
	base := baseCommand{transport: transport}
	for _, c := range []cmd.Command{
		&timeCommand{baseCommand: base},
		&scoresCommand{baseCommand: base},
		&addScoreCommand{baseCommand: base},
		&rankCommand{baseCommand: base},
		&tablesCommand{baseCommand: base},
		&trophiesCommand{baseCommand: base},
		&achieveCommand{baseCommand: base},
		&authCommand{baseCommand: base},
		&sessionCommand{baseCommand: base},
		&dataGetCommand{dataCommand: dataCommand{baseCommand: base}},
		&dataSetCommand{dataCommand: dataCommand{baseCommand: base}},
		&dataUpdateCommand{dataCommand: dataCommand{baseCommand: base}},
		&dataRemoveCommand{dataCommand: dataCommand{baseCommand: base}},
		&dataKeysCommand{dataCommand: dataCommand{baseCommand: base}},
		&friendsCommand{baseCommand: base},
		&usersCommand{baseCommand: base},
		&avatarCommand{baseCommand: base},
		&batchTimeCommand{baseCommand: base},
	} {
		super.Register(c)
	}
	return super
}

func main() {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		os.Exit(2)
	}
	os.Exit(cmd.Main(NewSuperCommand(nil), ctx, os.Args[1:]))
}
