package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nunet/go-nunet/build"
)

const FlagRepo = "repo"

func main() {
	app := &cli.App{
		Name:                 "nunet-cli",
		Usage:                "Submit, monitor and terminate jobs on the NuNet decentralized compute network.",
		EnableBashCompletion: true,
		Version:              build.UserVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagRepo,
				EnvVars: []string{"NUNET_PATH"},
				Usage:   "client repo path",
				Value:   "~/.nunet",
			},
		},
		Commands: []*cli.Command{
			peersCmd,
			constraintsCmd,
			requestCmd,
			watchCmd,
			terminateCmd,
		},
	}
	app.Setup()

	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
}
