package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/nunet/go-nunet/adapter"
	"github.com/nunet/go-nunet/conf"
	"github.com/nunet/go-nunet/models"
)

var peersCmd = &cli.Command{
	Name:  "peers",
	Usage: "Manage network peer information",
	Subcommands: []*cli.Command{
		peersList,
	},
}

var peersList = &cli.Command{
	Name:  "list",
	Usage: "List peers and their available resources",
	Action: func(cctx *cli.Context) error {
		nunetAdapter, err := newAdapter(cctx)
		if err != nil {
			return err
		}

		peers, err := nunetAdapter.PeerList()
		if err != nil {
			return fmt.Errorf("failed get peer list, error: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"PEER ID", "GPU", "CARDANO", "CPU HZ", "RAM", "VCPU", "DISK", "SERVICES"})
		for _, peer := range peers {
			table.Append([]string{
				peer.PeerId,
				strconv.FormatBool(peer.HasGpu),
				strconv.FormatBool(peer.AllowCardano),
				strconv.Itoa(peer.AvailableResources.TotCpuHz),
				strconv.Itoa(peer.AvailableResources.Ram),
				strconv.Itoa(peer.AvailableResources.Vcpu),
				strconv.Itoa(peer.AvailableResources.Disk),
				strconv.Itoa(len(peer.Services)),
			})
		}
		table.Render()
		return nil
	},
}

var constraintsCmd = &cli.Command{
	Name:  "constraints",
	Usage: "Show the named constraint presets",
	Action: func(cctx *cli.Context) error {
		presets := []struct {
			name        string
			constraints models.JobConstraints
		}{
			{"low", models.ConstraintsLow},
			{"moderate", models.ConstraintsModerate},
			{"high", models.ConstraintsHigh},
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"PRESET", "CPU", "RAM", "VRAM", "POWER", "COMPLEXITY", "TIME"})
		for _, preset := range presets {
			table.Append([]string{
				preset.name,
				strconv.Itoa(preset.constraints.Cpu),
				strconv.Itoa(preset.constraints.Ram),
				strconv.Itoa(preset.constraints.Vram),
				strconv.Itoa(preset.constraints.Power),
				string(preset.constraints.Complexity),
				strconv.Itoa(preset.constraints.Time),
			})
		}
		table.Render()
		return nil
	},
}

func newAdapter(cctx *cli.Context) (*adapter.NuNetAdapter, error) {
	repoPath := cctx.String(FlagRepo)
	if len(repoPath) > 1 && repoPath[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		repoPath = filepath.Join(home, repoPath[2:])
	}
	if err := conf.InitConfig(repoPath); err != nil {
		return nil, fmt.Errorf("load config file failed, error: %w", err)
	}
	return adapter.NewAdapterFromConfig(), nil
}
