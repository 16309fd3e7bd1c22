package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nunet/go-nunet/constants"
	"github.com/nunet/go-nunet/models"
	"github.com/nunet/go-nunet/util"
)

var requestCmd = &cli.Command{
	Name:  "request",
	Usage: "Request a provider match for a job and print the assigned configuration",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "bech32 address paying for the job",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "max-ntx",
			Usage: "maximum NTX to spend",
			Value: 10,
		},
		&cli.StringFlag{
			Name:  "machine-type",
			Usage: "cpu or gpu",
			Value: "cpu",
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "container image id",
			Value: string(models.ImageMlOnCpu),
		},
		&cli.StringFlag{
			Name:     "model-url",
			Usage:    "url of the model or script to run",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "package",
			Usage: "additional package to install, repeatable",
		},
		&cli.StringFlag{
			Name:  "constraints",
			Usage: "constraint preset: low, moderate or high",
			Value: "low",
		},
	},
	Action: func(cctx *cli.Context) error {
		nunetAdapter, err := newAdapter(cctx)
		if err != nil {
			return err
		}

		constraints, err := presetByName(cctx.String("constraints"))
		if err != nil {
			return err
		}

		machineType := models.MachineType(cctx.String("machine-type"))
		serviceType := models.ServiceTypeCpu
		if machineType == models.MachineTypeGpu {
			serviceType = models.ServiceTypeGpu
		}

		jobRequest, err := models.NewJobRequest(
			cctx.String("address"),
			cctx.Int("max-ntx"),
			serviceType,
			models.JobParams{
				MachineType: machineType,
				ImageId:     models.ImageId(cctx.String("image")),
				ModelUrl:    cctx.String("model-url"),
				Packages:    cctx.StringSlice("package"),
			},
			constraints,
		)
		if err != nil {
			return err
		}

		jobConfig, err := nunetAdapter.RequestService(jobRequest)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(jobConfig, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Stream status for a job already paid for",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "tx-hash",
			Usage:    "transaction id of the contract payment",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		nunetAdapter, err := newAdapter(cctx)
		if err != nil {
			return err
		}

		stream, err := nunetAdapter.Job(cctx.String("tx-hash"))
		if err != nil {
			return err
		}
		defer stream.Stop()

		ctx := util.ReqContext()
		go func() {
			<-ctx.Done()
			stream.Stop()
		}()

		kindColor := color.New(color.FgCyan)
		doneColor := color.New(color.FgGreen)
		for event := range stream.Events() {
			if event.Kind == constants.ActionJobCompleted {
				doneColor.Fprintf(os.Stdout, "%s\n", event.Kind)
			} else {
				kindColor.Fprintf(os.Stdout, "%s ", event.Kind)
			}
			if event.Payload != nil {
				fmt.Println(event.Payload)
			}
		}
		return stream.Err()
	},
}

var terminateCmd = &cli.Command{
	Name:  "terminate",
	Usage: "Send a job termination signal",
	Action: func(cctx *cli.Context) error {
		nunetAdapter, err := newAdapter(cctx)
		if err != nil {
			return err
		}
		return nunetAdapter.Terminate()
	},
}

func presetByName(name string) (models.JobConstraints, error) {
	switch name {
	case "low":
		return models.ConstraintsLow, nil
	case "moderate":
		return models.ConstraintsModerate, nil
	case "high":
		return models.ConstraintsHigh, nil
	default:
		return models.JobConstraints{}, fmt.Errorf("unknown constraint preset: %s", name)
	}
}
