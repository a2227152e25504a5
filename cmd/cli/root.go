package main

import (
	"bess-degradation/internal/presets"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	presetFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "bess",
		Short:         "LFP battery storage degradation simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.presetFile, "presets", "", "manufacturer preset YAML (default: built-in presets)")

	root.AddCommand(newSimulateCmd(opts))
	root.AddCommand(newSweepCmd(opts))
	root.AddCommand(newPresetsCmd(opts))
	return root
}

func (o *rootOptions) registry() (*presets.Registry, error) {
	if o.presetFile == "" {
		return presets.Default(), nil
	}
	return presets.LoadFile(o.presetFile)
}
