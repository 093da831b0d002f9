package main

import (
	"fmt"
	"os"

	"canvas-builder/rules"
	"canvas-builder/settings"

	"github.com/spf13/cobra"
)

func buildConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default settings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "canvas.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force)", path)
			}
			if err := settings.Save(path, settings.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings written: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func buildRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Work with drop rules",
	}
	var in rules.Inputs
	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Evaluate a drop rule script against sample inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rule, err := rules.Compile(args[0], string(src), nil)
			if err != nil {
				return err
			}
			ok, err := rule.Eval(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid = %t\n", ok)
			return nil
		},
	}
	f := checkCmd.Flags()
	f.Float64Var(&in.X, "x", 0, "World x of the footprint's top-left")
	f.Float64Var(&in.Y, "y", 0, "World y of the footprint's top-left")
	f.Float64Var(&in.Width, "width", 0, "Footprint width")
	f.Float64Var(&in.Height, "height", 0, "Footprint height")
	f.StringVar(&in.Type, "type", "TEXT", "Component type")
	f.StringVar(&in.Source, "source", "palette", "palette or canvas")
	cmd.AddCommand(checkCmd)
	return cmd
}
