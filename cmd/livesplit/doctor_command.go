package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"livesplit/internal/deps"
	"livesplit/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			tools := preflight.CheckTools(cfg)
			checks := preflight.RunAll(cfg)

			var lines []string
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize), "")
			}
			lines = append(lines, renderSectionHeader("Tools", colorize)...)
			lines = append(lines, toolLines(tools, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			lines = append(lines, checkLines(checks, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			problems := len(deps.Missing(tools)) + len(preflight.Failed(checks))
			if problems > 0 {
				return fmt.Errorf("doctor: %d check(s) failed", problems)
			}
			return nil
		},
	}
}
