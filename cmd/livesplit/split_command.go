package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"livesplit/internal/logging"
	"livesplit/internal/pipeline"
	"livesplit/internal/preflight"
	"livesplit/internal/services"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "split <input> <setlist>",
		Short: "Split a concert recording into songs",
		Long: `Detect song boundaries in a concert recording from its title overlays,
refine them against native frames and audio silences, and export each song.

The setlist (JSON or YAML) names the artist and songs in order. Detected
timestamps are saved next to the exported songs so later runs can skip
detection.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.SetlistPath = args[1]
			if opts.RefineTimestamps && strings.TrimSpace(opts.TimestampsFile) == "" {
				return services.Wrap(services.ErrValidation, "cli", "split", "--refine-timestamps requires --timestamps-file", nil)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cfg)
			for _, r := range checks {
				if !r.Passed && r.Advisory {
					logging.WarnWithContext(logger, "preflight warning", "preflight_advisory",
						logging.String("check", r.Name),
						logging.String("detail", r.Detail),
						logging.String(logging.FieldImpact, "split may fail part way through"),
					)
				}
			}
			if failed := preflight.Failed(checks); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "preflight", fmt.Sprintf("%s: %s", failed[0].Name, failed[0].Detail), nil)
			}

			runner, err := ctx.newSplitter(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Run(cmd.Context(), opts)
			out := cmd.OutOrStdout()
			if result != nil && len(result.Timestamps) > 0 {
				fmt.Fprintln(out, renderTimestamps(result.Timestamps))
				fmt.Fprintf(out, "Saved timestamps to %s\n", result.SetlistPath)
			}
			if err != nil {
				if isDetectionFailure(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "hint: rerun with --analyze-images and check analysis.crop_filter covers the title overlay")
				}
				return err
			}
			if opts.NoSaveSongs {
				fmt.Fprintln(out, "Song export skipped (--no-save-songs)")
			} else {
				fmt.Fprintf(out, "Exported %d file(s)\n", len(result.Exported))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.NoSaveSongs, "no-save-songs", false, "Detect and save timestamps without exporting songs")
	flags.StringVar(&opts.TimestampsFile, "timestamps-file", "", "Use song timestamps from this file instead of detecting them")
	flags.BoolVar(&opts.RefineTimestamps, "refine-timestamps", false, "Refine timestamps from --timestamps-file against audio and the final fade")
	flags.StringVar(&opts.OutputFormat, "output-format", "", "Exported media: video, audio or both (default from config)")
	flags.StringVarP(&opts.OutputDir, "output-dir", "o", "", "Directory for exported songs (default from config)")
	flags.BoolVar(&opts.AnalyzeImages, "analyze-images", false, "Save the frames that confirmed each title under analysis/images")
	flags.BoolVar(&opts.KeepWorkDir, "keep-work-dir", false, "Keep extracted frames and audio after the run")
	return cmd
}

// isDetectionFailure reports errors where the overlays could not account for
// the setlist.
func isDetectionFailure(err error) bool {
	return errors.Is(err, services.ErrDetection)
}
