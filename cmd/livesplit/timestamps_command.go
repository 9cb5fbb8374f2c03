package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"livesplit/internal/services"
	"livesplit/internal/setlist"
)

func newTimestampsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "timestamps <setlist|timestamps file>",
		Short:       "Show song timestamps saved by a previous split",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			timestamps, err := loadAnyTimestamps(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTimestamps(timestamps))
			return nil
		},
	}
}

// loadAnyTimestamps reads the timestamps cached in a saved setlist, falling
// back to a standalone {"songs": [...]} file.
func loadAnyTimestamps(path string) ([]setlist.SongTimestamp, error) {
	if list, err := setlist.Load(path); err == nil {
		if len(list.Timestamps) == 0 {
			return nil, services.Wrap(services.ErrNotFound, "timestamps", "load", fmt.Sprintf("%s has no saved timestamps; run split first", path), nil)
		}
		return list.Timestamps, nil
	}
	return setlist.LoadTimestamps(path)
}
