package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/embedkit/boardagent"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		flagDir      string
		flagInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for device hotplug and log joins/leaves",
		Long:  "Watches the device directory for hotplug events (with a polling fallback) and logs devices as they connect and disconnect.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, store := buildSynchronizer()
			defer store.Close()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(flagDir); err != nil {
				// Some platforms cannot watch the device directory; the
				// polling ticker still covers hotplug, just slower.
				log.Warn().Err(err).Str("dir", flagDir).Msg("fs watch unavailable, polling only")
			}

			group := boardagent.NewGroup(sigCtx)
			group.Go("device-watch", func(ctx context.Context) error {
				ticker := time.NewTicker(flagInterval)
				defer ticker.Stop()
				known := make(map[string]struct{})
				refresh := func() {
					if err := diffDevices(ctx, sync, known); err != nil {
						log.Warn().Err(err).Msg("device refresh failed")
					}
				}
				refresh()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-watcher.Events:
						refresh()
					case err := <-watcher.Errors:
						log.Warn().Err(err).Msg("fs watcher error")
					case <-ticker.C:
						refresh()
					}
				}
			})
			return group.WaitOrInterrupt(2 * time.Second)
		},
	}

	cmd.Flags().StringVar(&flagDir, "dir", "/dev", "Device directory to watch for hotplug events")
	cmd.Flags().DurationVar(&flagInterval, "interval", 2*time.Second, "Polling fallback interval")
	return cmd
}

// diffDevices lists current devices and logs the delta against known,
// mutating known in place.
func diffDevices(ctx context.Context, sync *boardagent.Synchronizer, known map[string]struct{}) error {
	values, err := sync.ListValues(ctx)
	if err != nil {
		return err
	}
	current := make(map[string]struct{}, len(values))
	for _, serial := range values {
		if serial == boardagent.NoDevicesFound {
			continue
		}
		current[serial] = struct{}{}
		if _, ok := known[serial]; !ok {
			log.Info().Str("serial", serial).Msg("device connected")
		}
	}
	for serial := range known {
		if _, ok := current[serial]; !ok {
			log.Info().Str("serial", serial).Msg("device disconnected")
		}
	}
	for serial := range known {
		delete(known, serial)
	}
	for serial := range current {
		known[serial] = struct{}{}
	}
	return nil
}
