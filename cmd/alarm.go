package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/adapters/audio"
	"github.com/xvierd/doro/internal/domain"
)

var alarmDuration time.Duration

// alarmCmd represents the alarm command
var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "Play the configured alarm",
	Long:  `Play the configured alarm sound for a few seconds so you can check it. Press Ctrl+C to stop early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		player := audio.NewPlayer(app.logger)
		if !player.Enabled() {
			return fmt.Errorf("no audio device available")
		}

		path := app.settings.AlarmPath()
		fmt.Fprintf(cmd.OutOrStdout(), "🔔 Playing %s for %s\n", domain.AlarmName(path), alarmDuration)

		player.Play(path)
		defer player.Stop()

		ctx := setupSignalHandler()
		select {
		case <-ctx.Done():
		case <-time.After(alarmDuration):
		}
		return nil
	},
}

func init() {
	alarmCmd.Flags().DurationVarP(&alarmDuration, "duration", "d", 3*time.Second, "How long to play the alarm")
}
