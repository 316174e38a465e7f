package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

// setters maps the keys accepted by "doro set" to their update.
var setters = map[string]func(ctx context.Context, value string) (*ports.Settings, error){
	"work":   configureInt(func(r *domain.ConfigureRequest, v *int) { r.WorkMinutes = v }),
	"break":  configureInt(func(r *domain.ConfigureRequest, v *int) { r.BreakMinutes = v }),
	"cycles": configureInt(func(r *domain.ConfigureRequest, v *int) { r.TargetCycles = v }),
	"theme": func(ctx context.Context, value string) (*ports.Settings, error) {
		return app.settings.SetTheme(ctx, value)
	},
	"font": func(ctx context.Context, value string) (*ports.Settings, error) {
		return app.settings.SetFont(ctx, value)
	},
	"alarm": func(ctx context.Context, value string) (*ports.Settings, error) {
		return app.settings.SetAlarmSource(ctx, value)
	},
}

func configureInt(apply func(*domain.ConfigureRequest, *int)) func(context.Context, string) (*ports.Settings, error) {
	return func(ctx context.Context, value string) (*ports.Settings, error) {
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", value)
		}
		var req domain.ConfigureRequest
		apply(&req, &v)
		return app.settings.Configure(ctx, req)
	}
}

func setterKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting",
	Long: `Change a persisted setting. Keys:
  work    focus minutes (1-120)
  break   break minutes (1-60)
  cycles  focus segments per plan (1-20)
  theme   color theme name (see "doro themes")
  font    digit font: Block or Slim
  alarm   path to an .mp3/.wav/.flac/.ogg file; omit the value for the built-in tone

Out-of-range values are rejected, never clamped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])
		set, ok := setters[key]
		if !ok {
			return fmt.Errorf("unknown key %q (valid: %s)", args[0], strings.Join(setterKeys(), ", "))
		}

		value := ""
		if len(args) == 2 {
			value = args[1]
		} else if key != "alarm" {
			return fmt.Errorf("%s needs a value", key)
		}

		settings, err := set(context.Background(), value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}

		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), settings, nil)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", key)
		return nil
	},
}
