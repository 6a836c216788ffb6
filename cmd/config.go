package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/config"
	"github.com/arkadyv/bellhop/internal/domain"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(map[string]interface{}{
				"sound": map[string]interface{}{
					"default_type":   appConfig.Sound.DefaultType,
					"default_volume": appConfig.Sound.DefaultVolume,
				},
				"snooze_minutes": appConfig.Snooze.DefaultMinutes,
				"notifications":  string(appConfig.Notifications.Permission),
				"dailytimes": map[string]interface{}{
					"latitude":           appConfig.DailyTimes.Latitude,
					"longitude":          appConfig.DailyTimes.Longitude,
					"utc_offset_minutes": appConfig.DailyTimes.UTCOffsetMinutes,
				},
			})
		}

		path, _ := config.GetConfigPath()
		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		fmt.Printf("    Default sound:     %s (volume %.2f)\n",
			appConfig.Sound.DefaultType, appConfig.Sound.DefaultVolume)
		fmt.Printf("    Snooze default:    %d minutes\n", appConfig.Snooze.DefaultMinutes)
		fmt.Printf("    Notifications:     %s\n", appConfig.Notifications.Permission)
		fmt.Printf("    Location:          %.3f, %.3f (UTC%+d min)\n",
			appConfig.DailyTimes.Latitude, appConfig.DailyTimes.Longitude,
			appConfig.DailyTimes.UTCOffsetMinutes)
		fmt.Println()
		fmt.Printf("  Edit %s or use \"bellhop config set\".\n", path)
		return nil
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value and save the config file.

Keys: sound, volume, snooze, notifications, latitude, longitude, utc-offset`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "sound":
			t := domain.SoundType(value)
			if !domain.ValidSoundType(t) || t == domain.SoundCustom {
				return fmt.Errorf("unknown sound %q (expected light, strong, school, siren)", value)
			}
			appConfig.Sound.DefaultType = value
		case "volume":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || v <= 0 || v > 1 {
				return fmt.Errorf("volume must be a number in (0, 1]")
			}
			appConfig.Sound.DefaultVolume = v
		case "snooze":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("snooze must be a positive minute count")
			}
			appConfig.Snooze.DefaultMinutes = n
		case "notifications":
			switch config.Permission(value) {
			case config.PermissionGranted, config.PermissionDenied, config.PermissionDefault:
				appConfig.Notifications.Permission = config.Permission(value)
			default:
				return fmt.Errorf("notifications must be granted, denied, or default")
			}
		case "latitude":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || v < -90 || v > 90 {
				return fmt.Errorf("latitude must be a number in [-90, 90]")
			}
			appConfig.DailyTimes.Latitude = v
		case "longitude":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || v < -180 || v > 180 {
				return fmt.Errorf("longitude must be a number in [-180, 180]")
			}
			appConfig.DailyTimes.Longitude = v
		case "utc-offset":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("utc-offset must be a minute count")
			}
			appConfig.DailyTimes.UTCOffsetMinutes = n
		default:
			return fmt.Errorf("unknown key %q", key)
		}

		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
