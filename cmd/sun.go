package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/adapters/suncalc"
)

var (
	sunLat float64
	sunLng float64
)

// sunCmd represents the sun command
var sunCmd = &cobra.Command{
	Use:   "sun",
	Short: "Show the next sunrise and sunset",
	Long: `Show the next sunrise and sunset for the configured coordinates, plus
the daily marks derived from sunrise. Override the location with --lat and
--lng, or set it permanently in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lat := appConfig.DailyTimes.Latitude
		lng := appConfig.DailyTimes.Longitude
		if cmd.Flags().Changed("lat") {
			lat = sunLat
		}
		if cmd.Flags().Changed("lng") {
			lng = sunLng
		}

		now := time.Now()
		offset := time.Duration(appConfig.DailyTimes.UTCOffsetMinutes) * time.Minute
		local := func(t time.Time) string {
			return t.UTC().Add(offset).Format("15:04")
		}

		rise, riseOK := sunProvider.NextSunrise(now, lat, lng)
		set, setOK := sunProvider.NextSunset(now, lat, lng)

		if jsonOutput {
			result := map[string]interface{}{
				"latitude":  lat,
				"longitude": lng,
			}
			if riseOK {
				result["next_sunrise"] = rise.Format(time.RFC3339)
			}
			if setOK {
				result["next_sunset"] = set.Format(time.RFC3339)
			}
			return printJSON(result)
		}

		fmt.Printf("☀️  %.3f, %.3f\n", lat, lng)
		if !riseOK && !setOK {
			fmt.Println("   No sunrise or sunset at this latitude right now.")
			return nil
		}
		if riseOK {
			fmt.Printf("   Next sunrise: %s\n", local(rise))
		}
		if setOK {
			fmt.Printf("   Next sunset:  %s\n", local(set))
		}

		dt := appConfig.DailyTimes
		if daily, ok := suncalc.DailyFor(now, lat, lng, dt.MorningOffset, dt.PrepOffset, dt.EveOffset); ok {
			fmt.Printf("   Morning %s · Prep %s · Evening %s\n",
				local(daily.Morning), local(daily.Prep), local(daily.Evening))
		}
		return nil
	},
}

func init() {
	sunCmd.Flags().Float64Var(&sunLat, "lat", 0, "Latitude in degrees")
	sunCmd.Flags().Float64Var(&sunLng, "lng", 0, "Longitude in degrees, positive east")
}
