package media

import (
	"fmt"

	"github.com/senseyeio/duration"
)

const UnknownDuration = "00:00"

// FormatISODuration converts an ISO-8601 duration such as "PT1H2M3S" into
// a display string: "01:02:03" with hours, "05:09" without. Unparsable
// input yields "00:00" rather than an error.
func FormatISODuration(raw string) string {
	d, err := duration.ParseISO8601(raw)
	if err != nil {
		return UnknownDuration
	}

	if d.TH > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", d.TH, d.TM, d.TS)
	}

	return fmt.Sprintf("%02d:%02d", d.TM, d.TS)
}
