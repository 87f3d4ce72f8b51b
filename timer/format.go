package timer

import (
	"fmt"
	"time"
)

// FormatElapsed renders whole seconds as MM:SS.
// Minutes are not wrapped into hours, 3661 renders as "61:01".
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// WholeSeconds truncates a duration to whole seconds, clamping negatives to zero
func WholeSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
