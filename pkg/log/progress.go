// pkg/log/progress.go
package log

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

func NewProgressBar(total int, description string, silent bool) *progressbar.ProgressBar {
	if silent {
		return progressbar.DefaultSilent(int64(total), description)
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(25),
		progressbar.OptionOnCompletion(func() {
			_, _ = os.Stderr.WriteString("\n")
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
