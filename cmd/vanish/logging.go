package main

import (
	"io"

	"github.com/lixenwraith/vanish/config"
	"github.com/lixenwraith/vanish/log"
)

// setupLogging discards logs unless debug is set, then writes JSONL files under cfg.Dir.
// Warnings always reach stderr, which is only visible before and after the UI runs.
func setupLogging(debug bool, cfg config.LogConfig, stderr io.Writer) error {
	return log.Init(log.Options{
		Debug:         debug,
		Dir:           cfg.Dir,
		RetentionDays: cfg.RetentionDays,
		Stderr:        stderr,
	})
}
