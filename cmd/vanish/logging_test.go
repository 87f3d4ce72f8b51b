package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/vanish/config"
	"github.com/lixenwraith/vanish/log"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	defer log.Close()

	if err := setupLogging(false, config.LogConfig{Dir: dir}, nil); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	log.Info("discarded")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Expected no log directory when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	defer log.Close()

	if err := setupLogging(true, config.LogConfig{Dir: dir, RetentionDays: 7}, nil); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	log.Info("Test log message")
	log.Close()

	logPath := filepath.Join(dir, time.Now().Format("2006-01-02")+".jsonl")
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Expected log file to be created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}
