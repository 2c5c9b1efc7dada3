package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initFile points the global logger at a file only and returns its path.
func initFile(t *testing.T, level string, cfg FileConfig) string {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "orrery.log")
	}
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("InitWithFileConfig(%q): %v", level, err)
	}
	return cfg.Path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	path := initFile(t, "info", FileConfig{
		Path:       filepath.Join(dir, "frames.log"),
		MaxSizeMB:  1, // lumberjack's smallest unit
		MaxBackups: 2,
		MaxAgeDays: 1,
	})

	// ~250 bytes per line, well past 1MB
	payload := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, payload)
	}
	Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("active log file: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var backups []string
	for _, e := range entries {
		name := e.Name()
		if name != "frames.log" && strings.HasPrefix(name, "frames-") {
			backups = append(backups, name)
		}
	}
	if len(backups) == 0 {
		t.Fatalf("expected rotated backups next to frames.log, found %v", entries)
	}
	for _, name := range backups {
		// frames-2006-01-02T15-04-05.000.log
		if !strings.HasSuffix(name, ".log") || !strings.Contains(name, "T") {
			t.Errorf("backup %s is not timestamped", name)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	emit := func() {
		Debug("d")
		Info("i")
		Warn("w")
		Error("e")
	}

	tests := []struct {
		level string
		want  []string // level tags in emission order
	}{
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		name := tt.level
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			path := initFile(t, tt.level, FileConfig{MaxSizeMB: 1})
			emit()

			lines := readLines(t, path)
			if len(lines) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d:\n%s", len(tt.want), len(lines), strings.Join(lines, "\n"))
			}
			for i, tag := range tt.want {
				if !strings.Contains(lines[i], " "+tag+" ") {
					t.Errorf("line %d = %q, want level %s", i, lines[i], tag)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	got := DefaultFileConfig("orrery.log")
	want := FileConfig{Path: "orrery.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if got != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", got, want)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := InitWithFileConfig("loud", FileConfig{}, false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestWithTagsComponent(t *testing.T) {
	path := initFile(t, "debug", FileConfig{MaxSizeMB: 1})
	With("scene").Info("built")

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	if !strings.Contains(lines[0], "built") || !strings.Contains(lines[0], `"component"`) || !strings.Contains(lines[0], `"scene"`) {
		t.Errorf("expected component field in %q", lines[0])
	}
}
