package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const tomlConfig = `
spacing = 20
line_width = 5
corner_radius = 8
intro = "roots"
intro_duration = "2s"
seed = 7
dark = true
palette = ["#112233", "#445566"]
move_interval = "20ms"
double_click = "300ms"
`

const yamlConfig = `
spacing: 20
line_width: 5
corner_radius: 8
intro: roots
intro_duration: 2s
seed: 7
dark: true
palette: ["#112233", "#445566"]
move_interval: 20ms
double_click: 300ms
`

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "gridsketch.toml", tomlConfig},
		{"yaml", "gridsketch.yaml", yamlConfig},
		{"yml", "gridsketch.yml", yamlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}

			var opts surface.Options
			cfg.apply(&opts)

			if opts.CornerRadius == nil || *opts.CornerRadius != 8 {
				t.Errorf("CornerRadius = %v, want 8", opts.CornerRadius)
			}
			if opts.Spacing != 20 || opts.LineWidth != 5 {
				t.Errorf("geometry = %v/%v, want 20/5", opts.Spacing, opts.LineWidth)
			}
			if opts.Intro != surface.IntroRoots {
				t.Errorf("Intro = %q, want %q", opts.Intro, surface.IntroRoots)
			}
			if opts.IntroDuration != 2*time.Second {
				t.Errorf("IntroDuration = %v, want 2s", opts.IntroDuration)
			}
			if opts.MoveInterval != 20*time.Millisecond {
				t.Errorf("MoveInterval = %v, want 20ms", opts.MoveInterval)
			}
			if opts.DoubleClick != 300*time.Millisecond {
				t.Errorf("DoubleClick = %v, want 300ms", opts.DoubleClick)
			}
			if opts.Seed == nil || *opts.Seed != 7 {
				t.Errorf("Seed = %v, want 7", opts.Seed)
			}
			if !opts.Dark {
				t.Error("Dark = false, want true")
			}
			if len(opts.Palette) != 2 || opts.Palette[1] != "#445566" {
				t.Errorf("Palette = %v, want [#112233 #445566]", opts.Palette)
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Errorf("ValidateAndSetDefaults() error = %v", err)
			}
		})
	}
}

func TestLoadConfigExplicitZero(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "gridsketch.toml", "dot_radius = 0\ncorner_radius = 0\ncenter_padding = 0\nseed = 0\n"},
		{"yaml", "gridsketch.yaml", "dot_radius: 0\ncorner_radius: 0\ncenter_padding: 0\nseed: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			var opts surface.Options
			cfg.apply(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatalf("ValidateAndSetDefaults() error = %v", err)
			}
			if *opts.DotRadius != 0 || *opts.CornerRadius != 0 || *opts.CenterPadding != 0 || *opts.Seed != 0 {
				t.Errorf("explicit zeros replaced by defaults: %v/%v/%v/%v",
					*opts.DotRadius, *opts.CornerRadius, *opts.CenterPadding, *opts.Seed)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, errors.ErrCodeFileNotFound},
		{"unknown extension", func(t *testing.T) string { return writeFile(t, "config.json", "{}") }, errors.ErrCodeInvalidConfig},
		{"malformed toml", func(t *testing.T) string { return writeFile(t, "config.toml", "spacing = [") }, errors.ErrCodeInvalidConfig},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "config.yaml", "spacing: [1") }, errors.ErrCodeInvalidConfig},
		{"bad duration", func(t *testing.T) string { return writeFile(t, "config.toml", `intro_duration = "soon"`) }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestApplyKeepsUnsetValues(t *testing.T) {
	opts := surface.Options{Spacing: 30, Intro: surface.IntroNone, Dark: true}
	(&fileConfig{LineWidth: 4}).apply(&opts)

	if opts.Spacing != 30 || opts.Intro != surface.IntroNone || !opts.Dark {
		t.Errorf("apply() overwrote unset values: %+v", opts)
	}
	if opts.LineWidth != 4 {
		t.Errorf("LineWidth = %v, want 4", opts.LineWidth)
	}
}

func TestResolveDark(t *testing.T) {
	defer func(orig func() bool) { detectDark = orig }(detectDark)
	detectDark = func() bool { return true }

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{"auto", true, false},
		{"light", false, false},
		{"dark", true, false},
		{"DARK", true, false},
		{"true", true, false},
		{"false", false, false},
		{"sepia", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := resolveDark(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveDark(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveDark(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestSurfaceFlagsPrecedence(t *testing.T) {
	path := writeFile(t, "gridsketch.toml", tomlConfig)

	tests := []struct {
		name      string
		args      []string
		spacing   float64
		lineWidth float64
		intro     string
		dark      bool
	}{
		{"defaults", nil, 0, 0, "", false},
		{"config only", []string{"--config", path}, 20, 5, surface.IntroRoots, true},
		{"flags override config", []string{"--config", path, "--spacing", "30", "--intro", "none", "--dark", "light"}, 30, 5, surface.IntroNone, false},
		{"flags only", []string{"--line-width", "9"}, 0, 9, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			var f surfaceFlags
			f.register(cmd, themeLight)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			opts, err := f.options(cmd)
			if err != nil {
				t.Fatalf("options() error = %v", err)
			}
			if opts.Spacing != tt.spacing {
				t.Errorf("Spacing = %v, want %v", opts.Spacing, tt.spacing)
			}
			if opts.LineWidth != tt.lineWidth {
				t.Errorf("LineWidth = %v, want %v", opts.LineWidth, tt.lineWidth)
			}
			if opts.Intro != tt.intro {
				t.Errorf("Intro = %q, want %q", opts.Intro, tt.intro)
			}
			if opts.Dark != tt.dark {
				t.Errorf("Dark = %v, want %v", opts.Dark, tt.dark)
			}
		})
	}
}

func TestSurfaceFlagsExplicitZero(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var f surfaceFlags
	f.register(cmd, themeLight)
	if err := cmd.ParseFlags([]string{"--corner-radius", "0", "--seed", "0"}); err != nil {
		t.Fatal(err)
	}

	opts, err := f.options(cmd)
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	opts.SetDefaults()
	if *opts.CornerRadius != 0 {
		t.Errorf("CornerRadius = %v, want 0", *opts.CornerRadius)
	}
	if *opts.Seed != 0 {
		t.Errorf("Seed = %v, want 0", *opts.Seed)
	}
}

func TestWatchConfig(t *testing.T) {
	path := writeFile(t, "gridsketch.toml", `palette = ["#112233"]`)

	got := make(chan *fileConfig, 4)
	w, err := watchConfig(path, newLogger(os.Stderr, LogInfo), func(cfg *fileConfig) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watchConfig() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`palette = ["#abcdef"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	// Truncation may be observed before the new content lands.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if len(cfg.Palette) == 1 && cfg.Palette[0] == "#abcdef" {
				return
			}
		case <-deadline:
			t.Fatal("no reload with the new palette after writing the config file")
		}
	}
}
