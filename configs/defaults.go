package configs

import (
	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.SetDefault("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.SetDefault("log_level", "info")
	}
	if !v.IsSet("log_file") {
		v.SetDefault("log_file", "")
	}

	// Spectral analysis defaults: 1024-sample Hann window with a 256
	// hop keeps 256 low-frequency bins per frame.
	if !v.IsSet("audio.window_size") {
		v.SetDefault("audio.window_size", 1024)
	}
	if !v.IsSet("audio.hop_size") {
		v.SetDefault("audio.hop_size", 256)
	}
	if !v.IsSet("audio.freq_bins") {
		v.SetDefault("audio.freq_bins", 256)
	}

	// Rendering defaults
	if !v.IsSet("render.width") {
		v.SetDefault("render.width", 800)
	}
	if !v.IsSet("render.floor_db") {
		v.SetDefault("render.floor_db", -90.0)
	}
	if !v.IsSet("render.output_dir") {
		v.SetDefault("render.output_dir", ".")
	}
}
