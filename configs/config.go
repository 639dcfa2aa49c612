package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kylejlin/snafed/pkg/audio/spectral"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Spectral analysis configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Rendering configuration
	Render RenderConfig `mapstructure:"render"`
}

// AudioConfig contains spectral analysis settings
type AudioConfig struct {
	WindowSize int `mapstructure:"window_size"`
	HopSize    int `mapstructure:"hop_size"`
	FreqBins   int `mapstructure:"freq_bins"`
}

// RenderConfig contains spectrogram rendering settings
type RenderConfig struct {
	Width     int     `mapstructure:"width"`
	FloorDB   float64 `mapstructure:"floor_db"`
	OutputDir string  `mapstructure:"output_dir"`
}

// AnalysisConfig converts the audio section into analyzer parameters.
func (c *Config) AnalysisConfig() spectral.Config {
	return spectral.Config{
		WindowSize: c.Audio.WindowSize,
		HopSize:    c.Audio.HopSize,
		FreqBins:   c.Audio.FreqBins,
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if err := config.AnalysisConfig().Validate(); err != nil {
		return err
	}

	if config.Render.Width < 0 {
		return fmt.Errorf("render width cannot be negative")
	}

	if config.Render.FloorDB >= 0 {
		return fmt.Errorf("floor_db must be negative (dB below peak)")
	}

	return nil
}
