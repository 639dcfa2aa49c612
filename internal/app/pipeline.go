package app

import (
	"fmt"

	"github.com/kylejlin/snafed/configs"
	"github.com/kylejlin/snafed/pkg/audio/spectral"
	"github.com/kylejlin/snafed/pkg/spectrogram"
)

// BuildPipeline constructs the analyzer and renderer for a configuration.
func BuildPipeline(config *configs.Config) (*spectral.Analyzer, *spectrogram.Renderer, error) {
	analyzer, err := spectral.NewAnalyzer(config.AnalysisConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	return analyzer, spectrogram.NewRenderer(config.Render.FloorDB), nil
}
