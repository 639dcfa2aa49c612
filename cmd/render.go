package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kylejlin/snafed/internal/app"
)

var (
	renderWidth  int
	renderIndex  int
	renderAll    bool
	renderFields string
	renderOutDir string
)

// renderCmd renders spectrogram PNGs for the given audio files
var renderCmd = &cobra.Command{
	Use:   "render [audio files...]",
	Short: "Render spectrogram images for audio files",
	Long: `Decodes the given audio files, computes their spectrograms, and
writes one PNG per rendered file. By default only the selected file
(--index) is rendered; --all renders every file of the session through
the same shared caches, the way paging through the list would.

Annotation marks come from a derived-field rules file (--fields); marks
whose position cannot be mapped onto the recording are reported on
stdout instead of drawn.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0,
		"display width in pixels (default from config: 800)")
	renderCmd.Flags().IntVarP(&renderIndex, "index", "i", 0,
		"index of the file to render")
	renderCmd.Flags().BoolVar(&renderAll, "all", false,
		"render every file instead of just --index")
	renderCmd.Flags().StringVar(&renderFields, "fields", "",
		"derived-field rules file (YAML or JSON)")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "",
		"directory for output PNGs (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := &app.Context{
		ConfigFile: configFile,
		FieldsFile: renderFields,
		OutputDir:  renderOutDir,
		Width:      renderWidth,
		Index:      renderIndex,
		All:        renderAll,
		Verbose:    verbose,
	}

	application, err := app.NewApp(ctx)
	if err != nil {
		return err
	}

	return application.Run(cmd.Context(), args)
}
