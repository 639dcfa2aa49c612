package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kylejlin/snafed/pkg/audio/decode"
)

// fileInfo is the decoded metadata reported for one input file.
type fileInfo struct {
	Name       string  `json:"name"`
	Format     string  `json:"format"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	DurationS  float64 `json:"duration_seconds"`
	Samples    int     `json:"samples"`
	Error      string  `json:"error,omitempty"`
}

// inspectCmd decodes audio files and reports their properties
var inspectCmd = &cobra.Command{
	Use:   "inspect [audio files...]",
	Short: "Decode audio files and print their properties",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	infos := make([]fileInfo, 0, len(args))
	failures := 0

	for _, path := range args {
		info := inspectFile(path)
		if info.Error != "" {
			failures++
		}
		infos = append(infos, info)
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return err
		}
	default:
		printInfoTable(infos)
	}

	if failures == len(args) {
		return fmt.Errorf("no input file could be decoded")
	}
	return nil
}

func inspectFile(path string) fileInfo {
	info := fileInfo{Name: path}

	content, err := os.ReadFile(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.Format = formatDisplayName(decode.DetectFormat(content))

	audio, err := decode.Decode(path, content)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.SampleRate = audio.SampleRate
	info.Channels = audio.Channels
	info.DurationS = audio.Duration.Round(time.Millisecond).Seconds()
	info.Samples = len(audio.PCM)
	return info
}

// formatDisplayName turns a format key into a display name.
func formatDisplayName(format string) string {
	switch format {
	case decode.FormatWAV:
		return "WAV"
	case decode.FormatMP3:
		return "MP3"
	case "":
		return "Unknown"
	default:
		return cases.Title(language.English).String(format)
	}
}

func printInfoTable(infos []fileInfo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMAT\tRATE\tCHANNELS\tDURATION\tSAMPLES")
	for _, info := range infos {
		if info.Error != "" {
			fmt.Fprintf(w, "%s\t%s\terror: %s\t\t\t\n", info.Name, info.Format, info.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3fs\t%d\n",
			info.Name, info.Format, info.SampleRate, info.Channels, info.DurationS, info.Samples)
	}
	w.Flush()
}
