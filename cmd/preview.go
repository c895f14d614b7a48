package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"stripper/config"
	"stripper/core"
	"stripper/logger"
	"strings"

	"github.com/spf13/cobra"
)

var (
	previewMode     string
	previewLogMatch string
	previewContext  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show which lines a strip would remove from a file",
	Long: `Prints every line that 'comments', 'logs' or 'both' would delete from the
given file, with its line number and the reason. The file is not modified.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'preview' command for %s", args[0])

		modeStr := previewMode
		if !cmd.Flags().Changed("mode") && config.AppConfig.Strip.Mode != "" {
			modeStr = config.AppConfig.Strip.Mode
		}
		mode, err := core.ParseMode(modeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		lmStr := config.AppConfig.Strip.LogMatch
		if cmd.Flags().Changed("log-match") {
			lmStr = previewLogMatch
		}
		logMatch, err := core.ParseLogMatch(lmStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			logger.Error("preview: reading %s: %v", args[0], err)
			fmt.Fprintf(os.Stderr, "Error: %v: %s\n", ErrNoDocument, args[0])
			os.Exit(1)
		}

		lang := core.LanguageForPath(args[0])
		removed := core.Preview(string(data), lang, mode, logMatch)
		printPreview(os.Stdout, filepath.Base(args[0]), lang, removed, previewContext)
	},
}

func printPreview(w io.Writer, name string, lang core.Language, removed []core.RemovedLine, withContext bool) {
	if lang == core.LanguageOther {
		fmt.Fprintf(w, "%s: unsupported file type, nothing would be removed\n", name)
		return
	}
	if len(removed) == 0 {
		fmt.Fprintf(w, "%s: nothing would be removed\n", name)
		return
	}
	fmt.Fprintf(w, "%s: %d lines would be removed\n", name, len(removed))
	for _, r := range removed {
		if withContext && r.ContextBefore != "" {
			for _, l := range strings.Split(r.ContextBefore, "\n") {
				fmt.Fprintf(w, "        | %s\n", l)
			}
		}
		fmt.Fprintf(w, "%5d %-1s | %s\n", r.LineNumber, kindMarker(r.Kind), r.Text)
		if withContext && r.ContextAfter != "" {
			for _, l := range strings.Split(r.ContextAfter, "\n") {
				fmt.Fprintf(w, "        | %s\n", l)
			}
			fmt.Fprintln(w, "        --")
		}
	}
}

func kindMarker(k core.RemovalKind) string {
	if k == core.RemovalLog {
		return "L"
	}
	return "C"
}

func init() {
	previewCmd.Flags().StringVarP(&previewMode, "mode", "m", string(core.ModeBoth), "what to preview: comments, logs or both")
	previewCmd.Flags().StringVar(&previewLogMatch, "log-match", "", "debug-call matching: prefix or strict (overrides config)")
	previewCmd.Flags().BoolVarP(&previewContext, "context", "C", false, "show surrounding lines")
	rootCmd.AddCommand(previewCmd)
}
