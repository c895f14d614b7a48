package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"stripper/database"
	"stripper/logger"
	"stripper/models"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyListLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Inspect and undo previous strip runs",
	Long:    `Lists recorded strip runs, shows the files a run rewrote, and restores their original content.`,
	Aliases: []string{"h"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !openHistory() {
			return errors.New("run history is disabled or unavailable (set history.enabled: true)")
		}
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded runs, newest first",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'history list' command")
		runs, err := database.ListRuns(historyListLimit)
		if err != nil {
			logger.Error("Failed to list runs: %v", err)
			fmt.Fprintln(os.Stderr, "Error retrieving runs from history.")
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
		printRuns(os.Stdout, runs)
		logger.Info("Successfully listed %d runs", len(runs))
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and the files it rewrote",
	Long:  `Shows a run by its ID or a unique prefix of it, with every file it backed up.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'history show' command for %s", args[0])
		detail, err := database.GetRunDetail(args[0])
		if err != nil {
			exitOnRunError("show", args[0], err)
		}
		printRunDetail(os.Stdout, detail)
	},
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore <run-id>",
	Short: "Write the original content of every file rewritten by a run back to disk",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'history restore' command for %s", args[0])
		n, err := database.RestoreRun(args[0])
		if err != nil {
			if n > 0 {
				fmt.Fprintf(os.Stderr, "Restored %d files before failing.\n", n)
			}
			exitOnRunError("restore", args[0], err)
		}
		fmt.Printf("Restored %d files\n", n)
	},
}

func exitOnRunError(action, id string, err error) {
	switch {
	case errors.Is(err, database.ErrRunNotFound):
		fmt.Fprintf(os.Stderr, "Error: no run matches '%s'.\n", id)
	case errors.Is(err, database.ErrAmbiguousRun):
		fmt.Fprintf(os.Stderr, "Error: '%s' matches several runs; use a longer prefix.\n", id)
	default:
		logger.Error("history %s %s: %v", action, id, err)
		fmt.Fprintf(os.Stderr, "Error: could not %s run '%s': %v\n", action, id, err)
	}
	database.CloseDB()
	os.Exit(1)
}

func printRuns(w io.Writer, runs []models.Run) {
	writer := new(tabwriter.Writer)
	writer.Init(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(writer, "ID\tSTARTED\tMODE\tMODIFIED\tSCANNED\tFAILED\tROOT")
	fmt.Fprintln(writer, "--\t-------\t----\t--------\t-------\t------\t----")
	for _, r := range runs {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			shortID(r.ID), r.StartedAt.Local().Format(time.DateTime), r.Mode, r.Modified, r.Scanned, r.Failed, r.Root)
	}
	writer.Flush()
}

func printRunDetail(w io.Writer, d models.RunDetail) {
	fmt.Fprintf(w, "Run:       %s\n", d.ID)
	fmt.Fprintf(w, "Root:      %s\n", d.Root)
	fmt.Fprintf(w, "Mode:      %s (log match: %s)\n", d.Mode, d.LogMatch)
	fmt.Fprintf(w, "Started:   %s\n", d.StartedAt.Local().Format(time.DateTime))
	if d.FinishedAt != nil {
		fmt.Fprintf(w, "Finished:  %s\n", d.FinishedAt.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(w, "Finished:  (interrupted)")
	}
	fmt.Fprintf(w, "Files:     %d modified, %d scanned, %d failed\n", d.Modified, d.Scanned, d.Failed)
	if len(d.Files) == 0 {
		return
	}
	fmt.Fprintln(w)
	writer := new(tabwriter.Writer)
	writer.Init(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(writer, "PATH\tBEFORE\tAFTER")
	for _, f := range d.Files {
		fmt.Fprintf(writer, "%s\t%d\t%d\n", f.Path, f.OriginalSize, f.StrippedSize)
	}
	writer.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyListCmd.Flags().IntVarP(&historyListLimit, "limit", "l", 20, "maximum number of runs to list (0 for all)")
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyRestoreCmd)
	rootCmd.AddCommand(historyCmd)
}
