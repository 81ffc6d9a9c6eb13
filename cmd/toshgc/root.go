package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/toshproject/tosh/heap"
)

var (
	// Global flags
	verbose     bool
	backend     string
	heapSize    int
	gcThreshold int
)

var rootCmd = &cobra.Command{
	Use:   "toshgc",
	Short: "Inspect and exercise the tosh managed runtime",
	Long: `toshgc drives the managed heap that backs the tosh shell runtime:
it runs allocation workloads against either collector back-end, reports
collector statistics, and offers an interactive loop over the managed
string, list and dict types.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log collector activity to stderr")
	rootCmd.PersistentFlags().
		StringVar(&backend, "gc", "cheney", "Collector back-end: cheney or marksweep")
	rootCmd.PersistentFlags().IntVar(&heapSize, "heap-size", 1<<20, "Initial semi-space size in bytes")
	rootCmd.PersistentFlags().
		IntVar(&gcThreshold, "gc-threshold", 10000, "Mark-sweep collection threshold in allocations")
}

func initRuntime() {
	if verbose {
		heap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	switch backend {
	case "marksweep":
		heap.InitMarkSweep(gcThreshold)
	default:
		heap.Init(heapSize)
	}
}

func printStats() {
	st := heap.CurrentStats()
	fmt.Printf("collections:     %d\n", st.Collections)
	fmt.Printf("growths:         %d\n", st.Growths)
	fmt.Printf("allocated:       %d objects, %d bytes\n", st.NumAllocated, st.BytesAllocated)
	fmt.Printf("live:            %d objects\n", st.NumLive)
	fmt.Printf("freed:           %d objects\n", st.NumFreed)
	fmt.Printf("heap size:       %d bytes\n", st.HeapSize)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
