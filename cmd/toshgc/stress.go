package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

var (
	stressCount int
	stressKeep  int
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Allocate transient strings and watch the collector reclaim them",
	RunE: func(cmd *cobra.Command, args []string) error {
		var kept value.List[value.Str]
		var prefix value.Str
		rs := heap.PushRoots((*heap.Ref)(&kept), (*heap.Ref)(&prefix))
		defer rs.Pop()

		kept = value.NewList[value.Str]()
		prefix = value.NewStr("transient-")
		for i := 0; i < stressCount; i++ {
			n := value.StrFromInt(i)
			s := value.StrConcat(prefix, n)
			if stressKeep > 0 && i%stressKeep == 0 {
				kept.Append(s)
			}
		}
		heap.Collect()

		fmt.Printf("allocated %d transient strings, kept %d\n", stressCount, kept.Len())
		printStats()
		return nil
	},
}

func init() {
	stressCmd.Flags().IntVar(&stressCount, "count", 100000, "Number of strings to allocate")
	stressCmd.Flags().
		IntVar(&stressKeep, "keep-every", 0, "Keep every Nth string live (0 keeps none)")
	rootCmd.AddCommand(stressCmd)
}
