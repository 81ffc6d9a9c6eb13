package main

import (
	"github.com/spf13/cobra"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run a mixed container workload and print collector statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var d value.Dict[value.Str, value.Obj]
		rs := heap.PushRoots((*heap.Ref)(&d))
		defer rs.Pop()

		d = value.NewDict[value.Str, value.Obj]()
		for i := 0; i < 1000; i++ {
			var l value.List[value.Str]
			lrs := heap.PushRoots((*heap.Ref)(&l))
			l = value.NewList[value.Str]()
			for j := 0; j < 10; j++ {
				s := value.StrFromInt(i * j)
				l.Append(s)
			}
			k := value.StrFromInt(i)
			d.Set(k, l.Obj())
			lrs.Pop()
		}
		heap.Collect()

		printStats()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
