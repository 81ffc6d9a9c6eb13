package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive loop over the managed string/list/dict types",
	Long: `An interactive loop backed by a managed dict. Commands:

  set KEY VALUE     store a string
  get KEY           look a string up
  del KEY           remove a key
  keys              list keys in slot order
  split STR SEP     split STR on a one-byte separator
  repr STR          quote a string
  gc                force a collection
  stats             print collector statistics
  exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := readline.NewEx(&readline.Config{Prompt: "toshgc> "})
		if err != nil {
			return err
		}
		defer rl.Close()

		var env value.Dict[value.Str, value.Str]
		rs := heap.PushRoots((*heap.Ref)(&env))
		defer rs.Pop()
		env = value.NewDict[value.Str, value.Str]()

		for {
			line, err := rl.Readline()
			if err != nil { // io.EOF or interrupt
				return nil
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "exit" {
				return nil
			}
			evalLine(env, fields)
		}
	},
}

func evalLine(env value.Dict[value.Str, value.Str], fields []string) {
	// The argument strings allocate, so the dict copy must be a root.
	rs := heap.PushRoots((*heap.Ref)(&env))
	defer rs.Pop()

	switch fields[0] {
	case "set":
		if len(fields) != 3 {
			fmt.Println("usage: set KEY VALUE")
			return
		}
		var k value.Str
		krs := heap.PushRoots((*heap.Ref)(&k))
		k = value.NewStr(fields[1])
		v := value.NewStr(fields[2])
		env.Set(k, v)
		krs.Pop()

	case "get":
		if len(fields) != 2 {
			fmt.Println("usage: get KEY")
			return
		}
		k := value.NewStr(fields[1])
		v, err := env.Index(k)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(v.String())

	case "del":
		if len(fields) != 2 {
			fmt.Println("usage: del KEY")
			return
		}
		k := value.NewStr(fields[1])
		env.Remove(k)

	case "keys":
		it := value.NewDictIter(env)
		for ; !it.Done(); it.Next() {
			fmt.Println(it.Key().String())
		}
		it.Close()

	case "split":
		if len(fields) != 3 || len(fields[2]) != 1 {
			fmt.Println("usage: split STR SEP  (SEP is one byte)")
			return
		}
		var parts value.List[value.Str]
		var s value.Str
		rs := heap.PushRoots((*heap.Ref)(&parts), (*heap.Ref)(&s))
		s = value.NewStr(fields[1])
		sep := value.NewStr(fields[2])
		parts = s.Split(sep)
		it := value.NewListIter(parts)
		for ; !it.Done(); it.Next() {
			fmt.Println(value.Repr(it.Value()).String())
		}
		it.Close()
		rs.Pop()

	case "repr":
		if len(fields) != 2 {
			fmt.Println("usage: repr STR")
			return
		}
		fmt.Println(value.Repr(value.NewStr(fields[1])).String())

	case "gc":
		heap.Collect()
		fmt.Printf("live: %d objects\n", heap.CurrentStats().NumLive)

	case "stats":
		printStats()

	default:
		fmt.Printf("unknown command %q\n", fields[0])
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
