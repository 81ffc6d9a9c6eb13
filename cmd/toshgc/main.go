// toshgc pokes at the tosh managed runtime from the command line:
// allocation workloads, collector statistics, and an interactive loop
// over the managed string/list/dict types.
package main

func main() {
	execute()
}
