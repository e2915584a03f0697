package main

import (
	"os"

	"causalflow/logging"
)

// _main takes command-line arguments and returns an error rather than
// exiting, so tests can drive it.
func _main(args []string) error {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func main() {
	if err := _main(os.Args[1:]); err != nil {
		logging.Init(logging.MediumVerbosity)
		logging.Errorf("%v. exiting...", err)
		os.Exit(1)
	}
}
