package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/automdl/internal/config"
)

// cmdConfig prints the effective configuration and optionally stores it.
func cmdConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	f := config.RegisterFlags(fs)
	save := fs.Bool("save", false, "Write the configuration to the user config directory")
	output := fs.String("o", "", "Write the configuration to this file instead")
	fs.Usage = usage(fs, "")
	fs.Parse(args)

	if fs.NArg() != 0 {
		fs.Usage()
		return 1
	}

	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	switch {
	case *output != "":
		if err := cfg.SaveTo(*output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Saved %s\n", *output)
	case *save:
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Saved %s\n", path)
	default:
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}
