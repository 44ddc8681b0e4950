// automdl compiles glTF scenes into Source engine models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var code int
	switch command {
	case "compile", "c":
		code = cmdCompile(ctx, args)
	case "export", "x":
		code = cmdExport(ctx, args)
	case "skins":
		code = cmdSkins(args)
	case "islands":
		code = cmdIslands(args)
	case "watch", "w":
		code = cmdWatch(ctx, args)
	case "config":
		code = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	stop()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`automdl - compile glTF scenes into Source engine models

Usage:
  automdl <command> [options] <scene.gltf|scene.glb>

Commands:
  compile   Export every visible mesh object and compile it with studiomdl
  export    Write SMD, QC and placeholder VMT files without compiling
  skins     Print the skin families inferred from material names
  islands   Print the number of separate pieces in every mesh object
  watch     Compile, then compile again whenever the scene is saved
  config    Print the effective configuration, or store it with -save

Objects named COL_<name> are used as the collision mesh of <name>.
The scene must be saved below a "models" folder unless -models-root is set.

Examples:
  automdl compile -studiomdl ~/sdk/bin/studiomdl -game ~/sdk/hl2 models/props/crate.glb
  automdl export -o build models/props/crate.glb
  automdl skins models/props/crate.glb
  automdl config -game ~/sdk/hl2 -surfaceprop Wood -save

Run "automdl <command> -h" for the options of a command.`)
}

// usage returns a flag set usage function naming the positional argument.
func usage(fs *flag.FlagSet, positional string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: automdl %s [options] %s\n\nOptions:\n", fs.Name(), positional)
		fs.PrintDefaults()
	}
}

func sceneArg(fs *flag.FlagSet) (string, bool) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", false
	}
	return fs.Arg(0), true
}
