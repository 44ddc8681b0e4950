package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/automdl/internal/scene"
	"github.com/Faultbox/automdl/pkg/islands"
	"github.com/Faultbox/automdl/pkg/skins"
)

func loadScene(name string, args []string) (*scene.Scene, bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = usage(fs, "<scene>")
	fs.Parse(args)

	path, ok := sceneArg(fs)
	if !ok {
		return nil, false
	}
	s, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return s, true
}

func cmdSkins(args []string) int {
	s, ok := loadScene("skins", args)
	if !ok {
		return 1
	}

	for _, job := range s.Pair() {
		obj := job.Visual
		table := skins.Infer(obj.Slots)
		if table.Empty() {
			fmt.Printf("%s: no skins\n", obj.Name)
			continue
		}

		fmt.Printf("%s: %d skin(s)\n", obj.Name, len(table.Skins))
		for i, row := range table.Rows() {
			fmt.Printf("  %-4d %s\n", i, strings.Join(row, "  "))
		}
	}
	return 0
}

func cmdIslands(args []string) int {
	s, ok := loadScene("islands", args)
	if !ok {
		return 1
	}

	for _, obj := range s.Objects {
		kind := "visual"
		if obj.IsCollision() {
			kind = "collision"
		}
		fmt.Printf("%-30s %-9s %d\n", obj.Name, kind, islands.CountMesh(obj.Mesh))
	}
	return 0
}
