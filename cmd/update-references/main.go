package main

import (
	"fmt"
	"os"
	"path/filepath"

	"l14paint/pkg/visualtest"
)

// Simple tool to regenerate the reference images of the scene tests.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Reference image generator for l14paint")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/update-references <scene-dir|scene.yaml>...")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  go run ./cmd/update-references pkg/visualtest/testdata/scenes")
		os.Exit(1)
	}

	count := 0
	for _, arg := range os.Args[1:] {
		scenes, err := scenesIn(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, path := range scenes {
			ref := visualtest.ReferencePath(path)
			fmt.Printf("Generating: %s\n", ref)
			if err := visualtest.UpdateReferenceImage(path, ref); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to generate %s: %v\n", ref, err)
				os.Exit(1)
			}
			count++
		}
	}
	fmt.Printf("%d reference images generated\n", count)
}

// scenesIn lists the scene files of a directory, or the file itself.
func scenesIn(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return filepath.Glob(filepath.Join(path, "*.yaml"))
}
