package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type target struct {
	name   string
	pkg    string
	output string
}

var targets = []target{
	{name: "server", pkg: "./cmd/server", output: "bin/server"},
	{name: "nocturne", pkg: "./cmd/nocturne", output: "bin/nocturne"},
}

func BuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the server and CLI binaries in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when binaries are up to date")
	return cmd
}

func runBuild(force bool) error {
	sources := goSources()

	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(targets))

	for _, t := range targets {
		wg.Add(1)
		go func(t target) {
			defer wg.Done()

			if !force && isUpToDate(t.output, sources) {
				fmt.Printf("[%s] up to date\n", t.name)
				return
			}

			buildStart := time.Now()
			cmd := exec.Command("go", "build", "-o", t.output, t.pkg)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr

			err := cmd.Run()
			if err != nil {
				errCh <- fmt.Errorf("%s: %w", t.name, err)
				return
			}

			fmt.Printf("[%s] done (%s)\n", t.name, time.Since(buildStart).Round(time.Millisecond))
		}(t)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Println("error:", err)
		}
		return fmt.Errorf("build failed")
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func goSources() []string {
	inputs := []string{"go.mod", "go.sum"}
	_ = filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case "bin", "tmp", "data", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") || strings.HasSuffix(path, ".sql") {
			inputs = append(inputs, path)
		}
		return nil
	})
	return inputs
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
