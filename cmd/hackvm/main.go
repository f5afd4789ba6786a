package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/iley/hackvm/internal/translator"
)

const vmExtension = ".vm"

var (
	outputFile  string
	noBootstrap bool
)

var rootCmd = &cobra.Command{
	Use:   "hackvm <file.vm> | <directory>",
	Short: "Hack VM translator",
	Long:  "Translates Hack virtual machine code into Hack assembly.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := run(args[0]); err != nil {
			cmd.SilenceUsage = true
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file name")
	rootCmd.Flags().BoolVar(&noBootstrap, "no-bootstrap", false, "omit the stack setup and Sys.init call")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(inputPath string) error {
	// Convert "." to an absolute path so the derived output name is stable.
	if inputPath == "." {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		inputPath = wd
	}

	stat, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("path %s does not exist", inputPath)
	}

	var vmFiles []string
	if stat.IsDir() {
		vmFiles, err = findVMFiles(inputPath)
		if err != nil {
			return fmt.Errorf("failed to find %s files in directory %s: %w", vmExtension, inputPath, err)
		}
		if len(vmFiles) == 0 {
			return fmt.Errorf("no %s files found in directory %s", vmExtension, inputPath)
		}
	} else {
		if filepath.Ext(inputPath) != vmExtension {
			return fmt.Errorf("input file %s does not have the %s extension", inputPath, vmExtension)
		}
		vmFiles = []string{inputPath}
	}

	outPath := outputFile
	if outPath == "" {
		outPath = defaultOutputPath(inputPath, stat.IsDir())
	}

	sources := make([]translator.Source, 0, len(vmFiles))
	for _, path := range vmFiles {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("error opening input file: %w", err)
		}
		defer file.Close()
		sources = append(sources, translator.Source{
			Name:   strings.TrimSuffix(filepath.Base(path), vmExtension),
			Path:   path,
			Reader: file,
		})
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	// A fault anywhere in the run leaves no partial artifact behind.
	atexit.Register(func() {
		if out != nil {
			out.Close()
			os.Remove(outPath)
		}
	})

	opts := translator.Options{Bootstrap: !noBootstrap}
	if err := translator.Translate(out, sources, opts); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	out = nil

	fmt.Printf("Built %s\n", outPath)
	return nil
}

// findVMFiles scans a directory for .vm files, in lexicographic order so
// repeated runs produce identical output.
func findVMFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var vmFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), vmExtension) {
			vmFiles = append(vmFiles, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(vmFiles)

	return vmFiles, nil
}

// defaultOutputPath derives the output name from the input: a file gets its
// extension replaced with .asm, a directory gets <dir>/<dirname>.asm.
func defaultOutputPath(inputPath string, isDir bool) string {
	if isDir {
		base := filepath.Base(inputPath)
		return filepath.Join(inputPath, base+".asm")
	}
	return strings.TrimSuffix(inputPath, vmExtension) + ".asm"
}
