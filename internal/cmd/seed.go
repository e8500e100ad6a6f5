package cmd

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedExtensions = []string{".json", ".txt", ".js", ".html", ".css"}

// NewSeedCmd creates and returns the seed subcommand for the datagz CLI.
// It generates sample web assets to try the pipeline on.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		lines      int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample files in a data directory",
		Long: `Generate sample files for trying out datagz.

Creates files directly inside the output directory with random hex names and
a mix of .json, .txt, .js, .html and .css extensions. Each file holds a
number of UUID lines drawn from a small pool, so the content compresses the
way repetitive web assets do.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := runSeed(outputPath, fileCount, lines)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %d files in %s\n", created, outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 20, "Number of files to generate")
	cmd.Flags().IntVar(&lines, "lines", 64, "UUID lines per file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount, lines int) (int, error) {
	if fileCount < 0 || lines < 0 {
		return 0, fmt.Errorf("count and lines must not be negative")
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate pool of 16 UUIDs
	uuidPool := make([]string, 16)
	for i := range uuidPool {
		uuidPool[i] = uuid.New().String()
	}

	filesCreated := 0
	for filesCreated < fileCount {
		filenameNum, err := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
		if err != nil {
			return filesCreated, err
		}
		extIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(seedExtensions))))
		if err != nil {
			return filesCreated, err
		}
		filePath := filepath.Join(outputPath, fmt.Sprintf("%08x%s", filenameNum.Int64(), seedExtensions[extIndex.Int64()]))

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		var b strings.Builder
		for range lines {
			uuidIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(uuidPool))))
			if err != nil {
				return filesCreated, err
			}
			b.WriteString(uuidPool[uuidIndex.Int64()])
			b.WriteByte('\n')
		}

		if err := os.WriteFile(filePath, []byte(b.String()), 0644); err != nil {
			return filesCreated, fmt.Errorf("failed to write file %s: %w", filePath, err)
		}
		filesCreated++
	}
	return filesCreated, nil
}
