package shared

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// Versions holds build information for the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// HasFlags reports whether any flag in the set was given on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// WriteOutput writes data to outputPath, or to stdout when outputPath is empty.
// A directory (or an extensionless path) gets nameTemplate appended.
// It returns the file written, or "" for stdout.
func WriteOutput(stdout io.Writer, outputPath, nameTemplate string, data []byte) (string, error) {
	if outputPath == "" {
		if _, err := stdout.Write(data); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		return "", nil
	}

	filePath, folder, err := files.DetermineFileFullPath(outputPath, nameTemplate)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}
	if err := files.WriteFile(filePath, data); err != nil {
		return "", err
	}
	return filePath, nil
}
