package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/opendp/cla-tool/internal/build"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// versionFlags holds the version flag values.
type versionFlags struct {
	short bool
	json  bool
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	f := &versionFlags{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for cla-tool.

Examples:
  cla-tool version
  cla-tool version --short
  cla-tool version --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, f)
		},
	}

	cmd.Flags().BoolVar(&f.short, "short", false, "Show version number only")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
	return cmd
}

func runVersion(cmd *cobra.Command, f *versionFlags) error {
	out := cmd.OutOrStdout()
	info := VersionInfo{
		Version:   build.Version(),
		GoVersion: runtime.Version(),
		Commit:    build.Commit(),
		BuildDate: build.Date(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if f.short {
		fmt.Fprintln(out, info.Version)
		return nil
	}

	if f.json {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	// Normal output
	fmt.Fprintf(out, "cla-tool version %s\n", info.Version)
	fmt.Fprintf(out, "Built with: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Commit: %s\n", info.Commit)
	fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", info.OS, info.Arch)

	return nil
}
