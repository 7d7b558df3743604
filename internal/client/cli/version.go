package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func (c *Cli) versionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Printf("Koishop Client\n")
			c.io.Printf("  Version:    %s\n", info.Version)
			c.io.Printf("  Build Date: %s\n", info.BuildDate)
			c.io.Printf("  Git Commit: %s\n", info.GitCommit)
			c.io.Printf("  Go:         %s\n", runtime.Version())
			return nil
		},
	}
}
