package cli

import (
	"github.com/spf13/cobra"
)

func (c *Cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and delete all local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Println("=== Logout ===")

			if err := c.auth.Logout(cmd.Context()); err != nil {
				return err
			}

			c.io.Println("✓ Logout successful!")
			c.io.Println("Your session, profile and cart have been removed from this device.")
			return nil
		},
	}
}
