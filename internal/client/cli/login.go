package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// PasswordEnv задает пароль для неинтерактивного входа
const PasswordEnv = "KOISHOP_PASSWORD"

// Passwords lists the places a password can come from
type Passwords struct {
	FromFile string
	FromArgs string
}

func (c *Cli) loginCommand() *cobra.Command {
	var email string
	var passwords Passwords

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in and store the session on this device.

Password priority (highest to lowest):
  1. KOISHOP_PASSWORD environment variable
  2. --password-file
  3. --password (not recommended)
  4. Interactive prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Println("=== Login ===")

			email, err := c.prompt(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := c.getPassword(passwords)
			if err != nil {
				return err
			}

			session, err := c.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			c.io.Println()
			c.io.Println("✓ Login successful!")
			c.io.Printf("Welcome, %s (%s)\n", session.Name, session.Role)
			if session.ExpiresAt > 0 {
				c.io.Printf("Access token expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&passwords.FromFile, "password-file", "", "Path to file containing the password")
	cmd.Flags().StringVar(&passwords.FromArgs, "password", "", "Password (not recommended, use env var or file)")
	return cmd
}

// getPassword retrieves the password from the first source that has one
func (c *Cli) getPassword(passwords Passwords) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if passwords.FromFile != "" {
		return readPasswordFile(passwords.FromFile)
	}

	if passwords.FromArgs != "" {
		return passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
