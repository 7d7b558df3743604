package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/models"
)

type registrationFlags struct {
	form      models.RegistrationForm
	passwords Passwords
}

func (f *registrationFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.form.Name, "name", "", "Full name")
	flags.StringVar(&f.form.Phone, "phone", "", "Phone number")
	flags.StringVar(&f.form.Email, "email", "", "Email")
	flags.StringVar(&f.form.Dob, "dob", "", "Date of birth, YYYY-MM-DD")
	flags.StringVar(&f.form.Sex, "sex", "", "Sex")
	flags.StringVar(&f.passwords.FromFile, "password-file", "", "Path to file containing the password")
	flags.StringVar(&f.passwords.FromArgs, "password", "", "Password (not recommended)")
}

// readForm дозапрашивает незаполненные поля формы регистрации
func (c *Cli) readForm(f *registrationFlags) (models.RegistrationForm, error) {
	form := f.form
	var err error

	if form.Name, err = c.prompt(form.Name, "Name: "); err != nil {
		return form, err
	}
	if form.Phone, err = c.prompt(form.Phone, "Phone: "); err != nil {
		return form, err
	}
	if form.Email, err = c.prompt(form.Email, "Email: "); err != nil {
		return form, err
	}
	if form.Dob, err = c.prompt(form.Dob, "Date of birth (YYYY-MM-DD): "); err != nil {
		return form, err
	}
	if form.Sex, err = c.prompt(form.Sex, "Sex: "); err != nil {
		return form, err
	}
	if form.Password, err = c.getPassword(f.passwords); err != nil {
		return form, err
	}
	return form, nil
}

func (c *Cli) registerCommand() *cobra.Command {
	flags := &registrationFlags{}
	var otp string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. The server emails a one-time code; enter it when
asked, or later with 'koishop verify-otp' and the same details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Println("=== Registration ===")

			form, err := c.readForm(flags)
			if err != nil {
				return err
			}
			if err := c.auth.Register(cmd.Context(), form); err != nil {
				return err
			}

			c.io.Println()
			c.io.Printf("A verification code was sent to %s.\n", form.Email)

			code, err := c.prompt(otp, "Verification code (empty to skip): ")
			if err != nil || code == "" {
				c.io.Println("Run 'koishop verify-otp' with the same details to finish registration.")
				return nil
			}
			return c.verify(cmd, form, code)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&otp, "otp", "", "Verification code, if already known")
	return cmd
}

func (c *Cli) verifyOTPCommand() *cobra.Command {
	flags := &registrationFlags{}
	var otp string

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Finish registration with the emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := c.readForm(flags)
			if err != nil {
				return err
			}
			code, err := c.prompt(otp, "Verification code: ")
			if err != nil {
				return err
			}
			return c.verify(cmd, form, code)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&otp, "otp", "", "Verification code")
	return cmd
}

func (c *Cli) verify(cmd *cobra.Command, form models.RegistrationForm, code string) error {
	if err := c.auth.VerifyOTP(cmd.Context(), form, code); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Println("Please run 'koishop login' to start shopping.")
	return nil
}
