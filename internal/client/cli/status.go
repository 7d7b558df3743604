package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/client/auth"
	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in account and cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.auth.Current(cmd.Context())
			if errors.Is(err, auth.ErrNotSignedIn) {
				c.io.Println("Status: Not signed in")
				c.io.Println()
				c.io.Println("Run 'koishop login' to sign in.")
				return nil
			}
			if err != nil {
				return err
			}

			c.io.Println("Status: Signed in")
			if err := c.render("status", statusTemplate, session); err != nil {
				return err
			}

			if session.ExpiresAt > 0 {
				expiresAt := time.Unix(session.ExpiresAt, 0)
				c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
				if remaining := time.Until(expiresAt); remaining > 0 {
					c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
				} else {
					// при следующем запросе токен будет обновлен
					c.io.Println("Access token has expired, it will be refreshed on the next request.")
				}
			}

			c.io.Println()
			c.io.Printf("Cart: %d line(s), total %s\n", c.cart.Len(), formatMoney(c.cart.Total()))
			return nil
		},
	}
}

type profileFlags struct {
	form models.ProfileForm
}

func (c *Cli) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.render("profile", statusTemplate, session); err != nil {
				return err
			}

			address, err := c.auth.Address(cmd.Context())
			switch {
			case errors.Is(err, storage.ErrAddressNotFound):
				c.io.Println("Address: not set")
			case err != nil:
				return err
			default:
				c.io.Printf("Address: %s, %s, %s\n", address.Street, address.District, address.City)
			}
			return nil
		},
	}

	cmd.AddCommand(c.profileUpdateCommand())
	return cmd
}

func (c *Cli) profileUpdateCommand() *cobra.Command {
	flags := &profileFlags{}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update name, phone, birth date, sex and address",
		Long: `Update the profile. Fields not given as flags keep their current values;
a missing address is asked for interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := c.auth.Current(ctx)
			if err != nil {
				return err
			}

			form := models.ProfileForm{
				Name:  session.Name,
				Phone: session.Phone,
				Dob:   session.Dob,
				Sex:   session.Sex,
			}
			if address, err := c.auth.Address(ctx); err == nil {
				form.Address = *address
			}

			changed := cmd.Flags().Changed
			if changed("name") {
				form.Name = flags.form.Name
			}
			if changed("phone") {
				form.Phone = flags.form.Phone
			}
			if changed("dob") {
				form.Dob = flags.form.Dob
			}
			if changed("sex") {
				form.Sex = flags.form.Sex
			}
			if form.Address, err = c.readAddress(flags.form.Address, form.Address); err != nil {
				return err
			}

			updated, err := c.auth.UpdateProfile(ctx, form)
			if err != nil {
				return err
			}

			c.io.Println("✓ Profile updated")
			return c.render("profile", statusTemplate, updated)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.form.Name, "name", "", "Full name")
	f.StringVar(&flags.form.Phone, "phone", "", "Phone number")
	f.StringVar(&flags.form.Dob, "dob", "", "Date of birth, YYYY-MM-DD")
	f.StringVar(&flags.form.Sex, "sex", "", "Sex")
	bindAddressFlags(cmd, &flags.form.Address)
	return cmd
}

func bindAddressFlags(cmd *cobra.Command, address *api.Address) {
	cmd.Flags().StringVar(&address.Street, "street", "", "Shipping street")
	cmd.Flags().StringVar(&address.District, "district", "", "Shipping district")
	cmd.Flags().StringVar(&address.City, "city", "", "Shipping city")
}

// readAddress собирает адрес: флаги, затем сохраненный адрес, затем ввод пользователя
func (c *Cli) readAddress(flags, saved api.Address) (api.Address, error) {
	address := saved
	if flags.Street != "" {
		address.Street = flags.Street
	}
	if flags.District != "" {
		address.District = flags.District
	}
	if flags.City != "" {
		address.City = flags.City
	}

	var err error
	if address.Street, err = c.prompt(address.Street, "Street: "); err != nil {
		return address, err
	}
	if address.District, err = c.prompt(address.District, "District: "); err != nil {
		return address, err
	}
	if address.City, err = c.prompt(address.City, "City: "); err != nil {
		return address, err
	}
	return address, nil
}
