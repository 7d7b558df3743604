package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/client/order"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

func (c *Cli) checkoutCommand() *cobra.Command {
	var flags models.CheckoutForm
	var payment string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Long: `Place an order for everything in the cart.

The shipping address defaults to the one saved in your profile. With online
payment (OP) the command prints the payment page URL; cash on delivery (COD)
needs no further step. The cart is cleared once the order is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if c.cart.Len() == 0 {
				return order.ErrEmptyCart
			}
			if err := c.showCart(); err != nil {
				return err
			}

			var saved api.Address
			if address, err := c.auth.Address(ctx); err == nil {
				saved = *address
			}
			address, err := c.readAddress(flags.Address, saved)
			if err != nil {
				return err
			}

			payment, err := c.prompt(payment, "Payment method (OP/COD): ")
			if err != nil {
				return err
			}

			form := models.CheckoutForm{
				Address:       address,
				PaymentMethod: models.PaymentMethod(strings.ToUpper(strings.TrimSpace(payment))),
				UsePoint:      flags.UsePoint,
			}

			c.io.Println()
			c.io.Println("=== Checkout ===")
			receipt, err := c.orders.Checkout(ctx, form)
			if errors.Is(err, order.ErrNoPaymentURL) {
				c.io.Println("The order was created but no payment page was returned. Your cart was kept.")
				return err
			}
			if err != nil {
				return err
			}

			if err := c.render("quote", quoteTemplate, receipt.Quote); err != nil {
				return err
			}
			c.io.Println()
			c.io.Println("✓ Order placed!")
			if receipt.OrderID != "" {
				c.io.Printf("Order ID: %s\n", receipt.OrderID)
			}
			if receipt.PaymentURL != "" {
				c.io.Println("Complete the payment at:")
				c.io.Println(receipt.PaymentURL)
			}
			return nil
		},
	}

	bindAddressFlags(cmd, &flags.Address)
	cmd.Flags().StringVar(&payment, "payment", "", "Payment method: OP (online) or COD (cash on delivery)")
	cmd.Flags().BoolVar(&flags.UsePoint, "use-points", false, "Pay part of the order with loyalty points")
	return cmd
}
