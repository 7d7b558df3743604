package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/client/cart"
)

// cartView - данные для cartTemplate
type cartView struct {
	Lines []cart.Line
	Total decimal.Decimal
}

func (c *Cli) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart stored on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showCart()
		},
	}

	cmd.AddCommand(
		c.cartAddCommand(),
		c.cartListCommand(),
		c.cartRemoveCommand(),
		c.cartClearCommand(),
		c.cartQuoteCommand(),
	)
	return cmd
}

func (c *Cli) showCart() error {
	return c.render("cart", cartTemplate, cartView{Lines: c.cart.Lines(), Total: c.cart.Total()})
}

func (c *Cli) cartAddCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			product, err := c.catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if _, err := c.cart.Add(ctx, *product, quantity); err != nil {
				return err
			}
			if line, ok := c.cart.Line(product.ID); ok {
				c.io.Printf("%s x%d, subtotal %s\n", line.Name, line.Quantity, formatMoney(line.Subtotal()))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "Quantity to add")
	return cmd
}

func (c *Cli) cartListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showCart()
		},
	}
}

func (c *Cli) cartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>...",
		Short: "Remove one or more products from the cart",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := c.cart.Len()
			c.cart.RemoveMany(cmd.Context(), args)
			c.io.Printf("Removed %d line(s)\n", before-c.cart.Len())
			return nil
		},
	}
}

func (c *Cli) cartClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove everything from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.cart.Clear(cmd.Context())
			c.io.Println("✓ Cart cleared")
			return nil
		},
	}
}

func (c *Cli) cartQuoteCommand() *cobra.Command {
	var usePoints bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the amount to pay, optionally with loyalty points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := c.orders.Quote(cmd.Context(), usePoints)
			if err != nil {
				return err
			}
			return c.render("quote", quoteTemplate, quote)
		},
	}

	cmd.Flags().BoolVar(&usePoints, "use-points", false, "Pay part of the order with loyalty points")
	return cmd
}
