package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/models"
)

func (c *Cli) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View and manage orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showHistory(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "history",
			Short: "Show your orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.showHistory(cmd)
			},
		},
		&cobra.Command{
			Use:   "status <status>",
			Short: "List orders with a status (staff, admin)",
			Long: `List orders with a status (staff, admin).

Known statuses: Processing, "In Transit", Completed, Cancelled.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				orders, err := c.orders.ByStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.render("orders", orderListTemplate, orders)
			},
		},
		c.ordersCancelCommand(),
		&cobra.Command{
			Use:   "confirm <order-id>",
			Short: "Confirm an order (staff, admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.orders.Confirm(cmd.Context(), args[0]); err != nil {
					return err
				}
				c.io.Printf("✓ Order %s confirmed\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "complete <order-id>",
			Short: "Mark an order as completed (staff, admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.orders.Complete(cmd.Context(), args[0]); err != nil {
					return err
				}
				c.io.Printf("✓ Order %s completed\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (c *Cli) showHistory(cmd *cobra.Command) error {
	orders, err := c.orders.History(cmd.Context())
	if err != nil {
		return err
	}
	return c.render("orders", orderListTemplate, orders)
}

func (c *Cli) ordersCancelCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, err := c.prompt(reason, "Reason: ")
			if err != nil {
				return err
			}
			if err := c.orders.Cancel(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			c.io.Printf("✓ Order %s cancelled\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")
	return cmd
}

func (c *Cli) commentCommand() *cobra.Command {
	var form models.CommentForm

	cmd := &cobra.Command{
		Use:   "comment <koi-id>",
		Short: "Review a product you bought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.KoiID = args[0]

			content, err := c.prompt(form.Content, "Comment: ")
			if err != nil {
				return err
			}
			form.Content = content

			if err := c.orders.Comment(cmd.Context(), form); err != nil {
				return err
			}
			c.io.Println("✓ Thank you for your review!")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.OrderID, "order", "", "Order the product came with")
	cmd.Flags().IntVar(&form.Rating, "rating", models.MaxRating, "Rating from 1 to 5")
	cmd.Flags().StringVar(&form.Content, "content", "", "Review text")
	return cmd
}
