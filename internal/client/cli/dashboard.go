package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/client/dashboard"
)

func (c *Cli) dashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Revenue reports (admin)",
	}

	cmd.AddCommand(c.dashboardDailyCommand(), c.dashboardMonthlyCommand())
	return cmd
}

func (c *Cli) dashboardDailyCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Revenue per day for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			end := time.Now()
			if to != "" {
				parsed, err := time.Parse(time.DateOnly, to)
				if err != nil {
					return fmt.Errorf("invalid --to date %q: %w", to, err)
				}
				end = parsed
			}
			// по умолчанию последние 7 дней
			start := end.AddDate(0, 0, -6)
			if from != "" {
				parsed, err := time.Parse(time.DateOnly, from)
				if err != nil {
					return fmt.Errorf("invalid --from date %q: %w", from, err)
				}
				start = parsed
			}

			report, err := c.dashboard.Daily(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			c.io.Printf("=== Revenue %s .. %s ===\n", start.Format(time.DateOnly), end.Format(time.DateOnly))
			return c.renderReport(report)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, YYYY-MM-DD (default: 6 days before --to)")
	cmd.Flags().StringVar(&to, "to", "", "Last day, YYYY-MM-DD (default: today)")
	return cmd
}

func (c *Cli) dashboardMonthlyCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Revenue per month for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.dashboard.Monthly(cmd.Context(), year)
			if err != nil {
				return err
			}
			c.io.Printf("=== Revenue %d ===\n", year)
			return c.renderReport(report)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	return cmd
}

func (c *Cli) renderReport(report *dashboard.Report) error {
	if len(report.Buckets) == 0 {
		c.io.Println("No revenue for this period.")
		return nil
	}
	return c.render("revenue", revenueTemplate, report)
}
