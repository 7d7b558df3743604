package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

func (c *Cli) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"koi"},
		Short:   "Browse and manage the koi catalog",
	}

	cmd.AddCommand(
		c.productsListCommand(),
		c.productsSearchCommand(),
		c.productsCategoriesCommand(),
		c.productsGetCommand(),
		c.productsCreateCommand(),
		c.productsUpdateCommand(),
	)
	return cmd
}

func (c *Cli) productsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := c.catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			return c.render("products", productListTemplate, products)
		},
	}
}

func (c *Cli) productsSearchCommand() *cobra.Command {
	var params api.SearchParams

	cmd := &cobra.Command{
		Use:   "search [name]",
		Short: "Search products by name, type and price order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Name = args[0]
			}
			products, err := c.catalog.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return c.render("products", productListTemplate, products)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&params.Type, "type", "", "Koi type (category)")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "Price order: asc or desc")
	return cmd
}

func (c *Cli) productsCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List koi categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := c.catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				c.io.Println("No categories found.")
				return nil
			}
			for _, category := range categories {
				c.io.Printf("- %s (%s)\n", category.Name, category.ID)
			}
			return nil
		},
	}
}

func (c *Cli) productsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := c.catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render("product", productTemplate, product)
		},
	}
}

// productFlags - поля формы товара; цена передается строкой и разбирается в decimal
type productFlags struct {
	form  models.ProductForm
	price string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.form.Name, "name", "", "Product name")
	flags.StringVar(&f.form.Image, "image", "", "Image URL")
	flags.StringVar(&f.form.Description, "des", "", "Description")
	flags.StringVar(&f.price, "price", "", "Price in dong")
	flags.StringVar(&f.form.Type, "type", "", "Koi type (category)")
	flags.IntVar(&f.form.Quantity, "quantity", 0, "Units in stock")
	flags.StringVar(&f.form.Origin, "origin", "", "Origin")
	flags.StringVar(&f.form.Sex, "sex", "", "male or female")
	flags.IntVar(&f.form.Age, "age", 0, "Age in years")
	flags.StringVar(&f.form.Size, "size", "", "Size")
	flags.StringVar(&f.form.Breed, "breed", "", "Breed")
	flags.StringVar(&f.form.Character, "character", "", "Character")
	flags.StringVar(&f.form.Diet, "diet", "", "Diet")
}

// apply переносит заданные флаги в form
func (f *productFlags) apply(cmd *cobra.Command, form *models.ProductForm) error {
	changed := cmd.Flags().Changed

	if changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return &models.ValidationError{Fields: map[string]string{"price": fmt.Sprintf("invalid amount %q", f.price)}}
		}
		form.Price = price
	}

	fields := []struct {
		name string
		dst  *string
		src  string
	}{
		{"name", &form.Name, f.form.Name},
		{"image", &form.Image, f.form.Image},
		{"des", &form.Description, f.form.Description},
		{"type", &form.Type, f.form.Type},
		{"origin", &form.Origin, f.form.Origin},
		{"sex", &form.Sex, f.form.Sex},
		{"size", &form.Size, f.form.Size},
		{"breed", &form.Breed, f.form.Breed},
		{"character", &form.Character, f.form.Character},
		{"diet", &form.Diet, f.form.Diet},
	}
	for _, field := range fields {
		if changed(field.name) {
			*field.dst = field.src
		}
	}
	if changed("quantity") {
		form.Quantity = f.form.Quantity
	}
	if changed("age") {
		form.Age = f.form.Age
	}
	return nil
}

func (c *Cli) productsCreateCommand() *cobra.Command {
	flags := &productFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product (staff, admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var form models.ProductForm
			if err := flags.apply(cmd, &form); err != nil {
				return err
			}

			product, err := c.catalog.Create(cmd.Context(), form)
			if err != nil {
				return err
			}

			c.io.Println("✓ Product created")
			return c.render("product", productTemplate, product)
		},
	}

	flags.bind(cmd)
	return cmd
}

func (c *Cli) productsUpdateCommand() *cobra.Command {
	flags := &productFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product (staff, admin)",
		Long:  "Edit a product. Fields not given as flags keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := c.catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}

			form := productForm(current)
			if err := flags.apply(cmd, &form); err != nil {
				return err
			}

			product, err := c.catalog.Update(ctx, args[0], form)
			if err != nil {
				return err
			}

			c.io.Println("✓ Product updated")
			return c.render("product", productTemplate, product)
		},
	}

	flags.bind(cmd)
	return cmd
}

func productForm(p *api.Product) models.ProductForm {
	return models.ProductForm{
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Price:       p.Price,
		Type:        p.Type,
		Quantity:    p.Quantity,
		Origin:      p.Origin,
		Sex:         p.Sex,
		Age:         p.Age,
		Size:        p.Size,
		Breed:       p.Breed,
		Character:   p.Character,
		Diet:        p.Diet,
	}
}
