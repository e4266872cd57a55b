package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/core"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List content categories and the keywords that select them",
		Long: `List the categories in matching priority order.

A theme is assigned the first category with a keyword that appears in it
as a whole word. Themes that match nothing use the generic pool.

Examples:
  cadence categories
  cadence categories --theme "AI Tools for Small Business"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}

			if theme != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%q → %s\n", theme, c.Categorize(theme))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return lipgloss.NewStyle().Bold(true).Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Headers("PRIORITY", "CATEGORY", "TOPICS", "ANCHOR", "KEYWORDS")

			for i, name := range core.Categories() {
				p := c.Pool(name)
				keywords := strings.Join(p.Keywords, ", ")
				if keywords == "" {
					keywords = "(fallback)"
				}
				t.Row(strconv.Itoa(i+1), string(p.Name), strconv.Itoa(len(p.Topics)), "#"+p.AnchorTag(), keywords)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&theme, "theme", "t", "", "Show which category a theme maps to")

	return cmd
}

// loadCatalog returns the catalog named by plan.catalog_path, or the built-in one.
func loadCatalog() (*catalog.Catalog, error) {
	if path := config.GetPlan().CatalogPath; path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default(), nil
}
