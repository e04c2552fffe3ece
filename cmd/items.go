package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gift-registry/internal/storage"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage gift items",
	Long:  `List and bulk-import gift items from the command line.`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all gift items",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		items, err := provider.ListItems(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing items: %v\n", err)
			os.Exit(1)
		}

		if len(items) == 0 {
			fmt.Println("No gift items found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPRICE\tGROUP\tSTATUS\tCREATED AT")
		for _, item := range items {
			group := "-"
			if item.IsGroupGift && item.GoalCents != nil {
				group = formatCents(*item.GoalCents)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				item.ID, item.Title, formatCents(item.PriceSuggestedCents),
				group, item.Status, item.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

// importItemRow mirrors one item in an import file.
type importItemRow struct {
	Title               string  `yaml:"title" json:"title"`
	Description         *string `yaml:"description" json:"description"`
	ImageURL            *string `yaml:"image_url" json:"image_url"`
	StoreURL            *string `yaml:"store_url" json:"store_url"`
	Category            *string `yaml:"category" json:"category"`
	PriceSuggestedCents int64   `yaml:"price_suggested_cents" json:"price_suggested_cents"`
	IsGroupGift         bool    `yaml:"is_group_gift" json:"is_group_gift"`
	GoalCents           *int64  `yaml:"goal_cents" json:"goal_cents"`
	Status              string  `yaml:"status" json:"status"`
}

var itemsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import gift items from a YAML or JSON file",
	Long: `Import gift items in bulk. The file holds a list of items; bad rows are
reported and skipped, good rows are created.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}

		var rows []importItemRow
		if strings.HasSuffix(args[0], ".json") {
			err = json.Unmarshal(data, &rows)
		} else {
			err = yaml.Unmarshal(data, &rows)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
			os.Exit(1)
		}

		var created, failed int
		for i, row := range rows {
			item, err := rowToItem(row)
			if err == nil {
				err = provider.CreateItem(ctx, item)
			}
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Row %d (%s): %v\n", i, row.Title, err)
				continue
			}
			created++
		}

		fmt.Printf("%d items imported, %d failed.\n", created, failed)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func rowToItem(row importItemRow) (*storage.GiftItem, error) {
	title := strings.TrimSpace(row.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if row.PriceSuggestedCents < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}

	status := row.Status
	if status == "" {
		status = storage.ItemStatusActive
	}
	switch status {
	case storage.ItemStatusActive, storage.ItemStatusDelivered, storage.ItemStatusArchived:
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}

	if row.IsGroupGift {
		if row.GoalCents == nil || *row.GoalCents <= 0 {
			return nil, fmt.Errorf("group gifts need a positive goal_cents")
		}
	} else if row.GoalCents != nil {
		return nil, fmt.Errorf("goal_cents is only valid for group gifts")
	}

	return &storage.GiftItem{
		Title:               title,
		Description:         row.Description,
		ImageURL:            row.ImageURL,
		StoreURL:            row.StoreURL,
		Category:            row.Category,
		PriceSuggestedCents: row.PriceSuggestedCents,
		IsGroupGift:         row.IsGroupGift,
		GoalCents:           row.GoalCents,
		Status:              status,
	}, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsImportCmd)
}
