package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"foodies/internal/export"
	"foodies/internal/log"
	"foodies/internal/model"
	"foodies/internal/query"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the sample data when the store is empty",
		Long: `Install the sample places, shops, foods and trips. Nothing happens when
any collection already holds data.

Example:
  foodies seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := a.store.SeedIfEmpty()
			if err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Store already has data, nothing seeded.")
				return nil
			}
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d places, %d shops, %d foods and %d trips.\n",
				len(doc.Places), len(doc.Shops), len(doc.Foods), len(doc.Trips))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Long: `Display the dashboard numbers: collection counts, averages, the most
visited shops, the top shops and places by average rating and price, and
the trip totals.

Example:
  foodies stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			st := a.settings.Get()
			d := stats.Dashboard(doc, a.now())
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Foodies Statistics")
			fmt.Fprintln(w, "==================")
			fmt.Fprintf(w, "Places:         %d\n", d.Places)
			fmt.Fprintf(w, "Shops:          %d\n", d.Shops)
			fmt.Fprintf(w, "Foods:          %d\n", d.Foods)
			fmt.Fprintf(w, "Favorites:      %d\n", d.Favorites)
			fmt.Fprintf(w, "Avg rating:     %s\n", util.FormatAvgRating(d.AvgRating))
			fmt.Fprintf(w, "Avg price:      %s\n", util.FormatAmount(d.AvgPrice, st))

			if len(d.TopShops) > 0 {
				fmt.Fprintln(w, "\nTop shops")
				for i, sc := range d.TopShops {
					fmt.Fprintf(w, "  %d. %s (%d foods)\n", i+1, sc.Shop.Name, sc.Count)
				}
			}

			shopName := func(s model.Shop) string { return s.Name }
			placeName := func(p model.Place) string { return p.Name }
			printAverages(w, "Top shops by avg rating", d.TopShopsByRating, shopName, nil)
			printAverages(w, "Top places by avg rating", d.TopPlacesByRating, placeName, nil)
			printAverages(w, "Top shops by avg price", d.TopShopsByPrice, shopName, &st)
			printAverages(w, "Top places by avg price", d.TopPlacesByPrice, placeName, &st)

			ts := d.TripStats
			fmt.Fprintln(w, "\nTrips")
			fmt.Fprintf(w, "Total:          %d (%d main, %d entries)\n", ts.Total, ts.Mains, ts.Entries)
			fmt.Fprintf(w, "Spent:          %s\n", util.FormatAmount(ts.TotalExpense, st))
			fmt.Fprintf(w, "Avg rating:     %s\n", util.FormatAvgRating(ts.AvgRating))
			if len(d.TopTripTags) > 0 {
				tags := make([]string, len(d.TopTripTags))
				for i, tc := range d.TopTripTags {
					tags[i] = fmt.Sprintf("%s (%d)", tc.Tag, tc.Count)
				}
				fmt.Fprintf(w, "Top tags:       %s\n", strings.Join(tags, ", "))
			}

			fmt.Fprintln(w, "\nCoverage")
			fmt.Fprintf(w, "States:         %s\n", listOrNone(query.States(doc.Places)))
			fmt.Fprintf(w, "Years:          %s\n", listOrNone(query.Years(doc.Trips)))
			fmt.Fprintf(w, "Tags:           %d distinct\n", len(query.AllTags(doc.Trips)))
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print a report of every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			return export.WriteReport(cmd.OutOrStdout(), doc, a.settings.Get())
		},
	}
}

func newGalleryCmd(a *app) *cobra.Command {
	var (
		sortKey string
		asc     bool
	)
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Rank every shop by its foods",
		Long: `List every shop with its food count, average rating and average price.
Orders run highest first, or Z to A for names; --asc reverses them.

Examples:
  foodies gallery
  foodies gallery --sort price --asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := stats.GallerySort(sortKey)
			if !slices.Contains(stats.GallerySorts, key) {
				return fmt.Errorf("unknown sort %q (want one of %s)", sortKey, gallerySortNames())
			}
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			return export.WriteShopGallery(cmd.OutOrStdout(), doc, key, asc, a.settings.Get())
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", string(stats.GalleryByRating), "order: "+gallerySortNames())
	cmd.Flags().BoolVar(&asc, "asc", false, "reverse the order")
	return cmd
}

func gallerySortNames() string {
	names := make([]string, len(stats.GallerySorts))
	for i, s := range stats.GallerySorts {
		names[i] = string(s)
	}
	return strings.Join(names, "|")
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup",
		Long: `Replace the whole dataset with the contents of a backup written by
"foodies export backup". The file must contain places, shops and foods;
trips are optional. Invalid files leave the store untouched.

Example:
  foodies import foodies-blog-backup-2025-11-15.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer f.Close()

			doc, err := export.ParseBackup(f)
			if err != nil {
				return err
			}
			if err := a.store.Replace(doc); err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}
			a.logger.WithComponent(log.ComponentCLI).Info("backup imported",
				log.NewFields().WithOperation(log.OpReplace).ToSlice()...)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d places, %d shops, %d foods and %d trips.\n",
				len(doc.Places), len(doc.Shops), len(doc.Foods), len(doc.Trips))
			return nil
		},
	}
}

// printAverages lists rows by average rating, or by average price when
// prices carries the display settings.
func printAverages[T any](w io.Writer, title string, rows []stats.Averaged[T], name func(T) string, prices *model.Settings) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for i, r := range rows {
		value := util.FormatAvgRating(r.AvgRating)
		if prices != nil {
			value = util.Placeholder
			if !r.AvgPrice.IsZero() {
				value = util.FormatAmount(r.AvgPrice, *prices)
			}
		}
		fmt.Fprintf(w, "  %d. %s %s (%d foods)\n", i+1, name(r.Item), value, r.Foods)
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return util.Placeholder
	}
	return strings.Join(items, ", ")
}
