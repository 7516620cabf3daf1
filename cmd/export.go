package cmd

import (
	"fmt"
	"strings"
	"time"

	"foodies/internal/export"
	"foodies/internal/model"
	"foodies/internal/query"
	"foodies/internal/stats"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export data as JSON or CSV",
	}
	exportCmd.AddCommand(
		newExportBackupCmd(a),
		newExportCSVCmd(a),
		newExportTripCmd(a),
	)
	return exportCmd
}

func newExportBackupCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write the whole dataset as a JSON backup",
		Long: `Write places, shops, foods and trips as one JSON document. Without -o the
file is named after today's date, for example foodies-blog-backup-2025-11-15.json.
Use -o - to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			if out == "" {
				out = export.BackupFileName(a.now())
			}
			w, done, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.WriteBackup(w, doc); err != nil {
				done()
				return fmt.Errorf("failed to write backup: %w", err)
			}
			return done()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout")
	return cmd
}

var csvKinds = []string{"places", "shops", "foods", "trips", "rollup"}

// csvOptions holds the export csv flags. A filter flag only narrows the
// collections it applies to.
type csvOptions struct {
	out       string
	formatted bool

	search    string
	state     string
	place     string
	kind      string
	shop      string
	favorites bool
	minRating int
	minPrice  string
	maxPrice  string
	tag       string
	year      string
	month     string
	sort      string
}

func (o *csvOptions) validate() error {
	if o.kind != "" && !model.Kind(strings.ToLower(o.kind)).Valid() {
		return fmt.Errorf("unknown kind %q", o.kind)
	}
	if o.minRating < 0 || o.minRating > 5 {
		return fmt.Errorf("--min-rating must be between 0 and 5")
	}
	switch stats.RollupSort(o.sort) {
	case stats.SortByCombined, stats.SortByEntries, stats.SortByTitle:
	default:
		return fmt.Errorf("unknown roll-up sort %q", o.sort)
	}
	if len(o.month) == 1 {
		o.month = "0" + o.month
	}
	return nil
}

func (o csvOptions) tripFilter() query.TripFilter {
	return query.TripFilter{Search: o.search, Tag: o.tag, Year: o.year, Month: o.month}
}

func newExportCSVCmd(a *app) *cobra.Command {
	var opts csvOptions
	cmd := &cobra.Command{
		Use:   "csv {places|shops|foods|trips|rollup}",
		Short: "Write one collection as CSV",
		Long: `Write a collection as CSV. --formatted adds columns with prices and
averages formatted in the configured currency and locale. The rollup
export lists every main trip with the totals of its journal entries.

Filters narrow the rows: --search applies to every collection, --state to
places and shops, --place to shops, --kind, --shop, --favorites and the
rating and price bounds to foods, and --tag, --year and --month to trips.
The roll-up only counts trips and entries that pass the trip filters.

Examples:
  foodies export csv foods --formatted --kind noodle --min-rating 4
  foodies export csv trips --tag hanoi -o trips.csv
  foodies export csv rollup --year 2025 --sort entries`,
		ValidArgs: csvKinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			t := csvTable(args[0], doc, a.settings.Get(), opts, a.now())

			w, done, err := output(cmd.OutOrStdout(), opts.out)
			if err != nil {
				return err
			}
			if err := export.WriteCSV(w, t); err != nil {
				done()
				return fmt.Errorf("failed to write csv: %w", err)
			}
			return done()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "output", "o", "-", "output file, - for stdout")
	f.BoolVar(&opts.formatted, "formatted", false, "add locale formatted price columns")
	f.StringVar(&opts.search, "search", "", "keep rows whose text contains this")
	f.StringVar(&opts.state, "state", "", "places and shops: place state")
	f.StringVar(&opts.place, "place", "", "shops: place id")
	f.StringVar(&opts.kind, "kind", "", "foods: kind ("+strings.Join(kindNames(), "|")+")")
	f.StringVar(&opts.shop, "shop", "", "foods: shop id")
	f.BoolVar(&opts.favorites, "favorites", false, "foods: favorites only")
	f.IntVar(&opts.minRating, "min-rating", 0, "foods: minimum rating")
	f.StringVar(&opts.minPrice, "min-price", "", "foods: minimum price")
	f.StringVar(&opts.maxPrice, "max-price", "", "foods: maximum price")
	f.StringVar(&opts.tag, "tag", "", "trips and rollup: tag")
	f.StringVar(&opts.year, "year", "", "trips and rollup: year, e.g. 2025")
	f.StringVar(&opts.month, "month", "", "trips and rollup: month, 01-12")
	f.StringVar(&opts.sort, "sort", string(stats.SortByCombined), "rollup: combined|entries|title")
	return cmd
}

func kindNames() []string {
	names := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		names[i] = string(k)
	}
	return names
}

func csvTable(kind string, doc model.Document, st model.Settings, opts csvOptions, now time.Time) export.Table {
	switch kind {
	case "places":
		places := query.Places(doc.Places, query.PlaceFilter{Search: opts.search, State: opts.state})
		return export.PlacesCSV(places, doc, st, opts.formatted)
	case "shops":
		shops := query.Shops(doc, query.ShopFilter{Search: opts.search, PlaceID: opts.place, State: opts.state})
		return export.ShopsCSV(shops, doc, st, opts.formatted)
	case "foods":
		foods := query.Foods(doc.Foods, query.FoodFilter{
			Search:        opts.search,
			Kind:          model.Kind(strings.ToLower(opts.kind)),
			ShopID:        opts.shop,
			FavoritesOnly: opts.favorites,
			MinRating:     opts.minRating,
			MinPrice:      opts.minPrice,
			MaxPrice:      opts.maxPrice,
		})
		return export.FoodsCSV(foods, doc, st, opts.formatted)
	case "trips":
		return export.TripsCSV(query.Trips(doc.Trips, opts.tripFilter()), doc)
	default:
		tf := opts.tripFilter()
		return export.RollupCSV(stats.Rollups(doc.Trips, tf.Predicate(), stats.RollupSort(opts.sort), now))
	}
}

func newExportTripCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "trip <id>",
		Short: "Write a single trip as JSON",
		Long: `Write one trip as JSON. Without -o the file is named after the trip
title, for example Hoi_An_food_tour.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.GetAll()
			if err != nil {
				return err
			}
			t, ok := doc.TripByID(args[0])
			if !ok {
				return fmt.Errorf("trip %q not found", args[0])
			}
			if out == "" {
				out = export.TripFileName(t.Title)
			}
			w, done, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.WriteTrip(w, t); err != nil {
				done()
				return fmt.Errorf("failed to write trip: %w", err)
			}
			return done()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout")
	return cmd
}
