package export

import (
	"io"
	"strconv"
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/util"
)

// WriteShopGallery renders every shop with its food count and averages,
// ordered by sortKey.
func WriteShopGallery(w io.Writer, doc model.Document, sortKey stats.GallerySort, asc bool, st model.Settings) error {
	var b strings.Builder
	b.WriteString(reportTitle.Render("Shop Gallery"))
	b.WriteString("\n")

	shops := newTable("Shop", "Place", "Foods", "Avg Rating", "Avg Price")
	rows := stats.ShopGallery(doc, sortKey, asc)
	if len(rows) == 0 {
		shops.Row("No shops", "", "", "", "")
	}
	for _, r := range rows {
		place := util.Placeholder
		if p, ok := doc.PlaceByID(r.Item.PlaceID); ok {
			place = p.Name
		}
		price := util.Placeholder
		if !r.AvgPrice.IsZero() {
			price = util.FormatAmount(r.AvgPrice, st)
		}
		shops.Row(r.Item.Name, place, strconv.Itoa(r.Foods), util.FormatAvgRating(r.AvgRating), price)
	}
	b.WriteString(shops.String())
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
