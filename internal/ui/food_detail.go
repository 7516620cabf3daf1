package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodies/internal/media"
	"foodies/internal/model"
	"foodies/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Size of the ASCII image preview in terminal cells.
const (
	previewWidth  = 48
	previewHeight = 16
)

// FoodDetailModel shows a food and an ASCII preview of its image.
type FoodDetailModel struct {
	food     model.Food
	shop     string
	place    string
	trips    []string
	settings model.Settings
	now      time.Time

	showImage bool
	loading   bool
	spinner   spinner.Model
	preview   string
	notice    string
}

// NewFoodDetailModel builds the detail of food id, reporting false when the
// food no longer exists.
func NewFoodDetailModel(doc model.Document, id string, st model.Settings, now time.Time, showImage bool) (*FoodDetailModel, bool) {
	f, ok := doc.FoodByID(id)
	if !ok {
		return nil, false
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &FoodDetailModel{
		food:      f,
		spinner:   sp,
		shop:      shopName(doc, f.ShopID),
		settings:  st,
		now:       now,
		showImage: showImage,
	}
	if s, ok := doc.ShopByID(f.ShopID); ok {
		m.place = placeName(doc, s.PlaceID)
	}
	for _, t := range doc.Trips {
		for _, fid := range t.FoodIDs {
			if fid == id {
				m.trips = append(m.trips, t.Title)
				break
			}
		}
	}
	return m, true
}

// carryPreview keeps an already fetched preview across a reload.
func (m *FoodDetailModel) carryPreview(prev *FoodDetailModel) {
	if prev == nil || prev.food.ID != m.food.ID || prev.food.ImageURL != m.food.ImageURL {
		return
	}
	m.preview = prev.preview
	m.notice = prev.notice
	m.loading = prev.loading
	m.spinner = prev.spinner
}

// needsPreview reports whether a fetch should be started.
func (m *FoodDetailModel) needsPreview() bool {
	return m.showImage && m.food.ImageURL != "" && m.preview == "" && m.notice == "" && !m.loading
}

// startPreview marks the preview as loading and returns the fetch together
// with the spinner animation.
func (m *FoodDetailModel) startPreview(client *media.Client) tea.Cmd {
	m.loading = true
	return tea.Batch(loadPreviewCmd(client, m.food.ID, m.food.ImageURL), m.spinner.Tick)
}

// View renders the food detail.
func (m *FoodDetailModel) View(width, height int) string {
	f := m.food
	header := shortcutsHeader("F favorite  i image  e edit  d delete  h back", width)

	rating := util.FormatFoodRating(f.Rating)
	if stars, ok := f.Rating.Float(); ok {
		rating = RatingStyle.Render(util.FormatRatingStars(int(stars)) + "  " + rating)
	}
	favorite := "no"
	if f.Favorite {
		favorite = FavoriteStyle.Render(util.FormatFavorite(true)) + " yes"
	}

	fields := []string{
		renderField("Name", f.Name),
		renderField("Kind", util.KindLabel(f.Kind)),
		renderField("Shop", m.shop),
		renderField("Place", m.place),
		renderField("Price", util.FormatPrice(string(f.Price), m.settings)),
		LabelStyle.Render("Rating:") + " " + rating,
		LabelStyle.Render("Favorite:") + " " + favorite,
		renderField("Added", util.FormatDateHuman(dateOf(f.CreatedAt), m.now)),
		renderField("Image", util.TruncateString(f.ImageURL, max(width-20, 10))),
	}
	sections := []string{strings.Join(fields, "\n")}

	if len(m.trips) > 0 {
		sections = append(sections, LabelStyle.Render("Eaten on:")+" "+NormalRowStyle.Render(strings.Join(m.trips, " · ")))
	}

	switch {
	case !m.showImage:
	case f.ImageURL == "":
		sections = append(sections, HelpDescStyle.Render("No image for this food"))
	case m.loading:
		sections = append(sections, HelpDescStyle.Render(m.spinner.View()+" Loading image..."))
	case m.preview != "":
		sections = append(sections, m.preview)
	case m.notice != "":
		sections = append(sections, HelpDescStyle.Render(m.notice))
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func loadPreviewCmd(client *media.Client, foodID, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		art, err := client.Preview(ctx, url, previewWidth, previewHeight)
		return model.PreviewLoadedMsg{FoodID: foodID, Art: art, Err: err}
	}
}

// previewNotice turns a failed fetch into the text shown instead of the image.
func previewNotice(err error) string {
	switch {
	case errors.Is(err, media.ErrPreviewDisabled):
		return "Image preview is disabled (FOODIES_IMAGE_PREVIEW=false)"
	case errors.Is(err, media.ErrUnsupportedURL):
		return "Image URL is not http(s)"
	default:
		return "Image unavailable: " + err.Error()
	}
}
