package ui

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"foodies/internal/db"
	"foodies/internal/model"
	"foodies/internal/settings"
	"foodies/internal/stats"
	"foodies/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

var testNow = time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Open(filepath.Join(dir, "foodies.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	s := store.New(database, store.WithClock(func() time.Time { return testNow }))
	m := New(Deps{
		Store:     s,
		Settings:  settings.New(database, nil),
		PrefsPath: PrefsPath(dir),
		Now:       func() time.Time { return testNow },
	})
	return m, s
}

// drive runs cmd and feeds each message back into m until no command is left.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i == 10 {
			t.Fatal("command chain did not settle")
		}
		msg := cmd()
		if msg == nil {
			break
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return drive(t, next.(Model), cmd)
}

// typeText sends keys without running the cursor blink commands they return.
func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyRedo  = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func mustDoc(t *testing.T, s *store.Store) model.Document {
	t.Helper()
	doc, err := s.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	return doc
}

func TestModelDeleteUndoRedo(t *testing.T) {
	m, s := newTestModel(t)
	p, err := s.AddPlace(model.NewPlace{Name: "Old Town"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddShop(model.NewShop{Name: "Pho 24", PlaceID: p.ID}); err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, m.Init())
	m = press(t, m, keyRunes("2"))
	if m.screen != model.ScreenPlaces {
		t.Fatalf("screen = %v, want Places", m.screen)
	}
	m = press(t, m, keyEnter)
	if m.screen != model.ScreenPlaceDetail || m.placeDetail == nil {
		t.Fatalf("screen = %v, want place detail", m.screen)
	}

	m = press(t, m, keyRunes("d"))
	doc := mustDoc(t, s)
	if len(doc.Places) != 0 || len(doc.Shops) != 0 {
		t.Fatalf("after delete: %d places, %d shops, want none", len(doc.Places), len(doc.Shops))
	}
	if m.screen != model.ScreenPlaces {
		t.Errorf("screen after deleting the open place = %v, want Places", m.screen)
	}

	m = press(t, m, keyRunes("u"))
	doc = mustDoc(t, s)
	if len(doc.Places) != 1 || len(doc.Shops) != 1 {
		t.Fatalf("after undo: %d places, %d shops, want 1 and 1", len(doc.Places), len(doc.Shops))
	}
	if m.places.SelectedID() != p.ID {
		t.Errorf("places table selection after undo = %q, want %q", m.places.SelectedID(), p.ID)
	}

	m = press(t, m, keyRedo)
	if doc = mustDoc(t, s); len(doc.Places) != 0 {
		t.Errorf("after redo: %d places, want 0", len(doc.Places))
	}
	if len(m.redoStack) != 0 || len(m.undoStack) != 1 {
		t.Errorf("stacks after redo: undo %d redo %d, want 1 and 0", len(m.undoStack), len(m.redoStack))
	}
}

func TestModelAddPlaceThroughForm(t *testing.T) {
	m, s := newTestModel(t)
	m = drive(t, m, m.Init())
	m = press(t, m, keyRunes("2"))

	next, _ := m.Update(keyRunes("a"))
	m = next.(Model)
	if m.mode != model.ModeInsert || m.form == nil {
		t.Fatalf("mode = %v, want insert with a form", m.mode)
	}

	// Saving with the required name missing keeps the form open.
	m = press(t, m, keySave)
	if m.form == nil || m.form.error == "" {
		t.Fatal("empty submit did not leave an inline error")
	}
	if doc := mustDoc(t, s); len(doc.Places) != 0 {
		t.Fatalf("empty submit wrote %d places", len(doc.Places))
	}

	m = typeText(m, "Riverside")
	m = press(t, m, keySave)
	if m.mode != model.ModeNav || m.screen != model.ScreenPlaces {
		t.Errorf("after save: mode %v screen %v, want nav on Places", m.mode, m.screen)
	}
	doc := mustDoc(t, s)
	if len(doc.Places) != 1 || doc.Places[0].Name != "Riverside" {
		t.Fatalf("places after save = %+v", doc.Places)
	}
	if len(m.places.rows) != 1 {
		t.Errorf("places table rows = %d, want 1", len(m.places.rows))
	}
}

func TestModelReorderEntries(t *testing.T) {
	m, s := newTestModel(t)
	main, err := s.AddTrip(model.NewTrip{Title: "Hoi An", Date: "2025-10-01"})
	if err != nil {
		t.Fatal(err)
	}
	var entries []string
	for i, title := range []string{"Day one", "Day two", "Day three"} {
		e, err := s.AddTrip(model.NewTrip{Title: title, Date: "2025-10-01", ParentID: model.StringPtr(main.ID), Order: model.IntPtr(i)})
		if err != nil {
			t.Fatal(err)
		}
		entries = append(entries, e.ID)
	}

	m = drive(t, m, m.Init())
	next, cmd := m.open(model.ScreenTripDetail, main.ID)
	m = drive(t, next.(Model), cmd)

	m = press(t, m, keyRunes("J"))
	m = press(t, m, keyRunes("J"))

	var got []string
	for _, e := range stats.OrderedEntries(mustDoc(t, s).Children(main.ID)) {
		got = append(got, e.Title)
	}
	if diff := cmp.Diff([]string{"Day two", "Day three", "Day one"}, got); diff != "" {
		t.Errorf("entry order (-want +got):\n%s", diff)
	}
	if sel := m.tripDetail.children.Selected(); sel != entries[0] {
		t.Errorf("selected entry = %q, want the moved one %q", sel, entries[0])
	}

	m = press(t, m, keyRunes("u"))
	got = nil
	for _, e := range stats.OrderedEntries(mustDoc(t, s).Children(main.ID)) {
		got = append(got, e.Title)
	}
	if diff := cmp.Diff([]string{"Day two", "Day one", "Day three"}, got); diff != "" {
		t.Errorf("entry order after undo (-want +got):\n%s", diff)
	}
}

func TestModelToggleFavorite(t *testing.T) {
	m, s := newTestModel(t)
	p, _ := s.AddPlace(model.NewPlace{Name: "Old Town"})
	sh, _ := s.AddShop(model.NewShop{Name: "Pho 24", PlaceID: p.ID})
	f, err := s.AddFood(model.NewFood{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: sh.ID})
	if err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, m.Init())
	m = press(t, m, keyRunes("4"))
	m = press(t, m, keyRunes("F"))

	got, _, err := s.GetFood(f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Favorite {
		t.Error("food is not a favorite after F")
	}
}

func TestModelRestoresLastTab(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyRunes("5"))

	reopened := New(Deps{Store: m.store, Settings: m.settings, PrefsPath: m.prefsPath, Now: m.now})
	if reopened.screen != model.ScreenTrips {
		t.Errorf("screen after restart = %v, want Trips", reopened.screen)
	}
}

func TestModelDuplicateFood(t *testing.T) {
	m, s := newTestModel(t)
	p, _ := s.AddPlace(model.NewPlace{Name: "Old Town"})
	sh, _ := s.AddShop(model.NewShop{Name: "Pho 24", PlaceID: p.ID})
	if _, err := s.AddFood(model.NewFood{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: sh.ID, Price: "45000", Rating: model.IntPtr(5)}); err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, m.Init())
	m = press(t, m, keyRunes("4"))
	m = press(t, m, keyRunes("D"))

	foods := mustDoc(t, s).Foods
	if len(foods) != 2 {
		t.Fatalf("foods after D = %d, want 2", len(foods))
	}
	copied := foods[1]
	if copied.Name != "Pho Bo (copy)" || copied.Price != "45000" || copied.Rating != model.NumberOf(5) {
		t.Errorf("copy = %+v", copied)
	}
	if m.info != "Food created (u to undo)" {
		t.Errorf("info = %q", m.info)
	}

	m = press(t, m, keyRunes("u"))
	if n := len(mustDoc(t, s).Foods); n != 1 {
		t.Errorf("foods after undo = %d, want 1", n)
	}
}

func TestModelRandomPick(t *testing.T) {
	tests := []struct {
		name      string
		search    string
		wantInfo  string
		wantError string
	}{
		{"whole list", "", "Try: Com Tam @ Com Tam Ba Ghien", ""},
		{"search narrows the pool", "kind:noodle", "Try: Pho Bo @ Pho 24", ""},
		{"empty pool", "kind:dessert", "", "No items to pick from"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newTestModel(t)
			p, _ := s.AddPlace(model.NewPlace{Name: "Old Town"})
			pho, _ := s.AddShop(model.NewShop{Name: "Pho 24", PlaceID: p.ID})
			com, _ := s.AddShop(model.NewShop{Name: "Com Tam Ba Ghien", PlaceID: p.ID})
			s.AddFood(model.NewFood{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: pho.ID})
			s.AddFood(model.NewFood{Name: "Com Tam", Kind: model.KindRice, ShopID: com.ID})

			m = drive(t, m, m.Init())
			m = press(t, m, keyRunes("4"))
			m.foods.Search(tt.search)
			var sizes []int
			m.pick = func(n int) int {
				sizes = append(sizes, n)
				return max(slices.IndexFunc(m.foods.rows, func(f model.Food) bool { return f.Name == "Com Tam" }), 0)
			}
			m = press(t, m, keyRunes("p"))

			if m.info != tt.wantInfo || m.error != tt.wantError {
				t.Errorf("info, error = %q, %q, want %q, %q", m.info, m.error, tt.wantInfo, tt.wantError)
			}
			if len(sizes) > 0 && sizes[0] != len(m.foods.rows) {
				t.Errorf("picked from %d foods, want the %d shown", sizes[0], len(m.foods.rows))
			}
		})
	}
}

func rollupTitles(m Model) []string {
	var titles []string
	for _, r := range m.rollup.rows {
		titles = append(titles, r.Trip.Title)
	}
	return titles
}

func TestModelRollup(t *testing.T) {
	m, s := newTestModel(t)
	kyoto, err := s.AddTrip(model.NewTrip{Title: "Kyoto", Date: "2025-11-04", Tags: []string{"japan"}})
	if err != nil {
		t.Fatal(err)
	}
	for i, tag := range []string{"gion", "bento"} {
		if _, err := s.AddTrip(model.NewTrip{Title: "Day " + tag, Date: "2025-11-05", Tags: []string{tag},
			ParentID: model.StringPtr(kyoto.ID), Order: model.IntPtr(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.AddTrip(model.NewTrip{Title: "Tokyo", Date: "2025-10-01", Tags: []string{"japan"},
		Expenses: []model.Expense{{Label: "Hotel", Amount: "500000"}}}); err != nil {
		t.Fatal(err)
	}

	m = drive(t, m, m.Init())
	m = press(t, m, keyRunes("5"))
	m = press(t, m, keyRunes("f"))
	m = typeText(m, "tag:gion")
	m = press(t, m, keyEnter)

	m = press(t, m, keyRunes("r"))
	if m.screen != model.ScreenRollup || m.rollup == nil {
		t.Fatalf("screen = %v, want roll-up", m.screen)
	}
	if diff := cmp.Diff([]string{"Kyoto"}, rollupTitles(m)); diff != "" {
		t.Errorf("rows respecting the search (-want +got):\n%s", diff)
	}
	if got := m.rollup.rows[0].Entries; got != 1 {
		t.Errorf("entries counted = %d, want 1", got)
	}

	steps := []struct {
		key  string
		want []string
		info string
	}{
		{"t", []string{"Tokyo", "Kyoto"}, "Roll-up ignoring filter"},
		{"o", []string{"Kyoto", "Tokyo"}, "Roll-up sorted by entries"},
		{"o", []string{"Kyoto", "Tokyo"}, "Roll-up sorted by title"},
	}
	for _, st := range steps {
		m = press(t, m, keyRunes(st.key))
		if diff := cmp.Diff(st.want, rollupTitles(m)); diff != "" {
			t.Errorf("after %s (-want +got):\n%s", st.key, diff)
		}
		if m.info != st.info {
			t.Errorf("info after %s = %q, want %q", st.key, m.info, st.info)
		}
	}

	m = press(t, m, keyEnter)
	if m.screen != model.ScreenTripDetail || m.tripDetail.trip.ID != kyoto.ID {
		t.Fatalf("enter opened %v, want Kyoto's detail", m.screen)
	}
	m = press(t, m, keyRunes("h"))
	if m.screen != model.ScreenRollup {
		t.Errorf("back from detail = %v, want roll-up", m.screen)
	}
	m = press(t, m, keyRunes("h"))
	if m.screen != model.ScreenTrips {
		t.Errorf("back from roll-up = %v, want Trips", m.screen)
	}
}
