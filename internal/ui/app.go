package ui

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"foodies/internal/log"
	"foodies/internal/media"
	"foodies/internal/model"
	"foodies/internal/query"
	"foodies/internal/settings"
	"foodies/internal/stats"
	"foodies/internal/store"
	"foodies/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps are the services the UI reads from and writes to.
type Deps struct {
	Store     *store.Store
	Settings  *settings.Store
	Media     *media.Client
	Logger    *log.Logger
	PrefsPath string
	Now       func() time.Time
}

// location is a screen plus the entity it shows.
type location struct {
	screen model.Screen
	id     string
}

// Model is the root Bubble Tea model.
type Model struct {
	store     *store.Store
	settings  *settings.Store
	media     *media.Client
	logger    *log.Logger
	now       func() time.Time
	prefsPath string

	doc model.Document
	st  model.Settings

	screen  model.Screen
	focusID string
	tab     model.Screen
	history []location
	mode    model.Mode
	gState  GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool
	searching   bool
	searchInput textinput.Model

	// Screen models
	dashboard   *DashboardModel
	places      *tableModel[model.Place]
	shops       *tableModel[model.Shop]
	foods       *tableModel[model.Food]
	trips       *tableModel[model.Trip]
	placeDetail *PlaceDetailModel
	shopDetail  *ShopDetailModel
	foodDetail  *FoodDetailModel
	tripDetail  *TripDetailModel
	rollup      *RollupModel
	form        *FormModel

	rollupRespect bool
	rollupSort    stats.RollupSort
	// pick returns a random index in [0, n).
	pick func(n int) int

	keys      KeyMap
	formKeys  FormKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	client := deps.Media
	if client == nil {
		client = media.NewClient(0, false, logger)
	}

	search := textinput.New()
	search.Prompt = "search: "
	search.CharLimit = 100

	prefs := loadUIPreferences(deps.PrefsPath)
	tab := prefs.Tab()

	return Model{
		store:       deps.Store,
		settings:    deps.Settings,
		media:       client,
		logger:      logger.WithComponent(log.ComponentUI),
		now:         now,
		prefsPath:   deps.PrefsPath,
		st:          model.DefaultSettings(),
		screen:      tab,
		tab:         tab,
		mode:        model.ModeNav,
		gState:      GStateIdle,
		searchInput: search,
		keys:        DefaultKeyMap(),
		formKeys:    DefaultFormKeyMap(),
		prefs:       prefs,

		rollupRespect: true,
		rollupSort:    stats.SortByCombined,
		pick:          rand.IntN,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.searching {
			return m.handleSearchInput(msg)
		}

		if m.mode == model.ModeNav && m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		if m.mode == model.ModeNav && key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		// Route to mode-specific handlers
		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error("operation failed", log.NewFields().WithError(msg.Err).ToSlice()...)
		if m.mode == model.ModeInsert && m.form != nil {
			m.form.error = msg.Err.Error()
		}
		return m, nil

	case model.DocumentLoadedMsg:
		m.doc = msg.Doc
		m.st = msg.Settings
		m.refreshTables()
		cmd := m.syncScreen()
		return m, cmd

	case model.MutatedMsg:
		m.pushUndoAction(buildMutationAction(m.store, msg))
		m.logger.Debug("document changed",
			log.NewFields().WithOperation(msg.Operation).WithEntity(msg.Entity, msg.ID).ToSlice()...)
		if m.mode == model.ModeInsert {
			m.mode = model.ModeNav
			m.form = nil
			m.back()
		}
		m.error = ""
		m.info = fmt.Sprintf("%s %s (u to undo)", entityTitle(msg.Entity), pastTense(msg.Operation))
		return m, m.loadCmd()

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.form = nil
		m.error = ""
		m.back()
		cmd := m.syncScreen()
		return m, cmd

	case model.PreviewLoadedMsg:
		if m.foodDetail != nil && m.foodDetail.food.ID == msg.FoodID {
			m.foodDetail.loading = false
			if msg.Err != nil {
				m.foodDetail.notice = previewNotice(msg.Err)
			} else {
				m.foodDetail.preview = msg.Art
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.foodDetail != nil && m.foodDetail.loading {
			var cmd tea.Cmd
			m.foodDetail.spinner, cmd = m.foodDetail.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case undoAppliedMsg:
		cmd := m.applyUndoResult(msg)
		return m, cmd

	default:
		// Pass all other messages to forms
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

func (m *Model) loadCmd() tea.Cmd {
	s, ss := m.store, m.settings
	return func() tea.Msg {
		doc, err := s.GetAll()
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load data: %w", err)}
		}
		st := model.DefaultSettings()
		if ss != nil {
			st = ss.Get()
		}
		return model.DocumentLoadedMsg{Doc: doc, Settings: st}
	}
}

// refreshTables rebuilds every list from the current document, keeping
// cursor, sort, filter and column state.
func (m *Model) refreshTables() {
	now := m.now()
	size := m.st.DefaultPageSize
	m.dashboard = NewDashboardModel(m.doc, m.st, now)

	if m.places == nil {
		m.places = newTableModel(placesSpec(m.doc, m.st), m.doc.Places, size)
		m.places.ApplyPrefs(m.prefs.Places)
	} else {
		m.places.Load(placesSpec(m.doc, m.st), m.doc.Places)
		m.places.SetPageSize(size)
	}
	if m.shops == nil {
		m.shops = newTableModel(shopsSpec(m.doc, m.st), m.doc.Shops, size)
		m.shops.ApplyPrefs(m.prefs.Shops)
	} else {
		m.shops.Load(shopsSpec(m.doc, m.st), m.doc.Shops)
		m.shops.SetPageSize(size)
	}
	if m.foods == nil {
		m.foods = newTableModel(foodsSpec(m.doc, m.st, now), m.doc.Foods, size)
		m.foods.ApplyPrefs(m.prefs.Foods)
	} else {
		m.foods.Load(foodsSpec(m.doc, m.st, now), m.doc.Foods)
		m.foods.SetPageSize(size)
	}
	if m.trips == nil {
		m.trips = newTableModel(tripsSpec(m.doc, m.st), m.doc.Trips, size)
		m.trips.ApplyPrefs(m.prefs.Trips)
	} else {
		m.trips.Load(tripsSpec(m.doc, m.st), m.doc.Trips)
		m.trips.SetPageSize(size)
	}
}

// syncScreen rebuilds the detail model for the current location. When the
// entity is gone it walks back through the history.
func (m *Model) syncScreen() tea.Cmd {
	for {
		switch m.screen {
		case model.ScreenPlaceDetail:
			d, ok := NewPlaceDetailModel(m.doc, m.focusID, m.st)
			if !ok {
				m.back()
				continue
			}
			if m.placeDetail != nil && m.placeDetail.place.ID == d.place.ID {
				d.children.keep(m.placeDetail.children.Selected())
			}
			m.placeDetail = d
		case model.ScreenShopDetail:
			d, ok := NewShopDetailModel(m.doc, m.focusID, m.st)
			if !ok {
				m.back()
				continue
			}
			if m.shopDetail != nil && m.shopDetail.shop.ID == d.shop.ID {
				d.children.keep(m.shopDetail.children.Selected())
			}
			m.shopDetail = d
		case model.ScreenFoodDetail:
			d, ok := NewFoodDetailModel(m.doc, m.focusID, m.st, m.now(), m.prefs.ImagesShown())
			if !ok {
				m.back()
				continue
			}
			d.carryPreview(m.foodDetail)
			m.foodDetail = d
			if d.needsPreview() {
				return d.startPreview(m.media)
			}
		case model.ScreenTripDetail:
			d, ok := NewTripDetailModel(m.doc, m.focusID, m.st, m.now())
			if !ok {
				m.back()
				continue
			}
			if m.tripDetail != nil && m.tripDetail.trip.ID == d.trip.ID {
				d.children.keep(m.tripDetail.children.Selected())
			}
			m.tripDetail = d
		case model.ScreenRollup:
			var filter query.TripFilter
			if m.trips != nil {
				filter = query.ParseTripFilter(m.trips.search)
			}
			r := NewRollupModel(m.doc, filter, m.rollupRespect, m.rollupSort, m.st, m.now())
			if m.rollup != nil {
				r.children.keep(m.rollup.children.Selected())
			}
			m.rollup = r
		}
		return nil
	}
}

// open pushes the current location and shows screen for id.
func (m Model) open(screen model.Screen, id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	m.history = append(m.history, location{screen: m.screen, id: m.focusID})
	m.screen = screen
	m.focusID = id
	m.error = ""
	cmd := m.syncScreen()
	return m, cmd
}

func (m *Model) back() {
	if n := len(m.history); n > 0 {
		loc := m.history[n-1]
		m.history = m.history[:n-1]
		m.screen = loc.screen
		m.focusID = loc.id
		return
	}
	m.screen = m.tab
	m.focusID = ""
}

func (m Model) switchTab(screen model.Screen) (tea.Model, tea.Cmd) {
	m.screen = screen
	m.tab = screen
	m.focusID = ""
	m.history = nil
	m.columnJump = false
	m.prefs.LastTab = screen.String()
	m.savePrefs()
	return m, nil
}

func (m Model) stepTab(delta int) (tea.Model, tea.Cmd) {
	i := 0
	for n, s := range model.Tabs {
		if s == m.tab {
			i = n
		}
	}
	i = (i + delta + len(model.Tabs)) % len(model.Tabs)
	return m.switchTab(model.Tabs[i])
}

func (m Model) openForm(spec formSpec) (tea.Model, tea.Cmd) {
	m.history = append(m.history, location{screen: m.screen, id: m.focusID})
	m.screen = model.ScreenForm
	m.focusID = ""
	m.mode = model.ModeInsert
	m.error = ""
	m.form = NewFormModel(m.store, spec, m.formKeys)
	return m, textinput.Blink
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			t.SortActiveColumn(false)
			m.info = "Sorted ascending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			t.SortActiveColumn(true)
			m.info = "Sorted descending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.FilterValue):
			if t.FilterBySelectedValue() {
				m.info = "Filter applied from selected value"
			} else {
				m.info = "No filterable value in selected cell"
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.info = "Filter cleared"
			}
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.NextPage):
			if !t.NextPage() {
				m.info = "Last page"
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevPage):
			if !t.PrevPage() {
				m.info = "First page"
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		cmd := m.undoCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		cmd := m.redoCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloaded"
		return m, m.loadCmd()
	}

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if t := m.currentTable(); t != nil {
			t.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	if m.screen.IsTab() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevTab):
			return m.stepTab(-1)
		case key.Matches(msg, m.keys.NextTab):
			return m.stepTab(1)
		}
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(model.Tabs) {
			return m.switchTab(model.Tabs[n-1])
		}
	}

	// Screen-specific navigation
	switch m.screen {
	case model.ScreenPlaces, model.ScreenShops, model.ScreenFoods, model.ScreenTrips:
		return m.handleTableNav(msg)
	case model.ScreenPlaceDetail:
		return m.handlePlaceDetailNav(msg)
	case model.ScreenShopDetail:
		return m.handleShopDetailNav(msg)
	case model.ScreenFoodDetail:
		return m.handleFoodDetailNav(msg)
	case model.ScreenTripDetail:
		return m.handleTripDetailNav(msg)
	case model.ScreenRollup:
		return m.handleRollupNav(msg)
	}

	return m, nil
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		if t := m.currentTable(); t != nil {
			q := m.searchInput.Value()
			t.Search(q)
			if strings.TrimSpace(q) == "" {
				m.info = "Search cleared"
			} else {
				m.info = fmt.Sprintf("Searching for %q", strings.TrimSpace(q))
			}
		}
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) currentTable() tableController {
	switch m.screen {
	case model.ScreenPlaces:
		if m.places != nil {
			return m.places
		}
	case model.ScreenShops:
		if m.shops != nil {
			return m.shops
		}
	case model.ScreenFoods:
		if m.foods != nil {
			return m.foods
		}
	case model.ScreenTrips:
		if m.trips != nil {
			return m.trips
		}
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	switch m.screen {
	case model.ScreenPlaces:
		if m.places != nil {
			m.prefs.Places = m.places.Prefs()
		}
	case model.ScreenShops:
		if m.shops != nil {
			m.prefs.Shops = m.shops.Prefs()
		}
	case model.ScreenFoods:
		if m.foods != nil {
			m.prefs.Foods = m.foods.Prefs()
		}
	case model.ScreenTrips:
		if m.trips != nil {
			m.prefs.Trips = m.trips.Prefs()
		}
	}
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save ui preferences", log.NewFields().WithError(err).ToSlice()...)
	}
}

// handleInsertMode handles insert/edit mode input.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen != model.ScreenForm || m.form == nil {
		return m, nil
	}
	newForm, cmd := m.form.Update(msg)
	m.form = &newForm
	return m, cmd
}

// Navigation handlers for each screen

func (m Model) handleTableNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentTable()
	if t == nil {
		return m, nil
	}
	entity := screenEntity(m.screen)

	switch {
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		t.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		t.HalfPageUp(m.height / 2)
	case key.Matches(msg, m.keys.Open):
		return m.open(detailScreen(entity), t.SelectedID())
	case key.Matches(msg, m.keys.Add):
		return m.openForm(m.addSpec(entity, ""))
	case key.Matches(msg, m.keys.Edit):
		if spec, ok := m.editSpec(entity, t.SelectedID()); ok {
			return m.openForm(spec)
		}
	case key.Matches(msg, m.keys.Delete):
		if id := t.SelectedID(); id != "" {
			return m, m.deleteCmd(entity, id)
		}
	case key.Matches(msg, m.keys.Favorite):
		if entity == model.EntityFood {
			return m, m.toggleFavoriteCmd(t.SelectedID())
		}
	case key.Matches(msg, m.keys.Duplicate):
		if entity == model.EntityFood {
			return m, m.duplicateFoodCmd(t.SelectedID())
		}
	case key.Matches(msg, m.keys.RandomPick):
		if entity == model.EntityFood {
			m.pickFood()
		}
	case key.Matches(msg, m.keys.Rollup):
		if entity == model.EntityTrip {
			m.history = append(m.history, location{screen: m.screen, id: m.focusID})
			m.screen = model.ScreenRollup
			m.focusID = ""
			m.error = ""
			m.rollup = nil
			cmd := m.syncScreen()
			return m, cmd
		}
	}
	return m, nil
}

// pickFood suggests one food from the rows the Foods tab currently shows.
func (m *Model) pickFood() {
	pool := m.foods.rows
	if len(pool) == 0 {
		m.info = ""
		m.error = "No items to pick from"
		return
	}
	f := pool[m.pick(len(pool))]
	shop := util.Placeholder
	if sh, ok := m.doc.ShopByID(f.ShopID); ok {
		shop = sh.Name
	}
	m.error = ""
	m.info = fmt.Sprintf("Try: %s @ %s", f.Name, shop)
}

func (m Model) handleRollupNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.rollup
	if r == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		cmd := m.syncScreen()
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		r.children.MoveDown()
	case key.Matches(msg, m.keys.Up):
		r.children.MoveUp()
	case key.Matches(msg, m.keys.Open):
		return m.open(model.ScreenTripDetail, r.children.Selected())
	case key.Matches(msg, m.keys.ToggleFilter):
		m.rollupRespect = !m.rollupRespect
		cmd := m.syncScreen()
		m.info = "Roll-up " + m.rollup.filterLabel()
		return m, cmd
	case key.Matches(msg, m.keys.CycleSort):
		m.rollupSort = nextRollupSort(m.rollupSort)
		cmd := m.syncScreen()
		m.info = fmt.Sprintf("Roll-up sorted by %s", m.rollupSort)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePlaceDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.placeDetail
	if d == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		cmd := m.syncScreen()
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		d.children.MoveDown()
	case key.Matches(msg, m.keys.Up):
		d.children.MoveUp()
	case key.Matches(msg, m.keys.Open):
		return m.open(model.ScreenShopDetail, d.children.Selected())
	case key.Matches(msg, m.keys.Add):
		return m.openForm(shopForm(m.doc, nil, d.place.ID))
	case key.Matches(msg, m.keys.Edit):
		p := d.place
		return m.openForm(placeForm(&p))
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(model.EntityPlace, d.place.ID)
	}
	return m, nil
}

func (m Model) handleShopDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.shopDetail
	if d == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		cmd := m.syncScreen()
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		d.children.MoveDown()
	case key.Matches(msg, m.keys.Up):
		d.children.MoveUp()
	case key.Matches(msg, m.keys.Open):
		return m.open(model.ScreenFoodDetail, d.children.Selected())
	case key.Matches(msg, m.keys.Add):
		return m.openForm(foodForm(m.doc, nil, d.shop.ID))
	case key.Matches(msg, m.keys.Edit):
		s := d.shop
		return m.openForm(shopForm(m.doc, &s, ""))
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(model.EntityShop, d.shop.ID)
	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd(d.children.Selected())
	}
	return m, nil
}

func (m Model) handleFoodDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.foodDetail
	if d == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		cmd := m.syncScreen()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		f := d.food
		return m.openForm(foodForm(m.doc, &f, ""))
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(model.EntityFood, d.food.ID)
	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd(d.food.ID)
	case key.Matches(msg, m.keys.ToggleImage):
		show := !m.prefs.ImagesShown()
		m.prefs.SetImagesShown(show)
		m.savePrefs()
		d.showImage = show
		if show {
			m.info = "Image preview on"
		} else {
			m.info = "Image preview off"
		}
		cmd := m.syncScreen()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTripDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.tripDetail
	if d == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		cmd := m.syncScreen()
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		d.children.MoveDown()
	case key.Matches(msg, m.keys.Up):
		d.children.MoveUp()
	case key.Matches(msg, m.keys.Open):
		return m.open(model.ScreenTripDetail, d.children.Selected())
	case key.Matches(msg, m.keys.Add):
		if d.isEntry {
			m.info = "Journal entries cannot have entries of their own"
			return m, nil
		}
		return m.openForm(tripForm(m.doc, nil, d.trip.ID))
	case key.Matches(msg, m.keys.Edit):
		t := d.trip
		return m.openForm(tripForm(m.doc, &t, ""))
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(model.EntityTrip, d.trip.ID)
	case key.Matches(msg, m.keys.EntryDown):
		if ids := d.moveEntry(1); ids != nil {
			return m, m.reorderCmd(d.trip.ID, ids)
		}
	case key.Matches(msg, m.keys.EntryUp):
		if ids := d.moveEntry(-1); ids != nil {
			return m, m.reorderCmd(d.trip.ID, ids)
		}
	}
	return m, nil
}

// Commands

func (m *Model) addSpec(entity, parentID string) formSpec {
	switch entity {
	case model.EntityShop:
		return shopForm(m.doc, nil, parentID)
	case model.EntityFood:
		return foodForm(m.doc, nil, parentID)
	case model.EntityTrip:
		return tripForm(m.doc, nil, parentID)
	default:
		return placeForm(nil)
	}
}

func (m *Model) editSpec(entity, id string) (formSpec, bool) {
	switch entity {
	case model.EntityPlace:
		if p, ok := m.doc.PlaceByID(id); ok {
			return placeForm(&p), true
		}
	case model.EntityShop:
		if s, ok := m.doc.ShopByID(id); ok {
			return shopForm(m.doc, &s, ""), true
		}
	case model.EntityFood:
		if f, ok := m.doc.FoodByID(id); ok {
			return foodForm(m.doc, &f, ""), true
		}
	case model.EntityTrip:
		if t, ok := m.doc.TripByID(id); ok {
			return tripForm(m.doc, &t, ""), true
		}
	}
	return formSpec{}, false
}

func (m *Model) deleteCmd(entity, id string) tea.Cmd {
	return mutateCmd(m.store, entity, model.OpDelete, id, func(s *store.Store) (string, error) {
		switch entity {
		case model.EntityPlace:
			return id, s.DeletePlace(id)
		case model.EntityShop:
			return id, s.DeleteShop(id)
		case model.EntityFood:
			return id, s.DeleteFood(id)
		case model.EntityTrip:
			return id, s.DeleteTrip(id)
		}
		return "", fmt.Errorf("unknown entity %q", entity)
	})
}

func (m *Model) toggleFavoriteCmd(id string) tea.Cmd {
	f, ok := m.doc.FoodByID(id)
	if !ok {
		return nil
	}
	favorite := !f.Favorite
	return mutateCmd(m.store, model.EntityFood, model.OpUpdate, id, func(s *store.Store) (string, error) {
		return id, s.UpdateFood(id, model.FoodPatch{Favorite: &favorite})
	})
}

func (m *Model) duplicateFoodCmd(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	return mutateCmd(m.store, model.EntityFood, model.OpCreate, id, func(s *store.Store) (string, error) {
		f, ok, err := s.DuplicateFood(id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("food %s no longer exists", id)
		}
		return f.ID, nil
	})
}

func (m *Model) reorderCmd(parentID string, ids []string) tea.Cmd {
	return mutateCmd(m.store, model.EntityTrip, model.OpReorder, parentID, func(s *store.Store) (string, error) {
		return parentID, s.ReorderEntries(parentID, ids)
	})
}

func screenEntity(s model.Screen) string {
	switch s {
	case model.ScreenPlaces, model.ScreenPlaceDetail:
		return model.EntityPlace
	case model.ScreenShops, model.ScreenShopDetail:
		return model.EntityShop
	case model.ScreenFoods, model.ScreenFoodDetail:
		return model.EntityFood
	case model.ScreenTrips, model.ScreenTripDetail:
		return model.EntityTrip
	}
	return ""
}

func detailScreen(entity string) model.Screen {
	switch entity {
	case model.EntityShop:
		return model.ScreenShopDetail
	case model.EntityFood:
		return model.ScreenFoodDetail
	case model.EntityTrip:
		return model.ScreenTripDetail
	default:
		return model.ScreenPlaceDetail
	}
}

func entityTitle(entity string) string {
	if entity == "" {
		return ""
	}
	return strings.ToUpper(entity[:1]) + entity[1:]
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.keys, m.formKeys, m.width, m.height)
	}

	showTabs := m.screen.IsTab()

	// header + footer + padding, and two more lines for the tab bar
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}

	var content string
	breadcrumb := []string{m.screen.String()}

	switch m.screen {
	case model.ScreenDashboard:
		if m.dashboard != nil {
			content = m.dashboard.View(m.width, contentHeight)
		}
	case model.ScreenPlaces, model.ScreenShops, model.ScreenFoods, model.ScreenTrips:
		if t := m.currentTable(); t != nil {
			content = t.View(m.width, contentHeight)
		}
	case model.ScreenPlaceDetail:
		if m.placeDetail != nil {
			breadcrumb = append(breadcrumb, m.placeDetail.place.Name)
			content = m.placeDetail.View(m.width, contentHeight)
		}
	case model.ScreenShopDetail:
		if m.shopDetail != nil {
			breadcrumb = append(breadcrumb, m.shopDetail.shop.Name)
			content = m.shopDetail.View(m.width, contentHeight)
		}
	case model.ScreenFoodDetail:
		if m.foodDetail != nil {
			breadcrumb = append(breadcrumb, m.foodDetail.food.Name)
			content = m.foodDetail.View(m.width, contentHeight)
		}
	case model.ScreenTripDetail:
		if m.tripDetail != nil {
			breadcrumb = append(breadcrumb, m.tripDetail.trip.Title)
			content = m.tripDetail.View(m.width, contentHeight)
		}
	case model.ScreenRollup:
		breadcrumb = []string{model.ScreenTrips.String(), m.screen.String()}
		if m.rollup != nil {
			content = m.rollup.View(m.width, contentHeight)
		}
	case model.ScreenForm:
		if m.form != nil {
			breadcrumb = []string{m.tab.String(), m.form.Title()}
			content = m.form.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumb, m.width, m.now())
	footer := RenderHelp(m.keys, m.formKeys, m.screen, m.mode, m.width)
	if m.searching {
		footer = FooterStyle.Width(m.width).Render(m.searchInput.View())
	}

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for i, tab := range model.Tabs {
		tabStyle := TabStyle
		if screen == tab {
			tabStyle = ActiveTabStyle
		}

		tabStrings = append(tabStrings, tabStyle.Render(fmt.Sprintf("%d %s", i+1, tab)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return TabBarStyle.Width(width).Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int, now time.Time) string {
	title := HeaderStyle.Render("foodies")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(now.Format("Mon 02 Jan")) + "  "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}
