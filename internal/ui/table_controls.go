package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool)
	HideActiveColumn() bool
	ShowAllColumns()
	FilterBySelectedValue() bool
	ClearFilter() bool
	Search(q string)
	NextPage() bool
	PrevPage() bool
	TableMeta() string

	MoveDown()
	MoveUp()
	JumpToTop()
	JumpToBottom()
	HalfPageDown(pageSize int)
	HalfPageUp(pageSize int)
	SelectedID() string
	Prefs() TablePrefs
	View(width, height int) string
}

var (
	_ tableController = (*tableModel[struct{}])(nil)
)
