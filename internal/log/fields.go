package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldEntity    = "entity"
	FieldID        = "id"
	FieldError     = "error"
	FieldCount     = "count"
	FieldKey       = "key"
	FieldPath      = "path"
	FieldDuration  = "duration_ms"

	FieldShopsRemoved = "shops_removed"
	FieldFoodsRemoved = "foods_removed"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStore    = "store"
	ComponentSettings = "settings"
	ComponentDB       = "db"
	ComponentUI       = "ui"
	ComponentCLI      = "cli"
	ComponentMedia    = "media"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpSeed    = "seed"
	OpReplace = "replace"
	OpReorder = "reorder"
	OpMigrate = "migrate"
	OpFetch   = "fetch"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntity adds the entity kind and id.
func (f LogFields) WithEntity(entity, id string) LogFields {
	f[FieldEntity] = entity
	if id != "" {
		f[FieldID] = id
	}
	return f
}

// WithCount adds a count field under name.
func (f LogFields) WithCount(name string, n int) LogFields {
	f[name] = n
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
