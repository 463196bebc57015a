package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldSource    = "source"
	FieldPath      = "path"
	FieldPeriod    = "period"
	FieldReference = "reference"
	FieldCurrency  = "currency"
	FieldScope     = "scope"
	FieldWidget    = "widget"
	FieldCount     = "count"
	FieldRecordID  = "record_id"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentConfig    = "config"
	ComponentBackend   = "backend"
	ComponentStorage   = "storage"
	ComponentSource    = "source"
	ComponentDashboard = "dashboard"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpMigrate  = "migrate"
	OpValidate = "validate"
	OpBuild    = "build"
	OpRender   = "render"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error message when err is non-nil.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithPeriod adds the period kind and reference date.
func (f LogFields) WithPeriod(kind, reference string) LogFields {
	f[FieldPeriod] = kind
	f[FieldReference] = reference
	return f
}

// WithSkippedRecord describes a record dropped by a source.
func (f LogFields) WithSkippedRecord(source string, id int64, err error) LogFields {
	f[FieldSource] = source
	f[FieldRecordID] = id
	return f.WithError(err)
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
