// Package sqltemplate builds SQL text from literal fragments and Go values,
// escaping each value according to its kind.
package sqltemplate

import (
	"time"

	"go.uber.org/zap"

	"github.com/kydance/sql-template/internal/models"
	"github.com/kydance/sql-template/internal/templatize"
)

// Value model. See the models package for the full variant set.
type (
	Value  = models.Value
	Raw    = models.Raw
	Record = models.Record
	Field  = models.Field
	Map    = models.Map
	Entry  = models.Entry
	List   = models.List
	Null   = models.Null
	Err    = models.Err
)

// Absent marks a field as not provided. It encodes to NULL, and UpdateCase
// skips fields set to it.
var Absent = models.Absent{}

// Error kinds, to be compared with errors.Is.
var (
	ErrInvalidIdentifier = models.ErrInvalidIdentifier
	ErrUnsupportedType   = models.ErrUnsupportedType
)

// RawSQL marks a string or a number as raw SQL, written verbatim and never
// escaped.
//
//	SQL([]string{"SELECT * FROM ", ""}, RawSQL("main.user"))
//	// SELECT * FROM main.user
func RawSQL[T models.RawPayload](v T) Raw { return models.RawSQL(v) }

// ValueOf converts an ordinary Go value into a Value.
func ValueOf(v any) (Value, error) { return models.ValueOf(v) }

// Option configures a Builder.
type Option = templatize.Option

// WithLogger sets the zap logger used for debug output.
func WithLogger(logger *zap.Logger) Option { return templatize.WithLogger(logger) }

// WithLocation sets the time zone dates are rendered in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option { return templatize.WithLocation(loc) }

// Builder encodes values and composes queries. It is safe for concurrent use.
type Builder struct {
	templatizer *templatize.SQLTemplatizer
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	return &Builder{templatizer: templatize.NewSQLTemplatizer(opts...)}
}

// Encode returns the SQL literal text of v.
func (b *Builder) Encode(v any) (string, error) { return b.templatizer.Encode(v) }

// SQL interleaves fragments with the encoded values. It panics unless there
// is exactly one more fragment than values.
//
//	SQL([]string{"SELECT * FROM entity WHERE name = ", ""}, "Marwan")
//	// SELECT * FROM entity WHERE name = 'Marwan'
func (b *Builder) SQL(fragments []string, values ...any) (string, error) {
	return b.templatizer.Compose(fragments, values...)
}

// Format replaces "?" placeholders with encoded values and "??" placeholders
// with identifiers.
func (b *Builder) Format(query string, values ...any) (string, error) {
	return b.templatizer.Format(query, values...)
}

// Ident backtick-quotes a possibly qualified identifier.
func (b *Builder) Ident(name string) Raw { return b.templatizer.Ident(name) }

// UpdateCase returns the ids of records, in order, and the CASE clauses that
// set every provided column of every record:
//
//	ids, set, err := UpdateCase(records, "id")
//	query, err := SQL([]string{"UPDATE users SET ", " WHERE id IN (", ")"}, set, ids)
func (b *Builder) UpdateCase(records []Record, idKey string) ([]any, Raw, error) {
	return b.templatizer.UpdateCase(records, idKey)
}

var std = New()

// Encode returns the SQL literal text of v.
func Encode(v any) (string, error) { return std.Encode(v) }

// SQL interleaves fragments with the encoded values.
func SQL(fragments []string, values ...any) (string, error) { return std.SQL(fragments, values...) }

// Format replaces "?" and "??" placeholders in query.
func Format(query string, values ...any) (string, error) { return std.Format(query, values...) }

// Ident backtick-quotes a possibly qualified identifier.
func Ident(name string) Raw { return std.Ident(name) }

// UpdateCase builds bulk UPDATE CASE clauses from partial records.
func UpdateCase(records []Record, idKey string) ([]any, Raw, error) {
	return std.UpdateCase(records, idKey)
}
