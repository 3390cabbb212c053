package templatize

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pingcap/tidb/pkg/parser/format"

	"github.com/kydance/sql-template/internal/models"
)

const (
	// Single quotes are doubled by the restore context; backslashes and
	// control characters are handled by stringEscaper beforehand.
	restoreFlags = format.RestoreStringSingleQuotes | format.RestoreNameBackQuotes

	dateLayout = "2006-01-02 15:04:05.000"
)

// stringEscaper applies MySQL backslash escapes to characters that must not
// appear raw inside a string literal.
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\x00", `\0`,
	"\x1a", `\Z`,
	"\n", `\n`,
	"\r", `\r`,
	"\b", `\b`,
	"\t", `\t`,
	`"`, `\"`,
)

// encoder appends the SQL literal text of values to its builder.
type encoder struct {
	builder *strings.Builder
	restore *format.RestoreCtx
	loc     *time.Location
}

func newEncoder(loc *time.Location) *encoder {
	builder := &strings.Builder{}
	return &encoder{
		builder: builder,
		restore: format.NewRestoreCtx(restoreFlags, builder),
		loc:     loc,
	}
}

func (e *encoder) reset() { e.builder.Reset() }

// encode appends the literal text of v.
func (e *encoder) encode(v models.Value) error {
	switch val := v.(type) {
	case nil, models.Null, models.Absent:
		e.builder.WriteString("NULL")
	case models.Raw:
		e.builder.WriteString(string(val))
	case models.Int:
		e.builder.WriteString(strconv.FormatInt(int64(val), 10))
	case models.Uint:
		e.builder.WriteString(strconv.FormatUint(uint64(val), 10))
	case models.Float:
		e.builder.WriteString(models.FormatFloat(float64(val), 64))
	case models.Bool:
		e.builder.WriteString(strconv.FormatBool(bool(val)))
	case models.Date:
		e.handleDate(val)
	case models.Bytes:
		e.handleBytes(val)
	case models.String:
		e.handleString(string(val))
	case models.List:
		return e.handleList(val)
	case models.Map:
		return e.handleMap(val)
	default:
		return models.ErrUnsupportedType.During("encoding").
			Wrap(fmt.Errorf("unknown value variant %T", v))
	}
	return nil
}

func (e *encoder) handleString(val string) {
	e.restore.WriteString(stringEscaper.Replace(val))
}

func (e *encoder) handleDate(val models.Date) {
	e.handleString(time.Time(val).In(e.loc).Format(dateLayout))
}

func (e *encoder) handleBytes(val models.Bytes) {
	e.builder.WriteString("X'")
	e.builder.WriteString(hex.EncodeToString(val))
	e.builder.WriteString("'")
}

// handleList writes "a, b, c". Nested lists become "(a, b)" tuples, so a list
// of lists yields "(a, b), (c, d)".
func (e *encoder) handleList(list models.List) error {
	for idx, item := range list {
		if idx > 0 {
			e.builder.WriteString(", ")
		}

		if inner, ok := item.(models.List); ok {
			e.builder.WriteString("(")
			if err := e.handleList(inner); err != nil {
				return err
			}
			e.builder.WriteString(")")
			continue
		}

		if err := e.encode(item); err != nil {
			return err
		}
	}
	return nil
}

// handleMap writes "`key` = value" pairs in entry order.
func (e *encoder) handleMap(m models.Map) error {
	for idx, entry := range m {
		if idx > 0 {
			e.builder.WriteString(", ")
		}

		e.handleIdent(entry.Key)
		e.builder.WriteString(" = ")
		if err := e.encode(entry.Value); err != nil {
			return err
		}
	}
	return nil
}

// handleIdent backtick-quotes each dot separated segment of name, so
// "entity.id" becomes "`entity`.`id`".
func (e *encoder) handleIdent(name string) {
	for idx, part := range models.ParseName(name).Parts() {
		if idx > 0 {
			e.builder.WriteString(".")
		}
		e.restore.WriteName(part)
	}
}

// encodeIdent writes v as an identifier: strings, numbers and booleans are
// quoted, raw SQL is kept verbatim and lists become comma separated
// identifiers.
func (e *encoder) encodeIdent(v models.Value) error {
	switch val := v.(type) {
	case models.String:
		e.handleIdent(string(val))
	case models.Raw:
		e.builder.WriteString(string(val))
	case models.Int:
		e.handleIdent(strconv.FormatInt(int64(val), 10))
	case models.Uint:
		e.handleIdent(strconv.FormatUint(uint64(val), 10))
	case models.Float:
		e.handleIdent(models.FormatFloat(float64(val), 64))
	case models.Bool:
		e.handleIdent(strconv.FormatBool(bool(val)))
	case models.List:
		for idx, item := range val {
			if idx > 0 {
				e.builder.WriteString(", ")
			}
			if err := e.encodeIdent(item); err != nil {
				return err
			}
		}
	default:
		return models.ErrUnsupportedType.During("encoding identifier").
			Wrap(fmt.Errorf("%T can't be used as an identifier", v))
	}
	return nil
}

// compose interleaves fragments with encoded values. The caller guarantees
// len(fragments) == len(values)+1.
func (e *encoder) compose(fragments []string, values ...models.Value) error {
	for idx, val := range values {
		e.builder.WriteString(fragments[idx])
		if err := e.encode(val); err != nil {
			return err
		}
	}
	e.builder.WriteString(fragments[len(fragments)-1])
	return nil
}

// format replaces "?" with encoded values and "??" with identifiers, left to
// right. Longer runs of question marks and placeholders beyond the last value
// are left as they are.
func (e *encoder) format(query string, values []models.Value) error {
	var (
		start int // first byte not yet written
		next  int // next value to consume
	)

	for idx := 0; idx < len(query) && next < len(values); {
		if query[idx] != '?' {
			idx++
			continue
		}

		end := idx
		for end < len(query) && query[end] == '?' {
			end++
		}

		if run := end - idx; run <= 2 {
			e.builder.WriteString(query[start:idx])

			var err error
			if run == 2 {
				err = e.encodeIdent(values[next])
			} else {
				err = e.encode(values[next])
			}
			if err != nil {
				return err
			}

			next++
			start = end
		}
		idx = end
	}

	e.builder.WriteString(query[start:])
	return nil
}
