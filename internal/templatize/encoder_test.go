package templatize

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/test_driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kydance/sql-template/internal/models"
)

func TestSQLTemplatizer_Encode(t *testing.T) {
	t.Parallel()
	as := assert.New(t)
	templatizer := NewSQLTemplatizer(WithLocation(time.UTC))

	cases := []struct {
		in   any
		want string
	}{
		// null and absent
		{nil, "NULL"},
		{models.Absent{}, "NULL"},
		{models.Null{}, "NULL"},

		// raw SQL is never escaped
		{models.Raw("entity"), "entity"},
		{models.RawSQL(3), "3"},
		{models.Raw("it's raw"), "it's raw"},
		{ptr(models.Raw("entity")), "entity"},
		{(*models.Raw)(nil), "NULL"},
		{ptr(models.Int(5)), "5"},

		// numbers and booleans
		{1, "1"},
		{-42, "-42"},
		{uint32(7), "7"},
		{0.5, "0.5"},
		{1e6, "1000000"},
		{true, "true"},
		{false, "false"},

		// dates and binary data
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "'2021-01-01 00:00:00.000'"},
		{time.Date(2021, 1, 1, 2, 3, 4, 567000000, time.FixedZone("UTC+2", 7200)), "'2021-01-01 00:03:04.567'"},
		{[]byte("test"), "X'74657374'"},
		{[]byte{0x0f, 0xa5}, "X'0fa5'"},
		{[]byte{}, "X''"},

		// strings
		{"Marwan", "'Marwan'"},
		{"", "''"},
		{"it's", "'it''s'"},
		{`back\slash`, `'back\\slash'`},
		{`say "hi"`, `'say \"hi\"'`},
		{"a\x00b\x1ac\nd\re\bf\tg", `'a\0b\Zc\nd\re\bf\tg'`},

		// lists
		{[]int{1, 2, 3}, "1, 2, 3"},
		{[]any{"a", nil, true}, "'a', NULL, true"},
		{[]any{}, ""},
		{[][]any{{1, "a"}, {2, "b"}}, "(1, 'a'), (2, 'b')"},
		{[]any{[]any{1, []any{2, 3}}, 4}, "(1, (2, 3)), 4"},

		// maps
		{models.Record{{Key: "entity.id", Value: 1}, {Key: "entity.name", Value: "Marwan"}}, "`entity`.`id` = 1, `entity`.`name` = 'Marwan'"},
		{models.Record{{Key: "id", Value: 1}, {Key: "name", Value: "Marwan"}}, "`id` = 1, `name` = 'Marwan'"},
		{models.Record{{Key: "we`ird", Value: []int{1, 2}}}, "`we``ird` = 1, 2"},
		{map[string]any{"b": nil, "a": false}, "`a` = false, `b` = NULL"},
	}

	for _, c := range cases {
		got, err := templatizer.Encode(c.in)
		as.NoError(err, "%#v", c.in)
		as.Equal(c.want, got, "%#v", c.in)
	}
}

func TestSQLTemplatizer_Encode_LocalTime(t *testing.T) {
	t.Parallel()

	got, err := NewSQLTemplatizer().Encode(time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "'2021-01-01 00:00:00.000'", got)
}

func TestSQLTemplatizer_Encode_Unsupported(t *testing.T) {
	t.Parallel()
	as := assert.New(t)
	templatizer := NewSQLTemplatizer()

	for _, in := range []any{struct{}{}, []any{1, make(chan int)}, map[string]any{"a": func() {}}} {
		got, err := templatizer.Encode(in)
		as.Error(err)
		as.True(errors.Is(err, models.ErrUnsupportedType))
		as.Empty(got)
	}
}

func TestSQLTemplatizer_Encode_RawIsIdempotent(t *testing.T) {
	t.Parallel()
	as := assert.New(t)
	templatizer := NewSQLTemplatizer()

	for _, in := range []any{"it's", []any{1, "a"}, [][]any{{1, `\`}}, models.Record{{Key: "a.b", Value: "c"}}} {
		once, err := templatizer.Encode(in)
		as.NoError(err)

		twice, err := templatizer.Encode(models.Raw(once))
		as.NoError(err)
		as.Equal(once, twice)
	}
}

// parseLiteral reads back a literal produced by the encoder with the TiDB
// lexer, which applies MySQL unescaping rules.
func parseLiteral(t *testing.T, literal string) any {
	t.Helper()

	stmt, err := parser.New().ParseOneStmt("SELECT "+literal, "", "")
	require.NoError(t, err, literal)

	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Fields.Fields, 1)

	val, ok := sel.Fields.Fields[0].Expr.(*test_driver.ValueExpr)
	require.True(t, ok, "%T", sel.Fields.Fields[0].Expr)
	return val.GetValue()
}

func TestSQLTemplatizer_Encode_StringRoundTrip(t *testing.T) {
	t.Parallel()
	templatizer := NewSQLTemplatizer()

	for _, s := range []string{
		"Marwan",
		"it's",
		"''",
		`back\slash`,
		`\'`,
		`trailing\`,
		"new\nline",
		"tab\tstop",
		`"double"`,
		"unicode: 😀 ünïcødé",
		"'; DROP TABLE users; --",
		"nul\x00byte",
		"ctrl\x1az",
		"cr\rlf\nback\bspace",
	} {
		literal, err := templatizer.Encode(s)
		require.NoError(t, err)
		assert.Equal(t, s, parseLiteral(t, literal), literal)
		assert.NotContainsf(t, literal, "\x00", "raw NUL in %q", literal)
		assert.False(t, strings.ContainsAny(literal, "\x00\x1a\n\r\b\t"), "raw control byte in %q", literal)
	}
}

func TestSQLTemplatizer_Ident(t *testing.T) {
	t.Parallel()
	as := assert.New(t)
	templatizer := NewSQLTemplatizer()

	as.Equal(models.Raw("`id`"), templatizer.Ident("id"))
	as.Equal(models.Raw("`main`.`user`"), templatizer.Ident("main.user"))
	as.Equal(models.Raw("`a``b`"), templatizer.Ident("a`b"))
}

func ptr[T any](v T) *T { return &v }
