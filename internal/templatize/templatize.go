package templatize

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kydance/sql-template/internal/models"
)

// SQLTemplatizer encodes Go values into SQL text. It holds no per-call state
// and is safe for concurrent use.
type SQLTemplatizer struct {
	logger *zap.Logger
	loc    *time.Location

	pool sync.Pool
}

// Option configures a SQLTemplatizer.
type Option func(*SQLTemplatizer)

// WithLogger sets the logger used for debug output. A nil logger disables
// logging.
func WithLogger(logger *zap.Logger) Option {
	return func(p *SQLTemplatizer) {
		if logger == nil {
			logger = zap.NewNop()
		}
		p.logger = logger
	}
}

// WithLocation sets the time zone dates are rendered in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *SQLTemplatizer) {
		if loc != nil {
			p.loc = loc
		}
	}
}

func NewSQLTemplatizer(opts ...Option) *SQLTemplatizer {
	p := &SQLTemplatizer{
		logger: zap.NewNop(),
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.pool.New = func() any { return newEncoder(p.loc) }
	return p
}

// render runs fn against a pooled encoder and returns the text it wrote.
func (p *SQLTemplatizer) render(fn func(*encoder) error) (string, error) {
	e := p.pool.Get().(*encoder)
	defer func() {
		e.reset()
		p.pool.Put(e)
	}()

	if err := fn(e); err != nil {
		return "", err
	}
	return e.builder.String(), nil
}

// Encode returns the SQL literal text of a single value.
func (p *SQLTemplatizer) Encode(v any) (string, error) {
	val, err := models.ValueOf(v)
	if err != nil {
		return "", p.fail("encode", err)
	}
	return p.EncodeValue(val)
}

// EncodeValue is like Encode for an already converted value.
func (p *SQLTemplatizer) EncodeValue(v models.Value) (string, error) {
	out, err := p.render(func(e *encoder) error { return e.encode(v) })
	if err != nil {
		return "", p.fail("encode", err)
	}
	return out, nil
}

// Ident backtick-quotes a possibly qualified name: "entity.id" becomes
// "`entity`.`id`".
func (p *SQLTemplatizer) Ident(name string) models.Raw {
	out, _ := p.render(func(e *encoder) error {
		e.handleIdent(name)
		return nil
	})
	return models.Raw(out)
}

/*
Compose interleaves literal fragments with encoded values:

	fragments[0] + encode(values[0]) + fragments[1] + ... + fragments[n]

It panics unless len(fragments) == len(values)+1. All values are converted
before any text is produced, so an unsupported value yields no output.
*/
func (p *SQLTemplatizer) Compose(fragments []string, values ...any) (string, error) {
	if len(fragments) != len(values)+1 {
		panic(fmt.Sprintf(
			"templatize: %d fragments can't be interleaved with %d values, expected %d fragments",
			len(fragments), len(values), len(values)+1,
		))
	}

	vals, err := valuesOf(values)
	if err != nil {
		return "", p.fail("compose", err)
	}

	out, err := p.render(func(e *encoder) error { return e.compose(fragments, vals...) })
	if err != nil {
		return "", p.fail("compose", err)
	}

	p.logger.Debug("composed SQL",
		zap.Int("values", len(values)),
		zap.String("sql", out),
	)
	return out, nil
}

/*
Format replaces placeholders in query, left to right: "?" with the next value
encoded as a literal, "??" with the next value rendered as an identifier.

	Format("SELECT ?? FROM ?? WHERE id = ?", "name", "main.user", 1)
	// SELECT `name` FROM `main`.`user` WHERE id = 1

Runs of three or more question marks are kept as they are, and so are
placeholders left over once the values run out. Surplus values are ignored.
*/
func (p *SQLTemplatizer) Format(query string, values ...any) (string, error) {
	vals, err := valuesOf(values)
	if err != nil {
		return "", p.fail("format", err)
	}

	out, err := p.render(func(e *encoder) error { return e.format(query, vals) })
	if err != nil {
		return "", p.fail("format", err)
	}

	p.logger.Debug("formatted SQL",
		zap.Int("values", len(values)),
		zap.String("sql", out),
	)
	return out, nil
}

func (p *SQLTemplatizer) fail(op string, err error) error {
	p.logger.Debug("SQL templating failed", zap.String("op", op), zap.Error(err))
	return err
}

func valuesOf(values []any) ([]models.Value, error) {
	out := make([]models.Value, len(values))
	for idx, v := range values {
		val, err := models.ValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", idx, err)
		}
		out[idx] = val
	}
	return out, nil
}
