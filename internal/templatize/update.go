package templatize

import (
	"go.uber.org/zap"

	"github.com/kydance/sql-template/internal/models"
)

var whenFragments = []string{"WHEN ", " = ", " THEN ", "\n"}

/*
UpdateCase builds the SET part of a bulk UPDATE from partial records.

Every record must carry a truthy value at idKey: null, Absent, a missing field,
0, NaN, "" and false are rejected with ErrInvalidIdentifier. Each other field whose
value is not Absent contributes one WHEN branch to the CASE expression of its
column. Columns appear in first-seen order, branches in record order:

	name = CASE
	WHEN id = 1 THEN 'John'
	ELSE name
	END,
	age = CASE
	WHEN id = 1 THEN 1
	WHEN id = 2 THEN NULL
	ELSE age
	END

Every branch compares the shared idKey column against the encoded id. idKey
and column names are written verbatim. The clause is only meaningful after SET
in an UPDATE whose WHERE restricts the rows to the returned ids, which keep the
order and duplicates of the input.
*/
func (p *SQLTemplatizer) UpdateCase(records []models.Record, idKey string) ([]any, models.Raw, error) {
	ids := make([]any, 0, len(records))
	var groups models.ColumnGroups

	for _, record := range records {
		rawID := record.Get(idKey)
		id, err := models.ValueOf(rawID)
		if err != nil && !models.IsNaN(rawID) {
			return nil, "", p.fail("update case", err)
		}
		if err != nil || !models.IsTruthy(id) {
			return nil, "", p.fail("update case", models.InvalidIdentifier(idKey, record).During("building CASE update"))
		}

		ids = append(ids, rawID)
		for _, field := range record {
			if field.Key == idKey {
				continue
			}

			val, err := models.ValueOf(field.Value)
			if err != nil {
				return nil, "", p.fail("update case", err)
			}
			if _, ok := val.(models.Absent); ok {
				continue
			}
			groups.Add(field.Key, id, val)
		}
	}

	idColumn := models.Raw(idKey)
	clause, err := p.render(func(e *encoder) error {
		return groups.Range(func(column string, pairs []models.Pair) error {
			if e.builder.Len() > 0 {
				e.builder.WriteString(",\n")
			}

			e.builder.WriteString(column)
			e.builder.WriteString(" = CASE\n")
			for _, pair := range pairs {
				if err := e.compose(whenFragments, idColumn, pair.ID, pair.Value); err != nil {
					return err
				}
			}
			e.builder.WriteString("ELSE ")
			e.builder.WriteString(column)
			e.builder.WriteString("\nEND")
			return nil
		})
	})
	if err != nil {
		return nil, "", p.fail("update case", err)
	}

	p.logger.Debug("built CASE update",
		zap.Int("records", len(records)),
		zap.Int("columns", groups.Len()),
	)
	return ids, models.Raw(clause), nil
}
