package listing

import (
	"strings"

	"github.com/rowalls/uh-internal-project/internal/transport"
	"gorm.io/gorm"
)

// Options describe one tabular listing. Filter narrows the rows counted in
// RecordsTotal; Search matches case-insensitively against SearchColumns.
type Options struct {
	SearchColumns []string
	Preloads      []string
	Filter        func(*gorm.DB) *gorm.DB
}

// Fetch loads one page of T into dst and returns the total and filtered
// counts. Preloads only apply to the page query.
func Fetch[T any](db *gorm.DB, p transport.ListParams, opts Options, dst *[]T) (total, filtered int64, err error) {
	var model T
	base := db.Model(&model)
	if opts.Filter != nil {
		base = opts.Filter(base)
	}

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	searched := base.Session(&gorm.Session{}).Scopes(Search(p.Search, opts.SearchColumns...))
	if err = searched.Session(&gorm.Session{}).Count(&filtered).Error; err != nil {
		return 0, 0, err
	}

	page := searched.Session(&gorm.Session{})
	for _, rel := range opts.Preloads {
		page = page.Preload(rel)
	}
	err = page.Order(p.OrderClause()).Offset(p.Start).Limit(p.Length).Find(dst).Error
	return total, filtered, err
}

// Search ORs a LIKE over every column. An empty term matches everything.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		clauses := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
