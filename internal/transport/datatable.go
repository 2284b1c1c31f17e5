package transport

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPageLength = 25
	maxPageLength     = 100
)

// ListParams are the paging, search and ordering inputs of a tabular listing.
type ListParams struct {
	Start    int
	Length   int
	Search   string
	OrderBy  string
	OrderDir string
}

// Page is the tabular listing response. RecordsTotal counts every row,
// RecordsFiltered the rows matching Search.
type Page[T any] struct {
	Data            []T   `json:"data"`
	RecordsTotal    int64 `json:"records_total"`
	RecordsFiltered int64 `json:"records_filtered"`
	Start           int   `json:"start"`
	Length          int   `json:"length"`
}

// ParseListParams reads start, length, search, order_by and order_dir from the
// query string. order_by is only kept when it names one of the sortable columns.
func ParseListParams(r *http.Request, sortable ...string) ListParams {
	q := r.URL.Query()
	p := ListParams{Length: defaultPageLength, OrderDir: "asc"}

	if s, err := strconv.Atoi(q.Get("start")); err == nil && s >= 0 {
		p.Start = s
	}
	if l, err := strconv.Atoi(q.Get("length")); err == nil && l > 0 {
		p.Length = l
	}
	if p.Length > maxPageLength {
		p.Length = maxPageLength
	}

	p.Search = strings.TrimSpace(q.Get("search"))

	orderBy := q.Get("order_by")
	for _, col := range sortable {
		if orderBy == col {
			p.OrderBy = col
			break
		}
	}
	if p.OrderBy == "" && len(sortable) > 0 {
		p.OrderBy = sortable[0]
	}

	if strings.EqualFold(q.Get("order_dir"), "desc") {
		p.OrderDir = "desc"
	}
	return p
}

// OrderClause renders the validated ordering as SQL, e.g. "display_name asc".
func (p ListParams) OrderClause() string {
	if p.OrderBy == "" {
		return ""
	}
	return p.OrderBy + " " + p.OrderDir
}

// NewPage converts rows with fn and wraps them with the listing counters.
func NewPage[S, T any](rows []S, total, filtered int64, p ListParams, fn func(S) T) Page[T] {
	data := make([]T, 0, len(rows))
	for _, row := range rows {
		data = append(data, fn(row))
	}
	return Page[T]{
		Data:            data,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Start:           p.Start,
		Length:          p.Length,
	}
}
