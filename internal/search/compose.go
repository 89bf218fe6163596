// Package search composes read queries from request parameters.
//
// Compose is pure: it turns a Params value into a Query value describing
// joins, AND-combined filters, an OR-combined search term, ordering and a
// page window. Filter and Apply render that description onto a *gorm.DB.
package search

import (
	"strings"

	"bookhub/internal/shared"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params are the recognised query options. Nil or empty means "not given".
type Params struct {
	Author          *int64
	PublicationYear *int
	Post            *int64
	Tag             string
	Search          string
	Q               string
	Ordering        string
	Page            int
	PageSize        int
}

// Filter is one single-placeholder predicate, e.g. {"books.author_id = ?", 3}.
type Filter struct {
	Expr  string
	Value any
}

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Kind     shared.Kind
	Table    string
	Joins    []string
	Filters  []Filter
	Term     string   // escaped ILIKE pattern
	Columns  []string // OR-combined against Term
	Orders   []Order
	Distinct bool
	Limit    int
	Offset   int
}

type order struct {
	column string
	desc   bool
}

type kindConfig struct {
	table        string
	filters      func(p Params) []Filter
	search       []string
	searchJoins  []string
	distinct     bool   // search joins are multi-valued
	q            string // title-like column for the q param
	ordering     map[string]string
	defaultOrder []order
}

var kinds = map[shared.Kind]kindConfig{
	shared.KindBook: {
		table: "books",
		filters: func(p Params) []Filter {
			var out []Filter
			if p.Author != nil {
				out = append(out, Filter{"books.author_id = ?", *p.Author})
			}
			if p.PublicationYear != nil {
				out = append(out, Filter{"books.publication_year = ?", *p.PublicationYear})
			}
			return out
		},
		search:       []string{"books.title", "authors.name"},
		searchJoins:  []string{"JOIN authors ON authors.id = books.author_id"},
		q:            "books.title",
		ordering:     map[string]string{"id": "books.id", "title": "books.title", "publication_year": "books.publication_year"},
		defaultOrder: []order{{"books.id", false}},
	},
	shared.KindAuthor: {
		table:        "authors",
		search:       []string{"authors.name"},
		q:            "authors.name",
		ordering:     map[string]string{"id": "authors.id", "name": "authors.name"},
		defaultOrder: []order{{"authors.id", false}},
	},
	shared.KindShelfBook: {
		table:        "bookshelf_books",
		search:       []string{"bookshelf_books.title", "bookshelf_books.author"},
		q:            "bookshelf_books.title",
		ordering:     map[string]string{"id": "bookshelf_books.id", "title": "bookshelf_books.title", "author": "bookshelf_books.author", "publication_year": "bookshelf_books.publication_year"},
		defaultOrder: []order{{"bookshelf_books.id", false}},
	},
	shared.KindLibrary: {
		table:        "libraries",
		search:       []string{"libraries.name"},
		q:            "libraries.name",
		ordering:     map[string]string{"id": "libraries.id", "name": "libraries.name"},
		defaultOrder: []order{{"libraries.id", false}},
	},
	shared.KindPost: {
		table: "posts",
		filters: func(p Params) []Filter {
			var out []Filter
			if p.Tag != "" {
				out = append(out, Filter{
					"posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE tags.slug = ?)",
					p.Tag,
				})
			}
			return out
		},
		search: []string{"posts.title", "posts.content", "tags.name"},
		searchJoins: []string{
			"LEFT JOIN post_tags ON post_tags.post_id = posts.id",
			"LEFT JOIN tags ON tags.id = post_tags.tag_id",
		},
		distinct:     true,
		q:            "posts.title",
		ordering:     map[string]string{"published_date": "posts.published_date", "title": "posts.title"},
		defaultOrder: []order{{"posts.published_date", true}},
	},
	shared.KindComment: {
		table: "comments",
		filters: func(p Params) []Filter {
			if p.Post != nil {
				return []Filter{{"comments.post_id = ?", *p.Post}}
			}
			return nil
		},
		search:       []string{"comments.content"},
		q:            "comments.content",
		ordering:     map[string]string{"created_at": "comments.created_at"},
		defaultOrder: []order{{"comments.created_at", true}},
	},
	shared.KindTag: {
		table:        "tags",
		search:       []string{"tags.name"},
		q:            "tags.name",
		ordering:     map[string]string{"name": "tags.name"},
		defaultOrder: []order{{"tags.name", false}},
	},
}

// Compose builds the read query for kind from p. Unknown ordering fields
// fall back to the kind's default order.
func Compose(kind shared.Kind, p Params) Query {
	cfg := kinds[kind]
	q := Query{Kind: kind, Table: cfg.table}

	if cfg.filters != nil {
		q.Filters = cfg.filters(p)
	}

	// search and q are separate params, so both may narrow the result
	if term := strings.TrimSpace(p.Search); term != "" && len(cfg.search) > 0 {
		q.Joins = append(q.Joins, cfg.searchJoins...)
		q.Term = likePattern(term)
		q.Columns = cfg.search
		q.Distinct = cfg.distinct
	}
	if term := strings.TrimSpace(p.Q); term != "" && cfg.q != "" {
		q.Filters = append(q.Filters, Filter{cfg.q + " ILIKE ?", likePattern(term)})
	}

	q.Orders = orders(cfg, p.Ordering)
	q.Limit, q.Offset = window(p.Page, p.PageSize)
	return q
}

// Merge AND-combines the filters of o into q; search, order and window of q win.
func (q Query) Merge(o Query) Query {
	out := q
	out.Filters = append(append([]Filter(nil), q.Filters...), o.Filters...)
	if out.Term == "" && o.Term != "" {
		out.Joins, out.Term, out.Columns, out.Distinct = o.Joins, o.Term, o.Columns, o.Distinct
	}
	return out
}

func orders(cfg kindConfig, ordering string) []Order {
	var out []Order
	for _, raw := range strings.Split(ordering, ",") {
		name := strings.TrimSpace(raw)
		desc := strings.HasPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")
		if col, ok := cfg.ordering[name]; ok {
			out = append(out, Order{Column: col, Desc: desc})
		}
	}
	if len(out) == 0 {
		for _, o := range cfg.defaultOrder {
			out = append(out, Order{Column: o.column, Desc: o.desc})
		}
	}
	// id tiebreaker keeps pages stable
	if cfg.table != "" {
		id := cfg.table + ".id"
		for _, o := range out {
			if o.Column == id {
				return out
			}
		}
		out = append(out, Order{Column: id})
	}
	return out
}

func window(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// likePattern wraps term for a substring ILIKE, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func orClause(columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" ILIKE ?")
	}
	return strings.Join(parts, " OR ")
}
