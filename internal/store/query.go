package store

import (
	"fmt"
	"strings"

	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/schema"
)

// Predicate is a structured filter compiled to a parameterized WHERE
// fragment. Filters are never assembled from interpolated strings; every
// value travels as a bound argument.
type Predicate interface {
	compile(sb *strings.Builder, args *[]any)
}

// Equals matches rows whose column equals the value exactly.
type Equals struct {
	Column string
	Value  any
}

func (p Equals) compile(sb *strings.Builder, args *[]any) {
	sb.WriteString(p.Column)
	sb.WriteString(" = ?")
	*args = append(*args, p.Value)
}

// Contains matches rows whose text column case-insensitively contains the
// substring.
type Contains struct {
	Column string
	Substr string
}

func (p Contains) compile(sb *strings.Builder, args *[]any) {
	sb.WriteString("instr(lower(")
	sb.WriteString(p.Column)
	sb.WriteString("), lower(?)) > 0")
	*args = append(*args, p.Substr)
}

// MemberOf matches rows whose JSON string-array column holds the value,
// compared case-insensitively. Column must be table-qualified so it resolves
// inside the json_each subquery.
type MemberOf struct {
	Column string
	Value  string
}

func (p MemberOf) compile(sb *strings.Builder, args *[]any) {
	sb.WriteString("EXISTS (SELECT 1 FROM json_each(")
	sb.WriteString(p.Column)
	sb.WriteString(") WHERE lower(json_each.value) = lower(?))")
	*args = append(*args, p.Value)
}

// And is the conjunction of its parts; empty And matches everything.
type And []Predicate

func (p And) compile(sb *strings.Builder, args *[]any) {
	if len(p) == 0 {
		sb.WriteString("1 = 1")
		return
	}
	for i, part := range p {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString("(")
		part.compile(sb, args)
		sb.WriteString(")")
	}
}

// Or is the disjunction of its parts.
type Or []Predicate

func (p Or) compile(sb *strings.Builder, args *[]any) {
	if len(p) == 0 {
		sb.WriteString("1 = 1")
		return
	}
	for i, part := range p {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString("(")
		part.compile(sb, args)
		sb.WriteString(")")
	}
}

// textPredicate builds the free-text clause for a kind: substring match on
// the text index OR tag containment, whichever the kind supports.
func textPredicate(def schema.Def, query string) Predicate {
	var parts Or
	if def.TextIndex != "" {
		parts = append(parts, Contains{Column: def.TextIndex, Substr: query})
	}
	if def.TagsColumn != "" {
		parts = append(parts, MemberOf{Column: def.Table + "." + def.TagsColumn, Value: query})
	}
	if len(parts) == 0 {
		return nil
	}
	return parts
}

// filterPredicates maps the option filters onto columns the kind actually
// has; filters without a matching column are no-ops for that kind.
func filterPredicates(def schema.Def, f domain.SearchFilters) And {
	var preds And
	if f.FolderID != "" {
		if col := def.ShadowFor("folder_id"); col != "" {
			preds = append(preds, Equals{Column: col, Value: f.FolderID})
		}
	}
	if f.ParentID != "" {
		if col := def.ShadowFor("parent_id"); col != "" {
			preds = append(preds, Equals{Column: col, Value: f.ParentID})
		}
	}
	if f.MimeType != "" && def.Name == schema.KindVideo {
		preds = append(preds, Equals{Column: "mime_type", Value: f.MimeType})
	}
	if f.Quality != "" && def.Name == schema.KindVideo {
		preds = append(preds, Equals{Column: "quality", Value: f.Quality})
	}
	if len(f.Tags) > 0 && def.TagsColumn != "" {
		for _, tag := range f.Tags {
			preds = append(preds, MemberOf{Column: def.Table + "." + def.TagsColumn, Value: tag})
		}
	}
	return preds
}

// sortColumn resolves the requested sort field to a column, falling back to
// the kind's default ordering column.
func sortColumn(def schema.Def, by domain.SortField) string {
	switch by {
	case domain.SortByTitle:
		if def.TextIndex != "" {
			return def.TextIndex
		}
	case domain.SortByDate:
		return def.DefaultSort
	case domain.SortByDuration:
		if def.Name == schema.KindVideo || def.Name == schema.KindPlayHistory {
			return "duration"
		}
	case domain.SortBySize:
		if def.Name == schema.KindVideo {
			return "file_size"
		}
	case domain.SortByPlayCount:
		if def.Name == schema.KindVideo {
			return "play_count"
		}
	}
	return def.DefaultSort
}

// buildSearch compiles one search call into a single SELECT. Ordering is
// stable: ties break by rowid, i.e. insertion order, so pagination stays
// deterministic across calls.
func buildSearch(def schema.Def, query string, opts domain.SearchOptions, extra ...Predicate) (string, []any) {
	preds := And{}
	if query != "" {
		if tp := textPredicate(def, query); tp != nil {
			preds = append(preds, tp)
		}
	}
	preds = append(preds, filterPredicates(def, opts.Filters)...)
	preds = append(preds, extra...)

	var sb strings.Builder
	var args []any

	fmt.Fprintf(&sb, "SELECT %s.* FROM %s WHERE ", def.Table, def.Table)
	preds.compile(&sb, &args)

	dir := "DESC"
	if opts.SortOrder == domain.SortAsc {
		dir = "ASC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, rowid ASC", sortColumn(def, opts.SortBy), dir)

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	return sb.String(), args
}
