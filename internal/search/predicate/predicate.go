// Package predicate turns a search request into explicit strict and
// relaxed predicate sets. The sets are plain values; compiling them to SQL
// is the repository's job.
package predicate

import (
	"github.com/rentiva/discovery-service/internal/search/dto"
)

// Field identifies a filterable product attribute.
type Field string

const (
	FieldStatus         Field = "status"
	FieldCondition      Field = "condition"
	FieldOwner          Field = "owner"
	FieldCategory       Field = "category"
	FieldCountry        Field = "country"
	FieldPrice          Field = "price"
	FieldTitle          Field = "title"
	FieldCategoryName   Field = "category_name"
	FieldDescription    Field = "description"
	FieldSpecifications Field = "specifications"
)

// Clause is one predicate in a set. Exactly one concrete type applies:
// Equals, Range, Keyword, WithinRadius or Contains.
type Clause interface {
	clause()
}

// Equals requires an exact attribute match.
type Equals struct {
	Field Field
	Value string
}

// Range bounds a numeric attribute inclusively. Nil means unbounded.
type Range struct {
	Field Field
	Min   *float64
	Max   *float64
}

// Keyword requires at least one token to partially match at least one of
// the target fields, case-insensitively.
type Keyword struct {
	Tokens []string
	Fields []Field
}

// WithinRadius bounds results to a spherical distance from a point.
// RadiusMeters is already converted from the request's kilometers.
type WithinRadius struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Contains requires structured specifications to contain the given
// document (JSONB containment semantics).
type Contains struct {
	Field Field
	Doc   map[string]interface{}
}

func (Equals) clause()       {}
func (Range) clause()        {}
func (Keyword) clause()      {}
func (WithinRadius) clause() {}
func (Contains) clause()     {}

// Set is an ordered conjunction of clauses. The deleted-status exclusion is
// not represented here: the repository applies it unconditionally to every
// query, strict or relaxed.
type Set struct {
	Clauses []Clause
}

// IsEmpty reports whether the set carries no clauses.
func (s Set) IsEmpty() bool { return len(s.Clauses) == 0 }

// WithoutEquals returns a copy of the set with any equality clause on the
// given field removed. Used for the related-category aggregation, which
// keeps every active filter except the category itself.
func (s Set) WithoutEquals(f Field) Set {
	out := Set{}
	for _, c := range s.Clauses {
		if eq, ok := c.(Equals); ok && eq.Field == f {
			continue
		}
		out.Clauses = append(out.Clauses, c)
	}
	return out
}

// Plan holds both predicate sets for one request. Relaxable reports
// whether a zero strict count should trigger the relaxed fallback.
type Plan struct {
	Strict    Set
	Relaxed   Set
	Relaxable bool
	Tokens    []string
}

// Build derives the strict and relaxed predicate sets from a request.
//
// Strict: keyword disjunction over title/category/description, equality
// filters (wildcard "all" skipped), inclusive price bounds, geo radius and
// specification containment. Relaxed: the keyword disjunction alone,
// narrowed to title/category to keep the fallback precise.
func Build(in *dto.SearchInput) Plan {
	tokens := Tokenize(in.Query)

	p := Plan{Tokens: tokens}

	if len(tokens) > 0 {
		p.Strict.Clauses = append(p.Strict.Clauses, Keyword{
			Tokens: tokens,
			Fields: []Field{FieldTitle, FieldCategoryName, FieldDescription},
		})
		p.Relaxed.Clauses = append(p.Relaxed.Clauses, Keyword{
			Tokens: tokens,
			Fields: []Field{FieldTitle, FieldCategoryName},
		})
	}

	for _, eq := range []struct {
		field Field
		value string
	}{
		{FieldStatus, in.Status},
		{FieldCondition, in.Condition},
		{FieldOwner, in.OwnerID},
		{FieldCategory, in.CategoryID},
		{FieldCountry, in.CountryID},
	} {
		if eq.value == "" || eq.value == dto.Wildcard {
			continue
		}
		p.Strict.Clauses = append(p.Strict.Clauses, Equals{Field: eq.field, Value: eq.value})
	}

	if in.MinPrice != nil || in.MaxPrice != nil {
		p.Strict.Clauses = append(p.Strict.Clauses, Range{
			Field: FieldPrice,
			Min:   in.MinPrice,
			Max:   in.MaxPrice,
		})
		p.Relaxable = true
	}

	if in.Location != nil {
		p.Strict.Clauses = append(p.Strict.Clauses, WithinRadius{
			Latitude:     in.Location.Latitude,
			Longitude:    in.Location.Longitude,
			RadiusMeters: in.Location.RadiusKM * 1000,
		})
		p.Relaxable = true
	}

	if in.HasCategoryFilter() {
		p.Relaxable = true
	}

	if len(in.Specifications) > 0 {
		p.Strict.Clauses = append(p.Strict.Clauses, Contains{
			Field: FieldSpecifications,
			Doc:   in.Specifications,
		})
	}

	return p
}
