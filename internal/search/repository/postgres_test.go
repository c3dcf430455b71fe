package repository

import (
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"

	"github.com/rentiva/discovery-service/internal/search"
	"github.com/rentiva/discovery-service/internal/search/dto"
	"github.com/rentiva/discovery-service/internal/search/predicate"
)

func fl(v float64) *float64 { return &v }

func TestBuildWhere_EmptySetKeepsDeletedExclusion(t *testing.T) {
	where, args, err := BuildWhere(predicate.Set{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "p.status <> 'deleted'" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildWhere_Equals(t *testing.T) {
	pred := predicate.Set{Clauses: []predicate.Clause{
		predicate.Equals{Field: predicate.FieldCategory, Value: "cat-1"},
		predicate.Equals{Field: predicate.FieldOwner, Value: "owner-9"},
	}}

	where, args, err := BuildWhere(pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(where, "p.category_id = :eq0") {
		t.Errorf("missing category clause in %q", where)
	}
	if !strings.Contains(where, "p.owner_id = :eq1") {
		t.Errorf("missing owner clause in %q", where)
	}
	if args["eq0"] != "cat-1" || args["eq1"] != "owner-9" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildWhere_Range(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		want     []string
		notWant  []string
	}{
		{"both bounds", fl(10), fl(50), []string{">= :price_min", "<= :price_max"}, nil},
		{"min only", fl(10), nil, []string{">= :price_min"}, []string{"price_max"}},
		{"max only", nil, fl(50), []string{"<= :price_max"}, []string{"price_min"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := predicate.Set{Clauses: []predicate.Clause{
				predicate.Range{Field: predicate.FieldPrice, Min: tt.min, Max: tt.max},
			}}
			where, _, err := BuildWhere(pred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(where, w) {
					t.Errorf("where %q missing %q", where, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(where, nw) {
					t.Errorf("where %q unexpectedly contains %q", where, nw)
				}
			}
		})
	}
}

func TestBuildWhere_KeywordDisjunction(t *testing.T) {
	pred := predicate.Set{Clauses: []predicate.Clause{
		predicate.Keyword{
			Tokens: []string{"mountain", "bike"},
			Fields: []predicate.Field{predicate.FieldTitle, predicate.FieldCategoryName, predicate.FieldDescription},
		},
	}}

	where, args, err := BuildWhere(pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Any token hitting any field qualifies the row: one OR group.
	if strings.Count(where, " OR ") != 5 {
		t.Errorf("expected 6-way disjunction, got %q", where)
	}
	for _, want := range []string{"p.title ILIKE :kw0", "c.name ILIKE :kw0", "p.description ILIKE :kw1"} {
		if !strings.Contains(where, want) {
			t.Errorf("where %q missing %q", where, want)
		}
	}
	if args["kw0"] != "%mountain%" || args["kw1"] != "%bike%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildWhere_Radius(t *testing.T) {
	pred := predicate.Set{Clauses: []predicate.Clause{
		predicate.WithinRadius{Latitude: 52.5, Longitude: 13.4, RadiusMeters: 25000},
	}}

	where, args, err := BuildWhere(pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"p.latitude IS NOT NULL",
		"ST_DistanceSphere",
		"<= :geo_radius",
	} {
		if !strings.Contains(where, want) {
			t.Errorf("where %q missing %q", where, want)
		}
	}
	if args["geo_radius"] != 25000.0 {
		t.Errorf("geo_radius = %v", args["geo_radius"])
	}
}

func TestBuildWhere_Contains(t *testing.T) {
	pred := predicate.Set{Clauses: []predicate.Clause{
		predicate.Contains{Field: predicate.FieldSpecifications, Doc: map[string]interface{}{"brand": "DJI"}},
	}}

	where, args, err := BuildWhere(pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(where, "p.specifications @> :specs") {
		t.Errorf("where = %q", where)
	}
	if _, ok := args["specs"]; !ok {
		t.Errorf("args = %v, want specs", args)
	}
}

func TestResolveOrderBy(t *testing.T) {
	vec := pgvector.NewVector([]float32{0.1, 0.2})
	geo := &dto.GeoFilter{Latitude: 1, Longitude: 2, RadiusKM: 3}

	tests := []struct {
		name string
		q    search.CatalogQuery
		want string
	}{
		{
			name: "semantic overrides direction",
			q:    search.CatalogQuery{SortBy: dto.SortRelevance, SortOrder: dto.OrderAsc, Vector: &vec},
			want: "(1 - (p.embedding <=> :query_vec)) DESC NULLS LAST, p.id ASC",
		},
		{
			name: "lexical honors direction",
			q:    search.CatalogQuery{SortBy: dto.SortRelevance, SortOrder: dto.OrderAsc, Tokens: []string{"bike"}},
			want: "ASC, p.id ASC",
		},
		{
			name: "relevance without signals falls back to created_at",
			q:    search.CatalogQuery{SortBy: dto.SortRelevance, SortOrder: dto.OrderDesc},
			want: "p.created_at DESC, p.id ASC",
		},
		{
			name: "distance ignores requested direction",
			q:    search.CatalogQuery{SortBy: dto.SortDistance, SortOrder: dto.OrderDesc, Geo: geo},
			want: "ASC, p.id ASC",
		},
		{
			name: "distance without geo falls back to created_at",
			q:    search.CatalogQuery{SortBy: dto.SortDistance, SortOrder: dto.OrderAsc},
			want: "p.created_at DESC, p.id ASC",
		},
		{
			name: "plain column",
			q:    search.CatalogQuery{SortBy: dto.SortPrice, SortOrder: dto.OrderAsc},
			want: "p.price_per_day ASC, p.id ASC",
		},
		{
			name: "rating handles null",
			q:    search.CatalogQuery{SortBy: dto.SortRating, SortOrder: dto.OrderDesc},
			want: "COALESCE(p.average_rating, 0) DESC, p.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{}
			got, err := resolveOrderBy(&tt.q, args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("order by %q missing %q", got, tt.want)
			}
			if !strings.HasSuffix(got, "p.id ASC") {
				t.Errorf("order by %q lacks deterministic tie-break", got)
			}
		})
	}
}

func TestResolveOrderBy_UnknownKey(t *testing.T) {
	q := search.CatalogQuery{SortBy: "owner_id; DROP TABLE products"}
	if _, err := resolveOrderBy(&q, map[string]interface{}{}); err == nil {
		t.Fatal("expected error for non-whitelisted sort key")
	}
}

func TestResolveOrderBy_DistanceRegistersArgs(t *testing.T) {
	geo := &dto.GeoFilter{Latitude: 48.8, Longitude: 2.3, RadiusKM: 10}
	args := map[string]interface{}{}
	if _, err := resolveOrderBy(&search.CatalogQuery{SortBy: dto.SortDistance, Geo: geo}, args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args["sort_lat"] != 48.8 || args["sort_lng"] != 2.3 {
		t.Errorf("args = %v", args)
	}
}
