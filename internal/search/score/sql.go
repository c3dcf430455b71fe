package score

import (
	"fmt"
	"strings"
)

// LexicalSQL renders the lexical score as a SQL expression over the joined
// product/category row, registering its named arguments in args. The
// expression mirrors Lexical exactly.
func LexicalSQL(tokens []string, args map[string]interface{}) string {
	terms := make([]string, 0, len(tokens)*3+2)
	for i, tok := range tokens {
		exact := fmt.Sprintf("score_tok%d", i)
		like := fmt.Sprintf("score_like%d", i)
		args[exact] = tok
		args[like] = "%" + tok + "%"

		terms = append(terms,
			fmt.Sprintf("(CASE WHEN lower(p.title) = :%s THEN %d WHEN p.title ILIKE :%s THEN %d ELSE 0 END)",
				exact, ExactTitleWeight, like, PartialTitleWeight),
			fmt.Sprintf("(CASE WHEN c.name ILIKE :%s THEN %d ELSE 0 END)", like, CategoryWeight),
			fmt.Sprintf("(CASE WHEN p.description ILIKE :%s THEN %d ELSE 0 END)", like, DescriptionWeight),
		)
	}
	terms = append(terms,
		fmt.Sprintf("p.view_count * %g", ViewCountWeight),
		fmt.Sprintf("COALESCE(p.average_rating, 0) * %g", RatingWeight),
	)
	return strings.Join(terms, " + ")
}

// SimilaritySQL renders cosine similarity against the named vector
// parameter. NULL embeddings yield NULL, so ordering must push them last.
func SimilaritySQL(vectorParam string) string {
	return fmt.Sprintf("(1 - (p.embedding <=> :%s))", vectorParam)
}

// DistanceSQL renders the spherical distance in meters between a product's
// point and the named lat/lng parameters.
func DistanceSQL(latParam, lngParam string) string {
	return fmt.Sprintf("ST_DistanceSphere(ST_MakePoint(p.longitude, p.latitude), ST_MakePoint(:%s, :%s))",
		lngParam, latParam)
}
