// Package score computes the relevance signals used to order discovery
// results: a lexical field-match score, cosine similarity over embeddings
// and spherical geo distance. Scores exist only for ordering; they are
// never persisted or filterable.
package score

import (
	"math"
	"strings"
)

// Lexical weights. Per token: exact title match or title substring
// (mutually exclusive), plus category and description substring bonuses,
// which stack. Popularity and quality terms are added once per product.
const (
	ExactTitleWeight   = 10
	PartialTitleWeight = 5
	CategoryWeight     = 4
	DescriptionWeight  = 1
	ViewCountWeight    = 0.001
	RatingWeight       = 0.5
)

// lexical computes the keyword relevance score for one product. Tokens are
// expected lowercased (predicate.Tokenize output). Scoring runs in the
// datastore via LexicalSQL; this rendition is the oracle the tests hold
// that expression to.
func lexical(tokens []string, title, categoryName, description string, viewCount int64, avgRating float64) float64 {
	title = strings.ToLower(title)
	categoryName = strings.ToLower(categoryName)
	description = strings.ToLower(description)

	var s float64
	for _, tok := range tokens {
		if title == tok {
			s += ExactTitleWeight
		} else if strings.Contains(title, tok) {
			s += PartialTitleWeight
		}
		if categoryName != "" && strings.Contains(categoryName, tok) {
			s += CategoryWeight
		}
		if description != "" && strings.Contains(description, tok) {
			s += DescriptionWeight
		}
	}
	return s + float64(viewCount)*ViewCountWeight + avgRating*RatingWeight
}

// cosineSimilarity returns the similarity of two equal-length vectors in
// [-1, 1]. Zero vectors yield 0. Oracle for the pgvector expression in
// SimilaritySQL.
func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

const earthRadiusMeters = 6371000

// haversine returns the great-circle distance between two points in
// meters. Oracle for the ST_DistanceSphere expression in DistanceSQL,
// which serves the geo-radius bound and the distance sort.
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
