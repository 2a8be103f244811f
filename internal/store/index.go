package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"partsearch/internal/retrieval"
)

// Index is a Postgres-backed retrieval.TextIndex, the reference
// text-search engine implementation (spec §6: the engine is an
// external collaborator behind this narrow interface).
type Index struct {
	pool *pgxpool.Pool
}

// NewIndex wraps an already-migrated connection pool.
func NewIndex(pool *pgxpool.Pool) *Index {
	return &Index{pool: pool}
}

var _ retrieval.TextIndex = (*Index)(nil)

// Search translates the boolean query tree into a parameterized SQL
// query against the parts table and maps rows back into Hits.
func (idx *Index) Search(ctx context.Context, req retrieval.Request) (retrieval.Response, error) {
	where, args, rankTerm, err := buildWhere(req.Query)
	if err != nil {
		return retrieval.Response{}, fmt.Errorf("build query: %w", err)
	}

	size := req.Size
	if size <= 0 || size > retrieval.MaxCandidates {
		size = retrieval.MaxCandidates
	}

	timeout := time.Duration(req.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scoreExpr := "1.0"
	if rankTerm != "" {
		args = append(args, rankTerm)
		scoreExpr = fmt.Sprintf("ts_rank(search_vector, plainto_tsquery('simple', $%d))", len(args))
	}

	sizeParam := len(args) + 1
	args = append(args, size)

	sql := fmt.Sprintf(`
		SELECT id, part_number, part_number_normalized, brand, category, description,
			price, stock, in_stock, COALESCE(image_url, ''), specifications, vehicle_fitments,
			cross_references, oem_references, superseded_by, engine_codes, position, updated_at,
			%s AS score
		FROM parts
		WHERE %s
		ORDER BY score DESC
		LIMIT $%d
	`, scoreExpr, where, sizeParam)

	rows, err := idx.pool.Query(ctx, sql, args...)
	if err != nil {
		return retrieval.Response{}, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	var hits []retrieval.Hit
	for rows.Next() {
		hit, err := scanHit(rows)
		if err != nil {
			return retrieval.Response{}, fmt.Errorf("scan hit: %w", err)
		}
		if req.MinScore > 0 && hit.Score < req.MinScore {
			continue
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return retrieval.Response{}, err
	}

	return retrieval.Response{Hits: hits}, nil
}

func scanHit(rows pgx.Rows) (retrieval.Hit, error) {
	var (
		id, partNumber, partNumberNorm, brand, category, description, imageURL, position string
		price                                                                             float64
		stock                                                                             int
		inStock                                                                           bool
		specifications, vehicleFitments                                                   []byte
		crossReferences, oemReferences, supersededBy, engineCodes                         []string
		updatedAt                                                                         time.Time
		score                                                                             float64
	)
	if err := rows.Scan(
		&id, &partNumber, &partNumberNorm, &brand, &category, &description,
		&price, &stock, &inStock, &imageURL, &specifications, &vehicleFitments,
		&crossReferences, &oemReferences, &supersededBy, &engineCodes, &position, &updatedAt,
		&score,
	); err != nil {
		return retrieval.Hit{}, err
	}

	source := map[string]any{
		"partNumber":           partNumber,
		"partNumberNormalized": partNumberNorm,
		"brand":                brand,
		"category":             category,
		"description":          description,
		"price":                price,
		"stock":                stock,
		"inStock":              inStock,
		"imageUrl":             imageURL,
		"crossReferences":      crossReferences,
		"oemReferences":        oemReferences,
		"supersededBy":         supersededBy,
		"engineCodes":          engineCodes,
		"position":             position,
		"updatedAt":            updatedAt,
	}
	if len(specifications) > 0 {
		var spec map[string]any
		if json.Unmarshal(specifications, &spec) == nil {
			source["specifications"] = spec
		}
	}
	if len(vehicleFitments) > 0 {
		var fitments []any
		if json.Unmarshal(vehicleFitments, &fitments) == nil {
			source["vehicleFitments"] = fitments
		}
	}

	return retrieval.Hit{ID: id, Score: score, Source: source}, nil
}
