package store

// Schema is the DDL for the reference parts catalog and its full-text
// search index. Applied by RunMigrations at startup.
const Schema = `
CREATE EXTENSION IF NOT EXISTS pg_trgm;

CREATE TABLE IF NOT EXISTS parts (
	id                     TEXT PRIMARY KEY,
	part_number            TEXT NOT NULL,
	part_number_normalized TEXT NOT NULL,
	brand                  TEXT NOT NULL,
	category               TEXT NOT NULL,
	description            TEXT NOT NULL DEFAULT '',
	price                  NUMERIC NOT NULL DEFAULT 0,
	stock                  INTEGER NOT NULL DEFAULT 0,
	in_stock               BOOLEAN NOT NULL DEFAULT FALSE,
	image_url              TEXT,
	specifications         JSONB,
	vehicle_fitments       JSONB,
	cross_references       TEXT[] NOT NULL DEFAULT '{}',
	oem_references         TEXT[] NOT NULL DEFAULT '{}',
	superseded_by          TEXT[] NOT NULL DEFAULT '{}',
	engine_codes           TEXT[] NOT NULL DEFAULT '{}',
	position               TEXT NOT NULL DEFAULT '',
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	search_vector          TSVECTOR GENERATED ALWAYS AS (
		setweight(to_tsvector('simple', coalesce(part_number, '')), 'A') ||
		setweight(to_tsvector('simple', coalesce(brand, '')), 'B') ||
		setweight(to_tsvector('simple', coalesce(category, '')), 'B') ||
		setweight(to_tsvector('simple', coalesce(description, '')), 'C')
	) STORED
);

CREATE INDEX IF NOT EXISTS idx_parts_search_vector ON parts USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_parts_number_normalized ON parts (part_number_normalized);
CREATE INDEX IF NOT EXISTS idx_parts_number_trgm ON parts USING GIN (part_number_normalized gin_trgm_ops);
CREATE INDEX IF NOT EXISTS idx_parts_brand ON parts (brand);
CREATE INDEX IF NOT EXISTS idx_parts_category ON parts (category);
CREATE INDEX IF NOT EXISTS idx_parts_cross_references ON parts USING GIN (cross_references);
CREATE INDEX IF NOT EXISTS idx_parts_oem_references ON parts USING GIN (oem_references);
CREATE INDEX IF NOT EXISTS idx_parts_superseded_by ON parts USING GIN (superseded_by);
CREATE INDEX IF NOT EXISTS idx_parts_vehicle_fitments ON parts USING GIN (vehicle_fitments);
`
