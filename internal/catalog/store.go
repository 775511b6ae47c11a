package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed catalog store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (and if needed initializes) the catalog database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	// WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		sku       TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		price     REAL NOT NULL DEFAULT 0,
		image_key TEXT NOT NULL DEFAULT '',
		in_stock  INTEGER NOT NULL DEFAULT 1,
		category  TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS vision_attributes (
		sku              TEXT PRIMARY KEY REFERENCES products(sku),
		color            TEXT NOT NULL DEFAULT '',
		secondary_color  TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT '',
		material         TEXT NOT NULL DEFAULT '',
		pattern          TEXT NOT NULL DEFAULT '',
		style            TEXT NOT NULL DEFAULT '',
		occasion         TEXT NOT NULL DEFAULT '',
		fit              TEXT NOT NULL DEFAULT '',
		formal_level     TEXT NOT NULL DEFAULT '',
		confidence_score REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	CREATE INDEX IF NOT EXISTS idx_vision_occasion ON vision_attributes(occasion);
	CREATE INDEX IF NOT EXISTS idx_vision_color ON vision_attributes(color);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertProduct inserts or replaces a product row.
func (s *Store) UpsertProduct(p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO products (sku, title, price, image_key, in_stock, category)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(sku) DO UPDATE SET
		   title = excluded.title, price = excluded.price,
		   image_key = excluded.image_key, in_stock = excluded.in_stock,
		   category = excluded.category`,
		p.SKU, p.Title, p.Price, p.ImageKey, boolToInt(p.InStock), p.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.SKU, err)
	}
	return nil
}

// UpsertVisionAttributes inserts or replaces the vision attributes for a SKU.
func (s *Store) UpsertVisionAttributes(a VisionAttributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO vision_attributes
		   (sku, color, secondary_color, category, material, pattern, style,
		    occasion, fit, formal_level, confidence_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(sku) DO UPDATE SET
		   color = excluded.color, secondary_color = excluded.secondary_color,
		   category = excluded.category, material = excluded.material,
		   pattern = excluded.pattern, style = excluded.style,
		   occasion = excluded.occasion, fit = excluded.fit,
		   formal_level = excluded.formal_level,
		   confidence_score = excluded.confidence_score`,
		a.SKU, a.Color, a.SecondaryColor, a.Category, a.Material, a.Pattern,
		a.Style, a.Occasion, a.Fit, a.FormalLevel, a.ConfidenceScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vision attributes for %s: %w", a.SKU, err)
	}
	return nil
}

// CountProducts returns the number of products in the catalog.
func (s *Store) CountProducts() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Search executes one compiled predicate query and returns the joined rows.
// Products without a vision_attributes row are included (Attrs == nil).
func (s *Store) Search(ctx context.Context, q Query) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sqlText, args, err := compileQuery(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search rows: %w", err)
	}

	log.Debug().Int("rows", len(items)).Int("anyClauses", len(q.Any)).
		Bool("broad", q.Broad).Msg("catalog search")

	return items, nil
}

func scanItem(rows *sql.Rows) (Item, error) {
	var (
		it      Item
		inStock int
		vaSKU   sql.NullString
		color, secondary, category, material, pattern,
		style, occasion, fit, formal sql.NullString
		confidence sql.NullFloat64
	)
	err := rows.Scan(
		&it.SKU, &it.Title, &it.Price, &it.ImageKey, &inStock, &it.Category,
		&vaSKU, &color, &secondary, &category, &material, &pattern,
		&style, &occasion, &fit, &formal, &confidence,
		&it.MatchCount,
	)
	if err != nil {
		return Item{}, err
	}
	it.InStock = inStock != 0
	if vaSKU.Valid {
		it.Attrs = &VisionAttributes{
			SKU:             vaSKU.String,
			Color:           color.String,
			SecondaryColor:  secondary.String,
			Category:        category.String,
			Material:        material.String,
			Pattern:         pattern.String,
			Style:           style.String,
			Occasion:        occasion.String,
			Fit:             fit.String,
			FormalLevel:     formal.String,
			ConfidenceScore: confidence.Float64,
		}
	}
	return it, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
