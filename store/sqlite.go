package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/wgdzlh/maskcoco"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite索引：把生成的标注文档落库，便于按类别/影像查询
type Index struct {
	conn *sql.DB
	mu   sync.RWMutex
}

func Open(dbPath string) (*Index, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	idx := &Index{conn: conn}
	if err := idx.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return idx, nil
}

func (x *Index) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		supercategory TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY,
		file_name TEXT NOT NULL UNIQUE,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS annotations (
		id INTEGER PRIMARY KEY,
		image_id INTEGER NOT NULL,
		category_id INTEGER NOT NULL,
		area REAL NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		counts TEXT NOT NULL,
		FOREIGN KEY (image_id) REFERENCES images(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_annotations_image_id ON annotations(image_id);
	CREATE INDEX IF NOT EXISTS idx_annotations_category_id ON annotations(category_id);
	`
	_, err := x.conn.Exec(schema)
	return err
}

func (x *Index) Close() error {
	return x.conn.Close()
}

// Export replaces the index content with doc in a single transaction.
func (x *Index) Export(doc *maskcoco.Document) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM annotations`, `DELETE FROM images`, `DELETE FROM categories`} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
	}

	catStmt, err := tx.Prepare(`INSERT INTO categories (id, name, supercategory) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer catStmt.Close()
	for _, c := range doc.Categories {
		if _, err := catStmt.Exec(c.Id, c.Name, c.Supercategory); err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
	}

	imgStmt, err := tx.Prepare(`INSERT INTO images (id, file_name, width, height) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer imgStmt.Close()
	for _, im := range doc.Images {
		if _, err := imgStmt.Exec(im.Id, im.FileName, im.Width, im.Height); err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}

	annStmt, err := tx.Prepare(`
		INSERT INTO annotations (id, image_id, category_id, area, x, y, width, height, counts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer annStmt.Close()
	for _, a := range doc.Annotations {
		counts, err := json.Marshal(a.Segmentation.Counts)
		if err != nil {
			return fmt.Errorf("failed to encode counts: %w", err)
		}
		if _, err := annStmt.Exec(a.Id, a.ImageId, a.CategoryId, a.Area,
			int(a.Bbox[0]), int(a.Bbox[1]), int(a.Bbox[2]), int(a.Bbox[3]), string(counts)); err != nil {
			return fmt.Errorf("failed to insert annotation: %w", err)
		}
	}

	return tx.Commit()
}

// 各类别名称对应的标注数，无标注的类别计0
func (x *Index) CountByCategory() (map[string]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.conn.Query(`
		SELECT c.name, COUNT(a.id) FROM categories c
		LEFT JOIN annotations a ON a.category_id = c.id
		GROUP BY c.id ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	ret := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		ret[name] = n
	}
	return ret, rows.Err()
}

// 按文件名查询影像的全部标注（按id升序）
func (x *Index) AnnotationsByImage(fileName string) ([]maskcoco.Annotation, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.conn.Query(`
		SELECT a.id, a.image_id, a.category_id, a.area, a.x, a.y, a.width, a.height, a.counts, i.width, i.height
		FROM annotations a JOIN images i ON i.id = a.image_id
		WHERE i.file_name = ? ORDER BY a.id
	`, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}
	defer rows.Close()

	var anns []maskcoco.Annotation
	for rows.Next() {
		var (
			a          maskcoco.Annotation
			box        maskcoco.BBox
			counts     string
			imgW, imgH int
		)
		if err := rows.Scan(&a.Id, &a.ImageId, &a.CategoryId, &a.Area,
			&box[0], &box[1], &box[2], &box[3], &counts, &imgW, &imgH); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		if err := json.Unmarshal([]byte(counts), &a.Segmentation.Counts); err != nil {
			return nil, fmt.Errorf("failed to decode counts: %w", err)
		}
		a.Segmentation.Size = [2]int{imgH, imgW}
		a.Bbox = box.Floats()
		a.IsCrowd = maskcoco.ISCROWD_MARK
		anns = append(anns, a)
	}
	return anns, rows.Err()
}
