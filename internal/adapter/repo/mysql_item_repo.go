package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

// MySQLItemRepo stores every item kind in one table with a kind column;
// the per-kind detail columns are nullable and only the matching ones are
// populated.
type MySQLItemRepo struct{ db *sql.DB }

func NewMySQLItemRepo(db *sql.DB) *MySQLItemRepo { return &MySQLItemRepo{db: db} }

func (r *MySQLItemRepo) Save(ctx context.Context, it *domain.Item) error {
	var author, isbn, artist, director, actor sql.NullString
	switch it.Kind {
	case domain.KindBook:
		if it.Book != nil {
			author = sql.NullString{String: it.Book.Author, Valid: true}
			isbn = sql.NullString{String: it.Book.ISBN, Valid: true}
		}
	case domain.KindAlbum:
		if it.Album != nil {
			artist = sql.NullString{String: it.Album.Artist, Valid: true}
		}
	case domain.KindMovie:
		if it.Movie != nil {
			director = sql.NullString{String: it.Movie.Director, Valid: true}
			actor = sql.NullString{String: it.Movie.Actor, Valid: true}
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO items (id, kind, name, price, stock, author, isbn, artist, director, actor)
VALUES (?,?,?,?,?,?,?,?,?,?)`,
		it.ID, string(it.Kind), it.Name, it.Price, it.Stock,
		author, isbn, artist, director, actor,
	); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	for _, catID := range it.CategoryIDs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO item_categories (item_id, category_id) VALUES (?,?)`,
			it.ID, catID,
		); err != nil {
			return fmt.Errorf("link category %s: %w", catID, err)
		}
	}

	return tx.Commit()
}

func (r *MySQLItemRepo) FindOne(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, kind, name, price, stock, author, isbn, artist, director, actor
FROM items WHERE id = ?`, id)

	it, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	if it.CategoryIDs, err = r.loadCategoryIDs(ctx, id); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *MySQLItemRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Item, error) {
	if len(ids) == 0 {
		return map[string]*domain.Item{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, kind, name, price, stock, author, isbn, artist, director, actor
FROM items WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*domain.Item, len(ids))
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

func (r *MySQLItemRepo) AddStock(ctx context.Context, id string, q int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE items SET stock = stock + ? WHERE id = ?`, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *MySQLItemRepo) loadCategoryIDs(ctx context.Context, itemID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT category_id FROM item_categories WHERE item_id = ?`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	var author, isbn, artist, director, actor sql.NullString
	err := row.Scan(
		&it.ID, &it.Kind, &it.Name, &it.Price, &it.Stock,
		&author, &isbn, &artist, &director, &actor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch it.Kind {
	case domain.KindBook:
		it.Book = &domain.BookDetails{Author: author.String, ISBN: isbn.String}
	case domain.KindAlbum:
		it.Album = &domain.AlbumDetails{Artist: artist.String}
	case domain.KindMovie:
		it.Movie = &domain.MovieDetails{Director: director.String, Actor: actor.String}
	}
	return &it, nil
}

var _ usecase.ItemRepo = (*MySQLItemRepo)(nil)
