package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

const mysqlDupEntry = 1062

type MySQLMemberRepo struct{ db *sql.DB }

func NewMySQLMemberRepo(db *sql.DB) *MySQLMemberRepo { return &MySQLMemberRepo{db: db} }

// Save relies on the unique index on members.name to catch racing
// registrations that slipped past the use-case level check.
func (r *MySQLMemberRepo) Save(ctx context.Context, m *domain.Member) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO members (id, name, city, street, zipcode)
VALUES (?,?,?,?,?)`,
		m.ID, m.Name, m.Address.City, m.Address.Street, m.Address.Zipcode,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return fmt.Errorf("member name %q: %w", m.Name, domain.ErrDuplicate)
	}
	return err
}

func (r *MySQLMemberRepo) FindOne(ctx context.Context, id string) (*domain.Member, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
SELECT id, name, city, street, zipcode FROM members WHERE id = ?`, id))
}

func (r *MySQLMemberRepo) FindByName(ctx context.Context, name string) (*domain.Member, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
SELECT id, name, city, street, zipcode FROM members WHERE name = ?`, name))
}

func (r *MySQLMemberRepo) scanOne(row *sql.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.Name, &m.Address.City, &m.Address.Street, &m.Address.Zipcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

var _ usecase.MemberRepo = (*MySQLMemberRepo)(nil)
