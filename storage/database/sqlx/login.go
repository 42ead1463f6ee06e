package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/grading/storage/logins"
)

type loginRow struct {
	NUID  string `db:"nuid"`
	Login string `db:"login"`
}

type loginDirectory struct {
	db *sqlx.DB
}

var _ loginstore.Directory = (*loginDirectory)(nil)

// NewLoginDirectory returns a loginstore.Directory backed by the directory_login table.
func NewLoginDirectory(db *sql.DB) loginstore.Directory {
	return &loginDirectory{db: sqlx.NewDb(db, "postgres")}
}

func (dir *loginDirectory) LookupLogins(ctx context.Context, nuids []string) (map[string]string, error) {
	logins := make(map[string]string, len(nuids))
	if len(nuids) == 0 {
		return logins, nil
	}

	var rows []loginRow
	q := `SELECT nuid, login FROM directory_login WHERE nuid = ANY($1)`
	if err := dir.db.SelectContext(ctx, &rows, q, pq.Array(nuids)); err != nil {
		return nil, errors.Wrap(err, "selecting directory logins")
	}
	for _, row := range rows {
		logins[row.NUID] = row.Login
	}
	return logins, nil
}
