package cart

import (
	"database/sql"
	"encoding/json"
	"log"
)

// PostgresRepository stores carts as one jsonb row per session. It exists
// for deployments that run several storefront replicas behind one balancer;
// single-node installs use the file repository.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the cart table when missing.
func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS storefront_carts (
        "sessionID" TEXT PRIMARY KEY,
        lines jsonb NOT NULL DEFAULT '[]',
        "updatedAt" TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
	return err
}

func (r *PostgresRepository) Load(sessionID string) ([]Line, error) {
	var raw sql.NullString
	err := r.db.QueryRow(`SELECT lines FROM storefront_carts WHERE "sessionID" = $1`, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return []Line{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !raw.Valid || raw.String == "" {
		return []Line{}, nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw.String), &lines); err != nil {
		log.Printf("warning: cart row for session %s is corrupt, treating as empty: %v", sessionID, err)
		return []Line{}, nil
	}
	return lines, nil
}

func (r *PostgresRepository) Save(sessionID string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`INSERT INTO storefront_carts ("sessionID", lines, "updatedAt")
        VALUES ($1, $2, now())
        ON CONFLICT ("sessionID") DO UPDATE SET lines = EXCLUDED.lines, "updatedAt" = now()`,
		sessionID, string(raw))
	return err
}

func (r *PostgresRepository) Delete(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM storefront_carts WHERE "sessionID" = $1`, sessionID)
	return err
}
