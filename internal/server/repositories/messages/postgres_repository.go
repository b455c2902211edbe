package messages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/messagely/messagely/internal/dbx"
	"github.com/messagely/messagely/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) From(ctx context.Context, username string) ([]*models.Message, error) {
	query :=
		`SELECT m.id, m.to_username, u.first_name, u.last_name, u.phone, m.body, m.sent_at, m.read_at
		 FROM messages AS m
		 JOIN users AS u ON m.to_username = u.username
		 WHERE m.from_username = $1
		 ORDER BY m.sent_at
		 `

	return r.queryThread(ctx, query, username)
}

func (r *PostgresRepository) To(ctx context.Context, username string) ([]*models.Message, error) {
	query :=
		`SELECT m.id, m.from_username, u.first_name, u.last_name, u.phone, m.body, m.sent_at, m.read_at
		 FROM messages AS m
		 JOIN users AS u ON m.from_username = u.username
		 WHERE m.to_username = $1
		 ORDER BY m.sent_at
		 `

	return r.queryThread(ctx, query, username)
}

func (r *PostgresRepository) queryThread(ctx context.Context, query, username string) ([]*models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		var readAt sql.NullTime
		if err := rows.Scan(&msg.ID, &msg.Counterpart.Username, &msg.Counterpart.FirstName,
			&msg.Counterpart.LastName, &msg.Counterpart.Phone, &msg.Body, &msg.SentAt, &readAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if readAt.Valid {
			msg.ReadAt = &readAt.Time
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
