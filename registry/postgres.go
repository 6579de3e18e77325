package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/db"
	"github.com/ayah-app/notification-service/schema"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRegistry stores subscriptions in the push_subscriptions table,
// with the serialized subscription kept as an opaque jsonb blob.
type PostgresRegistry struct {
	logger *zap.SugaredLogger
	db     *db.DB
}

func NewPostgresRegistry(logger *zap.SugaredLogger, database *db.DB) *PostgresRegistry {
	return &PostgresRegistry{
		logger: logger,
		db:     database,
	}
}

// subscriptionRow mirrors the table layout; the blob is decoded after the
// scan so the database never interprets it.
type subscriptionRow struct {
	SubscriptionID   uuid.UUID `db:"subscription_id"`
	SubscriptionData []byte    `db:"subscription_data"`
}

func (r *PostgresRegistry) Insert(ctx context.Context, data schema.SubscriptionData) (uuid.UUID, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshaling subscription data: %w", err)
	}

	subscriptionID := uuid.New()
	query, args, _ := psql.Insert("push_subscriptions").
		Columns("subscription_id", "subscription_data").
		Values(subscriptionID, blob).
		ToSql()

	err = r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, fmt.Errorf("%w: subscription id collision", ErrPersistence)
		}
		r.logger.Errorw("Error inserting subscription", "error", err)
		return uuid.Nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return subscriptionID, nil
}

func (r *PostgresRegistry) ScanAll(ctx context.Context) ([]schema.PushSubscription, error) {
	query, _, _ := psql.
		Select("subscription_id", "subscription_data").
		From("push_subscriptions").
		ToSql()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		r.logger.Errorw("Error executing query", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer rows.Close()

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[subscriptionRow])
	if err != nil {
		r.logger.Errorw("Error collecting subscription rows", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	subscriptions := make([]schema.PushSubscription, 0, len(collected))
	for _, row := range collected {
		var data schema.SubscriptionData
		if err := json.Unmarshal(row.SubscriptionData, &data); err != nil {
			// A row this service cannot decode is unusable; skip it
			// rather than failing the whole scan.
			r.logger.Errorw("Skipping undecodable subscription row",
				"subscriptionId", row.SubscriptionID, "error", err)
			continue
		}
		subscriptions = append(subscriptions, schema.PushSubscription{
			SubscriptionID:   row.SubscriptionID,
			SubscriptionData: data,
		})
	}

	return subscriptions, nil
}

func (r *PostgresRegistry) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query, args, _ := psql.Delete("push_subscriptions").
		Where("subscription_id = ?", id).
		ToSql()

	// Zero rows affected means the row was already gone, which is fine.
	if _, err := r.db.Pool.Exec(ctx, query, args...); err != nil {
		r.logger.Errorw("Error deleting subscription", "subscriptionId", id, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return nil
}
