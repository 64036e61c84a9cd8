package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/arturoeanton/health-planner/internal/adapter/store/migrations"
	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an already opened *sql.DB.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// gooseUp is swapped out in tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded goose migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUp(ctx, s.db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// ListTables returns the user tables of the current schema.
func (s *PostgresStore) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = current_schema() ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// --- Users ---

// CreateUser inserts a new user. A username or email collision returns an
// error matching port.ErrDuplicate.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (id, username, email, hashed_password, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, username, email, hashed_password, created_at`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query,
		uuid.NewString(), u.Username, u.Email, u.HashedPassword, s.now().UTC(),
	).Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, &port.AuthError{
				Kind:    port.AuthDuplicate,
				Message: "username or email already registered",
				Err:     err,
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "username", username)
}

// GetUserByEmail retrieves a user by email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "email", email)
}

// column is never caller-supplied.
func (s *PostgresStore) getUser(ctx context.Context, column, value string) (*domain.User, error) {
	query := `SELECT id, username, email, hashed_password, created_at
	          FROM users WHERE ` + column + ` = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &user, nil
}

// --- Health Profiles ---

const profileColumns = `id, user_id, age, gender, weight, height,
	dietary_preferences, existing_conditions, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.HealthProfile, error) {
	var p domain.HealthProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Age, &p.Gender, &p.Weight, &p.Height,
		pq.Array(&p.DietaryPreferences), pq.Array(&p.ExistingConditions),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.DietaryPreferences == nil {
		p.DietaryPreferences = []string{}
	}
	if p.ExistingConditions == nil {
		p.ExistingConditions = []string{}
	}
	return &p, nil
}

// GetProfile returns the user's health profile or port.ErrProfileNotFound.
func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM health_profiles WHERE user_id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpsertProfile inserts the profile or updates it in place by user_id.
// created_at is kept from the first insert.
func (s *PostgresStore) UpsertProfile(ctx context.Context, p *domain.HealthProfile) (*domain.HealthProfile, error) {
	query := `INSERT INTO health_profiles (id, user_id, age, gender, weight, height,
	              dietary_preferences, existing_conditions, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          ON CONFLICT (user_id) DO UPDATE SET
	              age = EXCLUDED.age,
	              gender = EXCLUDED.gender,
	              weight = EXCLUDED.weight,
	              height = EXCLUDED.height,
	              dietary_preferences = EXCLUDED.dietary_preferences,
	              existing_conditions = EXCLUDED.existing_conditions,
	              updated_at = EXCLUDED.updated_at
	          RETURNING ` + profileColumns

	now := s.now().UTC()
	saved, err := scanProfile(s.db.QueryRowContext(ctx, query,
		uuid.NewString(), p.UserID, p.Age, p.Gender, p.Weight, p.Height,
		pq.Array(nonNil(p.DietaryPreferences)), pq.Array(nonNil(p.ExistingConditions)), now,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return saved, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// --- Audit Logs ---

// WriteAudit implements middleware.AuditWriter.
func (s *PostgresStore) WriteAudit(ctx context.Context, entry domain.AuditLog) error {
	query := `INSERT INTO audit_logs (user_id, action, resource, resource_id, details, ip, user_agent)
	          VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		entry.UserID, entry.Action, entry.Resource, entry.ResourceID, entry.Details, entry.IP, entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("write audit: %w", err)
	}
	return nil
}

// ListAuditLogs returns the most recent audit logs of a user, optionally
// filtered by action.
func (s *PostgresStore) ListAuditLogs(ctx context.Context, userID string, limit int, action string) ([]domain.AuditLog, error) {
	query := `SELECT id, user_id, action, resource, resource_id, details, ip, user_agent, created_at
	          FROM audit_logs WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2

	if action != "" {
		query += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, action)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Action, &l.Resource, &l.ResourceID,
			&l.Details, &l.IP, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
