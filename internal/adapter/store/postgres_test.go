package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewPostgresStoreFromDB(db)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

var userColumns = []string{"id", "username", "email", "hashed_password", "created_at"}

func TestCreateUser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (id, username, email, hashed_password, created_at)")).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "$2a$digest", fixedNow).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "alice", "alice@example.com", "$2a$digest", fixedNow))

	u, err := s.CreateUser(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", HashedPassword: "$2a$digest",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, fixedNow, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolationIsDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := s.CreateUser(context.Background(), &domain.User{Username: "bob", Email: "taken@example.com"})
	assert.ErrorIs(t, err, port.ErrDuplicate)
}

func TestCreateUser_OtherError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errors.New("connection reset"))

	_, err := s.CreateUser(context.Background(), &domain.User{Username: "bob"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, port.ErrDuplicate)
	assert.Contains(t, err.Error(), "create user")
}

func TestGetUserByUsernameAndEmail(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "alice", "a@x.io", "h", fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@x.io").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "alice", "a@x.io", "h", fixedNow))

	u, err := s.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)

	u, err = s.GetUserByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, port.ErrUserNotFound)
}

var profileCols = []string{
	"id", "user_id", "age", "gender", "weight", "height",
	"dietary_preferences", "existing_conditions", "created_at", "updated_at",
}

func TestGetProfile(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM health_profiles WHERE user_id = $1")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow("p-1", "u-1", 30, "female", 60.5, 165.0, "{vegetarian,\"gluten free\"}", "{}", fixedNow, fixedNow))

	p, err := s.GetProfile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, 60.5, p.Weight)
	assert.Equal(t, []string{"vegetarian", "gluten free"}, p.DietaryPreferences)
	assert.Equal(t, []string{}, p.ExistingConditions)
}

func TestGetProfile_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM health_profiles")).WillReturnError(sql.ErrNoRows)

	_, err := s.GetProfile(context.Background(), "u-1")
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
}

func TestUpsertProfile(t *testing.T) {
	s, mock := newMockStore(t)
	created := fixedNow.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE SET")).
		WithArgs(sqlmock.AnyArg(), "u-1", 31, "male", 80.0, 180.0, sqlmock.AnyArg(), sqlmock.AnyArg(), fixedNow).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow("p-1", "u-1", 31, "male", 80.0, 180.0, "{}", "{\"knee pain\"}", created, fixedNow))

	p, err := s.UpsertProfile(context.Background(), &domain.HealthProfile{
		UserID: "u-1", Age: 31, Gender: "male", Weight: 80, Height: 180,
		ExistingConditions: []string{"knee pain"},
	})
	require.NoError(t, err)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)
	assert.Equal(t, []string{"knee pain"}, p.ExistingConditions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAndListAudit(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs("u-1", domain.AuditActionHTTPRequest, "api", "/api/health/plan", `{"status":200}`, "10.0.0.1", "curl").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.WriteAudit(context.Background(), domain.AuditLog{
		UserID: "u-1", Action: domain.AuditActionHTTPRequest, Resource: "api",
		ResourceID: "/api/health/plan", Details: `{"status":200}`, IP: "10.0.0.1", UserAgent: "curl",
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE user_id = $1 AND action = $2 ORDER BY created_at DESC LIMIT $3")).
		WithArgs("u-1", domain.AuditActionHTTPRequest, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "details", "ip", "user_agent", "created_at"}).
			AddRow(int64(7), "u-1", domain.AuditActionHTTPRequest, "api", "/api/health/plan", `{"status":200}`, "10.0.0.1", "curl", fixedNow))

	logs, err := s.ListAuditLogs(context.Background(), "u-1", 10, domain.AuditActionHTTPRequest)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "7", logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogs_NoFilters(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "details", "ip", "user_agent", "created_at"}))

	logs, err := s.ListAuditLogs(context.Background(), "u-1", 0, "")
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.NotNil(t, logs)
}

func TestListTables(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("audit_logs").AddRow("health_profiles").AddRow("users"))

	tables, err := s.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"audit_logs", "health_profiles", "users"}, tables)
}

func TestMigrate(t *testing.T) {
	s, _ := newMockStore(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, s.Migrate(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("dirty") }
	assert.ErrorContains(t, s.Migrate(context.Background()), "run migrations")
}
