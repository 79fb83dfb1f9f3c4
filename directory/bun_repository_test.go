package directory

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.CreateUser(ctx, types.User{
		Username:     "ada",
		Email:        " Ada@Example.com ",
		PasswordHash: "hash",
		Name:         "Ada Lovelace",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, types.RoleUser, created.Role)
	require.Equal(t, types.StatusActive, created.Status)
	require.Equal(t, "ada@example.com", created.Email)
	require.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "ada", byID.Username)
	require.Equal(t, 0, byID.ContactCount)

	byName, err := repo.FindUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.FindUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	missing, err := repo.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, missing)

	missing, err = repo.FindUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_ContactCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	user := mustCreateUser(t, repo, "grace", types.RoleUser)
	for _, phone := range []string{"555-0001", "555-0002"} {
		_, err := repo.db.Exec(
			"INSERT INTO contacts (id, user_id, name, phone) VALUES (?, ?, ?, ?)",
			uuid.NewString(), user.ID.String(), "friend", phone,
		)
		require.NoError(t, err)
	}

	loaded, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.ContactCount)

	users, err := repo.ListUsers(ctx, types.UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, 2, users[0].ContactCount)
}

func TestRepository_UpdateUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	user := mustCreateUser(t, repo, "linus", types.RoleUser)
	actor := uuid.New()
	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	user.Name = "Linus T"
	user.Status = types.StatusDeactivated
	user.DeactivatedAt = &at
	user.DeactivatedBy = actor
	updated, err := repo.UpdateUser(ctx, *user)
	require.NoError(t, err)
	require.Equal(t, "Linus T", updated.Name)

	loaded, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusDeactivated, loaded.Status)
	require.Equal(t, actor, loaded.DeactivatedBy)
	require.NotNil(t, loaded.DeactivatedAt)

	_, err = repo.UpdateUser(ctx, types.User{})
	require.ErrorIs(t, err, types.ErrUserIDRequired)
}

func TestRepository_PageUsersAndStats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mustCreateUser(t, repo, "root", types.RoleAdmin)
	for _, name := range []string{"u1", "u2", "u3", "u4"} {
		mustCreateUser(t, repo, name, types.RoleUser)
	}

	page, err := repo.PageUsers(ctx, types.UserFilter{}, types.PageSpec{Index: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 5, page.TotalRecords)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, "root", page.Items[0].Username)

	admins, err := repo.PageUsers(ctx, types.UserFilter{Role: types.RoleAdmin}, types.PageSpec{Size: 10})
	require.NoError(t, err)
	require.Len(t, admins.Items, 1)
	require.Equal(t, 1, admins.TotalRecords)

	byName, err := repo.PageUsers(ctx, types.UserFilter{}, types.PageSpec{
		Size: 10,
		Sort: &types.SortSpec{Field: "username", Desc: true},
	})
	require.NoError(t, err)
	require.Equal(t, "u4", byName.Items[0].Username)

	listed, err := repo.ListUsers(ctx, types.UserFilter{Role: types.RoleUser})
	require.NoError(t, err)
	require.Len(t, listed, 4)

	stats, err := repo.UserStats(ctx)
	require.NoError(t, err)
	require.Equal(t, types.UserStats{TotalUsers: 5, AdminUsers: 1, NonAdminUsers: 4}, stats)
}

func TestRepository_DeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	user := mustCreateUser(t, repo, "temp", types.RoleUser)
	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	loaded, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)

	err = repo.DeleteUser(ctx, user.ID)
	require.True(t, errors.Is(err, types.ErrUserNotFound))
}

func TestDirectory_MustGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	dir := NewDirectory(repo)

	user := mustCreateUser(t, repo, "known", types.RoleAdmin)

	ok, err := dir.Exists(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)

	found, err := dir.MustGet(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found.IsAdmin())

	_, err = dir.MustGet(ctx, uuid.New())
	require.ErrorIs(t, err, types.ErrUserNotFound)

	ok, err = dir.Exists(ctx, uuid.Nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func mustCreateUser(t *testing.T, repo *Repository, username string, role types.Role) *types.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), types.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Name:         username,
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db := newTestDB(t)
	applyDDL(t, db)
	repo, err := NewRepository(RepositoryConfig{
		DB:    db,
		Clock: &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return repo
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB) {
	for _, path := range []string{
		"../data/sql/migrations/sqlite/00001_users.up.sql",
		"../data/sql/migrations/sqlite/00002_contacts.up.sql",
	} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		for _, stmt := range splitStatements(string(content)) {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
