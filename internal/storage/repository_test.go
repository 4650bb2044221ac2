package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fintrack/internal/core"
)

// RepositoryTestSuite runs every test against a fresh in-memory database.
type RepositoryTestSuite struct {
	suite.Suite
	repo *SQLiteRepository
	ctx  context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	repo, err := NewSQLiteRepository(":memory:")
	require.NoError(suite.T(), err, "failed to create test repository")
	suite.repo = repo
	suite.ctx = context.Background()
}

func (suite *RepositoryTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *RepositoryTestSuite) createUser(name, email string) core.User {
	user, err := suite.repo.CreateUser(suite.ctx, name, email, "hashed-pw")
	require.NoError(suite.T(), err, "failed to create user %s", email)
	return user
}

func (suite *RepositoryTestSuite) TestCreateAndGetUser() {
	user := suite.createUser("Alice", "alice@example.com")

	assert.NotEmpty(suite.T(), user.ID)
	assert.Equal(suite.T(), "alice@example.com", user.Email)
	assert.False(suite.T(), user.CreatedAt.IsZero())

	found, err := suite.repo.GetUserByEmail(suite.ctx, "alice@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
	assert.Equal(suite.T(), "hashed-pw", found.PasswordHash)

	byID, err := suite.repo.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.Email, byID.Email)
}

func (suite *RepositoryTestSuite) TestDuplicateEmailRejected() {
	suite.createUser("Alice", "alice@example.com")

	_, err := suite.repo.CreateUser(suite.ctx, "Other", "alice@example.com", "other-hash")
	assert.ErrorIs(suite.T(), err, core.ErrDuplicateEmail)

	// Uniqueness is case-insensitive.
	_, err = suite.repo.CreateUser(suite.ctx, "Other", "ALICE@example.com", "other-hash")
	assert.ErrorIs(suite.T(), err, core.ErrDuplicateEmail)
}

func (suite *RepositoryTestSuite) TestGetUserNotFound() {
	_, err := suite.repo.GetUserByEmail(suite.ctx, "ghost@example.com")
	assert.ErrorIs(suite.T(), err, core.ErrNotFound)

	_, err = suite.repo.GetUserByID(suite.ctx, "no-such-id")
	assert.ErrorIs(suite.T(), err, core.ErrNotFound)
}

func (suite *RepositoryTestSuite) TestCreateAndListExpenses() {
	user := suite.createUser("Alice", "alice@example.com")

	created, err := suite.repo.CreateExpense(suite.ctx, core.Expense{
		Title:  "Coffee",
		Amount: 3.45,
		UserID: user.ID,
	})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), created.ID)

	expenses, err := suite.repo.ListExpenses(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), expenses, 1)
	assert.Equal(suite.T(), "Coffee", expenses[0].Title)
	assert.Equal(suite.T(), 3.45, expenses[0].Amount, "amount must round-trip unchanged")
}

func (suite *RepositoryTestSuite) TestListExpensesOwnerScoped() {
	alice := suite.createUser("Alice", "alice@example.com")
	bob := suite.createUser("Bob", "bob@example.com")

	_, err := suite.repo.CreateExpense(suite.ctx, core.Expense{Title: "Rent", Amount: 900, UserID: alice.ID})
	require.NoError(suite.T(), err)

	bobExpenses, err := suite.repo.ListExpenses(suite.ctx, bob.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), bobExpenses, "a user must never see another user's records")
	assert.NotNil(suite.T(), bobExpenses, "empty list, not nil")
}

func (suite *RepositoryTestSuite) TestDeleteExpenseScopedToOwner() {
	alice := suite.createUser("Alice", "alice@example.com")
	bob := suite.createUser("Bob", "bob@example.com")

	created, err := suite.repo.CreateExpense(suite.ctx, core.Expense{Title: "Coffee", Amount: 3, UserID: alice.ID})
	require.NoError(suite.T(), err)

	// Bob deleting Alice's record is a silent no-op.
	err = suite.repo.DeleteExpense(suite.ctx, created.ID, bob.ID)
	require.NoError(suite.T(), err)

	expenses, err := suite.repo.ListExpenses(suite.ctx, alice.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), expenses, 1, "record must survive a foreign delete")

	// The owner's delete actually removes it.
	err = suite.repo.DeleteExpense(suite.ctx, created.ID, alice.ID)
	require.NoError(suite.T(), err)

	expenses, err = suite.repo.ListExpenses(suite.ctx, alice.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), expenses)
}

func (suite *RepositoryTestSuite) TestCreateAndListSubscriptions() {
	user := suite.createUser("Alice", "alice@example.com")
	renewal := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	created, err := suite.repo.CreateSubscription(suite.ctx, core.Subscription{
		ServiceName: "Netflix",
		Amount:      9.99,
		RenewalDate: renewal,
		UserID:      user.ID,
	})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), created.ID)

	subs, err := suite.repo.ListSubscriptions(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), subs, 1)
	assert.Equal(suite.T(), "Netflix", subs[0].ServiceName)
	assert.Equal(suite.T(), 9.99, subs[0].Amount)
	assert.True(suite.T(), renewal.Equal(subs[0].RenewalDate), "renewal date must round-trip")
}

func (suite *RepositoryTestSuite) TestDeleteSubscriptionScopedToOwner() {
	alice := suite.createUser("Alice", "alice@example.com")
	bob := suite.createUser("Bob", "bob@example.com")

	created, err := suite.repo.CreateSubscription(suite.ctx, core.Subscription{
		ServiceName: "Spotify",
		Amount:      4.99,
		RenewalDate: time.Now().AddDate(0, 1, 0),
		UserID:      alice.ID,
	})
	require.NoError(suite.T(), err)

	err = suite.repo.DeleteSubscription(suite.ctx, created.ID, bob.ID)
	require.NoError(suite.T(), err)

	subs, err := suite.repo.ListSubscriptions(suite.ctx, alice.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), subs, 1)

	err = suite.repo.DeleteSubscription(suite.ctx, created.ID, alice.ID)
	require.NoError(suite.T(), err)

	subs, err = suite.repo.ListSubscriptions(suite.ctx, alice.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), subs)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestNewSQLiteRepositoryCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "app.db")

	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err, "repository must create the database directory")
}
