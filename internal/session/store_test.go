package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite provides a test suite for the session cache
type StoreTestSuite struct {
	suite.Suite
	store *Store
}

// SetupTest runs before each test
func (suite *StoreTestSuite) SetupTest() {
	store, err := Open(":memory:")
	require.NoError(suite.T(), err, "failed to open test cache")
	suite.store = store
}

// TearDownTest runs after each test
func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *StoreTestSuite) TestSaveSessionRoundTrip() {
	err := suite.store.SaveSession("tok-123", "alice@ssct.edu.ph", []byte(`{"id":7,"email":"alice@ssct.edu.ph","name":"Alice"}`))
	require.NoError(suite.T(), err)

	token, ok := suite.store.Token()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "tok-123", token)

	email, ok := suite.store.Email()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "alice@ssct.edu.ph", email)

	user, ok := suite.store.User()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "7", string(user.ID))
	assert.Equal(suite.T(), "Alice", user.Name)
}

func (suite *StoreTestSuite) TestClearTokenKeepsEmailAndUser() {
	err := suite.store.SaveSession("tok-123", "alice@ssct.edu.ph", []byte(`{"id":7,"name":"Alice"}`))
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.store.ClearToken())

	_, ok := suite.store.Token()
	assert.False(suite.T(), ok, "token should be gone after logout")

	email, ok := suite.store.Email()
	require.True(suite.T(), ok, "email should survive logout")
	assert.Equal(suite.T(), "alice@ssct.edu.ph", email)

	user, ok := suite.store.User()
	require.True(suite.T(), ok, "user should survive logout")
	assert.Equal(suite.T(), "Alice", user.Name)
}

func (suite *StoreTestSuite) TestDisplayEmailFallsBackToPlaceholder() {
	assert.Equal(suite.T(), DefaultEmail, suite.store.DisplayEmail())

	_, ok := suite.store.Email()
	assert.False(suite.T(), ok, "raw email must stay absent, the placeholder is display-only")

	require.NoError(suite.T(), suite.store.SaveSession("tok", "bob@ssct.edu.ph", nil))
	assert.Equal(suite.T(), "bob@ssct.edu.ph", suite.store.DisplayEmail())
}

func (suite *StoreTestSuite) TestCorruptUserReadsAsAbsent() {
	require.NoError(suite.T(), suite.store.SaveSession("tok", "", []byte(`{not json`)))

	user, ok := suite.store.User()
	assert.False(suite.T(), ok)
	assert.Nil(suite.T(), user)
}

func (suite *StoreTestSuite) TestSaveSessionSkipsMissingFields() {
	require.NoError(suite.T(), suite.store.SaveSession("tok-1", "alice@ssct.edu.ph", []byte(`{"name":"Alice"}`)))

	// A later login without email/user payload must not wipe the cache.
	require.NoError(suite.T(), suite.store.SaveSession("tok-2", "", nil))

	token, ok := suite.store.Token()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "tok-2", token)

	email, ok := suite.store.Email()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "alice@ssct.edu.ph", email)

	user, ok := suite.store.User()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "Alice", user.Name)
}

func (suite *StoreTestSuite) TestBorrowerID() {
	_, ok := suite.store.BorrowerID()
	assert.False(suite.T(), ok)

	require.NoError(suite.T(), suite.store.SetBorrowerID("2021-00123"))

	id, ok := suite.store.BorrowerID()
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "2021-00123", id)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
