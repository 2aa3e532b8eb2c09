package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdillard/todoapi/internal/dependencies/mocks"
	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/storage/memory"
	"github.com/mdillard/todoapi/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TokenSecret = []byte("test-signing-key")
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

// SignUp tests

func (s *ServiceSuite) TestSignUpSucceeds() {
	user, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	s.Equal(model.UserID(1), user.ID)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.Equal("Alice", user.Name)
	s.Equal(s.clock.Now(), user.CreatedAt)
}

func (s *ServiceSuite) TestSignUpHashesPassword() {
	user, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	s.NotEmpty(user.PasswordHash)
	s.NotEqual("password123", user.PasswordHash)
}

func (s *ServiceSuite) TestSignUpPersistsUser() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	stored, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", stored.Username)
}

func (s *ServiceSuite) TestSignUpFailsIfUsernameExists() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	_, err = s.service.SignUp(s.ctx, "alice", "different1", "alice2@example.com", "Alice Two")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestSignUpUsernamesAreCaseSensitive() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	user, err := s.service.SignUp(s.ctx, "Alice", "password123", "other@example.com", "Other Alice")
	s.Require().NoError(err)
	s.Equal("Alice", user.Username)
}

func (s *ServiceSuite) TestSignUpRejectsEmptyUsername() {
	_, err := s.service.SignUp(s.ctx, "", "password123", "alice@example.com", "Alice")
	s.assertValidationError(err, "username")
}

func (s *ServiceSuite) TestSignUpRejectsLongUsername() {
	long := strings.Repeat("a", 31)
	_, err := s.service.SignUp(s.ctx, long, "password123", "alice@example.com", "Alice")
	s.assertValidationError(err, "username")
}

func (s *ServiceSuite) TestSignUpAcceptsMaxLengthUsername() {
	max := strings.Repeat("a", 30)
	_, err := s.service.SignUp(s.ctx, max, "password123", "alice@example.com", "Alice")
	s.NoError(err)
}

func (s *ServiceSuite) TestSignUpRejectsShortPassword() {
	_, err := s.service.SignUp(s.ctx, "alice", "seven77", "alice@example.com", "Alice")
	s.assertValidationError(err, "password")
}

func (s *ServiceSuite) TestSignUpAcceptsMinLengthPassword() {
	_, err := s.service.SignUp(s.ctx, "alice", "eight888", "alice@example.com", "Alice")
	s.NoError(err)
}

func (s *ServiceSuite) TestSignUpRejectsBadEmail() {
	for _, email := range []string{"", "no-at-sign", "@nodomain", "nolocal@", "two@@ats"} {
		_, err := s.service.SignUp(s.ctx, "alice", "password123", email, "Alice")
		s.assertValidationError(err, "email")
	}
}

func (s *ServiceSuite) TestSignUpRejectsEmptyName() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "")
	s.assertValidationError(err, "name")
}

func (s *ServiceSuite) TestSignUpRejectsLongName() {
	long := strings.Repeat("n", 31)
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", long)
	s.assertValidationError(err, "name")
}

func (s *ServiceSuite) assertValidationError(err error, field string) {
	s.Require().Error(err)
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal(field, verr.Field)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(token.Value)
	s.Equal(s.clock.Now().Add(time.Hour), token.ExpiresAt)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUserAndWrongPasswordAreIndistinguishable() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)

	_, wrongPass := s.service.Login(s.ctx, "alice", "wrongpassword")
	_, unknown := s.service.Login(s.ctx, "nobody", "password123")

	s.Equal(wrongPass.Error(), unknown.Error())
	s.ErrorIs(wrongPass, ErrInvalidCredentials)
	s.ErrorIs(unknown, ErrInvalidCredentials)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	signedUp, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)
	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, token.Value)
	s.Require().NoError(err)
	s.Equal(signedUp.ID, user.ID)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestAuthenticateFailsWithGarbageToken() {
	_, err := s.service.Authenticate(s.ctx, "not-a-token")
	s.ErrorIs(err, ErrTokenMalformed)
}

func (s *ServiceSuite) TestAuthenticateFailsAfterExpiry() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)
	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour + time.Second)

	_, err = s.service.Authenticate(s.ctx, token.Value)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *ServiceSuite) TestAuthenticateFailsForDeletedUser() {
	_, err := s.service.SignUp(s.ctx, "alice", "password123", "alice@example.com", "Alice")
	s.Require().NoError(err)
	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	// A valid token whose subject no longer exists must look like a bad
	// token. Tokens are stateless, so a service over an empty store still
	// verifies the signature but cannot load the subject.
	fresh := New(memory.New(), s.clock, testConfig(), testutil.NopLogger())
	_, err = fresh.Authenticate(s.ctx, token.Value)
	s.ErrorIs(err, ErrTokenMalformed)
}
