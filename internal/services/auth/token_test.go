package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mdillard/todoapi/internal/model"
)

type TokenCodecSuite struct {
	suite.Suite
	codec *TokenCodec
	now   time.Time
}

func TestTokenCodecSuite(t *testing.T) {
	suite.Run(t, new(TokenCodecSuite))
}

func (s *TokenCodecSuite) SetupTest() {
	s.codec = NewTokenCodec([]byte("test-signing-key"), time.Hour, 0)
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Encode tests

func (s *TokenCodecSuite) TestEncodeReturnsExpiry() {
	token, expiresAt, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal(s.now.Add(time.Hour), expiresAt)
}

func (s *TokenCodecSuite) TestEncodeIsDeterministicForSameInputs() {
	a, _, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)
	b, _, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	s.Equal(a, b)
}

// Decode tests

func (s *TokenCodecSuite) TestDecodeRoundTrip() {
	token, _, err := s.codec.Encode(model.UserID(42), s.now)
	s.Require().NoError(err)

	userID, err := s.codec.Decode(token, s.now)
	s.Require().NoError(err)
	s.Equal(model.UserID(42), userID)
}

func (s *TokenCodecSuite) TestDecodeValidJustBeforeExpiry() {
	token, expiresAt, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	_, err = s.codec.Decode(token, expiresAt.Add(-time.Second))
	s.NoError(err)
}

func (s *TokenCodecSuite) TestDecodeExpiredJustAfterExpiry() {
	token, expiresAt, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	_, err = s.codec.Decode(token, expiresAt.Add(time.Second))
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *TokenCodecSuite) TestDecodeRejectsTamperedToken() {
	token, _, err := s.codec.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	// Flip the last character of the signature segment
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = s.codec.Decode(string(tampered), s.now)
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *TokenCodecSuite) TestDecodeRejectsWrongKey() {
	other := NewTokenCodec([]byte("a-different-key"), time.Hour, 0)
	token, _, err := other.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	_, err = s.codec.Decode(token, s.now)
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *TokenCodecSuite) TestDecodeRejectsGarbage() {
	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := s.codec.Decode(input, s.now)
		s.ErrorIs(err, ErrTokenMalformed)
	}
}

func (s *TokenCodecSuite) TestDecodeRejectsFutureIssuedAt() {
	// Minted two minutes ahead of the validating clock; with zero leeway
	// that reads as malformed, not expired
	token, _, err := s.codec.Encode(model.UserID(1), s.now.Add(2*time.Minute))
	s.Require().NoError(err)

	_, err = s.codec.Decode(token, s.now)
	s.ErrorIs(err, ErrTokenMalformed)
}

func (s *TokenCodecSuite) TestDecodeLeewayAbsorbsClockSkew() {
	skewed := NewTokenCodec([]byte("test-signing-key"), time.Hour, 5*time.Minute)

	token, _, err := skewed.Encode(model.UserID(1), s.now.Add(2*time.Minute))
	s.Require().NoError(err)

	userID, err := skewed.Decode(token, s.now)
	s.Require().NoError(err)
	s.Equal(model.UserID(1), userID)
}

func (s *TokenCodecSuite) TestDecodeLeewayDoesNotExtendExpiry() {
	skewed := NewTokenCodec([]byte("test-signing-key"), time.Hour, 5*time.Minute)

	token, expiresAt, err := skewed.Encode(model.UserID(1), s.now)
	s.Require().NoError(err)

	_, err = skewed.Decode(token, expiresAt.Add(time.Second))
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *TokenCodecSuite) TestDecodeFutureIssuedAtBeyondLeeway() {
	skewed := NewTokenCodec([]byte("test-signing-key"), time.Hour, 5*time.Minute)

	token, _, err := skewed.Encode(model.UserID(1), s.now.Add(10*time.Minute))
	s.Require().NoError(err)

	_, err = skewed.Decode(token, s.now)
	s.ErrorIs(err, ErrTokenMalformed)
}
