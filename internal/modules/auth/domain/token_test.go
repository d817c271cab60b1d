package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Issued_Token_Verifies_To_The_Same_User(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	userID := uuid.New()

	// Act
	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	verifiedID, err := issuer.Verify(token)

	// Assert
	require.NoError(t, err)
	require.Equal(t, userID, verifiedID)
}

func Test_Token_Signed_With_Different_Secret_Is_Rejected(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	other := NewTokenIssuer([]byte("other-secret"), time.Hour)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	// Act
	_, err = issuer.Verify(token)

	// Assert
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Expired_Token_Is_Rejected(t *testing.T) {
	// Arrange
	issuedAt := time.Now().Add(-48 * time.Hour)

	past := NewTokenIssuer(
		[]byte("test-secret"),
		24*time.Hour,
		WithTokenClock(func() time.Time { return issuedAt }),
	)

	token, err := past.Issue(uuid.New())
	require.NoError(t, err)

	present := NewTokenIssuer([]byte("test-secret"), 24*time.Hour)

	// Act
	_, err = present.Verify(token)

	// Assert
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Garbage_Token_Is_Rejected(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	// Act
	_, err := issuer.Verify("not-a-token")

	// Assert
	require.ErrorIs(t, err, ErrInvalidToken)
}
