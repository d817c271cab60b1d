package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/entanglion/server/internal/modules/auth/commands"
	"github.com/entanglion/server/internal/modules/auth/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Register_Creates_User_And_Issues_Token(t *testing.T) {
	// Arrange
	command := commands.RegisterCommand{
		Name:     "new user",
		Email:    fmt.Sprintf("%s@test.com", uuid.NewString()),
		Password: uuid.NewString(),
	}

	// Act
	response, err := sendRequest[commands.RegisterCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/registrations", fixture.baseURL),
		http.MethodPost,
		"",
		command,
		expectStatus(t, http.StatusCreated),
	)

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, command.Email, response.User.Email)

	var count int
	row := fixture.db.QueryRow("SELECT count(id) FROM users WHERE email = $1;", command.Email)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func Test_Register_Fails_When_Email_Already_Taken(t *testing.T) {
	// Arrange
	command := commands.RegisterCommand{
		Name:     "duplicate user",
		Email:    fmt.Sprintf("%s@test.com", uuid.NewString()),
		Password: uuid.NewString(),
	}

	_, err := sendRequest[commands.RegisterCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/registrations", fixture.baseURL),
		http.MethodPost,
		"",
		command,
		expectStatus(t, http.StatusCreated),
	)
	require.NoError(t, err)

	// Act & Assert
	_, _ = sendRequest[commands.RegisterCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/registrations", fixture.baseURL),
		http.MethodPost,
		"",
		command,
		expectStatus(t, http.StatusConflict),
	)

	var count int
	row := fixture.db.QueryRow("SELECT count(id) FROM users WHERE email = $1;", command.Email)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func Test_Login_Returns_Token_For_Valid_Credentials(t *testing.T) {
	// Arrange
	password := uuid.NewString()
	email := fmt.Sprintf("%s@test.com", uuid.NewString())

	register := commands.RegisterCommand{Name: "login user", Email: email, Password: password}
	_, err := sendRequest[commands.RegisterCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/registrations", fixture.baseURL),
		http.MethodPost,
		"",
		register,
		expectStatus(t, http.StatusCreated),
	)
	require.NoError(t, err)

	// Act
	login := commands.LoginCommand{Email: email, Password: password}
	response, err := sendRequest[commands.LoginCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/login", fixture.baseURL),
		http.MethodPost,
		"",
		login,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, email, response.User.Email)
}

func Test_Login_Fails_With_Wrong_Password(t *testing.T) {
	// Arrange
	registered := registerTestUser(t, "wrong password user")

	// Act & Assert
	login := commands.LoginCommand{Email: registered.User.Email, Password: uuid.NewString()}
	_, _ = sendRequest[commands.LoginCommand, commands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/login", fixture.baseURL),
		http.MethodPost,
		"",
		login,
		expectStatus(t, http.StatusUnauthorized),
	)
}

func Test_Me_Returns_The_Authenticated_User(t *testing.T) {
	// Arrange
	registered := registerTestUser(t, "current user")

	// Act
	user, err := sendRequest[struct{}, domain.User](
		fixture.client,
		fmt.Sprintf("%s/auth/me", fixture.baseURL),
		http.MethodGet,
		registered.Token,
		struct{}{},
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, user.ID)
	require.Equal(t, registered.User.Email, user.Email)
}

func Test_Me_Requires_A_Valid_Token(t *testing.T) {
	// Act & Assert
	_, _ = sendRequest[struct{}, domain.User](
		fixture.client,
		fmt.Sprintf("%s/auth/me", fixture.baseURL),
		http.MethodGet,
		"not-a-real-token",
		struct{}{},
		expectStatus(t, http.StatusUnauthorized),
	)
}
