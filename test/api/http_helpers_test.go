package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	authcommands "github.com/entanglion/server/internal/modules/auth/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type responseAssertion func(*http.Response)

func expectStatus(t *testing.T, status int) responseAssertion {
	t.Helper()
	return func(resp *http.Response) {
		require.Equal(t, status, resp.StatusCode)
	}
}

func sendRequest[TReq any, TResp any](
	c *http.Client,
	url string,
	method string,
	token string,
	req TReq,
	opts ...responseAssertion,
) (TResp, error) {
	var resp TResp

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}

	httpReq, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return resp, err
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.Do(httpReq)
	if err != nil {
		return resp, err
	}

	for _, opt := range opts {
		opt(httpResp)
	}

	if httpResp.ContentLength > 0 {
		defer func() {
			_ = httpResp.Body.Close()
		}()

		responsePayload, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return resp, err
		}

		if err := json.Unmarshal(responsePayload, &resp); err != nil {
			return resp, err
		}
	}

	return resp, err
}

// registerTestUser creates a fresh user through the public registration
// endpoint and returns the authenticated response for it.
func registerTestUser(t *testing.T, name string) authcommands.AuthResponse {
	t.Helper()

	command := authcommands.RegisterCommand{
		Name:     name,
		Email:    fmt.Sprintf("%s@test.com", uuid.NewString()),
		Password: uuid.NewString(),
	}

	response, err := sendRequest[authcommands.RegisterCommand, authcommands.AuthResponse](
		fixture.client,
		fmt.Sprintf("%s/auth/registrations", fixture.baseURL),
		http.MethodPost,
		"",
		command,
		expectStatus(t, http.StatusCreated),
	)
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	return response
}
