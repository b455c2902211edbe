// Package api implements the HTTP client for the messagely server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/messagely/messagely/internal/common"
	"github.com/messagely/messagely/internal/server/models"
)

// Client talks JSON over HTTP to the server and keeps the session token
// from the last successful login or registration.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the current session token, empty when not logged in.
func (c *Client) Token() string { return c.token }

type credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type tokenReply struct {
	Token string `json:"token"`
}

type errorReply struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Login authenticates and stores the issued session token.
func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	var reply tokenReply
	err := c.do(ctx, http.MethodPost, "/login",
		credentials{Username: username, Password: string(password)}, &reply)
	if err != nil {
		return err
	}
	c.token = reply.Token
	return nil
}

// Register creates an account and stores the issued session token, so a
// fresh registration is already logged in.
func (c *Client) Register(ctx context.Context, username string, password []byte, firstName, lastName, phone string) error {
	var reply tokenReply
	err := c.do(ctx, http.MethodPost, "/register", credentials{
		Username:  username,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}, &reply)
	if err != nil {
		return err
	}
	c.token = reply.Token
	return nil
}

// Users lists all users' public records.
func (c *Client) Users(ctx context.Context) ([]*models.User, error) {
	var reply struct {
		Users []*models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", nil, &reply); err != nil {
		return nil, err
	}
	return reply.Users, nil
}

// User fetches one user's public record.
func (c *Client) User(ctx context.Context, username string) (*models.User, error) {
	var reply struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+username, nil, &reply); err != nil {
		return nil, err
	}
	return reply.User, nil
}

// MessagesFrom fetches the user's outgoing thread.
func (c *Client) MessagesFrom(ctx context.Context, username string) ([]*models.Message, error) {
	return c.messages(ctx, "/users/"+username+"/from")
}

// MessagesTo fetches the user's incoming thread.
func (c *Client) MessagesTo(ctx context.Context, username string) ([]*models.Message, error) {
	return c.messages(ctx, "/users/"+username+"/to")
}

func (c *Client) messages(ctx context.Context, path string) ([]*models.Message, error) {
	var reply struct {
		Messages []*models.Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func errorFromResponse(resp *http.Response) error {
	var reply errorReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil || reply.Error == "" {
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, reply.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, reply.Error)
	default:
		return fmt.Errorf("server error: %s", reply.Error)
	}
}
