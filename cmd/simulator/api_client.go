package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

var registered atomic.Int64

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type Hero struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Favorite struct {
	ID            uint   `json:"id"`
	HeroID        uint   `json:"heroId"`
	PriorityLabel string `json:"priorityLabel"`
}

type Draft struct {
	ID       uint   `json:"id"`
	TeamName string `json:"teamName"`
	HeroIDs  []uint `json:"heroIds"`
}

type Review struct {
	ID     uint `json:"id"`
	HeroID uint `json:"heroId"`
	Rating int  `json:"rating"`
}

// StatusError is returned when the backend answers with an unexpected status
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed (status %d): %s", e.Op, e.Status, e.Body)
}

// RegisterUser creates a new user account with a unique display name
func (c *APIClient) RegisterUser(baseName string) (*User, string, error) {
	displayName := fmt.Sprintf("%s_%d_%d", baseName, time.Now().UnixNano()%100000, registered.Add(1))

	body := map[string]string{
		"displayName": displayName,
		"password":    "testpassword123",
	}

	var result AuthResponse
	if err := c.call("register", http.MethodPost, "/auth/register", body, "", http.StatusOK, &result); err != nil {
		return nil, "", err
	}
	return &result.User, result.AccessToken, nil
}

// ListHeroes fetches the public catalog
func (c *APIClient) ListHeroes() ([]Hero, error) {
	var result struct {
		Heroes []Hero `json:"heroes"`
	}
	if err := c.call("list heroes", http.MethodGet, "/heroes", nil, "", http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Heroes, nil
}

// CreateHero adds a hero; only admins succeed
func (c *APIClient) CreateHero(token, name, role string) (*Hero, error) {
	body := map[string]interface{}{"name": name, "role": role}
	var hero Hero
	if err := c.call("create hero", http.MethodPost, "/heroes", body, token, http.StatusCreated, &hero); err != nil {
		return nil, err
	}
	return &hero, nil
}

// AddFavorite bookmarks a hero for the caller
func (c *APIClient) AddFavorite(token string, heroID uint, priority string) (*Favorite, error) {
	body := map[string]interface{}{"heroId": heroID, "priority": priority}
	var fav Favorite
	if err := c.call("add favorite", http.MethodPost, "/favorites", body, token, http.StatusCreated, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

// UpdateFavorite changes a favorite's notes
func (c *APIClient) UpdateFavorite(token string, id uint, notes string) error {
	body := map[string]string{"notes": notes}
	return c.call("update favorite", http.MethodPut, fmt.Sprintf("/favorites/%d", id), body, token, http.StatusOK, nil)
}

// DeleteFavorite removes a favorite
func (c *APIClient) DeleteFavorite(token string, id uint) error {
	return c.call("delete favorite", http.MethodDelete, fmt.Sprintf("/favorites/%d", id), nil, token, http.StatusNoContent, nil)
}

// CreateDraft saves a five-hero team
func (c *APIClient) CreateDraft(token, teamName string, heroIDs []uint) (*Draft, error) {
	body := map[string]interface{}{"teamName": teamName, "heroIds": heroIDs}
	var draft Draft
	if err := c.call("create draft", http.MethodPost, "/drafts", body, token, http.StatusCreated, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetDraft reads a single draft
func (c *APIClient) GetDraft(token string, id uint) (*Draft, error) {
	var draft Draft
	if err := c.call("get draft", http.MethodGet, fmt.Sprintf("/drafts/%d", id), nil, token, http.StatusOK, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DeleteDraft removes a draft
func (c *APIClient) DeleteDraft(token string, id uint) error {
	return c.call("delete draft", http.MethodDelete, fmt.Sprintf("/drafts/%d", id), nil, token, http.StatusNoContent, nil)
}

// PostReview rates a hero
func (c *APIClient) PostReview(token string, heroID uint, rating int, comment string) (*Review, error) {
	body := map[string]interface{}{"heroId": heroID, "rating": rating, "comment": comment}
	var review Review
	if err := c.call("post review", http.MethodPost, "/reviews", body, token, http.StatusCreated, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview changes a review's rating
func (c *APIClient) UpdateReview(token string, id uint, rating int) error {
	body := map[string]int{"rating": rating}
	return c.call("update review", http.MethodPut, fmt.Sprintf("/reviews/%d", id), body, token, http.StatusOK, nil)
}

// HTTP helpers

// call sends the request and decodes into out when the status matches want.
// Any other status becomes a *StatusError.
func (c *APIClient) call(op, method, path string, body interface{}, token string, want int, out interface{}) error {
	resp, err := c.do(method, path, body, token)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(bytes.TrimSpace(bodyBytes))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

func (c *APIClient) do(method, path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
