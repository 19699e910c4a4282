// Package testutils provides an HTTP test harness backed by the in-memory store.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/amirasaad/bankledger/infra/memory"
	"github.com/amirasaad/bankledger/pkg/app"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/webapi"
	"github.com/amirasaad/bankledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite drives the full fiber app against a fresh in-memory store per test.
type E2ETestSuite struct {
	suite.Suite
	Cfg *config.App
	App *app.App
	Web *fiber.App
}

// TestConfig returns defaults suitable for handler tests: no rate limit, quiet logs.
func TestConfig() *config.App {
	cfg := config.Defaults()
	cfg.Env = "test"
	cfg.RateLimit.MaxRequests = 0
	return cfg
}

// NewTestApp builds the HTTP app over a new in-memory store.
func NewTestApp(cfg *config.App) (*fiber.App, *app.App) {
	deps := &app.Deps{
		Uow:    memory.NewUoW(memory.NewStore()),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a := app.New(deps, cfg)
	log.SetOutput(io.Discard)
	return webapi.SetupApp(a), a
}

// SetupTest gives every test its own store.
func (s *E2ETestSuite) SetupTest() {
	if s.Cfg == nil {
		s.Cfg = TestConfig()
	}
	s.Web, s.App = NewTestApp(s.Cfg)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body string) *http.Response {
	resp, err := MakeRequestWithApp(s.Web, method, path, body)
	s.Require().NoError(err)
	return resp
}

// MakeRequestWithApp sends a request through app.Test.
func MakeRequestWithApp(app *fiber.App, method, path, body string) (*http.Response, error) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return app.Test(req, -1)
}

// Decode reads a success envelope whose data is decoded into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	var raw struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&raw))
	if out != nil && len(raw.Data) > 0 {
		s.Require().NoError(json.Unmarshal(raw.Data, out))
	}
	return common.Response{Status: raw.Status, Message: raw.Message}
}

// Problem reads an RFC 9457 problem response.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// CreateCustomer registers a customer over HTTP and returns its id.
func (s *E2ETestSuite) CreateCustomer(name string) uint64 {
	resp := s.MakeRequest(fiber.MethodPost, "/customers", fmt.Sprintf(`{"name":%q}`, name))
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out struct {
		ID uint64 `json:"id"`
	}
	s.Decode(resp, &out)
	return out.ID
}

// OpenAccount opens an account over HTTP with the given initial deposit.
func (s *E2ETestSuite) OpenAccount(customerID uint64, initial string) uint64 {
	body := fmt.Sprintf(`{"customer_id":%d,"initial_deposit":%q}`, customerID, initial)
	resp := s.MakeRequest(fiber.MethodPost, "/accounts", body)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out struct {
		ID uint64 `json:"id"`
	}
	s.Decode(resp, &out)
	return out.ID
}

// Balance fetches the account summary and returns the balance string.
func (s *E2ETestSuite) Balance(accountID uint64) string {
	resp := s.MakeRequest(fiber.MethodGet, fmt.Sprintf("/accounts/%d", accountID), "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out struct {
		Account struct {
			Balance string `json:"balance"`
		} `json:"account"`
	}
	s.Decode(resp, &out)
	return out.Account.Balance
}
