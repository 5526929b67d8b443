package e2e

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"batepapo/api"
	"batepapo/repositories"
	"batepapo/services"
)

// BaseHTTPSuite drives the chat HTTP surface end to end. By default it
// boots the full stack in process on a temporary Badger directory;
// E2E_BASE_URL switches it to an externally running server.
type BaseHTTPSuite struct {
	suite.Suite
	Config Config

	baseURL string
	server  *httptest.Server
	db      *badger.DB
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

func (s *BaseHTTPSuite) SetupTest() {
	if s.Config.BaseURL != "" {
		s.baseURL = s.Config.BaseURL
		return
	}

	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.db = db

	messages := repositories.NewMessageRepository(db, slog.Default())
	participants := repositories.NewParticipantRepository(db, slog.Default(), messages)
	router := api.NewRouter(slog.Default(), services.NewChatService(participants, messages))

	s.server = httptest.NewServer(router)
	s.baseURL = s.server.URL
}

func (s *BaseHTTPSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// Step prints a colorized header so scenario logs read as a storyboard
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Do sends one request and returns the status code and raw body.
func (s *BaseHTTPSuite) Do(method, path, body, user string) (int, string) {
	req, err := http.NewRequest(method, s.baseURL+path, strings.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("user", user)
	}

	start := time.Now()
	res, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)

	s.T().Logf("HTTP %s %s [%d] in %v", method, path, res.StatusCode, time.Since(start))
	if s.Config.DebugJSON && len(raw) > 0 {
		s.T().Logf("body: %s", raw)
	}
	return res.StatusCode, string(raw)
}
