package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"frog-pond/internal"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
	server *httptest.Server
	app    *internal.App
}

// SetupSuite loads the environment configuration and reuses the running pond when there is one.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	s.client = &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	if s.Config.BaseURL != "" {
		return
	}

	s.app, err = internal.NewApp(internal.Config{
		LogLevel:        "DEBUG",
		Host:            "localhost",
		Port:            3000,
		SummonThreshold: s.Config.SummonThreshold,
		RibbitWindow:    time.Minute,
		BufferSize:      64,
		SinkTimeout:     time.Second,
		RestartInterval: 200 * time.Millisecond,
	}, logs.GetLoggerFromLevel(slog.LevelWarn))
	s.Require().NoError(err)
	s.Require().NoError(s.app.Start(context.Background()))
	s.server = httptest.NewServer(s.app.Server.Handler())
	s.Config.BaseURL = s.server.URL
}

func (s *BaseHTTPSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.Close()
	}
}

// Step prints a colorized header before running a scenario step
func (s *BaseHTTPSuite) Step(name string, fn func()) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
	fn()
}

func (s *BaseHTTPSuite) do(method, path string, form url.Values) (int, []byte) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.Config.BaseURL+path, body)
	s.Require().NoError(err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach the pond at "+s.Config.BaseURL)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var indented bytes.Buffer
		if json.Indent(&indented, payload, "", "  ") == nil {
			fmt.Fprintln(&logBuilder, "\nRESPONSE:")
			fmt.Fprintln(&logBuilder, indented.String())
		}
	}
	s.T().Log(logBuilder.String())
	return resp.StatusCode, payload
}

func (s *BaseHTTPSuite) PostMessage(user, text string) int {
	code, _ := s.do(http.MethodPost, "/messages", url.Values{"user": {user}, "text": {text}})
	return code
}

func (s *BaseHTTPSuite) Press(path string) {
	code, _ := s.do(http.MethodPost, path, url.Values{})
	s.Require().Equal(http.StatusSeeOther, code)
}

func (s *BaseHTTPSuite) Pond() internal.PondView {
	code, payload := s.do(http.MethodGet, "/api/pond", nil)
	s.Require().Equal(http.StatusOK, code)
	var view internal.PondView
	s.Require().NoError(json.Unmarshal(payload, &view))
	return view
}

func (s *BaseHTTPSuite) Messages(cursor string) internal.MessagePage {
	path := "/api/messages"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}
	code, payload := s.do(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, code)
	var page internal.MessagePage
	s.Require().NoError(json.Unmarshal(payload, &page))
	return page
}
