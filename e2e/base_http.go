package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"poker-lab/client"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("POKER_SERVER_ADDR not set, skipping e2e suite")
	}
}

// StepHeader prints a colorized header for a scenario step in logs
func (s *BaseHTTPSuite) StepHeader(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// OpenStream joins a push endpoint and returns the live stream
func (s *BaseHTTPSuite) OpenStream(name, path string) *client.Stream {
	s.StepHeader(name)
	stream, err := client.Connect(context.Background(), s.Config.ServerAddr+path)
	s.Require().NoError(err, "Failed to open stream at "+path)
	s.T().Cleanup(stream.Close)
	return stream
}

// NextJSON waits for the next data frame and decodes it into target
func (s *BaseHTTPSuite) NextJSON(stream *client.Stream, target any) {
	frame, err := stream.Next(10 * time.Second)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal([]byte(frame), target))
	s.T().Logf("FRAME %s", frame)
}

// PostJSON submits a body and asserts the expected status code
func (s *BaseHTTPSuite) PostJSON(name, path string, payload any, wantStatus int) {
	s.StepHeader(name)
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	start := time.Now()
	resp, err := http.Post(s.Config.ServerAddr+path, "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.T().Logf("POST %s [%d] in %v", path, resp.StatusCode, time.Since(start))
	s.Require().Equal(wantStatus, resp.StatusCode)
}
