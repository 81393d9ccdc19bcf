package comms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robertgins/CodeCommit2Teams/core"
	"github.com/robertgins/CodeCommit2Teams/helpers"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/types"
)

// Teams rejects messages above this many characters.
const maxMessageLength = 1024

const rateLimitMarker = "Microsoft Teams endpoint returned HTTP error 429"

type TeamsHelper struct {
	channelURLs []string
	client      *http.Client
	timeout     time.Duration
	logger      core.Logger
}

func InitializeTeamsHelper(ctx context.Context, channelURLs []string, contextTimeout time.Duration, logger core.Logger) (*TeamsHelper, error) {
	if len(channelURLs) == 0 {
		return nil, fmt.Errorf("no channel urls specified")
	}
	return &TeamsHelper{
		channelURLs: channelURLs,
		client:      &http.Client{},
		timeout:     contextTimeout,
		logger:      logger,
	}, nil
}

// PostMessage delivers messageText to every configured channel on a best
// effort basis. A failed endpoint is logged and the remaining endpoints are
// still attempted, so delivery never surfaces an error to the handler.
func (th *TeamsHelper) PostMessage(ctx context.Context, messageText string) {
	teamsMessage := types.TeamsMessage{Text: helpers.TrimTo(messageText, maxMessageLength)}
	payloadBytes, err := json.Marshal(teamsMessage)
	if err != nil {
		th.logger.Error("error on marshal teams message: %v", err)
		return
	}
	for _, channelURL := range th.channelURLs {
		if err := th.postToChannel(ctx, channelURL, payloadBytes); err != nil {
			th.logger.Error("error posting to teams channel '%s': %v", channelURL, err)
		}
	}
}

func (th *TeamsHelper) postToChannel(ctx context.Context, channelURL string, payloadBytes []byte) error {
	ctx, cancel := context.WithTimeout(ctx, th.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", channelURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := th.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	responseText := string(responseBody)
	if helpers.ContainsFold(responseText, rateLimitMarker) {
		// TODO decide on a retry policy for throttled channels
		th.logger.Warn("teams channel '%s' reported a rate limit: %s", channelURL, responseText)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received non-2xx response status: %s, response body: %s", resp.Status, responseText)
	}
	return nil
}
