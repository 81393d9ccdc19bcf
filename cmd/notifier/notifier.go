package main

import (
	"context"
	"encoding/json"
	"log"

	// the lambda base image ships without zoneinfo
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/robertgins/CodeCommit2Teams/application"
	"github.com/robertgins/CodeCommit2Teams/core"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/comms"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/loggers"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/repos"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/settings"
)

var logger core.Logger

func HandleRequest(ctx context.Context, payload json.RawMessage) error {
	mySettings, err := settings.GetSettings()
	if err != nil {
		log.Fatalf("error on GetSettings: %v", err)
	}

	logger, err = loggers.InitializeMultiLogger(mySettings.DoLogToStdout)
	if err != nil {
		log.Fatalf("error on initialize multilogger: %v\n", err)
	}

	channelURLs, err := mySettings.ChannelURLs()
	if err != nil {
		logger.Warn("invalid TeamsChannelUrl, relay disabled: %v", err)
	}
	location, err := mySettings.Location()
	if err != nil {
		logger.Warn("falling back to UTC: %v", err)
	}

	enabled := len(channelURLs) > 0
	if !enabled {
		logger.Warn("missing environment variable TeamsChannelUrl")
	} else {
		hasCredentials, err := repos.HasUsableCredentials(ctx, mySettings.ContextTimeout)
		if err != nil {
			logger.Warn("error resolving aws credentials: %v", err)
		}
		if !hasCredentials {
			logger.Warn("no usable aws credentials assigned to this lambda, relay disabled")
			enabled = false
		}
	}

	var poster core.ChannelPoster
	if enabled {
		poster, err = comms.InitializeTeamsHelper(ctx, channelURLs, mySettings.ContextTimeout, logger)
		if err != nil {
			logger.Fatal("error on initialize teams helper: %v", err)
		}
	}
	repoFactory, err := repos.InitializeCodeCommitFactory(mySettings.ContextTimeout, mySettings.LocalEndpoint)
	if err != nil {
		logger.Fatal("error on initialize codecommit factory: %v", err)
	}

	cfg := application.Config{
		Enabled:                    enabled,
		Location:                   location,
		MaxChangesWarningThreshold: mySettings.MaxChangesWarningThreshold,
	}
	return application.DispatchEvent(ctx, []byte(payload), cfg, repoFactory, poster, logger)
}

func main() {
	lambda.Start(HandleRequest)
}
