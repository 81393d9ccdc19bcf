package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robertgins/CodeCommit2Teams/core"
	"github.com/robertgins/CodeCommit2Teams/helpers"
	"github.com/robertgins/CodeCommit2Teams/infrastructure/types"
)

// recordsToken marks a branch event envelope. Probing the raw text for it is
// cheaper than decoding the payload twice to find out which shape arrived.
const recordsToken = `"records"`

// CodeCommit trigger payloads write the zone offset without a colon
// ("2016-01-01T23:59:59.000+0000"), which RFC 3339 does not allow.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
}

func parseEventTime(value string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized event time '%s'", value)
}

type Config struct {
	Enabled                    bool
	Location                   *time.Location
	MaxChangesWarningThreshold int
}

// DispatchEvent decides which of the two trigger payload shapes arrived and
// routes it to the matching handler. A payload that decodes into neither
// shape is an invocation failure, everything past decoding is best effort.
func DispatchEvent(ctx context.Context, payload []byte, cfg Config, repoFactory core.RepoQueryFactory, poster core.ChannelPoster, logger core.Logger) error {
	payloadText := string(payload)
	logger.Info("received event: %s", payloadText)
	if !cfg.Enabled {
		logger.Warn("relay requires additional configuration, nothing to do")
		return nil
	}
	if helpers.ContainsFold(payloadText, recordsToken) {
		var branchEvent types.BranchEvent
		if err := json.Unmarshal(payload, &branchEvent); err != nil {
			return fmt.Errorf("error unmarshalling branch event: %v", err)
		}
		return HandleBranchEvent(ctx, branchEvent, cfg, repoFactory, poster, logger)
	}
	var pullEvent types.PullEvent
	if err := json.Unmarshal(payload, &pullEvent); err != nil {
		return fmt.Errorf("error unmarshalling pull event: %v", err)
	}
	return HandlePullEvent(ctx, pullEvent, cfg, poster, logger)
}

// HandleBranchEvent posts at most one message for a push, branch create, or
// branch delete. Only the first record and the first reference are
// processed; multiple entries have never been observed outside test data.
func HandleBranchEvent(ctx context.Context, event types.BranchEvent, cfg Config, repoFactory core.RepoQueryFactory, poster core.ChannelPoster, logger core.Logger) error {
	logger.Info("starting branch event handling")
	if !cfg.Enabled {
		logger.Warn("relay requires additional configuration, nothing to do")
		return nil
	}
	if len(event.Records) == 0 {
		logger.Info("no records node, nothing to process")
		return nil
	}
	record := event.Records[0]
	if len(record.Codecommit.References) == 0 {
		logger.Info("no references node, nothing to process")
		return nil
	}
	reference := record.Codecommit.References[0]

	// a reference that carries the deleted or created marker at all is
	// classified by presence, not by the boolean's value
	isDelete := reference.Deleted != nil
	isCreate := !isDelete && reference.Created != nil

	commitID := reference.Commit
	branchName := helpers.LastSplitElement(reference.Ref, "/")
	repositoryName := helpers.RepositoryNameFromARN(record.EventSourceARN)
	regionName := helpers.RegionFromARN(record.EventSourceARN)
	authorName := helpers.LastSplitElement(record.UserIdentityARN, "/")

	eventTime, err := parseEventTime(record.EventTime)
	if err != nil {
		return fmt.Errorf("error parsing event time '%s': %v", record.EventTime, err)
	}
	localTime := eventTime.UTC().In(cfg.Location)

	var notificationMessage string
	switch {
	case isCreate:
		notificationMessage = BranchCreateMessage(authorName, localTime, repositoryName, branchName)
	case isDelete:
		notificationMessage = BranchDeleteMessage(authorName, localTime, repositoryName, branchName)
	default:
		repoQuery, err := repoFactory.ForRegion(ctx, regionName)
		if err != nil {
			logger.Error("error opening repo query for region='%s': %v", regionName, err)
			return nil
		}
		notificationMessage, err = buildCommitMessage(ctx, repoQuery, cfg, repositoryName, branchName, commitID, authorName, localTime, logger)
		if err != nil {
			logger.Error("error building commit message for commit='%s': %v", commitID, err)
			return nil
		}
	}

	poster.PostMessage(ctx, notificationMessage)
	logger.Info("completed branch event handling")
	return nil
}

func buildCommitMessage(ctx context.Context, repoQuery core.RepoQuery, cfg Config, repositoryName, branchName, commitID, authorName string, localTime time.Time, logger core.Logger) (string, error) {
	repositoryInfo, err := repoQuery.GetRepository(ctx, repositoryName)
	if err != nil {
		return "", fmt.Errorf("error on GetRepository: %v", err)
	}
	logger.Debug("repository '%s' default branch is '%s'", repositoryInfo.Name, repositoryInfo.DefaultBranch)

	commitInfo, err := repoQuery.GetCommit(ctx, repositoryName, commitID)
	if err != nil {
		return "", fmt.Errorf("error on GetCommit: %v", err)
	}
	commitParentID := core.ParentCommitSentinel
	if len(commitInfo.Parents) > 0 {
		commitParentID = commitInfo.Parents[0]
	}

	differences, err := repoQuery.GetDifferences(ctx, repositoryName, commitID, commitParentID, cfg.MaxChangesWarningThreshold)
	if err != nil {
		return "", fmt.Errorf("error on GetDifferences: %v", err)
	}

	if cfg.MaxChangesWarningThreshold > 0 && len(differences) >= cfg.MaxChangesWarningThreshold {
		return BranchWarningMessage(authorName, commitID, localTime, commitInfo.Message, repositoryName, branchName), nil
	}
	return BranchCommitMessage(authorName, commitID, localTime, commitInfo.Message, repositoryName, branchName, differences), nil
}

// HandlePullEvent forwards the notification body the pull request rule
// already rendered, verbatim.
func HandlePullEvent(ctx context.Context, event types.PullEvent, cfg Config, poster core.ChannelPoster, logger core.Logger) error {
	logger.Info("starting pull event handling")
	if !cfg.Enabled {
		logger.Warn("relay requires additional configuration, nothing to do")
		return nil
	}
	poster.PostMessage(ctx, event.Detail.NotificationBody)
	logger.Info("completed pull event handling")
	return nil
}
