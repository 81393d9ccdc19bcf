package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codecommit"
	smithy "github.com/aws/smithy-go"

	"github.com/robertgins/CodeCommit2Teams/core"
)

const branchDoesNotExistErrorCode = "BranchDoesNotExistException"

type codeCommitAPI interface {
	GetRepository(context.Context, *codecommit.GetRepositoryInput, ...func(*codecommit.Options)) (*codecommit.GetRepositoryOutput, error)
	GetCommit(context.Context, *codecommit.GetCommitInput, ...func(*codecommit.Options)) (*codecommit.GetCommitOutput, error)
	GetBranch(context.Context, *codecommit.GetBranchInput, ...func(*codecommit.Options)) (*codecommit.GetBranchOutput, error)
	GetDifferences(context.Context, *codecommit.GetDifferencesInput, ...func(*codecommit.Options)) (*codecommit.GetDifferencesOutput, error)
}

type CodeCommitHelper struct {
	client  codeCommitAPI
	timeout time.Duration
}

func InitializeCodeCommitHelper(ctx context.Context, region string, timeout time.Duration, endpoint *string) (*CodeCommitHelper, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error on loading default config: %v", err)
	}
	client := codecommit.NewFromConfig(cfg, func(o *codecommit.Options) {
		if endpoint != nil {
			o.BaseEndpoint = aws.String(*endpoint)
		}
	})
	return &CodeCommitHelper{client: client, timeout: timeout}, nil
}

func (helper *CodeCommitHelper) GetRepository(ctx context.Context, repositoryName string) (*core.RepositoryInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, helper.timeout)
	defer cancel()
	inp := codecommit.GetRepositoryInput{RepositoryName: aws.String(repositoryName)}
	out, err := helper.client.GetRepository(ctx, &inp)
	if err != nil {
		return nil, fmt.Errorf("error on GetRepository for repository='%s': %v", repositoryName, err)
	}
	metadata := out.RepositoryMetadata
	if metadata == nil {
		return nil, fmt.Errorf("no repository metadata returned for repository='%s'", repositoryName)
	}
	return &core.RepositoryInfo{
		Name:          aws.ToString(metadata.RepositoryName),
		Description:   aws.ToString(metadata.RepositoryDescription),
		DefaultBranch: aws.ToString(metadata.DefaultBranch),
		CloneURLHTTP:  aws.ToString(metadata.CloneUrlHttp),
	}, nil
}

func (helper *CodeCommitHelper) GetCommit(ctx context.Context, repositoryName, commitID string) (*core.CommitInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, helper.timeout)
	defer cancel()
	inp := codecommit.GetCommitInput{
		RepositoryName: aws.String(repositoryName),
		CommitId:       aws.String(commitID),
	}
	out, err := helper.client.GetCommit(ctx, &inp)
	if err != nil {
		return nil, fmt.Errorf("error on GetCommit for commit='%s': %v", commitID, err)
	}
	commit := out.Commit
	if commit == nil {
		return nil, fmt.Errorf("no commit returned for commit='%s'", commitID)
	}
	commitInfo := core.CommitInfo{
		ID:      commitID,
		Message: aws.ToString(commit.Message),
		Parents: commit.Parents,
	}
	if commit.Author != nil {
		commitInfo.AuthorName = aws.ToString(commit.Author.Name)
		commitInfo.AuthorEmail = aws.ToString(commit.Author.Email)
	}
	return &commitInfo, nil
}

// GetBranch reports a missing branch as (nil, nil) so callers can tell a
// deleted branch apart from a failed call.
func (helper *CodeCommitHelper) GetBranch(ctx context.Context, repositoryName, branchName string) (*core.BranchInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, helper.timeout)
	defer cancel()
	inp := codecommit.GetBranchInput{
		RepositoryName: aws.String(repositoryName),
		BranchName:     aws.String(branchName),
	}
	out, err := helper.client.GetBranch(ctx, &inp)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == branchDoesNotExistErrorCode {
			return nil, nil
		}
		return nil, fmt.Errorf("error on GetBranch for branch='%s': %v", branchName, err)
	}
	if out.Branch == nil {
		return nil, nil
	}
	return &core.BranchInfo{
		Name:     aws.ToString(out.Branch.BranchName),
		CommitID: aws.ToString(out.Branch.CommitId),
	}, nil
}

// GetDifferences accumulates every page of file differences between the
// after and before commit specifiers. pageSize bounds each page request, not
// the accumulated result.
func (helper *CodeCommitHelper) GetDifferences(ctx context.Context, repositoryName, afterCommitSpecifier, beforeCommitSpecifier string, pageSize int) ([]core.Difference, error) {
	differences := make([]core.Difference, 0)
	var nextToken *string
	for {
		out, err := helper.getDifferencesPage(ctx, repositoryName, afterCommitSpecifier, beforeCommitSpecifier, pageSize, nextToken)
		if err != nil {
			return nil, fmt.Errorf("error on GetDifferences for commit='%s': %v", afterCommitSpecifier, err)
		}
		for _, difference := range out.Differences {
			coreDifference := core.Difference{ChangeType: core.ChangeType(difference.ChangeType)}
			if difference.BeforeBlob != nil {
				coreDifference.BeforePath = aws.ToString(difference.BeforeBlob.Path)
			}
			if difference.AfterBlob != nil {
				coreDifference.AfterPath = aws.ToString(difference.AfterBlob.Path)
			}
			differences = append(differences, coreDifference)
		}
		if out.NextToken == nil || len(*out.NextToken) == 0 {
			break
		}
		nextToken = out.NextToken
	}
	return differences, nil
}

// getDifferencesPage issues one page request under its own timeout context,
// released when the page returns.
func (helper *CodeCommitHelper) getDifferencesPage(ctx context.Context, repositoryName, afterCommitSpecifier, beforeCommitSpecifier string, pageSize int, nextToken *string) (*codecommit.GetDifferencesOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, helper.timeout)
	defer cancel()
	inp := codecommit.GetDifferencesInput{
		RepositoryName:        aws.String(repositoryName),
		AfterCommitSpecifier:  aws.String(afterCommitSpecifier),
		BeforeCommitSpecifier: aws.String(beforeCommitSpecifier),
		NextToken:             nextToken,
	}
	if pageSize > 0 {
		inp.MaxResults = aws.Int32(int32(pageSize))
	}
	return helper.client.GetDifferences(ctx, &inp)
}

// CodeCommitFactory opens a region-scoped query helper per event, since the
// event source ARN decides which region the repository lives in.
type CodeCommitFactory struct {
	timeout  time.Duration
	endpoint *string
}

func InitializeCodeCommitFactory(timeout time.Duration, endpoint *string) (*CodeCommitFactory, error) {
	return &CodeCommitFactory{timeout: timeout, endpoint: endpoint}, nil
}

func (factory *CodeCommitFactory) ForRegion(ctx context.Context, region string) (core.RepoQuery, error) {
	helper, err := InitializeCodeCommitHelper(ctx, region, factory.timeout, factory.endpoint)
	if err != nil {
		return nil, fmt.Errorf("error on InitializeCodeCommitHelper for region='%s': %v", region, err)
	}
	return helper, nil
}

// HasUsableCredentials reports whether the default credential chain resolves
// to something other than anonymous. The relay stays disabled without real
// credentials because every branch push needs CodeCommit queries.
func HasUsableCredentials(ctx context.Context, timeout time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return false, fmt.Errorf("error on loading default config: %v", err)
	}
	credentials, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return false, nil
	}
	return credentials.HasKeys(), nil
}
