package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codecommit"
	cctypes "github.com/aws/aws-sdk-go-v2/service/codecommit/types"
	smithy "github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertgins/CodeCommit2Teams/core"
)

const testTimeout = 5 * time.Second

type fakeCodeCommitClient struct {
	repositoryOut *codecommit.GetRepositoryOutput
	repositoryErr error
	commitOut     *codecommit.GetCommitOutput
	commitErr     error
	branchOut     *codecommit.GetBranchOutput
	branchErr     error
	diffPages     []*codecommit.GetDifferencesOutput
	diffInputs    []*codecommit.GetDifferencesInput
}

func (client *fakeCodeCommitClient) GetRepository(_ context.Context, _ *codecommit.GetRepositoryInput, _ ...func(*codecommit.Options)) (*codecommit.GetRepositoryOutput, error) {
	return client.repositoryOut, client.repositoryErr
}

func (client *fakeCodeCommitClient) GetCommit(_ context.Context, _ *codecommit.GetCommitInput, _ ...func(*codecommit.Options)) (*codecommit.GetCommitOutput, error) {
	return client.commitOut, client.commitErr
}

func (client *fakeCodeCommitClient) GetBranch(_ context.Context, _ *codecommit.GetBranchInput, _ ...func(*codecommit.Options)) (*codecommit.GetBranchOutput, error) {
	return client.branchOut, client.branchErr
}

func (client *fakeCodeCommitClient) GetDifferences(_ context.Context, inp *codecommit.GetDifferencesInput, _ ...func(*codecommit.Options)) (*codecommit.GetDifferencesOutput, error) {
	client.diffInputs = append(client.diffInputs, inp)
	page := client.diffPages[len(client.diffInputs)-1]
	return page, nil
}

func newHelper(client codeCommitAPI) *CodeCommitHelper {
	return &CodeCommitHelper{client: client, timeout: testTimeout}
}

func TestCodeCommitHelper(t *testing.T) {
	ctx := context.Background()

	t.Run("get repository maps the metadata", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			repositoryOut: &codecommit.GetRepositoryOutput{
				RepositoryMetadata: &cctypes.RepositoryMetadata{
					RepositoryName:        aws.String("my-repo"),
					RepositoryDescription: aws.String("a repo"),
					DefaultBranch:         aws.String("main"),
				},
			},
		}
		repositoryInfo, err := newHelper(client).GetRepository(ctx, "my-repo")
		require.NoError(t, err)
		assert.Equal(t, "my-repo", repositoryInfo.Name)
		assert.Equal(t, "a repo", repositoryInfo.Description)
		assert.Equal(t, "main", repositoryInfo.DefaultBranch)
	})

	t.Run("get commit maps message parents and author", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			commitOut: &codecommit.GetCommitOutput{
				Commit: &cctypes.Commit{
					Message: aws.String("fix the thing"),
					Parents: []string{"def456"},
					Author:  &cctypes.UserInfo{Name: aws.String("jane.doe"), Email: aws.String("jane@example.com")},
				},
			},
		}
		commitInfo, err := newHelper(client).GetCommit(ctx, "my-repo", "abc123")
		require.NoError(t, err)
		assert.Equal(t, "abc123", commitInfo.ID)
		assert.Equal(t, "fix the thing", commitInfo.Message)
		assert.Equal(t, []string{"def456"}, commitInfo.Parents)
		assert.Equal(t, "jane.doe", commitInfo.AuthorName)
	})

	t.Run("get commit failure propagates", func(t *testing.T) {
		client := &fakeCodeCommitClient{commitErr: errors.New("throttled")}
		_, err := newHelper(client).GetCommit(ctx, "my-repo", "abc123")
		assert.Error(t, err)
	})

	t.Run("get branch reports a missing branch as nil without error", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			branchErr: &smithy.GenericAPIError{Code: branchDoesNotExistErrorCode, Message: "no such branch"},
		}
		branchInfo, err := newHelper(client).GetBranch(ctx, "my-repo", "gone")
		assert.NoError(t, err)
		assert.Nil(t, branchInfo)
	})

	t.Run("get branch failure is an error", func(t *testing.T) {
		client := &fakeCodeCommitClient{branchErr: errors.New("codecommit is down")}
		_, err := newHelper(client).GetBranch(ctx, "my-repo", "main")
		assert.Error(t, err)
	})

	t.Run("get branch maps the branch tip", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			branchOut: &codecommit.GetBranchOutput{
				Branch: &cctypes.BranchInfo{BranchName: aws.String("main"), CommitId: aws.String("abc123")},
			},
		}
		branchInfo, err := newHelper(client).GetBranch(ctx, "my-repo", "main")
		require.NoError(t, err)
		assert.Equal(t, core.BranchInfo{Name: "main", CommitID: "abc123"}, *branchInfo)
	})

	t.Run("get differences accumulates every page in order", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			diffPages: []*codecommit.GetDifferencesOutput{
				{
					Differences: []cctypes.Difference{
						{ChangeType: cctypes.ChangeTypeEnumAdded, AfterBlob: &cctypes.BlobMetadata{Path: aws.String("a.go")}},
						{ChangeType: cctypes.ChangeTypeEnumDeleted, BeforeBlob: &cctypes.BlobMetadata{Path: aws.String("b.go")}},
					},
					NextToken: aws.String("page-2"),
				},
				{
					Differences: []cctypes.Difference{
						{ChangeType: cctypes.ChangeTypeEnumModified, AfterBlob: &cctypes.BlobMetadata{Path: aws.String("c.go")}},
					},
				},
			},
		}
		differences, err := newHelper(client).GetDifferences(ctx, "my-repo", "abc123", "def456", 2)
		require.NoError(t, err)
		expected := []core.Difference{
			{ChangeType: core.ChangeTypeAdded, AfterPath: "a.go"},
			{ChangeType: core.ChangeTypeDeleted, BeforePath: "b.go"},
			{ChangeType: core.ChangeTypeModified, AfterPath: "c.go"},
		}
		assert.Equal(t, expected, differences)

		require.Len(t, client.diffInputs, 2)
		assert.Nil(t, client.diffInputs[0].NextToken)
		assert.Equal(t, "page-2", aws.ToString(client.diffInputs[1].NextToken))
		assert.Equal(t, int32(2), aws.ToInt32(client.diffInputs[0].MaxResults))
	})

	t.Run("get differences leaves max results unset for a zero page size", func(t *testing.T) {
		client := &fakeCodeCommitClient{
			diffPages: []*codecommit.GetDifferencesOutput{{}},
		}
		differences, err := newHelper(client).GetDifferences(ctx, "my-repo", "abc123", core.ParentCommitSentinel, 0)
		require.NoError(t, err)
		assert.Empty(t, differences)
		require.Len(t, client.diffInputs, 1)
		assert.Nil(t, client.diffInputs[0].MaxResults)
	})
}
