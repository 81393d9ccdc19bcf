package core

import (
	"context"
)

type ChangeType string

const (
	ChangeTypeAdded    ChangeType = "A"
	ChangeTypeDeleted  ChangeType = "D"
	ChangeTypeModified ChangeType = "M"
)

// ParentCommitSentinel is the diff baseline for a commit with no parent.
const ParentCommitSentinel = "HEAD"

type Difference struct {
	ChangeType ChangeType
	BeforePath string
	AfterPath  string
}

type CommitInfo struct {
	ID          string
	Message     string
	Parents     []string
	AuthorName  string
	AuthorEmail string
}

type BranchInfo struct {
	Name     string
	CommitID string
}

type RepositoryInfo struct {
	Name          string
	Description   string
	DefaultBranch string
	CloneURLHTTP  string
}

type Logger interface {
	Info(string, ...any)
	Warn(string, ...any)
	Debug(string, ...any)
	Error(string, ...any)
	Fatal(string, ...any)
}

type ChannelPoster interface {
	PostMessage(context.Context, string)
}

type RepoQuery interface {
	GetRepository(context.Context, string) (*RepositoryInfo, error)
	GetCommit(context.Context, string, string) (*CommitInfo, error)
	// GetBranch returns (nil, nil) when the branch does not exist, which is
	// distinct from the call itself failing.
	GetBranch(context.Context, string, string) (*BranchInfo, error)
	GetDifferences(context.Context, string, string, string, int) ([]Difference, error)
}

type RepoQueryFactory interface {
	ForRegion(context.Context, string) (RepoQuery, error)
}
