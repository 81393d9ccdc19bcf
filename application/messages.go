package application

import (
	"strings"
	"time"

	"github.com/robertgins/CodeCommit2Teams/core"
)

// Teams renders CRLF line breaks inside the plain-text card body.
const crlf = "\r\n"

// create/delete/warning use the long form, the commit message uses the short
// form. The asymmetry is a deliberate display choice.
const longTimeFormat = "Monday, January 2, 2006 3:04:05 PM"
const shortTimeFormat = "1/2/2006 3:04:05 PM"

const reviewPrompt = "*This commit had more changes than expected and should be reviewed*"

func BranchCreateMessage(authorName string, eventTime time.Time, repositoryName, branchName string) string {
	var sb strings.Builder
	sb.WriteString(authorName + " created a new branch named " + branchName + " in " + repositoryName)
	sb.WriteString(" at " + eventTime.Format(longTimeFormat) + crlf)
	return sb.String()
}

func BranchDeleteMessage(authorName string, eventTime time.Time, repositoryName, branchName string) string {
	var sb strings.Builder
	sb.WriteString(authorName + " deleted the branch " + branchName + " from " + repositoryName)
	sb.WriteString(" at " + eventTime.Format(longTimeFormat) + crlf)
	return sb.String()
}

func BranchCommitMessage(authorName, commitID string, eventTime time.Time, commitMessage, repositoryName, branchName string, differences []core.Difference) string {
	var sb strings.Builder
	sb.WriteString(authorName + " pushed changes to the " + branchName + " branch of " + repositoryName)
	sb.WriteString(" at " + eventTime.Format(shortTimeFormat) + crlf)
	sb.WriteString("*" + commitID + "* : " + commitMessage + crlf)
	for _, difference := range differences {
		switch difference.ChangeType {
		case core.ChangeTypeAdded:
			sb.WriteString("Added " + difference.AfterPath + crlf)
		case core.ChangeTypeDeleted:
			sb.WriteString("Deleted " + difference.BeforePath + crlf)
		case core.ChangeTypeModified:
			sb.WriteString("Modified " + difference.AfterPath + crlf)
		}
	}
	return sb.String()
}

func BranchWarningMessage(authorName, commitID string, eventTime time.Time, commitMessage, repositoryName, branchName string) string {
	var sb strings.Builder
	sb.WriteString("## Warning" + crlf)
	sb.WriteString(authorName + " pushed changes to the " + branchName + " branch of " + repositoryName)
	sb.WriteString(" at " + eventTime.Format(longTimeFormat) + crlf)
	sb.WriteString("*" + commitID + "* : " + commitMessage + crlf)
	sb.WriteString(reviewPrompt)
	return sb.String()
}
