package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robertgins/CodeCommit2Teams/core"
)

var testTime = time.Date(2019, time.November, 27, 15, 4, 5, 0, time.UTC)

func TestMessages(t *testing.T) {
	t.Run("branch create message", func(t *testing.T) {
		actual := BranchCreateMessage("jane.doe", testTime, "my-repo", "feature-x")
		expected := "jane.doe created a new branch named feature-x in my-repo at Wednesday, November 27, 2019 3:04:05 PM\r\n"
		assert.Equal(t, expected, actual)
	})

	t.Run("branch delete message", func(t *testing.T) {
		actual := BranchDeleteMessage("jane.doe", testTime, "my-repo", "feature-x")
		expected := "jane.doe deleted the branch feature-x from my-repo at Wednesday, November 27, 2019 3:04:05 PM\r\n"
		assert.Equal(t, expected, actual)
	})

	t.Run("branch commit message lists every difference", func(t *testing.T) {
		differences := []core.Difference{
			{ChangeType: core.ChangeTypeAdded, AfterPath: "src/new.go"},
			{ChangeType: core.ChangeTypeDeleted, BeforePath: "src/old.go"},
			{ChangeType: core.ChangeTypeModified, AfterPath: "README.md"},
		}
		actual := BranchCommitMessage("jane.doe", "abc123", testTime, "fix the thing", "my-repo", "main", differences)
		expected := "jane.doe pushed changes to the main branch of my-repo at 11/27/2019 3:04:05 PM\r\n" +
			"*abc123* : fix the thing\r\n" +
			"Added src/new.go\r\n" +
			"Deleted src/old.go\r\n" +
			"Modified README.md\r\n"
		assert.Equal(t, expected, actual)
	})

	t.Run("branch commit message drops unrecognized change types", func(t *testing.T) {
		differences := []core.Difference{
			{ChangeType: core.ChangeType("R"), AfterPath: "renamed.go"},
			{ChangeType: core.ChangeTypeAdded, AfterPath: "kept.go"},
		}
		actual := BranchCommitMessage("jane.doe", "abc123", testTime, "msg", "my-repo", "main", differences)
		assert.NotContains(t, actual, "renamed.go")
		assert.Contains(t, actual, "Added kept.go\r\n")
	})

	t.Run("branch warning message", func(t *testing.T) {
		actual := BranchWarningMessage("jane.doe", "abc123", testTime, "big drop", "my-repo", "main")
		expected := "## Warning\r\n" +
			"jane.doe pushed changes to the main branch of my-repo at Wednesday, November 27, 2019 3:04:05 PM\r\n" +
			"*abc123* : big drop\r\n" +
			"*This commit had more changes than expected and should be reviewed*"
		assert.Equal(t, expected, actual)
	})
}
