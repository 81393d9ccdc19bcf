package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testEventSourceARN = "arn:aws:codecommit:us-east-1:123456789012:my-repo"

type lastSplitElementTest struct {
	value     string
	separator string
	expected  string
}

var lastSplitElementTests = []lastSplitElementTest{
	{value: "refs/heads/feature/x", separator: "/", expected: "x"},
	{value: "refs/heads/main", separator: "/", expected: "main"},
	{value: "arn:aws:sts::123456789012:assumed-role/AIDAEXAMPLE/jane.doe", separator: "/", expected: "jane.doe"},
	{value: "no-separator", separator: "/", expected: "no-separator"},
	{value: "", separator: "/", expected: ""},
}

func TestHelpers(t *testing.T) {
	t.Run("last split element", func(t *testing.T) {
		for _, test := range lastSplitElementTests {
			actual := LastSplitElement(test.value, test.separator)
			assert.Equal(t, test.expected, actual, "wrong last element for value='%s'", test.value)
		}
	})

	t.Run("region from arn", func(t *testing.T) {
		assert.Equal(t, "us-east-1", RegionFromARN(testEventSourceARN))
		assert.Equal(t, "", RegionFromARN("arn:aws"))
	})

	t.Run("repository name from arn", func(t *testing.T) {
		assert.Equal(t, "my-repo", RepositoryNameFromARN(testEventSourceARN))
		assert.Equal(t, "", RepositoryNameFromARN("arn:aws:codecommit:us-east-1"))
	})

	t.Run("trim to hard cuts long values", func(t *testing.T) {
		long := strings.Repeat("x", 2000)
		trimmed := TrimTo(long, 1024)
		assert.Len(t, trimmed, 1024)
		assert.Equal(t, long[:1024], trimmed)
	})

	t.Run("trim to keeps short values untouched", func(t *testing.T) {
		assert.Equal(t, "hello", TrimTo("hello", 1024))
		assert.Equal(t, "", TrimTo("", 1024))
	})

	t.Run("trim to counts characters not bytes", func(t *testing.T) {
		assert.Equal(t, "héllo", TrimTo("héllo world", 5))
	})

	t.Run("contains fold", func(t *testing.T) {
		assert.True(t, ContainsFold(`{"Records": []}`, `"records"`))
		assert.True(t, ContainsFold(`{"records": []}`, `"Records"`))
		assert.False(t, ContainsFold(`{"detail": {}}`, `"records"`))
	})
}
