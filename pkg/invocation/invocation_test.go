package invocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokensFollowsDeclaredOrderThenRemaining(t *testing.T) {
	inv := New("hello")
	inv.Order = []string{"text", "bool", "another"}
	inv.ShortForm["text"] = "t"
	inv.SetArg("text", "hello, world")
	inv.SetArg("another", `tes"t`)
	inv.SetBool("bool", true)

	inv.SubCommand = New("sub-command")
	inv.SubCommand.SetArg("sub", "arg")

	assert.Equal(t, []string{
		"hello", "-t", "hello, world", "--bool", "--another", `tes"t`,
		"sub-command", "--sub", "arg",
	}, inv.Tokens())
}

func TestCloneIsIndependent(t *testing.T) {
	inv := New("crawl")
	inv.SetArg("path", "plugin://a")
	clone := inv.Clone()
	clone.SetArg("path", "plugin://b")

	assert.Equal(t, "plugin://a", inv.Args["path"])
	assert.Equal(t, "plugin://b", clone.Args["path"])
}

func TestSetArgClearsBoolAndViceVersa(t *testing.T) {
	inv := New("crawl")
	inv.SetBool("jobs", true)
	inv.SetArg("jobs", "1")
	assert.False(t, inv.BoolFlags["jobs"])
	assert.Equal(t, "1", inv.Args["jobs"])

	inv.SetBool("jobs", true)
	assert.Equal(t, "", inv.Args["jobs"])
	assert.True(t, inv.BoolFlags["jobs"])
}

func TestRemoveArgClearsBothForms(t *testing.T) {
	inv := New("crawl")
	inv.SetBool("keep-going", true)
	inv.RemoveArg("keep-going")
	assert.False(t, inv.IsPresent("keep-going"))
}
