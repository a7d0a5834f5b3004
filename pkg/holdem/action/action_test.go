package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("fold")
	a.NoError(err)
	a.Equal(Fold, act)

	act, err = FromString("allin")
	a.NoError(err)
	a.Equal(AllIn, act)

	_, err = FromString("bluff")
	a.EqualError(err, "unknown action for identifier: bluff")
}

func TestAction_IsValid(t *testing.T) {
	assert.True(t, Raise.IsValid())
	assert.False(t, Action("bluff").IsValid())
}

func TestAction_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(AllIn)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"allin","name":"All in"}`, string(b))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", Fold.LogMessage(0))
	a.Equal("checked", Check.LogMessage(0))
	a.Equal("called ${50}", Call.LogMessage(50))
	a.Equal("raised to ${200}", Raise.LogMessage(200))
	a.Equal("went all in for ${575}", AllIn.LogMessage(575))
}
