package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_ValueAndScan(t *testing.T) {
	v, err := StringArray{"Go", "Rust, the book", `say "hi"`}.Value()
	require.NoError(t, err)

	var back StringArray
	require.NoError(t, back.Scan(v))
	assert.Equal(t, StringArray{"Go", "Rust, the book", `say "hi"`}, back)

	nilValue, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", nilValue)

	var empty StringArray
	require.NoError(t, empty.Scan([]byte("{}")))
	assert.Empty(t, empty)
}

func TestStringArray_Overlaps(t *testing.T) {
	a := StringArray{"Go", "SQL"}

	assert.True(t, a.Overlaps([]string{"Rust", "SQL"}))
	assert.False(t, a.Overlaps([]string{"go"}), "matching is case sensitive")
	assert.False(t, a.Overlaps(nil))
	assert.False(t, StringArray(nil).Overlaps([]string{"Go"}))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "", "Rust", "Go", "   "})
	assert.Equal(t, StringArray{"Go", "Rust"}, got)

	assert.NotNil(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags(nil))
}

func TestSessionStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to SessionStatus
		ok       bool
	}{
		{SessionStatusScheduled, SessionStatusInProgress, true},
		{SessionStatusScheduled, SessionStatusCancelled, true},
		{SessionStatusScheduled, SessionStatusCompleted, false},
		{SessionStatusInProgress, SessionStatusCompleted, true},
		{SessionStatusInProgress, SessionStatusScheduled, false},
		{SessionStatusCompleted, SessionStatusCancelled, false},
		{SessionStatusCancelled, SessionStatusScheduled, false},
		{SessionStatusCompleted, SessionStatusCompleted, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, SessionStatusCancelled.IsTerminal())
	assert.False(t, SessionStatusScheduled.IsTerminal())
	assert.False(t, SessionStatus("DONE").IsValid())
}

func TestLearningPost_Matching(t *testing.T) {
	post := &LearningPost{
		TeachingInterests: StringArray{"Go"},
		LearningInterests: StringArray{"Rust"},
	}

	assert.True(t, post.MatchesInterests([]string{"Rust"}))
	assert.False(t, post.MatchesInterests([]string{"Java"}))

	// wants to learn Go
	assert.True(t, post.MatchesUser(&User{Interests: StringArray{"Go"}}))
	// can teach Rust
	assert.True(t, post.MatchesUser(&User{Skills: StringArray{"Rust"}}))
	// knows Go, wants Rust: nothing to exchange
	assert.False(t, post.MatchesUser(&User{Skills: StringArray{"Go"}, Interests: StringArray{"Rust"}}))
}

func TestSession_Membership(t *testing.T) {
	s := &Session{HostID: "h", ParticipantID: "p"}

	assert.Equal(t, "h", s.GetUserID())
	assert.True(t, s.Involves("h"))
	assert.True(t, s.Involves("p"))
	assert.False(t, s.Involves("x"))
}
