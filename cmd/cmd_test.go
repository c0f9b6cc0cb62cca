package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/store"
)

// seedStore creates a database with a little history and returns its path.
func seedStore(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "learnloop.db")
	st, err := store.OpenFile(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, session.SaveRecent(ctx, st.KV(), session.RecentTopics{"Verbs", "Fractions"}))
	require.NoError(t, st.EventRepo().AppendQuizResult(ctx, store.QuizResultEventData{
		SessionID:    "s1",
		Topic:        "Fractions",
		Score:        6,
		Total:        8,
		MasteryLevel: "Intermediate",
	}))
	require.NoError(t, st.EventRepo().AppendAgentCall(ctx, store.AgentCallEventData{
		SessionID:    "s1",
		RequestType:  "explain",
		AgentID:      "learnloop-tutor",
		Target:       "local",
		Message:      "Explain fractions",
		LatencyMs:    42,
		Success:      true,
		ResponseBody: `{"explanation_sections":[]}`,
	}))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return buf.String(), err
}

func TestHistory(t *testing.T) {
	db := seedStore(t)

	out, err := run(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Verbs")
	assert.Contains(t, out, "2. Fractions")

	out, err = run(t, "history", "clear", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Recent topics cleared.")

	out, err = run(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No recent topics.")
}

func TestResults(t *testing.T) {
	db := seedStore(t)

	out, err := run(t, "results", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Fractions")
	assert.Contains(t, out, "6/8")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Intermediate")
}

func TestCallsListAndView(t *testing.T) {
	db := seedStore(t)

	out, err := run(t, "calls", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "explain")
	assert.Contains(t, out, "local")

	out, err = run(t, "calls", "view", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Explain fractions")
	assert.Contains(t, out, `{"explanation_sections":[]}`)

	_, err = run(t, "calls", "view", "99", "--db", db)
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "calls", "view", "abc", "--db", db)
	assert.ErrorContains(t, err, "invalid ID")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "learnloop")
}

func TestUpdateRefusesDevBuild(t *testing.T) {
	out, err := run(t, "update")
	require.NoError(t, err)
	assert.Contains(t, out, "development build")
}
