package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skills-gap-navigator/cmd/navigator/ui"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai/stub"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/file"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

func newTestRepl(t *testing.T, token string) (*repl, *bytes.Buffer) {
	t.Helper()
	completer := stub.New()
	creds := usecase.NewCredentialManager(file.New(t.TempDir()), completer, token)
	_, err := creds.Bootstrap(context.Background())
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &repl{
		orch:   session.NewOrchestrator(usecase.NewQueryService(completer), 5*time.Second),
		creds:  creds,
		render: ui.Renderer{Styles: ui.NewStyles(ui.Sky)},
		out:    out,
	}, out
}

func TestParseSearch(t *testing.T) {
	c, a := parseSearch(" Austin, TX | renewable energy ")
	assert.Equal(t, "Austin, TX", c)
	assert.Equal(t, "renewable energy", a)

	c, a = parseSearch("Detroit")
	assert.Equal(t, "Detroit", c)
	assert.Empty(t, a)
}

func TestExploreSession(t *testing.T) {
	r, out := newTestRepl(t, "AIza-test-0001")
	in := strings.NewReader("search Austin, TX | renewable energy\npathways 1\nemployers 1\nshow\nquit\n")
	require.NoError(t, r.run(context.Background(), in, false))

	text := out.String()
	assert.Contains(t, text, "Skills Landscape: Austin, TX • renewable energy")
	assert.Contains(t, text, "Learning Pathways: Solar PV Installation")
	assert.Contains(t, text, "Career Opportunities: Solar PV Installation in Austin, TX")

	snap := r.orch.Snapshot()
	assert.True(t, snap.HasPathways())
	assert.True(t, snap.HasEmployers())
}

func TestExploreAsksForKeyWhenInteractive(t *testing.T) {
	r, out := newTestRepl(t, "")
	in := strings.NewReader("\nmy-new-key-5678\nquit\n")
	require.NoError(t, r.run(context.Background(), in, true))

	assert.True(t, r.creds.Status().Configured)
	assert.Contains(t, out.String(), "Key saved: my-n…5678")
}

func TestExploreWithoutKeyShowsConfigError(t *testing.T) {
	r, out := newTestRepl(t, "")
	in := strings.NewReader("search Austin\nkey abcdefghij\nretry\nquit\n")
	require.NoError(t, r.run(context.Background(), in, false))

	text := out.String()
	assert.Contains(t, text, "use 'key <token>'")
	assert.Contains(t, text, "Something went wrong")
	assert.Equal(t, session.StageHasAnalysis, r.orch.Snapshot().Stage)
}

func TestExploreCommandErrors(t *testing.T) {
	r, _ := newTestRepl(t, "AIza-test-0001")
	ctx := context.Background()

	_, err := r.exec(ctx, "pathways 1")
	assert.EqualError(t, err, "run 'search' first")

	_, err = r.exec(ctx, "retry")
	assert.EqualError(t, err, "nothing to retry")

	_, err = r.exec(ctx, "search   ")
	assert.EqualError(t, err, usecase.MsgCommunityRequired)

	_, err = r.exec(ctx, "dance")
	assert.ErrorContains(t, err, "unknown command")

	_, err = r.exec(ctx, "search Austin")
	require.NoError(t, err)
	_, err = r.exec(ctx, "pathways 9")
	assert.ErrorContains(t, err, "between 1 and 3")
	_, err = r.exec(ctx, "employers x")
	assert.ErrorContains(t, err, "usage")

	quit, err := r.exec(ctx, "quit")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestHashPasswordCommand(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"hash-password", "s3cret"})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "argon2id$"))

	root = newRootCmd()
	root.SetIn(strings.NewReader("\n"))
	root.SetArgs([]string{"hash-password"})
	assert.Error(t, root.Execute())
}
