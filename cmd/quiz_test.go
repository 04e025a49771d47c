package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace/workspacetest"
)

type recordingCue struct{ played []bool }

func (c *recordingCue) Play(correct bool) { c.played = append(c.played, correct) }

func startedQuiz(t *testing.T) (*quiz.Orchestrator, *workspacetest.Fixture) {
	t.Helper()
	b := workspacetest.NewBackend(
		[2]string{"cat", "mushuk"},
		[2]string{"dog", "it"},
		[2]string{"bird", "qush"},
	)
	ws, fx := workspacetest.New(b)
	fx.SignIn(ws, "ali")
	ctx := context.Background()
	o, err := ws.NewOrchestrator(ctx)
	require.NoError(t, err)
	require.NoError(t, o.Start(ctx, quiz.StartRequest{Direction: vocab.Forward, Start: 0, End: 2}, 3))
	return o, fx
}

func TestRunLineQuiz_Complete(t *testing.T) {
	o, fx := startedQuiz(t)
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("mushuk\nkuchuk\n QUSH \n"), &out)

	res, err := runLineQuiz(context.Background(), o, p)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 1, res.Wrong)
	assert.Equal(t, 67, res.Percentage)
	require.Len(t, res.Mistakes, 1)
	assert.Equal(t, "dog", res.Mistakes[0].Prompt)

	text := out.String()
	assert.Contains(t, text, "[1/3] cat - ?")
	assert.Contains(t, text, "Wrong. Correct answer: it")
	assert.Len(t, fx.Results.Records, 1)
}

func TestRunLineQuiz_QuitEarly(t *testing.T) {
	o, _ := startedQuiz(t)
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("mushuk\n:q\n"), &out)

	res, err := runLineQuiz(context.Background(), o, p)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, quiz.Finished, o.State())
}

func TestRunLineQuiz_EOFFinishes(t *testing.T) {
	o, _ := startedQuiz(t)
	res, err := runLineQuiz(context.Background(), o, newPrompter(strings.NewReader(""), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Correct)
}

func TestRunLineQuiz_RetryAfterFailure(t *testing.T) {
	o, fx := startedQuiz(t)
	fx.Backend.Fail["Answer"] = errors.New("connection reset")
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("mushuk\ny\nit\nqush\n"), &out)

	res, err := runLineQuiz(context.Background(), o, p)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Correct)
	assert.Contains(t, out.String(), "Error checking answer")
}

func TestRunLineQuiz_FinishFailureGivesUp(t *testing.T) {
	o, fx := startedQuiz(t)
	fx.Backend.Fail["Finish"] = errors.New("down")

	_, err := runLineQuiz(context.Background(), o, newPrompter(strings.NewReader(":q\nn\n"), &bytes.Buffer{}))
	require.Error(t, err)
	assert.Equal(t, "Could not finish test", err.Error())
}

func TestReplayUnfinished(t *testing.T) {
	o, fx := startedQuiz(t)
	fx.Backend.Fail["Finish"] = errors.New("down")
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("kuchuk\n:q\nn\ny\nmushuk\n"), &out)

	_, err := runLineQuiz(context.Background(), o, p)
	require.Error(t, err)

	cue := &recordingCue{}
	replayUnfinished(p, o, cue, true)
	text := out.String()
	assert.Contains(t, text, "No result from the server")
	assert.Contains(t, text, "kuchuk")
	assert.Contains(t, text, "Replay: 1 / 1 correct (100%)")
	assert.Equal(t, []bool{true}, cue.played)
}

func TestReplayUnfinished_NothingToShow(t *testing.T) {
	o, fx := startedQuiz(t)
	fx.Backend.Fail["Finish"] = errors.New("down")
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(":q\nn\n"), &out)

	_, err := runLineQuiz(context.Background(), o, p)
	require.Error(t, err)
	out.Reset()

	replayUnfinished(p, o, nil, true)
	assert.Empty(t, out.String())
}

func TestRunLineReplay(t *testing.T) {
	cue := &recordingCue{}
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("it\nbaliq\n"), &out)
	ms := []vocab.Mistake{
		{Prompt: "dog", Expected: "it"},
		{Prompt: "bird", Expected: "qush"},
	}

	sum := runLineReplay(p, ms, cue)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 50, sum.Percentage)
	assert.Equal(t, []bool{true, false}, cue.played)
	assert.Contains(t, out.String(), "Replay: 1 / 2 correct (50%)")
}

func TestPrintMistakes(t *testing.T) {
	var out bytes.Buffer
	printMistakes(&out, []vocab.Mistake{{Prompt: "dog", Expected: "it"}})
	assert.Contains(t, out.String(), "(blank)")

	out.Reset()
	printMistakes(&out, nil)
	assert.Equal(t, "No mistakes. Well done!\n", out.String())
}
