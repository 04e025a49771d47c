package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/vocab"
)

type startBody struct {
	Direction vocab.Direction `json:"direction"`
	Start     int             `json:"start"`
	End       int             `json:"end"`
}

type startReply struct {
	SessionID      vocab.ID `json:"session_id"`
	TotalWords     int      `json:"total_words"`
	TotalQuestions int      `json:"total_questions"`
}

type sessionBody struct {
	SessionID vocab.ID `json:"session_id"`
}

type answerBody struct {
	SessionID vocab.ID `json:"session_id"`
	Answer    string   `json:"answer"`
}

type questionReply struct {
	Finished bool   `json:"finished"`
	Question string `json:"question"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
}

func (q questionReply) question() quiz.Question {
	return quiz.Question{Finished: q.Finished, Prompt: q.Question, Progress: q.Progress, Total: q.Total}
}

type answerReply struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Finished bool   `json:"finished"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
}

type mistakeReply struct {
	Prompt   string `json:"prompt"`
	Expected string `json:"expected"`
	Provided string `json:"provided"`
}

type finishReply struct {
	SessionID      vocab.ID       `json:"session_id"`
	TotalQuestions int            `json:"total_questions"`
	Correct        int            `json:"correct"`
	Wrong          int            `json:"wrong"`
	Percentage     float64        `json:"percentage"`
	Mistakes       []mistakeReply `json:"mistakes"`
}

// StartTest opens a quiz session over the given index range.
func (c *Client) StartTest(ctx context.Context, req quiz.StartRequest) (quiz.Started, error) {
	var out startReply
	body := startBody{Direction: req.Direction, Start: req.Start, End: req.End}
	if err := c.do(ctx, OpStartTest, http.MethodPost, "/test/start", nil, body, &out, startSchema); err != nil {
		return quiz.Started{}, err
	}
	return quiz.Started{SessionID: out.SessionID, TotalWords: out.TotalWords, TotalQuestions: out.TotalQuestions}, nil
}

// Question fetches the session's current prompt.
func (c *Client) Question(ctx context.Context, sessionID vocab.ID) (quiz.Question, error) {
	var out questionReply
	query := url.Values{"session_id": {sessionID.String()}}
	if err := c.do(ctx, OpQuestion, http.MethodGet, "/test/question", query, nil, &out, questionSchema); err != nil {
		return quiz.Question{}, err
	}
	return out.question(), nil
}

// Answer submits an answer for the current prompt.
func (c *Client) Answer(ctx context.Context, sessionID vocab.ID, answer string) (quiz.Answer, error) {
	var out answerReply
	body := answerBody{SessionID: sessionID, Answer: answer}
	if err := c.do(ctx, OpAnswer, http.MethodPost, "/test/answer", nil, body, &out, answerSchema); err != nil {
		return quiz.Answer{}, err
	}
	return quiz.Answer{
		Correct:  out.Correct,
		Expected: out.Expected,
		Finished: out.Finished,
		Progress: out.Progress,
		Total:    out.Total,
	}, nil
}

// Next advances the session and returns the new current prompt.
func (c *Client) Next(ctx context.Context, sessionID vocab.ID) (quiz.Question, error) {
	var out questionReply
	if err := c.do(ctx, OpNext, http.MethodPost, "/test/next", nil, sessionBody{SessionID: sessionID}, &out, questionSchema); err != nil {
		return quiz.Question{}, err
	}
	return out.question(), nil
}

// Finish closes the session and returns its score.
func (c *Client) Finish(ctx context.Context, sessionID vocab.ID) (vocab.SessionResult, error) {
	var out finishReply
	if err := c.do(ctx, OpFinish, http.MethodPost, "/test/finish", nil, sessionBody{SessionID: sessionID}, &out, finishSchema); err != nil {
		return vocab.SessionResult{}, err
	}

	res := vocab.SessionResult{
		SessionID:      out.SessionID,
		TotalQuestions: out.TotalQuestions,
		Correct:        out.Correct,
		Wrong:          out.Wrong,
		Percentage:     vocab.ClampPercentage(out.Percentage),
	}
	if out.Mistakes != nil {
		res.Mistakes = make([]vocab.Mistake, 0, len(out.Mistakes))
	}
	if res.TotalQuestions == 0 {
		res.TotalQuestions = out.Correct + out.Wrong
	}
	for _, m := range out.Mistakes {
		res.Mistakes = append(res.Mistakes, vocab.Mistake{Prompt: m.Prompt, Expected: m.Expected, Provided: m.Provided})
	}
	return res, nil
}
