package api

import (
	"context"
	"net/http"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// QuizQuestions returns the awareness quiz.
func (c *Client) QuizQuestions(ctx context.Context) ([]model.QuizQuestion, error) {
	var out model.QuizQuestions
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/quiz/questions/",
		fallback: "Failed to load questions",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// SubmitQuiz grades answers, keyed by question id with the chosen option id.
// Signed-in users get the attempt recorded in their history.
func (c *Client) SubmitQuiz(ctx context.Context, answers map[string]int64) (*model.QuizSubmitResponse, error) {
	if answers == nil {
		answers = map[string]int64{}
	}

	var out model.QuizSubmitResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/quiz/submit/",
		auth:     authOptional,
		fallback: "Submit failed",
		jsonBody: map[string]any{"answers": answers},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// QuizHistory returns a page of the user's quiz attempts.
func (c *Client) QuizHistory(ctx context.Context, page, limit int) (*model.QuizHistory, error) {
	var out model.QuizHistory
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/quiz/history/",
		query:    pageQuery(page, limit),
		auth:     authRequired,
		fallback: "Failed to load quiz history",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
