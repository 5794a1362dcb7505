package model

// QuizOption is one answer choice of a quiz question.
type QuizOption struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizQuestion is a scam awareness question.
type QuizQuestion struct {
	ID          int64        `json:"id"`
	Question    string       `json:"question"`
	Options     []QuizOption `json:"options"`
	Explanation string       `json:"explanation"`
	Category    string       `json:"category"`
	Difficulty  string       `json:"difficulty"`
}

// QuizQuestions is the body returned by the questions endpoint.
type QuizQuestions struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizSubmitResponse is the graded result of a quiz submission.
type QuizSubmitResponse struct {
	Score      int      `json:"score"`
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
	Feedback   []string `json:"feedback"`
}

// QuizAttempt is one entry of the user's quiz history.
type QuizAttempt struct {
	ID             int64   `json:"id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	CompletedAt    string  `json:"completed_at"`
}

// QuizHistory is a page of quiz attempts.
type QuizHistory struct {
	Attempts []QuizAttempt `json:"attempts"`
	Page
}
