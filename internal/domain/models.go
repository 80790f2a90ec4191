package domain

// Question is a normalized multiple-choice question. Answers holds the correct
// answer exactly once, in an order fixed when the question is built.
type Question struct {
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answers       []string `json:"answers"`
}

// RawQuestion is a provider record before decoding and shuffling.
type RawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// RawBatch is one provider response.
type RawBatch struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// Phase is the coarse state of a quiz session.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Verdict is returned after an answer is selected so the caller can render
// feedback for every choice.
type Verdict struct {
	Selected      string `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
}

// Snapshot is a read-only view of a session for presentation layers.
type Snapshot struct {
	SessionID       string   `json:"sessionId"`
	Phase           Phase    `json:"phase"`
	Question        string   `json:"question,omitempty"`
	Answers         []string `json:"answers,omitempty"`
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	Score           int      `json:"score"`
	ProgressPercent float64  `json:"progressPercent"`
	Answered        bool     `json:"answered"`
	IsFinished      bool     `json:"isFinished"`
	Verdict         *Verdict `json:"verdict,omitempty"`
	Error           string   `json:"error,omitempty"`
	ResultMessage   string   `json:"resultMessage,omitempty"`
}
