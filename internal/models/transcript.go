// Package models defines the transcript and dashboard data model shared by
// the data source, selectors, and rendering layers.
package models

// Decision is the binary outcome attached to a transcript by the external
// grading process. Anything other than DecisionPass is counted as a fail.
type Decision string

const (
	DecisionPass Decision = "pass"
	DecisionFail Decision = "fail"
)

// ExamQuestion is one exam item. Choices is absent or empty for free-text
// questions.
type ExamQuestion struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices,omitempty"`
}

// Exam is the generated question set for one commit.
type Exam struct {
	ProtocolVersion string         `json:"protocol_version"`
	Questions       []ExamQuestion `json:"questions"`
}

// Answers maps question IDs to free-text answers. Exports produced with
// answers stripped carry an empty map.
type Answers struct {
	Answers map[string]string `json:"answers"`
}

// Get returns the answer for a question ID, or "" when absent.
func (a Answers) Get(id string) string {
	return a.Answers[id]
}

// QuestionScore is the per-question grading row.
type QuestionScore struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Score        float64  `json:"score"`
	Completeness float64  `json:"completeness"`
	Specificity  float64  `json:"specificity"`
	Notes        []string `json:"notes"`
}

// Score is the aggregate grade plus zero-or-more integrity flags.
type Score struct {
	TotalScore         float64         `json:"total_score"`
	PerQuestion        []QuestionScore `json:"per_question"`
	HallucinationFlags []string        `json:"hallucination_flags"`
}

// DiffFingerprint identifies the graded change, independent of the commit sha.
type DiffFingerprint struct {
	PatchID string `json:"patch_id"`
}

// PolicyThresholds records the policy the decision was evaluated against.
type PolicyThresholds struct {
	MinTotalScore         float64  `json:"min_total_score"`
	RequiredCategories    []string `json:"required_categories"`
	MaxHallucinationFlags int      `json:"max_hallucination_flags"`
}

// ProviderMetadata records which grader produced the score.
type ProviderMetadata struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
}

// Transcript is the auditable record of one exam attempt. Immutable once
// loaded. Timestamps stay as strings: nested content is never validated, so
// decoding must not fail on sparse or malformed nested values.
type Transcript struct {
	SchemaVersion   string           `json:"schema_version"`
	Commit          string           `json:"commit,omitempty"`
	Timestamp       string           `json:"timestamp"`
	RepoID          string           `json:"repo_id"`
	RepoFingerprint string           `json:"repo_fingerprint"`
	DiffFingerprint DiffFingerprint  `json:"diff_fingerprint"`
	Exam            Exam             `json:"exam"`
	Answers         Answers          `json:"answers"`
	Score           Score            `json:"score"`
	Decision        Decision         `json:"decision"`
	Thresholds      PolicyThresholds `json:"thresholds"`
	Provider        ProviderMetadata `json:"provider"`
}

// Flags returns the hallucination flags, never nil.
func (t Transcript) Flags() []string {
	if t.Score.HallucinationFlags == nil {
		return []string{}
	}
	return t.Score.HallucinationFlags
}
