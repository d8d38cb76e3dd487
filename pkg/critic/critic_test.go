package critic

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/dtnitsch/linguacheck/models"
)

type fakeChat struct {
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
	calls   int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestCritic(chat *fakeChat) *Critic {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return New(chat, models.DefaultConfig(), logger)
}

func TestAssessQuality_ProseWrappedJSON(t *testing.T) {
	chat := &fakeChat{reply: `Sure! Here is the JSON: {"quality_score": 72, "confidence": 0.8, "summary": "minor issues"} Hope that helps!`}
	c := newTestCritic(chat)

	report := c.AssessQuality(context.Background(), "some text", "en", "")

	if !report.OK {
		t.Fatalf("report.OK = false, want true")
	}
	if report.QualityScore != 72 {
		t.Errorf("QualityScore = %d, want 72", report.QualityScore)
	}
	if report.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", report.Confidence)
	}
	if report.Summary != "minor issues" {
		t.Errorf("Summary = %q, want %q", report.Summary, "minor issues")
	}
}

func TestAssessQuality_CallFailureDegradesToErrorValue(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	c := newTestCritic(chat)

	report := c.AssessQuality(context.Background(), "some text", "en", "")

	assertEmptyQuality(t, report, "analysis_error")
}

func TestAssessQuality_NoJSONInReply(t *testing.T) {
	chat := &fakeChat{reply: "I could not produce an analysis for this text."}
	c := newTestCritic(chat)

	report := c.AssessQuality(context.Background(), "some text", "en", "")

	assertEmptyQuality(t, report, "parsing_error")
}

func TestAssessQuality_MalformedJSON(t *testing.T) {
	chat := &fakeChat{reply: `{"quality_score": seventy}`}
	c := newTestCritic(chat)

	report := c.AssessQuality(context.Background(), "some text", "en", "")

	assertEmptyQuality(t, report, "json_error")
}

func TestAssessQuality_FindingsParsed(t *testing.T) {
	chat := &fakeChat{reply: `{
		"grammatical_errors": [{"text": "he go", "correction": "he goes", "severity": "high"}],
		"translation_issues": [{"text": "foo", "issue": "literal", "suggestion": "bar"}],
		"style_issues": [],
		"terminology_issues": [],
		"quality_score": 64,
		"confidence": 0.7,
		"summary": "grammar problems"
	}`}
	c := newTestCritic(chat)

	report := c.AssessQuality(context.Background(), "he go to school", "en", "")

	if len(report.GrammaticalErrors) != 1 {
		t.Fatalf("len(GrammaticalErrors) = %d, want 1", len(report.GrammaticalErrors))
	}
	if report.GrammaticalErrors[0].Severity != "high" {
		t.Errorf("Severity = %q, want %q", report.GrammaticalErrors[0].Severity, "high")
	}
	if got := report.IssueCount(); got != 2 {
		t.Errorf("IssueCount() = %d, want 2", got)
	}
}

func TestAssessQuality_RequestShape(t *testing.T) {
	chat := &fakeChat{reply: `{"quality_score": 90}`}
	c := newTestCritic(chat)

	c.AssessQuality(context.Background(), "text body", "fr", "baseline body")

	req := chat.lastReq
	if req.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", req.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %q, want system", req.Messages[0].Role)
	}
	user := req.Messages[1].Content
	if !strings.Contains(user, "text body") {
		t.Error("user prompt does not contain the text to analyze")
	}
	if !strings.Contains(user, "BASELINE TEXT (English):") {
		t.Error("user prompt does not contain the baseline section")
	}
}

func TestAssessConsistency_Parsed(t *testing.T) {
	chat := &fakeChat{reply: `{
		"inconsistencies": [{"term": "sign in", "languages": ["en", "es"], "issue": "mixed", "suggestion": "unify"}],
		"brand_issues": [{"brand": "Acme", "issue": "misspelled", "suggestion": "Acme"}],
		"consistency_score": 70,
		"suggestions": ["build a glossary"]
	}`}
	c := newTestCritic(chat)

	report := c.AssessConsistency(context.Background(), map[string]string{"en": "a", "es": "b"}, nil)

	if !report.OK {
		t.Fatalf("report.OK = false, want true")
	}
	if report.ConsistencyScore != 70 {
		t.Errorf("ConsistencyScore = %d, want 70", report.ConsistencyScore)
	}
	if got := report.IssueCount(); got != 2 {
		t.Errorf("IssueCount() = %d, want 2", got)
	}
}

func TestAssessConsistency_FailureDegradesToErrorValue(t *testing.T) {
	chat := &fakeChat{err: errors.New("connection reset")}
	c := newTestCritic(chat)

	report := c.AssessConsistency(context.Background(), map[string]string{"en": "a", "es": "b"}, nil)

	if report.OK {
		t.Error("report.OK = true, want false")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
	}
	if report.Errors[0].Type != "analysis_error" {
		t.Errorf("Errors[0].Type = %q, want %q", report.Errors[0].Type, "analysis_error")
	}
	if report.ConsistencyScore != 0 || len(report.Inconsistencies) != 0 || len(report.BrandIssues) != 0 {
		t.Error("failure report is not the canonical empty value")
	}
}

func TestAssessConsistency_PromptIncludesKeyTerms(t *testing.T) {
	chat := &fakeChat{reply: `{"consistency_score": 100}`}
	c := newTestCritic(chat)

	c.AssessConsistency(context.Background(), map[string]string{"en": "a"}, []string{"Acme", "dashboard"})

	user := chat.lastReq.Messages[1].Content
	if !strings.Contains(user, "KEY TERMS TO CHECK: Acme, dashboard") {
		t.Errorf("user prompt missing key terms section:\n%s", user)
	}
}

func TestBuildQualityPrompt_TruncatesText(t *testing.T) {
	text := strings.Repeat("a", 3000) + "TAIL"
	prompt := buildQualityPrompt(text, "en", "")

	if strings.Contains(prompt, "TAIL") {
		t.Error("prompt contains text past the 2000 character budget")
	}
	if !strings.Contains(prompt, strings.Repeat("a", 2000)) {
		t.Error("prompt missing the truncated text body")
	}
}

func TestTruncate_BacksOffToRuneBoundary(t *testing.T) {
	got := truncate("ααααα", 5)
	if got != "αα" {
		t.Errorf("truncate() = %q, want %q", got, "αα")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncate() = %q, not valid UTF-8", got)
	}

	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate() = %q, want input unchanged under budget", got)
	}
}

func TestBuildConsistencyPrompt_DeterministicOrder(t *testing.T) {
	texts := map[string]string{"fr": "ftext", "de": "dtext", "en": "etext"}
	prompt := buildConsistencyPrompt(texts, nil)

	de := strings.Index(prompt, "DE VERSION:")
	en := strings.Index(prompt, "EN VERSION:")
	fr := strings.Index(prompt, "FR VERSION:")
	if de == -1 || en == -1 || fr == -1 {
		t.Fatalf("prompt missing a language section:\n%s", prompt)
	}
	if !(de < en && en < fr) {
		t.Errorf("language sections out of order: de=%d en=%d fr=%d", de, en, fr)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose wrapped", `here: {"a":1} done`, `{"a":1}`, true},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"no object", "nothing here", "", false},
		{"only close brace", "oops }", "", false},
		{"leading close brace ignored", `} {"a":1}`, `{"a":1}`, true},
		// A stray '}' after the object mis-slices into invalid JSON;
		// accepted limitation, the caller falls back to the error value.
		{"stray trailing brace", `{"a":1} bye }`, `{"a":1} bye }`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSON(tc.reply)
			if ok != tc.ok {
				t.Fatalf("extractJSON(%q) ok = %v, want %v", tc.reply, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.reply, got, tc.want)
			}
		})
	}
}

func assertEmptyQuality(t *testing.T, report *models.QualityReport, wantType string) {
	t.Helper()
	if report.OK {
		t.Error("report.OK = true, want false")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(report.Errors))
	}
	if report.Errors[0].Type != wantType {
		t.Errorf("Errors[0].Type = %q, want %q", report.Errors[0].Type, wantType)
	}
	if report.QualityScore != 0 || report.Confidence != 0 {
		t.Errorf("score/confidence = %d/%v, want 0/0", report.QualityScore, report.Confidence)
	}
	if report.IssueCount() != 0 {
		t.Errorf("IssueCount() = %d, want 0", report.IssueCount())
	}
}
