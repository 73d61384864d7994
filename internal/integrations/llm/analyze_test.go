package llm

import (
	"testing"

	"nippo/internal/domain"
)

func TestParseAnalysis(t *testing.T) {
	raw := `{"summary": "SNS運用を中心に作業した一日。", "suggestions": ["タスクの優先度を見直す"], "sentiment": "positive"}`
	analysis, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Summary != "SNS運用を中心に作業した一日。" {
		t.Errorf("summary = %q", analysis.Summary)
	}
	if len(analysis.Suggestions) != 1 || analysis.Suggestions[0] != "タスクの優先度を見直す" {
		t.Errorf("suggestions = %v", analysis.Suggestions)
	}
	if analysis.Sentiment != domain.SentimentPositive {
		t.Errorf("sentiment = %q", analysis.Sentiment)
	}
}

func TestParseAnalysisStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"summary\": \"順調。\", \"suggestions\": [], \"sentiment\": \"neutral\"}\n```"
	analysis, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Summary != "順調。" {
		t.Errorf("summary = %q", analysis.Summary)
	}
}

func TestParseAnalysisUnknownSentimentDefaultsNeutral(t *testing.T) {
	raw := `{"summary": "s", "suggestions": [], "sentiment": "ecstatic"}`
	analysis, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Sentiment != domain.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral", analysis.Sentiment)
	}
}

func TestParseAnalysisRejectsMissingSummary(t *testing.T) {
	if _, err := parseAnalysis(`{"suggestions": ["x"], "sentiment": "neutral"}`); err == nil {
		t.Error("expected error for missing summary")
	}
}

func TestParseAnalysisRejectsInvalidJSON(t *testing.T) {
	if _, err := parseAnalysis("the report looks fine to me"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestFallbackAnalysis(t *testing.T) {
	fb := FallbackAnalysis()
	if fb.Summary != "分析できませんでした。" {
		t.Errorf("summary = %q", fb.Summary)
	}
	if len(fb.Suggestions) != 1 || fb.Suggestions[0] != "継続して業務に取り組んでください。" {
		t.Errorf("suggestions = %v", fb.Suggestions)
	}
	if fb.Sentiment != domain.SentimentNeutral {
		t.Errorf("sentiment = %q", fb.Sentiment)
	}
}

func TestNewAnalyzerDefaultsModel(t *testing.T) {
	a := NewAnalyzer("key", "")
	if a.model != defaultAnthropicModel {
		t.Errorf("model = %q, want default", a.model)
	}
	a = NewAnalyzer("key", "custom-model")
	if a.model != "custom-model" {
		t.Errorf("model = %q", a.model)
	}
}
