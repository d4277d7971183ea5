package summary

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	prompt string
	out    string
	err    error
	block  bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func newTestService(g Generator, cfg Config) Service {
	logger, _ := test.NewNullLogger()
	return NewService(g, cfg, logger)
}

var defaultConfig = Config{MaxChars: 400, Language: "ja", TranscriptMaxChars: 10000, Timeout: time.Second}

func TestSummarize(t *testing.T) {
	g := &fakeGenerator{out: "  Goの入門動画です。\n"}
	svc := newTestService(g, defaultConfig)

	out, ok := svc.Summarize(context.Background(), "字幕テキスト", "Go入門")
	require.True(t, ok)
	assert.Equal(t, "Goの入門動画です。", out)

	assert.Contains(t, g.prompt, "日本語で400文字程度")
	assert.Contains(t, g.prompt, "動画タイトル: Go入門")
	assert.Contains(t, g.prompt, "字幕テキスト")
}

func TestSummarizeTruncatesTranscript(t *testing.T) {
	g := &fakeGenerator{out: "ok"}
	cfg := defaultConfig
	cfg.TranscriptMaxChars = 5
	svc := newTestService(g, cfg)

	_, ok := svc.Summarize(context.Background(), "あいうえおかきくけこ", "t")
	require.True(t, ok)
	assert.Contains(t, g.prompt, "あいうえお\n")
	assert.NotContains(t, g.prompt, "かきくけこ")
}

func TestSummarizeFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"provider error", &fakeGenerator{err: fmt.Errorf("quota exceeded")}},
		{"empty output", &fakeGenerator{out: "   "}},
		{"timeout", &fakeGenerator{block: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig
			cfg.Timeout = 10 * time.Millisecond
			out, ok := newTestService(tt.gen, cfg).Summarize(context.Background(), "text", "title")
			assert.False(t, ok)
			assert.Empty(t, out)
		})
	}
}

func TestBuildPromptOtherLanguage(t *testing.T) {
	prompt := buildPrompt("en", 300, "Intro to Rust", "transcript body")

	assert.True(t, strings.HasPrefix(prompt, "Write a summary of about 300 characters in English"))
	assert.Contains(t, prompt, "Video title: Intro to Rust")
	assert.Contains(t, prompt, "transcript body")
}

func TestBuildPromptInvalidLanguageFallsBackToJapanese(t *testing.T) {
	prompt := buildPrompt("not a tag!", 400, "t", "x")
	assert.Contains(t, prompt, "日本語で400文字程度")
}
