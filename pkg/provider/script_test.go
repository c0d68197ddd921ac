package provider

import (
	"strings"
	"testing"

	"autopublish-worker/constant"
)

func TestBuildTargetSeconds(t *testing.T) {
	cases := []struct {
		mode constant.LengthMode
		want int
	}{
		{constant.LengthModeShort, 8},
		{constant.LengthModeLong, 20},
		{constant.LengthModeAuto, 12},
		{"", 12},
	}

	builder := NewScriptBuilder()
	for _, c := range cases {
		script, err := builder.Build("Some trend", "ai", c.mode)
		if err != nil {
			t.Fatalf("build mode %q: %v", c.mode, err)
		}
		if script.TargetSeconds != c.want {
			t.Errorf("mode %q: targetSeconds = %d, want %d", c.mode, script.TargetSeconds, c.want)
		}
	}
}

func TestBuildScriptStructure(t *testing.T) {
	script, err := NewScriptBuilder().Build("AI changed my day", "ai-lifestyle", constant.LengthModeAuto)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(script.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(script.Paragraphs))
	}
	if !strings.Contains(script.Paragraphs[0], "ai-lifestyle") {
		t.Errorf("hook does not mention the niche: %q", script.Paragraphs[0])
	}
	if !strings.Contains(script.Paragraphs[1], "AI changed my day") {
		t.Errorf("body does not mention the title: %q", script.Paragraphs[1])
	}
	if script.FullText != strings.Join(script.Paragraphs, " ") {
		t.Errorf("fullText is not the joined paragraphs")
	}
	if script.LengthMode != constant.LengthModeAuto {
		t.Errorf("lengthMode = %q, want auto", script.LengthMode)
	}
}

func TestBuildUnknownLengthMode(t *testing.T) {
	if _, err := NewScriptBuilder().Build("t", "n", "extra-long"); err == nil {
		t.Fatal("expected error for unknown length mode")
	}
}
