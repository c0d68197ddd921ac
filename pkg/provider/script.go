package provider

import (
	"fmt"
	"strings"

	"autopublish-worker/constant"
	"autopublish-worker/entities"
)

// TemplateScriptBuilder synthesizes a three-part script (hook, body, outro)
// from fixed templates. A real deployment would call an LLM here.
type TemplateScriptBuilder struct{}

func NewScriptBuilder() TemplateScriptBuilder {
	return TemplateScriptBuilder{}
}

func (TemplateScriptBuilder) Build(title, niche string, mode constant.LengthMode) (entities.Script, error) {
	var target int
	switch mode {
	case constant.LengthModeShort:
		target = 8
	case constant.LengthModeLong:
		target = 20
	case constant.LengthModeAuto, "":
		mode = constant.LengthModeAuto
		target = 12
	default:
		return entities.Script{}, fmt.Errorf("unknown length mode %q", mode)
	}

	hook := fmt.Sprintf("Stop scrolling – this %s secret will change how you think about AI!", niche)
	body := fmt.Sprintf("Today we follow a real example: %q. I will show you, step by step, how AI does the heavy lifting while you just make decisions.", title)
	outro := "If you want more AI-powered content like this, follow for the next episode – it is already generating."

	paragraphs := []string{hook, body, outro}
	return entities.Script{
		LengthMode:    mode,
		TargetSeconds: target,
		Paragraphs:    paragraphs,
		FullText:      strings.Join(paragraphs, " "),
	}, nil
}
