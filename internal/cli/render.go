package cli

import (
	"fmt"
	"strings"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/synthesis"
)

// RenderDetection formats a classification result for the terminal.
func RenderDetection(det model.DetectionResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Classification"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Type:"), det.Type))
	b.WriteString(fmt.Sprintf("%s %.2f\n", LabelStyle.Render("Confidence:"), det.Confidence))
	if det.Note != "" {
		b.WriteString(SubtleStyle.Render(det.Note))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFields formats extracted fields for the terminal.
func RenderFields(fields model.ExtractedFields) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Extracted Fields"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Title:"), fields.Title))

	if fields.TargetAmount != nil {
		b.WriteString(fmt.Sprintf("%s %d\n", LabelStyle.Render("Target amount:"), *fields.TargetAmount))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Target amount:"), SubtleStyle.Render("none")))
	}

	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Timeline:"), renderTimeline(fields.Timeline)))
	b.WriteString(fmt.Sprintf("%s %d\n", LabelStyle.Render("Affirmations:"), len(fields.Affirmations)))
	for _, a := range fields.Affirmations {
		b.WriteString(SubtleStyle.Render("  • " + a))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s %d weeks, %d tasks\n",
		LabelStyle.Render("Action plan:"), len(fields.ActionSteps), model.TaskCount(fields.ActionSteps)))
	if len(fields.Crystals) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Crystals:"), strings.Join(fields.Crystals, ", ")))
	}
	return b.String()
}

// RenderResult formats a synthesis result for the terminal.
func RenderResult(result *synthesis.Result) string {
	var b strings.Builder
	if result.Success {
		b.WriteString(SuccessStyle.Render("✓ " + result.Message))
	} else {
		b.WriteString(WarningStyle.Render("✗ " + result.Message))
	}
	b.WriteString("\n")

	if result.Goal != nil {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", LabelStyle.Render("Goal:"), result.Goal.Title, result.Goal.Category))
	}
	for _, w := range result.Widgets {
		b.WriteString(fmt.Sprintf("  widget %s (%s)\n", w.Type, w.ID))
	}
	for _, r := range result.Reminders {
		b.WriteString(fmt.Sprintf("  reminder %s at %s\n", r.Kind, r.TimeOfDay))
	}
	for _, e := range result.Errors {
		b.WriteString(ErrorStyle.Render("  ! " + e))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSuggestions formats ad-hoc suggestions for the terminal.
func RenderSuggestions(suggestions []model.Suggestion) string {
	if len(suggestions) == 0 {
		return SubtleStyle.Render("no suggestions") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Suggestions"))
	b.WriteString("\n")
	for _, s := range suggestions {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("["+string(s.Kind)+"]"), s.Title))
	}
	return b.String()
}

func renderTimeline(tl model.Timeline) string {
	switch {
	case tl.Months > 0:
		return fmt.Sprintf("%d months", tl.Months)
	case tl.Weeks > 0:
		return fmt.Sprintf("%d weeks", tl.Weeks)
	case tl.Days > 0:
		return fmt.Sprintf("%d days", tl.Days)
	default:
		return "unset"
	}
}
