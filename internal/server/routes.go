package server

import (
	"fmt"
	"strings"

	"askdash/internal/identity"
)

// improveSkillPrefix selects learning resources for one named skill.
const improveSkillPrefix = "improve_skill:"

// Prompt ids with fixed replies; these never reach a model.
var staticReplies = map[string]string{
	"skills":   "Switching to Skills Management",
	"learning": "Switching to Learning Opportunities Dashboard",
}

var promptTemplates = map[string]string{
	"self_appraisal": "Write a first-person self appraisal for %s covering accomplishments, " +
		"impact on the team, areas of growth and goals for the next review period.",
	"endorsements": "List the professional endorsements %s has received, grouped by skill, " +
		"and note which skills are most frequently endorsed.",
	"career": "Describe the current career trajectory of %s: present role, progression so far, " +
		"likely next steps and the skills needed to get there.",
	"productivity": "Give %s a picture of their recent productivity: delivery cadence, " +
		"focus areas, and one or two concrete suggestions to improve it.",
}

// routedPrompt is what the server does with a question.
type routedPrompt struct {
	// static is returned verbatim when set.
	static string
	// instruction is sent to the model when static is empty.
	instruction string
	kind        string
}

func routeQuestion(question string, user identity.User) routedPrompt {
	question = strings.TrimSpace(question)
	if reply, ok := staticReplies[question]; ok {
		return routedPrompt{static: reply, kind: question}
	}
	subject := describeUser(user)
	if tmpl, ok := promptTemplates[question]; ok {
		return routedPrompt{instruction: fmt.Sprintf(tmpl, subject), kind: question}
	}
	if skill, ok := strings.CutPrefix(question, improveSkillPrefix); ok && strings.TrimSpace(skill) != "" {
		return routedPrompt{
			instruction: fmt.Sprintf(
				"Suggest learning resources (courses, books, hands-on projects) that would help %s improve at %s. "+
					"Order them from beginner to advanced.",
				subject, strings.TrimSpace(skill),
			),
			kind: "improve_skill",
		}
	}
	return routedPrompt{
		instruction: fmt.Sprintf("%s asks: %s", subject, question),
		kind:        "custom",
	}
}

func describeUser(user identity.User) string {
	name := user.FullName()
	email := strings.TrimSpace(user.Email)
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s (%s)", name, email)
	case name != "":
		return name
	case email != "":
		return email
	default:
		return "the user"
	}
}
