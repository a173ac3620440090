package agent

import (
	"fmt"
	"strings"
	"unicode"
)

// IdeasPerPrompt is how many ideas every technique prompt asks for
const IdeasPerPrompt = 3

// BuildPrompt asks the model for IdeasPerPrompt numbered ideas. The context
// line is left out when problemContext is empty.
func BuildPrompt(def Definition, problem, problemContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Aplica la técnica SCAMPER de %s al siguiente problema:\n", def.PromptVerb)
	fmt.Fprintf(&b, "Problema: %s\n", problem)
	if problemContext != "" {
		fmt.Fprintf(&b, "Contexto: %s\n", problemContext)
	}

	fmt.Fprintf(&b, "\nGenera exactamente %d ideas creativas preguntándote:\n", IdeasPerPrompt)
	for _, q := range def.PromptQuestions {
		fmt.Fprintf(&b, "- %s\n", q)
	}

	b.WriteString("\nFormato de respuesta:\n")
	for i := 1; i <= IdeasPerPrompt; i++ {
		fmt.Fprintf(&b, "%d. [Idea específica y concreta]\n", i)
	}

	return b.String()
}

// Explanation describes how the agent looked at the problem
func Explanation(def Definition, problem string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s analizó '%s' preguntándose:\n\n", def.AnalystName, problem)
	for _, q := range def.ExplanationQuestions {
		fmt.Fprintf(&b, "• %s\n", q)
	}
	b.WriteString("\n")
	b.WriteString(def.ExplanationClosing)

	return b.String()
}

// ParseIdeas extracts list items from a model answer. Lines starting with a
// digit, "-" or "•" are items; their marker is stripped. When no line looks
// like an item the whole answer is a single idea. At most limit ideas are
// returned when limit is positive.
func ParseIdeas(answer string, limit int) []string {
	var ideas []string

	for _, line := range strings.Split(strings.TrimSpace(answer), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListItem(line) {
			continue
		}
		if idea := stripMarker(line); idea != "" {
			ideas = append(ideas, idea)
		}
	}

	if len(ideas) == 0 {
		if whole := strings.TrimSpace(answer); whole != "" {
			ideas = []string{whole}
		}
	}

	if limit > 0 && len(ideas) > limit {
		ideas = ideas[:limit]
	}
	return ideas
}

func isListItem(line string) bool {
	r := []rune(line)[0]
	return unicode.IsDigit(r) || r == '-' || r == '•'
}

func stripMarker(line string) string {
	switch {
	case strings.HasPrefix(line, "-"):
		return strings.TrimSpace(strings.TrimPrefix(line, "-"))
	case strings.HasPrefix(line, "•"):
		return strings.TrimSpace(strings.TrimPrefix(line, "•"))
	}

	digits := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits <= 0 {
		return line
	}
	rest := line[digits:]
	if strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")") {
		return strings.TrimSpace(rest[1:])
	}
	// "2024 será el año..." is a sentence, not a numbered item
	return line
}
