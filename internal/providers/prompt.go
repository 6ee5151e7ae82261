package providers

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the user prompt. With context the model is asked to
// ground its guidance in the handbook excerpts; without it a reduced prompt is
// used so no sources are implied.
func BuildPrompt(query, context string) string {
	query = strings.TrimSpace(query)
	if strings.TrimSpace(context) == "" {
		return fmt.Sprintf("Emergency Question: %s\n\nProvide immediate TCCC field guidance:", query)
	}
	return fmt.Sprintf(`TCCC Handbook Context:
%s

Emergency Question: %s

Based on the handbook context above, provide immediate field guidance using bullet points for procedures:`, context, query)
}
