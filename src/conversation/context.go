package conversation

import "strings"

// buildContext frames the user message for the completion call. A knowledge
// hit is quoted ahead of the question; a miss asks for generic support.
func buildContext(message, knowledgeAnswer string) string {
	var sb strings.Builder
	if knowledgeAnswer != "" {
		sb.WriteString("Baseado na seguinte informação da knowledge base: ")
		sb.WriteString(knowledgeAnswer)
		sb.WriteString("\n\nPergunta do usuário: ")
		sb.WriteString(message)
		return sb.String()
	}

	sb.WriteString("Você é um assistente de suporte técnico. O usuário fez a seguinte pergunta que não está em nossa base de conhecimento: ")
	sb.WriteString(message)
	return sb.String()
}
