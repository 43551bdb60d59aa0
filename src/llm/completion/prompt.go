package completion

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

func getSystemTemplate() string {
	return `[IDENTIDADE]
Você é um atendente de Helpdesk corporativo especializado em suporte técnico e orientações internas.

[OBJETIVO]
Auxiliar usuários de forma educada, objetiva e eficiente, respondendo com base **exclusivamente** nas informações da base de conhecimento corporativa fornecida como contexto.

[COMO RESPONDER]
- Use linguagem simples, profissional e empática.
- Dê respostas diretas e curtas (1 a 3 frases).
- Sempre ofereça uma solução ou próxima ação clara.
- Se houver etapas, liste-as de forma numerada.

[NÃO FAÇA]
- Não invente informações fora do contexto.
- Não forneça dados pessoais, técnicos ou internos que não constem na base.
- Não use jargões técnicos sem explicação.
- Não repita mensagens ou se desculpe em excesso.
- Se não souber a resposta, diga:
> "Não encontrei essa informação na base de conhecimento. Deseja que eu registre um chamado para análise?"

[FORMATO DE SAÍDA]
Responda apenas com o texto final para o usuário, sem incluir anotações, raciocínios internos ou metadados.`
}

// DefaultSystemPrompt is the helpdesk persona sent as the system turn
var DefaultSystemPrompt = getSystemTemplate()

// Prompt renders the system + user turns of a completion call. Both turns
// are template variables so braces inside user text or a configured system
// prompt are never interpreted.
type Prompt struct {
	systemPrompt string
	template     prompt.ChatTemplate
}

// NewPrompt creates a prompt with the given system instructions. An empty
// value selects DefaultSystemPrompt.
func NewPrompt(systemPrompt string) *Prompt {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	messages := []schema.MessagesTemplate{
		schema.SystemMessage("{system_prompt}"),
		schema.UserMessage("{content}"),
	}

	return &Prompt{
		systemPrompt: systemPrompt,
		template:     prompt.FromMessages(schema.FString, messages...),
	}
}

// SystemPrompt returns the configured system instructions
func (p *Prompt) SystemPrompt() string {
	return p.systemPrompt
}

// Template is the underlying chat template, for use as a chain node
func (p *Prompt) Template() prompt.ChatTemplate {
	return p.template
}

// Variables are the template inputs for one call
func (p *Prompt) Variables(content string) map[string]any {
	return map[string]any{
		"system_prompt": p.systemPrompt,
		"content":       content,
	}
}

// Messages formats the system turn and the caller supplied user content
func (p *Prompt) Messages(ctx context.Context, content string) ([]*schema.Message, error) {
	msgs, err := p.template.Format(ctx, p.Variables(content))
	if err != nil {
		return nil, fmt.Errorf("formatting prompt: %w", err)
	}
	return msgs, nil
}
