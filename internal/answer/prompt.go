package answer

import (
	"fmt"
	"strings"
)

// groundingInstruction keeps the model honest: answers come from the supplied
// text or not at all.
const groundingInstruction = `You are a document question-answering assistant. Answer strictly and only from the document text supplied by the user. If the document does not contain the answer, reply exactly: "The document does not contain this information." Do not use outside knowledge and do not guess.`

// BuildPrompt embeds the selected document text as context and the question
// as the task, and asks for a structured, digestible answer.
func BuildPrompt(contextText, question string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	sb.WriteString(`Please provide your answer in a clear, structured format:
1. Use bullet points or numbered lists where appropriate
2. Break down complex information into smaller, digestible points
3. Highlight key information using markdown formatting
4. Keep each point concise and focused

Answer:`)
	return sb.String()
}
