package agent

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docagent"
)

// DefaultInstructions are the system instructions of the document-analysis
// assistant.
const DefaultInstructions = `You are a Document Analysis Assistant that helps users extract valuable information from documents.

When given a task:
1. If you need to analyze a document, first use fetch_document to get its content.
2. Use extract_info to identify specific information in the document.
3. Use search_document to find answers to specific questions.
4. Summarize your findings in a clear, organized manner.

You can manage documents with:
- list_documents to see all stored documents
- get_document to retrieve a previously fetched document

Always be thorough and accurate in your analysis. If the document content is too large, focus on the most relevant sections for the user's query.`

const toolProtocol = `To call a tool, reply with ONLY a JSON object and nothing else:
{"tool": "<tool name>", "input": {<arguments matching the tool's input schema>}}

The tool result will be sent back to you. When you have enough information,
reply with your final answer as plain text, without any JSON tool call.`

const finalAnswerPrompt = `You have used all available tool calls. Answer the original request now as plain text using the tool results above. Do not call any more tools.`

// buildSystemPrompt joins instructions with the tool catalog.
func buildSystemPrompt(instructions string, tools []*docagent.Tool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(instructions))
	if len(tools) == 0 {
		return b.String()
	}

	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "\n- %s: %s\n  input schema: %s\n", t.Name, t.Description, compact(t.InputSchema))
	}
	b.WriteString("\n")
	b.WriteString(toolProtocol)
	return b.String()
}

func toolResultMessage(name, result string) string {
	return fmt.Sprintf("Tool result for %s:\n%s", name, result)
}

func unknownToolMessage(name string, tools []*docagent.Tool) string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return fmt.Sprintf("Unknown tool %q. Available tools: %s.", name, strings.Join(names, ", "))
}
