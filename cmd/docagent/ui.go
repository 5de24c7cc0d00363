package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docagent"
)

const bannerWidth = 60

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Width(bannerWidth).Align(lipgloss.Center)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	rule         = strings.Repeat("=", bannerWidth)
)

func printBanner(w io.Writer, docs []*docagent.DocumentInfo) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render("Document Analysis Agent"))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This agent can analyze documents, extract information, and search for content.")
	fmt.Fprintln(w, "It also has document memory to store and retrieve documents between sessions.")
	if len(docs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%d documents already in memory:", len(docs))))
		for i, doc := range docs {
			fmt.Fprintf(w, "  %d. %s\n", i+1, doc.URL)
		}
	}
	fmt.Fprintln(w)
	printHelp(w)
	fmt.Fprintln(w, rule)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  'exit' - Quit the program")
	fmt.Fprintln(w, "  'list' - Show stored documents")
	fmt.Fprintln(w, "  'help' - Show this help message")
}

func printDocuments(w io.Writer, docs []*docagent.DocumentInfo) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents in memory yet. Use 'docagent fetch <url>' or ask the agent to fetch one.")
		return
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Documents in memory (%d):", len(docs))))
	for i, doc := range docs {
		fetchedAt, _ := doc.Metadata[docagent.MetaFetchedAt].(string)
		if fetchedAt == "" {
			fetchedAt = "unknown time"
		}
		line := fmt.Sprintf("  %d. %s %s", i+1, doc.URL, mutedStyle.Render("(fetched: "+fetchedAt+")"))
		if title, _ := doc.Metadata[docagent.MetaTitle].(string); title != "" {
			line += "\n     " + mutedStyle.Render(title)
		}
		fmt.Fprintln(w, line)
	}
}

func printToolsUsed(w io.Writer, invocations []docagent.ToolInvocation) {
	if len(invocations) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Tools used:"))
	for _, inv := range invocations {
		fmt.Fprintf(w, "  • %s(%s)\n", inv.Name, formatInput(inv.Input))
	}
}

// formatInput renders tool arguments as key='value' pairs in key order.
func formatInput(input map[string]any) string {
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s='%s'", k, formatValue(input[k])))
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		if r := []rune(s); len(r) > 60 {
			return string(r[:57]) + "..."
		}
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+docagent.ErrorMessage(err)))
}
