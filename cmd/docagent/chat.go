package main

import (
	"bufio"
	"fmt"
	"strings"
)

// Run executes the chat command: a read-eval-print loop over Stdin that
// ends on "exit" or end of input.
func (c *ChatCmd) Run(deps *Dependencies) error {
	docs, err := deps.Store.ListDocuments(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	printBanner(deps.Stdout, docs)

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(deps.Stdout, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}
		if err := deps.Ctx.Err(); err != nil {
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(deps.Stdout, "Goodbye!")
			return nil
		case "help":
			docs, err := deps.Store.ListDocuments(deps.Ctx)
			if err != nil {
				printError(deps.Stderr, err)
				continue
			}
			printBanner(deps.Stdout, docs)
			continue
		case "list":
			docs, err := deps.Store.ListDocuments(deps.Ctx)
			if err != nil {
				printError(deps.Stderr, err)
				continue
			}
			fmt.Fprintln(deps.Stdout)
			printDocuments(deps.Stdout, docs)
			continue
		}

		fmt.Fprintln(deps.Stdout, mutedStyle.Render("\nProcessing..."))
		resp, err := answer(deps, input)
		if err != nil {
			printError(deps.Stderr, err)
			continue
		}
		fmt.Fprintf(deps.Stdout, "\nAgent: %s\n", resp.Text)
		printToolsUsed(deps.Stdout, resp.ToolInvocations)
	}
}
