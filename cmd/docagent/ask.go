package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docagent"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	if query == "" {
		err := docagent.Errorf(docagent.EINVALID, "query is required")
		printError(deps.Stderr, err)
		return err
	}

	resp, err := answer(deps, query)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, resp.Text)
	printToolsUsed(deps.Stdout, resp.ToolInvocations)
	return nil
}

// answer runs the agent on message with the full tool catalog.
func answer(deps *Dependencies, message string) (*docagent.Response, error) {
	catalog, err := deps.Tools.Tools()
	if err != nil {
		return nil, err
	}
	return deps.Agent.Run(deps.Ctx, deps.Instructions, catalog, message)
}
