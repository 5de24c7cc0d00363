package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/tools"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	out := deps.Tools.GetDocument(deps.Ctx, tools.GetDocumentInput{URL: c.URL})
	if out.Content == tools.NotFoundContent && len(out.Metadata) == 0 {
		err := docagent.Errorf(docagent.ENOTFOUND, "document %q not found. Use 'docagent fetch' to add it.", c.URL)
		printError(deps.Stderr, err)
		return err
	}

	if c.Metadata {
		data, err := json.MarshalIndent(out.Metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	fmt.Fprintln(deps.Stdout, out.Content)
	return nil
}
