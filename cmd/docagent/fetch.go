package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/tools"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	out := deps.Tools.FetchDocument(deps.Ctx, tools.FetchDocumentInput{URL: c.URL})
	if msg, failed := strings.CutPrefix(out.Content, tools.FetchErrorPrefix); failed {
		err := docagent.Errorf(docagent.EINTERNAL, "fetching %s: %s", c.URL, msg)
		printError(deps.Stderr, err)
		return err
	}

	if c.Quiet {
		fmt.Fprintf(deps.Stdout, "Stored %s (%d bytes)\n", c.URL, len(out.Content))
		return nil
	}
	fmt.Fprintln(deps.Stdout, out.Content)
	return nil
}
