package main

import "fmt"

// Run executes the serve command. It blocks until the client disconnects
// or the process is interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.HTTP != "" {
		fmt.Fprintf(deps.Stderr, "Serving MCP over HTTP on %s\n", c.HTTP)
		return deps.Server.RunHTTP(deps.Ctx, c.HTTP)
	}
	return deps.Server.Run(deps.Ctx)
}
