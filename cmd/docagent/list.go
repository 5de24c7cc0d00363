package main

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Store.ListDocuments(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	printDocuments(deps.Stdout, docs)
	return nil
}
