// Package docagent provides a document-analysis assistant. It retrieves
// documents from URLs or a local cache, asks a language model to extract or
// locate information in them, and exposes those capabilities as tools that
// an orchestrating agent can call.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, openai/, mcp/).
package docagent
