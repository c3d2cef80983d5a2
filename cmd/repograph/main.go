// Command repograph builds file dependency graphs of GitHub repositories
// from the command line, as an HTTP gateway, or as an MCP tool server.
package main

func main() {
	Execute()
}
