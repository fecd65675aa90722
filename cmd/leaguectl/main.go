// leaguectl is the operator CLI: schema bootstrap, first admin, demo data.
package main

import "github.com/ErlanBelekov/league-manager/internal/cli"

func main() {
	cli.Execute()
}
