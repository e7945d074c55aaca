// Command mockwatchlogs runs the CloudWatch Logs emulator.
package main

import "github.com/getmockd/mockwatchlogs/pkg/cli"

func main() {
	cli.Execute()
}
