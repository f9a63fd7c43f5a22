// chatstat - statistics for exported chat logs.
//
// chatstat parses group chat exports and reports activity timelines,
// participant rankings, common words and emojis.
package main

import (
	"os"

	"github.com/chatstat/chatstat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
