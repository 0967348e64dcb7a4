// Command sketch replays a recorded stroke script into a drawing session and
// submits it to a running game server.
package main

import (
	"os"

	"github.com/lshigami/sketchquiz/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	cli := commandLine{out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Error().Err(err).Msg("sketch failed")
		}
		os.Exit(1)
	}
}
