package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "ring",
		Usage: "play with circular doubly linked lists",
		Commands: []*cli.Command{{
			Name:  "demo",
			Usage: "run a sample sequence of ring operations in process",
			Action: func(c *cli.Context) error {
				return demo(c.App.Writer)
			},
		}, {
			Name:      "exec",
			Usage:     "send one command to a running ringd",
			ArgsUsage: "COMMAND [ARG...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "addr",
					Aliases: []string{"a"},
					Value:   "localhost:6380",
					Usage:   "ringd RESP address",
					EnvVars: []string{"RINGD_ADDR"},
				},
			},
			Action: execCommand,
		}},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
