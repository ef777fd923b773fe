package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

func execCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing COMMAND", 2)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:            c.String("addr"),
		Protocol:        2,
		DisableIdentity: true,
	})
	defer rdb.Close()

	args := make([]any, c.NArg())
	for i, a := range c.Args().Slice() {
		args[i] = a
	}
	res, err := rdb.Do(c.Context, args...).Result()
	var rerr redis.Error
	switch {
	case errors.Is(err, redis.Nil):
		res = nil
	case errors.As(err, &rerr):
		fmt.Fprintf(c.App.Writer, "(error) %s\n", rerr)
		return nil
	case err != nil:
		return err
	}
	writeReply(c.App.Writer, res, "")
	return nil
}

// writeReply prints a reply the way redis-cli does.
func writeReply(w io.Writer, res any, indent string) {
	switch r := res.(type) {
	case nil:
		fmt.Fprintln(w, "(nil)")
	case int64:
		fmt.Fprintf(w, "(integer) %d\n", r)
	case string:
		fmt.Fprintln(w, r)
	case []any:
		if len(r) == 0 {
			fmt.Fprintln(w, "(empty array)")
			return
		}
		for i, x := range r {
			prefix := fmt.Sprintf("%d) ", i+1)
			if i > 0 {
				fmt.Fprint(w, indent)
			}
			fmt.Fprint(w, prefix)
			writeReply(w, x, indent+strings.Repeat(" ", len(prefix)))
		}
	default:
		fmt.Fprintf(w, "%v\n", r)
	}
}
