package resp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Avik32223/ringd/internal/store"
	"github.com/Avik32223/ringd/pkg/ring"
)

var (
	errorIndexOutOfRange = errors.New("ERR index out of range")
	errorEmptyList       = errors.New("ERR list is empty")
	errorNotInteger      = errors.New("ERR value is not an integer or out of range")
	errorInvalidCommand  = errors.New("ERR invalid command")
)

type Command func(*store.Keyspace, ...string) (any, error)

var commandMap = map[string]Command{
	"command":   command,
	"ping":      ping,
	"echo":      echo,
	"exists":    exists,
	"del":       del,
	"lpush":     lpush,
	"rpush":     rpush,
	"linsertat": linsertat,
	"lpop":      lpop,
	"rpop":      rpop,
	"lremat":    lremat,
	"lfind":     lfind,
	"lpos":      lpos,
	"llen":      llen,
	"lindex":    lindex,
	"lset":      lset,
	"lreverse":  lreverse,
	"lrange":    lrange,
	"lrevrange": lrevrange,
}

func wrongArity(name string) error {
	return fmt.Errorf("ERR wrong number of arguments for '%s' command", name)
}

// replyError turns ring and keyspace errors into protocol errors.
func replyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ring.ErrIndexOutOfRange), errors.Is(err, store.ErrKeyAbsent):
		return errorIndexOutOfRange
	case errors.Is(err, ring.ErrEmptyList):
		return errorEmptyList
	}
	return fmt.Errorf("ERR %s", err)
}

func parseInts(ca []string) ([]int, error) {
	res := make([]int, 0, len(ca))
	for _, c := range ca {
		v, err := strconv.Atoi(c)
		if err != nil {
			return nil, errorNotInteger
		}
		res = append(res, v)
	}
	return res, nil
}

func ping(ks *store.Keyspace, ca ...string) (any, error) {
	return "PONG", nil
}

func echo(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 1 {
		return nil, wrongArity("echo")
	}
	return ca[0], nil
}

func command(ks *store.Keyspace, ca ...string) (any, error) {
	return []any{}, nil
}

func exists(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) < 1 {
		return nil, wrongArity("exists")
	}
	return ks.Exists(ca...), nil
}

func del(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) < 1 {
		return nil, wrongArity("del")
	}
	return ks.Delete(ca...), nil
}

func push(name string, ks *store.Keyspace, ca []string, front bool) (any, error) {
	if len(ca) < 2 {
		return nil, wrongArity(name)
	}
	vs, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	size := 0
	err = ks.Update(ca[0], true, func(r *ring.Ring) error {
		for _, v := range vs {
			if front {
				r.Prepend(v)
			} else {
				r.Append(v)
			}
		}
		size = r.Len()
		return nil
	})
	return size, replyError(err)
}

func lpush(ks *store.Keyspace, ca ...string) (any, error) {
	return push("lpush", ks, ca, true)
}

func rpush(ks *store.Keyspace, ca ...string) (any, error) {
	return push("rpush", ks, ca, false)
}

func linsertat(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 3 {
		return nil, wrongArity("linsertat")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	size := 0
	err = ks.Update(ca[0], true, func(r *ring.Ring) error {
		if _, err := r.InsertAt(args[1], args[0]); err != nil {
			return err
		}
		size = r.Len()
		return nil
	})
	if err != nil {
		return nil, replyError(err)
	}
	return size, nil
}

func pop(name string, ks *store.Keyspace, ca []string, front bool) (any, error) {
	if len(ca) != 1 {
		return nil, wrongArity(name)
	}
	var v int
	err := ks.Update(ca[0], false, func(r *ring.Ring) (err error) {
		if front {
			v, err = r.RemoveFront()
		} else {
			v, err = r.RemoveBack()
		}
		return err
	})
	if errors.Is(err, store.ErrKeyAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, replyError(err)
	}
	return v, nil
}

func lpop(ks *store.Keyspace, ca ...string) (any, error) {
	return pop("lpop", ks, ca, true)
}

func rpop(ks *store.Keyspace, ca ...string) (any, error) {
	return pop("rpop", ks, ca, false)
}

func lremat(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 2 {
		return nil, wrongArity("lremat")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	var v int
	err = ks.Update(ca[0], false, func(r *ring.Ring) (err error) {
		v, err = r.RemoveAt(args[0])
		return err
	})
	if err != nil {
		return nil, replyError(err)
	}
	return v, nil
}

func lfind(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 2 {
		return nil, wrongArity("lfind")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	found := 0
	err = ks.View(ca[0], func(r *ring.Ring) error {
		if r.Contains(args[0]) {
			found = 1
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyAbsent) {
		return nil, replyError(err)
	}
	return found, nil
}

func lpos(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 2 {
		return nil, wrongArity("lpos")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	i := -1
	err = ks.View(ca[0], func(r *ring.Ring) error {
		i = r.IndexOf(args[0])
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyAbsent) {
		return nil, replyError(err)
	}
	return i, nil
}

func llen(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 1 {
		return nil, wrongArity("llen")
	}
	size := 0
	err := ks.View(ca[0], func(r *ring.Ring) error {
		size = r.Len()
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyAbsent) {
		return nil, replyError(err)
	}
	return size, nil
}

func lindex(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 2 {
		return nil, wrongArity("lindex")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	var v int
	err = ks.View(ca[0], func(r *ring.Ring) (err error) {
		v, err = r.ValueAt(args[0])
		return err
	})
	if err != nil {
		return nil, replyError(err)
	}
	return v, nil
}

func lset(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 3 {
		return nil, wrongArity("lset")
	}
	args, err := parseInts(ca[1:])
	if err != nil {
		return nil, err
	}
	err = ks.Update(ca[0], false, func(r *ring.Ring) error {
		e, err := r.NodeAt(args[0])
		if err != nil {
			return err
		}
		return r.SetValue(e, args[1])
	})
	if err != nil {
		return nil, replyError(err)
	}
	return "OK", nil
}

func lreverse(ks *store.Keyspace, ca ...string) (any, error) {
	if len(ca) != 1 {
		return nil, wrongArity("lreverse")
	}
	err := ks.Update(ca[0], false, func(r *ring.Ring) error {
		r.Reverse()
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyAbsent) {
		return nil, replyError(err)
	}
	return "OK", nil
}

func values(name string, ks *store.Keyspace, ca []string, reverse bool) (any, error) {
	if len(ca) != 1 {
		return nil, wrongArity(name)
	}
	res := []int{}
	err := ks.View(ca[0], func(r *ring.Ring) error {
		if reverse {
			res = r.ToSliceReverse()
		} else {
			res = r.ToSlice()
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrKeyAbsent) {
		return nil, replyError(err)
	}
	return res, nil
}

func lrange(ks *store.Keyspace, ca ...string) (any, error) {
	return values("lrange", ks, ca, false)
}

func lrevrange(ks *store.Keyspace, ca ...string) (any, error) {
	return values("lrevrange", ks, ca, true)
}

func invalidCommand(name string) Command {
	return func(*store.Keyspace, ...string) (any, error) {
		if name == "" {
			return nil, errorInvalidCommand
		}
		return nil, fmt.Errorf("ERR unknown command '%s'", name)
	}
}

func newCommand(name string) Command {
	cmd, ok := commandMap[strings.ToLower(name)]
	if !ok {
		return invalidCommand(name)
	}
	return cmd
}

// RunCommand parses one client message, either a RESP array of bulk strings
// or an inline command, and runs it against ks.
func RunCommand(ks *store.Keyspace, b []byte) (any, error) {
	var arr []string
	if len(b) > 0 && b[0] == '*' {
		parsed, err := parseArray(b)
		if err != nil {
			return nil, fmt.Errorf("ERR protocol error: %w", err)
		}
		arr = parsed
	} else {
		arr = strings.Fields(string(b))
	}
	if len(arr) < 1 {
		return nil, errorInvalidCommand
	}
	cmd := newCommand(arr[0])
	return cmd(ks, arr[1:]...)
}
