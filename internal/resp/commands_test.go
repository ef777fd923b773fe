package resp

import (
	"testing"

	"github.com/Avik32223/ringd/internal/store"
)

// run feeds inline commands to a fresh keyspace and returns the serialized
// reply of each one.
func run(t *testing.T, cmds ...string) []string {
	t.Helper()
	ks := store.New()
	res := make([]string, 0, len(cmds))
	for _, c := range cmds {
		x, err := RunCommand(ks, []byte(c))
		var s string
		if err != nil {
			s, _ = Serialize(err, nil)
		} else {
			s, err = Serialize(x, nil)
			if err != nil {
				t.Fatalf("%s: %v", c, err)
			}
		}
		res = append(res, s)
	}
	return res
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name string
		cmds []string
		want string
	}{
		{"ping", []string{"PING"}, "+PONG\r\n"},
		{"echo", []string{"echo hello"}, "+hello\r\n"},
		{"echo-arity", []string{"ECHO"}, "-ERR wrong number of arguments for 'echo' command\r\n"},
		{"unknown", []string{"GET k"}, "-ERR unknown command 'GET'\r\n"},
		{"command", []string{"COMMAND"}, "*0\r\n"},
		{"lpush", []string{"LPUSH k 1 2 3 4"}, ":4\r\n"},
		{"lpush-order", []string{"LPUSH k 1 2 3 4", "LRANGE k"}, "*4\r\n:4\r\n:3\r\n:2\r\n:1\r\n"},
		{"lrevrange", []string{"LPUSH k 1 2 3 4", "LREVRANGE k"}, "*4\r\n:1\r\n:2\r\n:3\r\n:4\r\n"},
		{"lrange-absent", []string{"LRANGE k"}, "*0\r\n"},
		{"rpush-not-int", []string{"RPUSH k 1 x"}, "-ERR value is not an integer or out of range\r\n"},
		{"rpush-not-int-no-mutation", []string{"RPUSH k 1 x", "EXISTS k"}, ":0\r\n"},
		{"lindex", []string{"LPUSH k 1 2 3 4", "LINDEX k 2"}, ":2\r\n"},
		{"lindex-range", []string{"LPUSH k 1", "LINDEX k 1"}, "-ERR index out of range\r\n"},
		{"lindex-absent", []string{"LINDEX k 0"}, "-ERR index out of range\r\n"},
		{"lpos", []string{"LPUSH k 1 2 3 4", "LPOS k 3"}, ":1\r\n"},
		{"lpos-missing", []string{"LPUSH k 1", "LPOS k 3"}, ":-1\r\n"},
		{"lfind", []string{"RPUSH k 5", "LFIND k 5"}, ":1\r\n"},
		{"lfind-missing", []string{"RPUSH k 5", "LFIND k 6"}, ":0\r\n"},
		{"lfind-absent", []string{"LFIND k 5"}, ":0\r\n"},
		{"lpos-absent", []string{"LPOS k 5"}, ":-1\r\n"},
		{"llen", []string{"RPUSH k 5 6", "LLEN k"}, ":2\r\n"},
		{"llen-absent", []string{"LLEN k"}, ":0\r\n"},
		{"linsertat", []string{"RPUSH k 1 3", "LINSERTAT k 1 2", "LRANGE k"}, "*3\r\n:1\r\n:2\r\n:3\r\n"},
		{"linsertat-append", []string{"RPUSH k 1", "LINSERTAT k 1 2", "LRANGE k"}, "*2\r\n:1\r\n:2\r\n"},
		{"linsertat-range", []string{"RPUSH k 1", "LINSERTAT k 3 2"}, "-ERR index out of range\r\n"},
		{"linsertat-range-absent", []string{"LINSERTAT k 1 2", "EXISTS k"}, ":0\r\n"},
		{"lpop", []string{"RPUSH k 1 2", "LPOP k"}, ":1\r\n"},
		{"rpop", []string{"RPUSH k 1 2", "RPOP k"}, ":2\r\n"},
		{"pop-absent", []string{"LPOP k"}, "$-1\r\n"},
		{"pop-last-drops-key", []string{"RPUSH k 1", "RPOP k", "EXISTS k"}, ":0\r\n"},
		{"lremat", []string{"RPUSH k 1 2 3", "LREMAT k 1", "LRANGE k"}, "*2\r\n:1\r\n:3\r\n"},
		{"lremat-value", []string{"RPUSH k 1 2 3", "LREMAT k 1"}, ":2\r\n"},
		{"lremat-range", []string{"RPUSH k 1", "LREMAT k -1"}, "-ERR index out of range\r\n"},
		{"lset", []string{"RPUSH k 1 2 3", "LSET k 2 9", "LRANGE k"}, "*3\r\n:1\r\n:2\r\n:9\r\n"},
		{"lset-range", []string{"RPUSH k 1", "LSET k 2 9"}, "-ERR index out of range\r\n"},
		{"lreverse", []string{"RPUSH k 1 2 3", "LREVERSE k", "LRANGE k"}, "*3\r\n:3\r\n:2\r\n:1\r\n"},
		{"lreverse-absent", []string{"LREVERSE k"}, "+OK\r\n"},
		{"del", []string{"RPUSH a 1", "RPUSH b 1", "DEL a b c"}, ":2\r\n"},
		{"exists", []string{"RPUSH a 1", "EXISTS a b a"}, ":2\r\n"},
		{"array", []string{"*3\r\n$5\r\nRPUSH\r\n$1\r\nk\r\n$2\r\n-4\r\n", "LINDEX k 0"}, ":-4\r\n"},
		{"array-crlf-key", []string{"*3\r\n$5\r\nRPUSH\r\n$4\r\na\r\nb\r\n$1\r\n7\r\n", "*2\r\n$4\r\nLLEN\r\n$4\r\na\r\nb\r\n"}, ":1\r\n"},
		{"array-bad-count", []string{"*x\r\n"}, "-ERR protocol error: invalid multibulk length\r\n"},
		{"array-negative-count", []string{"*-1\r\n"}, "-ERR protocol error: invalid multibulk length\r\n"},
		{"array-short", []string{"*2\r\n$4\r\nLLEN\r\n"}, "-ERR protocol error: unexpected end of array\r\n"},
		{"array-unterminated-bulk", []string{"*2\r\n$4\r\nLLEN\r\n$3\r\na\r\nb\r\n"}, "-ERR protocol error: bulk string not terminated by CRLF\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.cmds...)
			if got := res[len(res)-1]; got != tt.want {
				t.Errorf("%q = %q, want %q", tt.cmds[len(tt.cmds)-1], got, tt.want)
			}
		})
	}
}

func TestSerializeError(t *testing.T) {
	got, _ := Serialize(errorEmptyList, nil)
	if got != "-ERR list is empty\r\n" {
		t.Errorf("Serialize() = %q", got)
	}
	got, _ = Serialize([]int{}, nil)
	if got != "*0\r\n" {
		t.Errorf("Serialize([]int{}) = %q", got)
	}
}
