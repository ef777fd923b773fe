package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	errInvalidMultibulkLength = errors.New("invalid multibulk length")
	errInvalidBulkLength      = errors.New("invalid bulk length")
	errUnterminatedBulk       = errors.New("bulk string not terminated by CRLF")
	errShortArray             = errors.New("unexpected end of array")
)

// maxLengthDigits bounds a "*<n>" or "$<n>" header; longer is not a length.
const maxLengthDigits = 20

// scanLength reads the "<prefix><int>\r\n" header at the start of data.
// A zero hdr with a nil error means the header is not complete yet.
func scanLength(data []byte, bad error) (n, hdr int, err error) {
	for i := 1; i < len(data); i++ {
		switch b := data[i]; {
		case b == '\r':
			if i+1 == len(data) {
				return 0, 0, nil
			}
			if data[i+1] != '\n' {
				return 0, 0, bad
			}
			n, err = strconv.Atoi(string(data[1:i]))
			if err != nil {
				return 0, 0, bad
			}
			return n, i + 2, nil
		case b >= '0' && b <= '9', b == '-' && i == 1:
			if i > maxLengthDigits {
				return 0, 0, bad
			}
		default:
			return 0, 0, bad
		}
	}
	return 0, 0, nil
}

// scanBulkString returns the payload of the bulk string at the start of
// data and the number of bytes it takes. size is 0 while data holds only
// part of it.
func scanBulkString(data []byte) (payload []byte, size int, err error) {
	if len(data) == 0 {
		return nil, 0, nil
	}
	if data[0] != '$' {
		return nil, 0, fmt.Errorf("expected '$', got %q", data[0])
	}
	n, hdr, err := scanLength(data, errInvalidBulkLength)
	if err != nil || hdr == 0 {
		return nil, 0, err
	}
	if n < 0 {
		return nil, 0, errInvalidBulkLength
	}
	end := hdr + n + 2
	if len(data) < end {
		return nil, 0, nil
	}
	if data[end-2] != '\r' || data[end-1] != '\n' {
		return nil, 0, errUnterminatedBulk
	}
	return data[hdr : hdr+n], end, nil
}

// scanArray reads the array of bulk strings at the start of data. size is
// 0 while data holds only part of it.
func scanArray(data []byte) (elems []string, size int, err error) {
	if len(data) == 0 || data[0] != '*' {
		return nil, 0, errInvalidMultibulkLength
	}
	n, off, err := scanLength(data, errInvalidMultibulkLength)
	if err != nil || off == 0 {
		return nil, 0, err
	}
	if n < 0 {
		return nil, 0, errInvalidMultibulkLength
	}
	elems = make([]string, 0, n)
	for len(elems) < n {
		payload, c, err := scanBulkString(data[off:])
		if err != nil || c == 0 {
			return nil, 0, err
		}
		elems = append(elems, string(payload))
		off += c
	}
	return elems, off, nil
}

// parseArray decodes one complete array message.
func parseArray(b []byte) ([]string, error) {
	elems, n, err := scanArray(b)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errShortArray
	}
	return elems, nil
}

var arrayStart = []byte("\r\n*")

// splitMessages is a bufio.SplitFunc cutting a client stream into commands.
// Clients send commands as arrays of bulk strings; anything else is taken
// as an inline command terminated by a newline.
func splitMessages(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if data[0] == '*' {
		// A complete array is a token of its own, which keeps pipelined
		// commands apart.
		_, c, err := scanArray(data)
		if err != nil {
			// Malformed: no amount of data fixes it. Hand over everything
			// up to the next line opening an array so the command parser
			// rejects it and the commands behind it still run.
			if i := bytes.Index(data[1:], arrayStart); i >= 0 {
				return i + 3, data[:i+3], nil
			}
			return len(data), data, nil
		}
		if c > 0 {
			return c, data[:c], nil
		}
		if atEOF {
			return len(data), data, bufio.ErrFinalToken
		}
		return 0, nil, nil
	}
	return bufio.ScanLines(data, atEOF)
}
