// Package netx holds small net/http helpers shared by the HTTP clients.
package netx

import (
	"io"
	"net/http"
)

// MaxErrorBody caps how much of an error response is read.
const MaxErrorBody = 4 << 10

// ReadErrorBody reads at most MaxErrorBody bytes of resp.Body. Read errors
// yield whatever was read so far.
func ReadErrorBody(resp *http.Response) []byte {
	if resp == nil || resp.Body == nil {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	return b
}
