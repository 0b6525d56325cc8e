package middleware

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog appends one "timestamp - METHOD url" line per request
type AccessLog struct {
	out   io.Writer
	file  *os.File
	now   func() time.Time
	mutex sync.Mutex
}

// OpenAccessLog opens path for appending, creating it if needed
func OpenAccessLog(path string) (*AccessLog, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open access log %s: %w", path, err)
	}
	return &AccessLog{out: file, file: file, now: time.Now}, nil
}

// NewAccessLog writes access lines to out
func NewAccessLog(out io.Writer) *AccessLog {
	return &AccessLog{out: out, now: time.Now}
}

// Handler returns the gin middleware. Write failures are logged and never fail the request.
func (a *AccessLog) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		line := fmt.Sprintf("%s - %s %s\n",
			a.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			c.Request.Method,
			c.Request.URL.RequestURI(),
		)

		a.mutex.Lock()
		_, err := io.WriteString(a.out, line)
		a.mutex.Unlock()
		if err != nil {
			log.Printf("[ACCESS] Error writing to access log: %v", err)
		}

		c.Next()
	}
}

// Close closes the underlying file, if any
func (a *AccessLog) Close() error {
	if a.file == nil {
		return nil
	}
	return a.file.Close()
}
