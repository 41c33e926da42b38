package smtp

import (
	"io"
	"time"

	"dropout-srv/pkg/log"

	"github.com/emersion/go-sasl"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Message is one outbound e-mail.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

type implSender struct {
	l    log.Logger
	cfg  Config
	addr string
	send sendFunc
	now  func() time.Time
}
