package emailsvc

import (
	"fmt"
	"io"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/grading/core"
)

type consoleService struct {
	mu               sync.Mutex
	out              io.Writer
	defaultFromEmail mail.Address
	subjPrefix       string
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService prints messages to out instead of sending them.
func NewConsoleService(out io.Writer, conf *core.Config) core.EmailService {
	return &consoleService{
		out:              out,
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) error {
	var g errgroup.Group
	for _, msg := range messages {
		msg := msg
		g.Go(func() error { return svc.sendMessage(msg) })
	}
	return g.Wait()
}

func (svc *consoleService) sendMessage(msg *core.EmailMessage) error {
	if err := msg.Render(); err != nil {
		return errors.Wrap(err, "rendering email")
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}

	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	if len(msg.Cc) > 0 {
		_, _ = fmt.Fprintf(body, "CC: %s\r\n", joinAddresses(msg.Cc))
	}
	if len(msg.Bcc) > 0 {
		_, _ = fmt.Fprintf(body, "BCC: %s\r\n", joinAddresses(msg.Bcc))
	}
	_, _ = fmt.Fprint(body, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.TextContent)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, err := io.WriteString(svc.out, body.String()); err != nil {
		return errors.Wrap(err, "writing email")
	}
	return nil
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

// ServiceMock renders messages synchronously and records them instead of sending them.
type ServiceMock struct {
	mu   sync.Mutex
	Sent []core.EmailMessage
}

var _ core.EmailService = (*ServiceMock)(nil)

func NewServiceMock() *ServiceMock {
	return &ServiceMock{}
}

func (svc *ServiceMock) SendMessages(messages ...*core.EmailMessage) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, msg := range messages {
		if err := msg.Render(); err != nil {
			return errors.Wrap(err, "rendering email")
		}
		if msg.HasRecipients() && msg.HasContent() {
			svc.Sent = append(svc.Sent, *msg)
		}
	}
	return nil
}
