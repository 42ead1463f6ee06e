package emailsvc

import (
	"bytes"
	"net/mail"
	"strings"
	"testing"
	texttmpl "text/template"

	"github.com/trezcool/grading/core"
)

func TestConsoleService_SendMessages(t *testing.T) {
	var out bytes.Buffer
	conf := &core.Config{AppName: "Grading", DefaultFromEmail: mail.Address{Address: "noreply@localhost"}}
	svc := NewConsoleService(&out, conf)

	tmpl := texttmpl.Must(texttmpl.New("t").Parse("Hi {{.}}!"))
	err := svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Name: "Ada", Address: "ada@unl.edu"}}, Subject: "One", BodyStr: "plain body"},
		&core.EmailMessage{To: []mail.Address{{Address: "alan@unl.edu"}}, Subject: "Two", Template: tmpl, TemplateData: "Alan"},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
	)
	if err != nil {
		t.Fatalf("SendMessages() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Subject: [Grading] One", "To: \"Ada\" <ada@unl.edu>", "plain body",
		"Subject: [Grading] Two", "Hi Alan!",
		"From: <noreply@localhost>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SendMessages() output misses %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "dropped") {
		t.Errorf("SendMessages() sent a message without recipients:\n%s", got)
	}
}

func TestConsoleService_renderError(t *testing.T) {
	svc := NewConsoleService(new(bytes.Buffer), &core.Config{AppName: "Grading"})
	tmpl := texttmpl.Must(texttmpl.New("t").Parse("{{.Missing}}"))

	err := svc.SendMessages(&core.EmailMessage{To: []mail.Address{{Address: "a@unl.edu"}}, Template: tmpl, TemplateData: 1})
	if err == nil {
		t.Error("SendMessages() expected a render error")
	}
}

func TestServiceMock_SendMessages(t *testing.T) {
	svc := NewServiceMock()
	err := svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "a@unl.edu"}}, BodyStr: "x"},
		&core.EmailMessage{To: []mail.Address{{Address: "b@unl.edu"}}},
	)
	if err != nil {
		t.Fatalf("SendMessages() error = %v", err)
	}
	if len(svc.Sent) != 1 {
		t.Errorf("len(Sent) = %d, want 1", len(svc.Sent))
	}
}
