package course

import (
	"bytes"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/grading/core"
)

var assignmentMailTmpl = texttmpl.Must(texttmpl.New("assignment").Parse(
	`Hi {{.Grader}},

You have been assigned {{.Count}} group(s) to grade{{if .Course}} for {{.Course}}{{end}}:

{{.Groups}}`))

type assignmentMailData struct {
	Grader string
	Course string
	Count  int
	Groups string
}

// NotifyGraders mails every grader of a the groups they have to grade. Graders without an email are skipped.
func NotifyGraders(mailSvc core.EmailService, a Assignment, courseName string) error {
	messages := make([]*core.EmailMessage, 0, len(a))
	for _, grader := range SortedGraders(a) {
		if grader.Email == "" {
			continue
		}
		groups, err := SortedGroups(a[grader])
		if err != nil {
			return errors.Wrapf(err, "notifying %s", grader.Name)
		}
		var buf bytes.Buffer
		WriteGroups(&buf, groups)

		messages = append(messages, &core.EmailMessage{
			To:       []mail.Address{{Name: grader.Name, Address: grader.Email}},
			Subject:  "Grading assignment",
			Template: assignmentMailTmpl,
			TemplateData: assignmentMailData{
				Grader: grader.Name,
				Course: courseName,
				Count:  len(groups),
				Groups: buf.String(),
			},
		})
	}
	if len(messages) == 0 {
		return nil
	}
	return mailSvc.SendMessages(messages...)
}
