package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Log your first night of sleep tonight and jot down
anything you remember in the morning.

Your dashboard: %s

Sleep well,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account and all of your sleep logs and notes have been deleted.

If this wasn't you, reply to this email right away.

The %s Team`, name, appName)

	return subject, body
}
