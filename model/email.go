package model

// EmailSubmission is a captured contact attempt. Stored as JSON under
// email_<sanitized-email>_<epoch-ms>; never updated or deleted here.
type EmailSubmission struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
}
