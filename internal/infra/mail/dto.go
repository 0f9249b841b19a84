package mail

type OutreachEmailData struct {
	BusinessName  string
	Industry      string
	FundingAmount float64
	ContactName   string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
