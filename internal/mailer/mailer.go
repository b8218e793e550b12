package mailer

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
