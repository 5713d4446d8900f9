package mailer

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured возвращается при попытке отправить письмо без настроенного SMTP
var ErrNotConfigured = errors.New("mailer: smtp is not configured")

// Config настройки SMTP и формирования писем
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	BaseURL       string // публичный адрес фронтенда для ссылок подтверждения
	SubjectPrefix string // например "BKSB Elternsprechtag"
}

// Details подставляемые в шаблон данные о термине
type Details struct {
	Date        string
	Time        string
	TeacherName string
	Room        string
}

// Mailer отправляет транзакционные письма посетителям через SMTP.
// Все письма идут на немецком, как и пользовательский интерфейс.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
	log    Logger
}

// New создает отправителя писем. При пустом хосте отправка отключена.
func New(cfg Config, log Logger) *Mailer {
	m := &Mailer{cfg: cfg, log: log}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// IsConfigured сообщает, настроена ли отправка почты
func (m *Mailer) IsConfigured() bool {
	return m.dialer != nil && m.cfg.From != ""
}

// VerifyURL строит ссылку подтверждения email для свежего токена
func (m *Mailer) VerifyURL(token string) string {
	return fmt.Sprintf("%s/verify?token=%s", strings.TrimRight(m.cfg.BaseURL, "/"), token)
}

// SendReservationVerification отправляет письмо с просьбой подтвердить
// email после прямой брони слота
func (m *Mailer) SendReservationVerification(to, token string, d Details) error {
	verifyURL := m.VerifyURL(token)
	subject := m.cfg.SubjectPrefix + " – E-Mail-Adresse bestätigen (Terminreservierung)"

	plain := fmt.Sprintf(`Guten Tag,

bitte bestätigen Sie Ihre E-Mail-Adresse, um Ihre Terminreservierung abzuschließen.

Termin: %s %s
Lehrkraft: %s
Raum: %s

Bestätigungslink: %s

Hinweis: Erst nach erfolgreicher Bestätigung kann die Lehrkraft Ihren Termin verbindlich bestätigen.

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`, d.Date, d.Time, orDash(d.TeacherName), orDash(d.Room), verifyURL)

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>bitte bestätigen Sie Ihre E-Mail-Adresse, um Ihre Terminreservierung abzuschließen.</p>
<p><strong>Termin:</strong> %s %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
<p><a href="%s">E-Mail-Adresse jetzt bestätigen</a></p>
<p><strong>Hinweis:</strong> Erst nach erfolgreicher Bestätigung kann die Lehrkraft Ihren Termin verbindlich bestätigen.</p>
<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		html.EscapeString(d.Date), html.EscapeString(d.Time),
		html.EscapeString(orDash(d.TeacherName)), html.EscapeString(orDash(d.Room)), verifyURL)

	return m.send(to, subject, plain, htmlBody)
}

// SendRequestVerification отправляет письмо с просьбой подтвердить email
// после создания запроса на временное окно
func (m *Mailer) SendRequestVerification(to, token string, d Details) error {
	verifyURL := m.VerifyURL(token)
	subject := m.cfg.SubjectPrefix + " – E-Mail-Adresse bestätigen (Terminanfrage)"

	plain := fmt.Sprintf(`Guten Tag,

bitte bestätigen Sie Ihre E-Mail-Adresse, um Ihre Terminanfrage abzuschließen.

Gewünschter Zeitraum: %s %s
Lehrkraft: %s
Raum: %s

Bestätigungslink: %s

Hinweis: Die Lehrkraft vergibt die Termine. Nach Bestätigung Ihrer E-Mail-Adresse kann die Lehrkraft die Anfrage annehmen.

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`, d.Date, d.Time, orDash(d.TeacherName), orDash(d.Room), verifyURL)

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>bitte bestätigen Sie Ihre E-Mail-Adresse, um Ihre Terminanfrage abzuschließen.</p>
<p><strong>Gewünschter Zeitraum:</strong> %s %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
<p><a href="%s">E-Mail-Adresse jetzt bestätigen</a></p>
<p><strong>Hinweis:</strong> Die Lehrkraft vergibt die Termine. Nach Bestätigung Ihrer E-Mail-Adresse kann die Lehrkraft die Anfrage annehmen.</p>
<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		html.EscapeString(d.Date), html.EscapeString(d.Time),
		html.EscapeString(orDash(d.TeacherName)), html.EscapeString(orDash(d.Room)), verifyURL)

	return m.send(to, subject, plain, htmlBody)
}

// SendBookingConfirmed уведомляет посетителя, что учитель подтвердил его бронь
func (m *Mailer) SendBookingConfirmed(to string, d Details) error {
	subject := fmt.Sprintf("%s – Termin bestätigt am %s (%s)", m.cfg.SubjectPrefix, d.Date, d.Time)

	plain := fmt.Sprintf(`Guten Tag,

Ihre Terminbuchung wurde durch die Lehrkraft bestätigt.

Termin: %s %s
Lehrkraft: %s
Raum: %s

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`, d.Date, d.Time, orDash(d.TeacherName), orDash(d.Room))

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>Ihre Terminbuchung wurde durch die Lehrkraft bestätigt.</p>
<p><strong>Termin:</strong> %s %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		html.EscapeString(d.Date), html.EscapeString(d.Time),
		html.EscapeString(orDash(d.TeacherName)), html.EscapeString(orDash(d.Room)))

	return m.send(to, subject, plain, htmlBody)
}

// SendRequestAccepted уведомляет посетителя, что его запрос принят и
// назначен конкретный термин. Необязательное сообщение учителя
// добавляется отдельным абзацем.
func (m *Mailer) SendRequestAccepted(to string, d Details, teacherMessage string) error {
	subject := fmt.Sprintf("%s – Termin bestätigt am %s (%s)", m.cfg.SubjectPrefix, d.Date, d.Time)

	plain := fmt.Sprintf(`Guten Tag,

Ihre Terminanfrage wurde durch die Lehrkraft angenommen.

Termin: %s %s
Lehrkraft: %s
Raum: %s%s

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`,
		d.Date, d.Time, orDash(d.TeacherName), orDash(d.Room), teacherMessagePlain(teacherMessage))

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>Ihre Terminanfrage wurde durch die Lehrkraft angenommen.</p>
<p><strong>Termin:</strong> %s %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
%s<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		html.EscapeString(d.Date), html.EscapeString(d.Time),
		html.EscapeString(orDash(d.TeacherName)), html.EscapeString(orDash(d.Room)),
		teacherMessageHTML(teacherMessage))

	return m.send(to, subject, plain, htmlBody)
}

// SendMultiSlotAccepted уведомляет посетителя о назначении нескольких
// терминов одним письмом
func (m *Mailer) SendMultiSlotAccepted(to, date string, times []string, teacherName, room, teacherMessage string) error {
	subject := fmt.Sprintf("%s – %d Termine bestätigt am %s (%s)",
		m.cfg.SubjectPrefix, len(times), date, strings.Join(times, ", "))

	var listPlain, listHTML strings.Builder
	for i, t := range times {
		fmt.Fprintf(&listPlain, "  %d. %s\n", i+1, t)
		fmt.Fprintf(&listHTML, "<li>%s</li>", html.EscapeString(t))
	}

	plain := fmt.Sprintf(`Guten Tag,

Ihre Terminanfrage wurde durch die Lehrkraft angenommen.

Es wurden %d Termine für Sie vergeben:
%s
Datum: %s
Lehrkraft: %s
Raum: %s%s

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`,
		len(times), listPlain.String(), date, orDash(teacherName), orDash(room), teacherMessagePlain(teacherMessage))

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>Ihre Terminanfrage wurde durch die Lehrkraft angenommen.</p>
<p>Es wurden <strong>%d Termine</strong> für Sie vergeben:</p>
<ul>%s</ul>
<p><strong>Datum:</strong> %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
%s<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		len(times), listHTML.String(), html.EscapeString(date),
		html.EscapeString(orDash(teacherName)), html.EscapeString(orDash(room)),
		teacherMessageHTML(teacherMessage))

	return m.send(to, subject, plain, htmlBody)
}

// SendCancellation уведомляет посетителя об отмене его термина
func (m *Mailer) SendCancellation(to string, d Details) error {
	subject := fmt.Sprintf("%s – Termin storniert am %s (%s)", m.cfg.SubjectPrefix, d.Date, d.Time)

	plain := fmt.Sprintf(`Guten Tag,

wir bestätigen Ihnen die Stornierung Ihres Termins.

Termin: %s %s
Lehrkraft: %s
Raum: %s

Wenn Sie einen neuen Termin vereinbaren möchten, können Sie dies jederzeit über das Buchungssystem tun.

Mit freundlichen Grüßen

Ihr Elternsprechtag-Team`, d.Date, d.Time, orDash(d.TeacherName), orDash(d.Room))

	htmlBody := fmt.Sprintf(`<p>Guten Tag,</p>
<p>wir bestätigen Ihnen die Stornierung Ihres Termins.</p>
<p><strong>Termin:</strong> %s %s<br/>
<strong>Lehrkraft:</strong> %s<br/>
<strong>Raum:</strong> %s</p>
<p>Wenn Sie einen neuen Termin vereinbaren möchten, können Sie dies jederzeit über das Buchungssystem tun.</p>
<p>Mit freundlichen Grüßen</p>
<p>Ihr Elternsprechtag-Team</p>`,
		html.EscapeString(d.Date), html.EscapeString(d.Time),
		html.EscapeString(orDash(d.TeacherName)), html.EscapeString(orDash(d.Room)))

	return m.send(to, subject, plain, htmlBody)
}

func (m *Mailer) send(to, subject, plain, htmlBody string) error {
	if !m.IsConfigured() {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send %q to %s: %w", subject, to, err)
	}

	m.log.Debug("Отправлено письмо %q на %s", subject, to)
	return nil
}

func teacherMessagePlain(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	return "\n\nNachricht der Lehrkraft:\n" + msg
}

func teacherMessageHTML(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	escaped := strings.ReplaceAll(html.EscapeString(msg), "\n", "<br/>")
	return "<p><strong>Nachricht der Lehrkraft:</strong><br/>" + escaped + "</p>\n"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
