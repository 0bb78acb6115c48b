// ABOUTME: Contact panel opened by the contact signal
// ABOUTME: Form fields, validation, background sending and auto-close after success

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/contact"
	"folio/locale"
)

// sendTimeout bounds a single delivery attempt
const sendTimeout = 30 * time.Second

type formState int

const (
	formIdle formState = iota
	formSending
	formSent
	formFailed
)

// Focus order inside the panel
const (
	focusName = iota
	focusEmail
	focusMessage
	focusSend
	focusCount
)

// contactForm is the contact panel state. The epoch increases on every
// submit and close so late results from an earlier send are ignored.
type contactForm struct {
	open    bool
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int
	state   formState
	err     string
	epoch   int
}

func newContactForm() *contactForm {
	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 80

	email := textinput.New()
	email.Prompt = ""
	email.CharLimit = 120

	message := textarea.New()
	message.ShowLineNumbers = false
	message.CharLimit = 2000
	message.SetHeight(5)

	return &contactForm{name: name, email: email, message: message}
}

// Open shows the panel with the first field focused
func (f *contactForm) Open(lang locale.Lang) tea.Cmd {
	f.open = true
	f.state = formIdle
	f.err = ""
	f.focus = focusName

	f.name.Placeholder = locale.T(lang, locale.KeyName)
	f.email.Placeholder = "you@example.com"
	f.message.Placeholder = locale.T(lang, locale.KeyMessage)

	return f.applyFocus()
}

// Close hides the panel and invalidates pending close timers
func (f *contactForm) Close() {
	f.open = false
	f.epoch++
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *contactForm) setWidth(w int) {
	w = max(w, 10)
	f.name.Width = w
	f.email.Width = w
	f.message.SetWidth(w)
}

func (f *contactForm) applyFocus() tea.Cmd {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()

	switch f.focus {
	case focusName:
		return f.name.Focus()
	case focusEmail:
		return f.email.Focus()
	case focusMessage:
		return f.message.Focus()
	}

	return nil
}

func (f *contactForm) cycle(delta int) tea.Cmd {
	f.focus = (f.focus + delta + focusCount) % focusCount
	return f.applyFocus()
}

// Message returns the form contents
func (f *contactForm) Message() contact.Message {
	return contact.Message{
		Name:  strings.TrimSpace(f.name.Value()),
		Email: strings.TrimSpace(f.email.Value()),
		Body:  strings.TrimSpace(f.message.Value()),
	}
}

func (f *contactForm) reset() {
	f.name.SetValue("")
	f.email.SetValue("")
	f.message.Reset()
}

// update forwards a message to the focused field
func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch f.focus {
	case focusName:
		f.name, cmd = f.name.Update(msg)
	case focusEmail:
		f.email, cmd = f.email.Update(msg)
	case focusMessage:
		f.message, cmd = f.message.Update(msg)
	}

	return cmd
}

// handleFormKey routes keys while the contact panel is open
func (m model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if f.state != formSending {
			f.Close()
		}

		return m, nil
	case "tab":
		return m, f.cycle(1)
	case "shift+tab":
		return m, f.cycle(-1)
	case "ctrl+s":
		cmd := m.submitContact()
		return m, cmd
	case "enter":
		switch f.focus {
		case focusSend:
			cmd := m.submitContact()
			return m, cmd
		case focusName, focusEmail:
			return m, f.cycle(1)
		}
	}

	if f.state == formSending || f.focus == focusSend {
		return m, nil
	}

	return m, f.update(msg)
}

// submitContact validates the form and starts a background send
func (m *model) submitContact() tea.Cmd {
	f := m.form
	if f.state == formSending {
		return nil
	}

	msg := f.Message()
	if err := msg.Validate(); err != nil {
		f.state = formFailed
		f.err = strings.ReplaceAll(err.Error(), "\n", "; ")

		return nil
	}

	f.state = formSending
	f.err = ""
	f.epoch++

	m.debugf("[CONTACT] sending message from %s", msg.Email)

	return sendContact(m.sender, msg, f.epoch)
}

// sendContact delivers msg off the update loop
func sendContact(sender contact.Sender, msg contact.Message, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		return contactResultMsg{epoch: epoch, err: sender.Send(ctx, msg)}
	}
}

// handleContactResult applies a finished send if it belongs to the current submit
func (m *model) handleContactResult(msg contactResultMsg) tea.Cmd {
	f := m.form
	if msg.epoch != f.epoch || f.state != formSending {
		m.debugf("[CONTACT] ignoring stale result: epoch %d != current %d", msg.epoch, f.epoch)
		return nil
	}

	if msg.err != nil {
		m.debugf("[CONTACT] send failed: %v", msg.err)
		f.state = formFailed
		f.err = locale.T(m.lang, locale.KeySendFailed)

		return nil
	}

	f.state = formSent
	f.reset()

	epoch := f.epoch

	return tea.Tick(contactCloseDelay, func(time.Time) tea.Msg {
		return contactCloseMsg{epoch: epoch}
	})
}

// renderContactForm renders the contact panel dialog
func (m model) renderContactForm() string {
	f := m.form
	label := func(key string, focus int) string {
		if f.focus == focus {
			return accentStyle.Render("► " + locale.T(m.lang, key))
		}

		return mutedStyle.Render("  " + locale.T(m.lang, key))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(locale.T(m.lang, locale.KeyContactTitle)) + "\n\n")
	b.WriteString(label(locale.KeyName, focusName) + "\n" + f.name.View() + "\n\n")
	b.WriteString(label(locale.KeyEmail, focusEmail) + "\n" + f.email.View() + "\n\n")
	b.WriteString(label(locale.KeyMessage, focusMessage) + "\n" + f.message.View() + "\n\n")

	button := locale.T(m.lang, locale.KeySend)
	if f.state == formSending {
		button = locale.T(m.lang, locale.KeySending)
	}

	if f.focus == focusSend {
		b.WriteString(fabStyle.Render(button))
	} else {
		b.WriteString(navStyle.Render("[ " + button + " ]"))
	}

	switch f.state {
	case formSent:
		b.WriteString("\n\n" + accentStyle.Render(locale.T(m.lang, locale.KeySent)))
	case formFailed:
		b.WriteString("\n\n" + errorStyle.Render(f.err))
	}

	b.WriteString("\n\n" + helpStyle.Render("tab next | ctrl+s send | esc close"))

	return dialogStyle.Width(m.dialogWidth() - 2).Render(b.String())
}
