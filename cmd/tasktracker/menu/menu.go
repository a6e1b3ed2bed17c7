// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/secret"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// ErrInputClosed is returned by [Menu.Run] when the input ends before
// the user logs out.
var ErrInputClosed = errors.New("input closed")

// Service is the part of the lifecycle service the menu drives.
// [*lifecycle.Service] implements it.
type Service interface {
	Authenticate(email, password string) (schema.User, error)
	ListAll(viewer schema.User) ([]schema.TaskView, error)
	Create(code int, name string, assigneeCode int, actor schema.User) (schema.Task, error)
	Transition(code int, requested schema.Status, actor schema.User) (schema.Task, error)
}

// Config holds the collaborators of a [Menu]. Service, Input, Output,
// and Styles are required.
type Config struct {
	Service Service
	Input   io.Reader
	Output  io.Writer
	Styles  tui.Styles
	Logger  *slog.Logger

	// MaxNameLength bounds task names, in characters.
	MaxNameLength int

	// ReadPassword, when set, reads the password instead of the next
	// input line. The command sets it to an echo-free terminal read.
	// A nil buffer means an empty password.
	ReadPassword func() (*secret.Buffer, error)

	// OnLogin and OnLogout are called after a successful login and
	// when the user chooses to log out.
	OnLogin  func(user schema.User) error
	OnLogout func() error
}

// Menu is one interactive session.
type Menu struct {
	config Config
	input  *bufio.Reader
	user   schema.User
}

// New returns a Menu for config.
func New(config Config) *Menu {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.MaxNameLength <= 0 {
		config.MaxNameLength = 10
	}
	return &Menu{config: config, input: bufio.NewReader(config.Input)}
}

// Run greets the user, logs in unless user is non-nil, and runs the
// main menu until the user logs out or the input ends.
func (m *Menu) Run(user *schema.User) error {
	m.println("Welcome to the task tracker!")

	if user != nil {
		m.user = *user
		m.printf("Logged in as %s.\n\n", m.user.Name)
	} else if err := m.login(); err != nil {
		return err
	}

	for {
		m.println("Choose an option from 1 to 3.")
		m.println("1. List tasks, 2. Create a task, 3. Log out")
		choice, err := m.prompt("Choice: ")
		if err != nil {
			return err
		}
		m.println("")

		switch choice {
		case "1":
			if m.showAll() {
				if err := m.subMenu(); err != nil {
					return err
				}
			}
		case "2":
			if err := m.create(); err != nil {
				return err
			}
		case "3":
			if m.config.OnLogout != nil {
				if err := m.config.OnLogout(); err != nil {
					m.reportFailure("log out", err)
				}
			}
			m.println("Logged out.")
			return nil
		default:
			m.println("Invalid choice. Enter a number from 1 to 3.")
		}
		m.println("")
	}
}

func (m *Menu) login() error {
	for {
		email, err := m.prompt("Email: ")
		if err != nil {
			return err
		}
		password, err := m.readPassword()
		if err != nil {
			return err
		}

		given := ""
		if password != nil {
			given = password.String()
			password.Close()
		}
		user, err := m.config.Service.Authenticate(email, given)
		m.println("")
		if err == nil {
			m.user = user
			m.config.Logger.Info("menu login", "user", user.Code)
			if m.config.OnLogin != nil {
				if err := m.config.OnLogin(user); err != nil {
					m.reportFailure("save session", err)
				}
			}
			m.printf("Logged in as %s.\n\n", user.Name)
			return nil
		}
		if !errors.Is(err, lifecycle.ErrAuthentication) {
			m.reportFailure("log in", err)
		} else {
			m.println(m.config.Styles.Error.Render(err.Error()))
		}
		m.println("")
	}
}

// readPassword returns nil, without error, for an empty answer.
func (m *Menu) readPassword() (*secret.Buffer, error) {
	if m.config.ReadPassword != nil {
		m.print("Password: ")
		return m.config.ReadPassword()
	}
	line, err := m.prompt("Password: ")
	if err != nil || line == "" {
		return nil, err
	}
	return secret.NewFromBytes([]byte(line))
}

// showAll prints every task, reporting whether the listing succeeded.
func (m *Menu) showAll() bool {
	views, err := m.config.Service.ListAll(m.user)
	if err != nil {
		m.reportFailure("list tasks", err)
		return false
	}
	if len(views) == 0 {
		m.println("No tasks yet.")
	}
	styles := m.config.Styles
	for _, view := range views {
		m.printf("%d. %s: %s, %s\n",
			view.Task.Code, view.Task.Name, styles.Assignment(view), styles.Status(view.Task.Status))
	}
	m.println("")
	return true
}

func (m *Menu) subMenu() error {
	for {
		m.println("Choose an option from 1 to 2.")
		m.println("1. Change a task's status, 2. Back to the main menu")
		choice, err := m.prompt("Choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			m.println("")
			return m.changeStatus()
		case "2":
			return nil
		default:
			m.println("Invalid choice. Enter 1 or 2.")
			m.println("")
		}
	}
}

func (m *Menu) changeStatus() error {
	for {
		code, ok, err := m.promptNumber("Code of the task to change: ", "Enter the task code as a number.")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		m.println("Choose the new status.")
		m.println("1. In progress, 2. Done")
		choice, ok, err := m.promptNumber("Choice: ", "Enter the status as a number.")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if choice != int(schema.StatusInProgress) && choice != int(schema.StatusDone) {
			m.println("Choose status 1 or 2.")
			m.println("")
			continue
		}

		task, err := m.config.Service.Transition(code, schema.Status(choice), m.user)
		if err != nil {
			if !m.domainRefusal(err) {
				m.reportFailure("change status", err)
				return nil
			}
			continue
		}
		m.config.Logger.Info("menu status change", "code", task.Code, "status", task.Status.String())
		m.printf("Task %s is now %s.\n", task.Name, m.config.Styles.Status(task.Status))
		return nil
	}
}

func (m *Menu) create() error {
	for {
		code, ok, err := m.promptNumber("Task code: ", "Enter the task code as a number.")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		name, err := m.prompt("Task name: ")
		if err != nil {
			return err
		}
		if name == "" {
			m.println("Enter a task name.")
			m.println("")
			continue
		}
		if utf8.RuneCountInString(name) > m.config.MaxNameLength {
			m.printf("Task names may be at most %d characters.\n", m.config.MaxNameLength)
			m.println("")
			continue
		}

		assignee, ok, err := m.promptNumber("Code of the assigned user: ", "Enter the user code as a number.")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		task, err := m.config.Service.Create(code, name, assignee, m.user)
		if err != nil {
			if !m.domainRefusal(err) {
				m.reportFailure("create task", err)
				return nil
			}
			continue
		}
		m.config.Logger.Info("menu create", "code", task.Code, "assignee", task.AssigneeCode)
		m.printf("Created %s.\n", task.Name)
		return nil
	}
}

// domainRefusal prints err and reports true when it is a refusal the
// user can correct by answering again.
func (m *Menu) domainRefusal(err error) bool {
	switch {
	case errors.Is(err, lifecycle.ErrReference),
		errors.Is(err, lifecycle.ErrNotFound),
		errors.Is(err, lifecycle.ErrInvalidTransition):
		m.println(m.config.Styles.Error.Render(err.Error()))
		m.println("")
		return true
	default:
		return false
	}
}

func (m *Menu) reportFailure(action string, err error) {
	m.config.Logger.Error("menu action failed", "action", action, "error", err)
	m.println(m.config.Styles.Error.Render(fmt.Sprintf("Could not %s: %v", action, err)))
}

// promptNumber asks for a non-negative integer written in plain
// digits. ok is false, after complaint is printed, when the answer is
// not one. Signs are refused, including "-0".
func (m *Menu) promptNumber(question, complaint string) (int, bool, error) {
	answer, err := m.prompt(question)
	if err != nil {
		return 0, false, err
	}
	number, convErr := strconv.Atoi(answer)
	if convErr != nil || answer == "" || strings.TrimLeft(answer, "0123456789") != "" {
		m.println(complaint)
		m.println("")
		return 0, false, nil
	}
	return number, true, nil
}

// prompt writes question and returns the next input line without its
// line ending or surrounding spaces.
func (m *Menu) prompt(question string) (string, error) {
	m.print(question)
	line, err := m.input.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		m.println("")
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) print(text string) {
	io.WriteString(m.config.Output, text)
}

func (m *Menu) println(text string) {
	io.WriteString(m.config.Output, text+"\n")
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.config.Output, format, args...)
}
