// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// fakeService keeps tasks in memory and applies the lifecycle rules.
type fakeService struct {
	users       []schema.User
	tasks       []schema.Task
	created     []schema.Task
	transitions []schema.Task
	listErr     error
}

func newFakeService() *fakeService {
	return &fakeService{
		users: []schema.User{
			{Code: 1, Name: "Ann", Email: "ann@example.com", Password: "pw1"},
			{Code: 2, Name: "Bob", Email: "bob@example.com", Password: "pw2"},
		},
		tasks: []schema.Task{
			{Code: 1, Name: "docs", Status: schema.StatusUnstarted, AssigneeCode: 2},
			{Code: 2, Name: "build", Status: schema.StatusInProgress, AssigneeCode: 1},
		},
	}
}

func (f *fakeService) user(code int) *schema.User {
	for index := range f.users {
		if f.users[index].Code == code {
			return &f.users[index]
		}
	}
	return nil
}

func (f *fakeService) Authenticate(email, password string) (schema.User, error) {
	for _, user := range f.users {
		if email != "" && user.Email == email && user.Password == password {
			return user, nil
		}
	}
	return schema.User{}, &lifecycle.AuthenticationError{Email: email}
}

func (f *fakeService) ListAll(viewer schema.User) ([]schema.TaskView, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var views []schema.TaskView
	for _, task := range f.tasks {
		task.Assignee = f.user(task.AssigneeCode)
		views = append(views, lifecycle.View(task, viewer))
	}
	return views, nil
}

func (f *fakeService) Create(code int, name string, assigneeCode int, _ schema.User) (schema.Task, error) {
	if f.user(assigneeCode) == nil {
		return schema.Task{}, &lifecycle.ReferenceError{UserCode: assigneeCode}
	}
	task := schema.Task{Code: code, Name: name, AssigneeCode: assigneeCode}
	f.tasks = append(f.tasks, task)
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeService) Transition(code int, requested schema.Status, _ schema.User) (schema.Task, error) {
	for index := range f.tasks {
		task := &f.tasks[index]
		if task.Code != code {
			continue
		}
		if !lifecycle.CanTransition(task.Status, requested) {
			return schema.Task{}, &lifecycle.InvalidTransitionError{Code: code, From: task.Status, To: requested}
		}
		task.Status = requested
		f.transitions = append(f.transitions, *task)
		return *task, nil
	}
	return schema.Task{}, &lifecycle.NotFoundError{Code: code}
}

type session struct {
	menu    *Menu
	output  *bytes.Buffer
	logins  []schema.User
	logouts int
}

func newSession(t *testing.T, service Service, input ...string) *session {
	t.Helper()
	var output bytes.Buffer
	renderer, err := tui.NewRenderer(&output, config.ColorNever)
	if err != nil {
		t.Fatal(err)
	}
	s := &session{output: &output}
	s.menu = New(Config{
		Service: service,
		Input:   strings.NewReader(strings.Join(input, "\n") + "\n"),
		Output:  &output,
		Styles:  tui.NewStyles(renderer, tui.DefaultTheme),
		OnLogin: func(user schema.User) error {
			s.logins = append(s.logins, user)
			return nil
		},
		OnLogout: func() error {
			s.logouts++
			return nil
		},
	})
	return s
}

func TestRun_LoginListLogout(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service,
		"ann@example.com", "wrong",
		"ann@example.com", "pw1",
		"1", "2",
		"3",
	)

	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := s.output.String()

	for _, want := range []string{
		"Welcome to the task tracker!",
		`no user matches email "ann@example.com"`,
		"Logged in as Ann.",
		"1. docs: Bob is assigned, Unstarted",
		"2. build: you are assigned, In progress",
		"1. Change a task's status, 2. Back to the main menu",
		"Logged out.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if len(s.logins) != 1 || s.logins[0].Code != 1 {
		t.Errorf("logins = %+v", s.logins)
	}
	if s.logouts != 1 {
		t.Errorf("logouts = %d, want 1", s.logouts)
	}
}

func TestRun_ExistingSessionSkipsLogin(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service, "3")
	user := service.users[1]

	if err := s.menu.Run(&user); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(s.output.String(), "Email: ") {
		t.Error("prompted for email despite an existing session")
	}
	if len(s.logins) != 0 {
		t.Errorf("OnLogin called for an existing session")
	}
}

func TestRun_InvalidMainChoice(t *testing.T) {
	s := newSession(t, newFakeService(), "ann@example.com", "pw1", "4", "x", "3")
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count := strings.Count(s.output.String(), "Invalid choice. Enter a number from 1 to 3."); count != 2 {
		t.Errorf("invalid-choice message printed %d times, want 2", count)
	}
}

func TestCreate_ValidatesAndRetries(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service,
		"ann@example.com", "pw1",
		"2",
		"abc",
		"7", "elevenchars",
		"7", "tests", "x",
		"7", "tests", "99",
		"7", "tests", "2",
		"3",
	)
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := s.output.String()

	for _, want := range []string{
		"Enter the task code as a number.",
		"Task names may be at most 10 characters.",
		"Enter the user code as a number.",
		"user 99 does not exist",
		"Created tests.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if len(service.created) != 1 || service.created[0] != (schema.Task{Code: 7, Name: "tests", AssigneeCode: 2}) {
		t.Errorf("created = %+v", service.created)
	}
}

func TestCreate_RejectsSignedNumbers(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service,
		"ann@example.com", "pw1",
		"2",
		"-0",
		"+7",
		"7", "tests", "-0",
		"7", "tests", "2",
		"3",
	)
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := s.output.String()

	if count := strings.Count(output, "Enter the task code as a number."); count != 2 {
		t.Errorf("task code complaint printed %d times, want 2:\n%s", count, output)
	}
	if !strings.Contains(output, "Enter the user code as a number.") {
		t.Errorf("assignee -0 accepted:\n%s", output)
	}
	if len(service.created) != 1 || service.created[0].Code != 7 || service.created[0].AssigneeCode != 2 {
		t.Errorf("created = %+v", service.created)
	}
}

func TestCreate_NameLimitCountsCharacters(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service, "ann@example.com", "pw1", "2", "8", "十文字のタスク名です", "1", "3")
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(service.created) != 1 {
		t.Errorf("a ten-character name was rejected:\n%s", s.output.String())
	}
}

func TestChangeStatus_ValidatesAndRetries(t *testing.T) {
	service := newFakeService()
	s := newSession(t, service,
		"ann@example.com", "pw1",
		"1", "5", "1",
		"-1",
		"1", "a",
		"1", "3",
		"1", "2",
		"9", "1",
		"1", "1",
		"3",
	)
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := s.output.String()

	for _, want := range []string{
		"Invalid choice. Enter 1 or 2.",
		"Enter the task code as a number.",
		"Enter the status as a number.",
		"Choose status 1 or 2.",
		"task 1 cannot move from unstarted to done",
		"task 9 does not exist",
		"Task docs is now In progress.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if len(service.transitions) != 1 || service.transitions[0].Status != schema.StatusInProgress {
		t.Errorf("transitions = %+v", service.transitions)
	}
}

func TestSubMenu_BackReturnsToMainMenu(t *testing.T) {
	s := newSession(t, newFakeService(), "ann@example.com", "pw1", "1", "2", "3")
	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(s.output.String(), "Logged out.") {
		t.Errorf("did not get back to the main menu:\n%s", s.output.String())
	}
}

func TestStorageFailureReturnsToMainMenu(t *testing.T) {
	service := newFakeService()
	service.listErr = fmt.Errorf("read tasks /data/tasks.csv: %w", errors.New("permission denied"))
	s := newSession(t, service, "ann@example.com", "pw1", "1", "3")

	if err := s.menu.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := s.output.String()
	if !strings.Contains(output, "Could not list tasks: read tasks /data/tasks.csv: permission denied") {
		t.Errorf("storage failure not reported:\n%s", output)
	}
	if strings.Contains(output, "Change a task's status") {
		t.Error("sub-menu shown after a failed listing")
	}
}

func TestRun_InputClosed(t *testing.T) {
	s := newSession(t, newFakeService(), "ann@example.com", "pw1", "1")
	err := s.menu.Run(nil)
	if !errors.Is(err, ErrInputClosed) {
		t.Errorf("err = %v, want ErrInputClosed", err)
	}
}
