// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"errors"
	"log/slog"

	"github.com/bureau-foundation/tasktracker/lib/clock"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// UserFinder is the read-only user lookup the service needs.
// [*store.UserStore] implements it.
type UserFinder interface {
	FindByCode(code int) (schema.User, bool, error)
	FindByEmailAndPassword(email, password string) (schema.User, bool, error)
}

// TaskRepository is the task persistence the service needs.
// [*store.TaskStore] implements it.
type TaskRepository interface {
	FindAll() ([]schema.Task, error)
	FindByCode(code int) (schema.Task, bool, error)
	Save(task schema.Task) error
	Update(task schema.Task) error
}

// AuditLog is the audit persistence the service needs.
// [*store.LogStore] implements it.
type AuditLog interface {
	Save(entry schema.LogEntry) error
	FindByTaskCode(code int) ([]schema.LogEntry, error)
}

// Config holds the collaborators of a [Service]. Users, Tasks, and Log
// are required.
type Config struct {
	Users UserFinder
	Tasks TaskRepository
	Log   AuditLog

	// Clock supplies the audit date. Defaults to the real clock.
	Clock clock.Clock

	// Logger receives audit failures and debug traces. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Service runs task operations against the stores.
type Service struct {
	users  UserFinder
	tasks  TaskRepository
	log    AuditLog
	clock  clock.Clock
	logger *slog.Logger
}

// New returns a Service for config.
func New(config Config) (*Service, error) {
	if config.Users == nil || config.Tasks == nil || config.Log == nil {
		return nil, errors.New("lifecycle: Users, Tasks, and Log are required")
	}
	service := &Service{
		users:  config.Users,
		tasks:  config.Tasks,
		log:    config.Log,
		clock:  config.Clock,
		logger: config.Logger,
	}
	if service.clock == nil {
		service.clock = clock.Real()
	}
	if service.logger == nil {
		service.logger = slog.New(slog.DiscardHandler)
	}
	return service, nil
}

// Create persists a new unstarted task assigned to assigneeCode and
// records its creation on behalf of actor.
//
// An unknown assignee fails with [*ReferenceError] before anything is
// written. Duplicate task codes are not rejected.
func (s *Service) Create(code int, name string, assigneeCode int, actor schema.User) (schema.Task, error) {
	assignee, ok, err := s.users.FindByCode(assigneeCode)
	if err != nil {
		return schema.Task{}, err
	}
	if !ok {
		return schema.Task{}, &ReferenceError{UserCode: assigneeCode}
	}

	task := schema.Task{
		Code:         code,
		Name:         name,
		Status:       schema.StatusUnstarted,
		AssigneeCode: assignee.Code,
		Assignee:     &assignee,
	}
	if err := s.tasks.Save(task); err != nil {
		return schema.Task{}, err
	}
	s.audit(task, actor)

	s.logger.Debug("task created", "code", code, "assignee", assigneeCode, "actor", actor.Code)
	return task, nil
}

// Transition moves task code to requested on behalf of actor and
// returns the updated task.
//
// An unknown code fails with [*NotFoundError]. A requested status that
// is not exactly one step ahead of the current one fails with
// [*InvalidTransitionError]. Neither failure writes anything.
func (s *Service) Transition(code int, requested schema.Status, actor schema.User) (schema.Task, error) {
	task, ok, err := s.tasks.FindByCode(code)
	if err != nil {
		return schema.Task{}, err
	}
	if !ok {
		return schema.Task{}, &NotFoundError{Code: code}
	}
	if !CanTransition(task.Status, requested) {
		return schema.Task{}, &InvalidTransitionError{Code: code, From: task.Status, To: requested}
	}

	previous := task.Status
	task.Status = requested
	if err := s.tasks.Update(task); err != nil {
		return schema.Task{}, err
	}
	s.audit(task, actor)

	s.logger.Debug("task transitioned",
		"code", code,
		"from", previous.String(),
		"to", requested.String(),
		"actor", actor.Code,
	)
	return task, nil
}

// Advance moves task code to the status after its current one.
func (s *Service) Advance(code int, actor schema.User) (schema.Task, error) {
	task, err := s.FindTask(code)
	if err != nil {
		return schema.Task{}, err
	}
	next, ok := Next(task.Status)
	if !ok {
		return schema.Task{}, &InvalidTransitionError{Code: code, From: task.Status, To: task.Status + 1}
	}
	return s.Transition(code, next, actor)
}

// ListAll returns every task in file order together with its
// assignee's name and whether viewer is the assignee. The name is empty
// when the assignee no longer exists.
func (s *Service) ListAll(viewer schema.User) ([]schema.TaskView, error) {
	tasks, err := s.tasks.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]schema.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, View(task, viewer))
	}
	return views, nil
}

// View derives the display row of task for viewer.
func View(task schema.Task, viewer schema.User) schema.TaskView {
	view := schema.TaskView{Task: task}
	if task.Assignee != nil {
		view.AssigneeName = task.Assignee.Name
		view.AssignedToViewer = task.Assignee.Code == viewer.Code
	}
	return view
}

// FindTask returns task code or [*NotFoundError].
func (s *Service) FindTask(code int) (schema.Task, error) {
	task, ok, err := s.tasks.FindByCode(code)
	if err != nil {
		return schema.Task{}, err
	}
	if !ok {
		return schema.Task{}, &NotFoundError{Code: code}
	}
	return task, nil
}

// FindUser returns user code or [*ReferenceError].
func (s *Service) FindUser(code int) (schema.User, error) {
	user, ok, err := s.users.FindByCode(code)
	if err != nil {
		return schema.User{}, err
	}
	if !ok {
		return schema.User{}, &ReferenceError{UserCode: code}
	}
	return user, nil
}

// History returns the audit entries for task code in the order they
// were recorded. The task itself need not exist.
func (s *Service) History(code int) ([]schema.LogEntry, error) {
	return s.log.FindByTaskCode(code)
}

// Authenticate returns the user matching email and password, or
// [*AuthenticationError].
func (s *Service) Authenticate(email, password string) (schema.User, error) {
	if email == "" {
		return schema.User{}, &AuthenticationError{}
	}
	user, ok, err := s.users.FindByEmailAndPassword(email, password)
	if err != nil {
		return schema.User{}, err
	}
	if !ok {
		return schema.User{}, &AuthenticationError{Email: email}
	}
	return user, nil
}

// audit appends the log entry for task's current status. A failure is
// logged and otherwise ignored: the task write has already happened.
func (s *Service) audit(task schema.Task, actor schema.User) {
	entry := schema.LogEntry{
		TaskCode:  task.Code,
		Status:    task.Status,
		ActorCode: actor.Code,
		Date:      clock.Today(s.clock),
	}
	if err := s.log.Save(entry); err != nil {
		s.logger.Warn("audit log append failed",
			"task", task.Code,
			"status", task.Status.String(),
			"actor", actor.Code,
			"error", err,
		)
	}
}
