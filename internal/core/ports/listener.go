// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/buildviz/internal/core/domain"

// BuildListener receives lifecycle notifications from a host build engine.
// Notifications are delivered one at a time; each call completes before the next.
//
//go:generate mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks
type BuildListener interface {
	ProjectStarted(e domain.ProjectStarted) error
	ProjectFinished(e domain.ProjectFinished) error
	TargetStarted(e domain.TargetStarted) error
	TargetFinished(e domain.TargetFinished) error
	TaskStarted(e domain.TaskStarted) error
	TaskFinished(e domain.TaskFinished) error
	MessageLogged(e domain.MessageLogged) error
}
