package gridkit

import (
	"go.uber.org/zap"
)

// Notifier shows transient, user-facing outcome messages.
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Logger.Info(msg)
}

func (n LogNotifier) Failure(msg string, err error) {
	n.Logger.Error(msg, zap.Error(err))
}

// NotifierFuncs adapts two functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	OnSuccess func(msg string)
	OnFailure func(msg string, err error)
}

func (n NotifierFuncs) Success(msg string) {
	if n.OnSuccess != nil {
		n.OnSuccess(msg)
	}
}

func (n NotifierFuncs) Failure(msg string, err error) {
	if n.OnFailure != nil {
		n.OnFailure(msg, err)
	}
}
