package controller

// Notifier receives the user-visible outcome of an operation. The web
// layer renders these as toasts.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer answers destructive-operation prompts. A controller never
// deletes without a positive answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// StaticConfirmer always answers the same way.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string) bool { return bool(c) }
