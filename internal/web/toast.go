package web

import "sync"

// Toast is one user-visible notification.
type Toast struct {
	Level   string `json:"level"` // success | error
	Message string `json:"message"`
}

// toastQueue collects notifications emitted by controllers during a
// request so the response can carry them to the browser. Implements
// controller.Notifier.
type toastQueue struct {
	mu     sync.Mutex
	toasts []Toast
}

func (q *toastQueue) Success(msg string) { q.push("success", msg) }
func (q *toastQueue) Error(msg string)   { q.push("error", msg) }

func (q *toastQueue) push(level, msg string) {
	if msg == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, Toast{Level: level, Message: msg})
}

// Drain returns the pending toasts and empties the queue.
func (q *toastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	return out
}

// requestConfirmer answers delete confirmations with the value armed by
// the current request's confirm flag. Implements controller.Confirmer.
type requestConfirmer struct {
	mu    sync.Mutex
	armed bool
}

func (r *requestConfirmer) Arm(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.armed = ok
}

func (r *requestConfirmer) Confirm(string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.armed
}
