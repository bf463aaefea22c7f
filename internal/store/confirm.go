package store

// Confirmer asks for an explicit yes/no before a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer that always answers yes.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Declined is a Confirmer that always answers no.
var Declined Confirmer = ConfirmFunc(func(string) bool { return false })
