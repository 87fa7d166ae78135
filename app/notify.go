package app

// ToastKind selects how a transient notification is styled.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Notifier surfaces short, non-blocking messages to the user.
type Notifier interface {
	Notify(kind ToastKind, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind ToastKind, message string)

func (f NotifierFunc) Notify(kind ToastKind, message string) { f(kind, message) }
