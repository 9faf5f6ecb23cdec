package error_notificator

import "context"

type Notificator interface {
	// Notify: сообщает админу о фатальной ошибке действия
	Notify(ctx context.Context, action string, err error, details string) error
}
