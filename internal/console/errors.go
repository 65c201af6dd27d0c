package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/redact"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// report prints err according to its kind.
func (c *Console) report(ctx context.Context, err error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	switch {
	case errors.Is(err, domain.ErrValidation):
		log.Warn("invalid input", slog.String("error", redactedError(err)))
		c.println("❗️ ОШИБКА: " + validationMessage(err))
	case store.IsDuplicateError(err), store.IsNotFoundError(err):
		log.Warn("operation rejected",
			slog.String("kind", store.KindOf(err)),
			slog.String("error", redactedError(err)))
		c.println("❗️ ОШИБКА: " + userMessage(err))
	case errors.Is(err, store.ErrDataAccess):
		log.Error("database error",
			slog.String("kind", store.KindOf(err)),
			slog.String("error", redactedError(err)))
		c.println("❗️ ОШИБКА БАЗЫ ДАННЫХ: " + userMessage(err))
	default:
		log.Error("an unexpected error occurred", slog.String("error", redactedError(err)))
		c.println("❗️ Произошла непредвиденная ошибка: " + redactedError(err))
	}
}

// userMessage returns the localized store message, or the redacted error text
// if there is none.
func userMessage(err error) string {
	if msg := store.UserMessage(err); msg != "" {
		return msg
	}
	return redactedError(err)
}

func redactedError(err error) string {
	return redact.Error(err)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPhoneNumber):
		return "Некорректный номер телефона. Используйте международный формат, например +375291234567."
	case errors.Is(err, domain.ErrNegativeAmount):
		return "Сумма не может быть отрицательной."
	case errors.Is(err, domain.ErrAmountPrecision):
		return "Сумма может содержать не более двух знаков после запятой."
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return "Сумма слишком велика."
	default:
		return "Некорректные данные: " + redactedError(err)
	}
}
