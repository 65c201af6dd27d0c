package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/seed"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// errInputClosed stops the menu loop when the reader is exhausted.
var errInputClosed = errors.New("input closed")

const separator = "----------------------------------------"

// Resetter replaces the stored data with the demo data set.
type Resetter interface {
	Reset(ctx context.Context) (*seed.Result, error)
}

// Stores groups the stores the console works with.
type Stores struct {
	Subscribers store.SubscriberStore
	Services    store.ServiceStore
	Invoices    store.InvoiceStore
}

// Console is the interactive menu.
type Console struct {
	stores Stores
	seeder Resetter
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// New creates a console reading from in and writing to out.
// If logger is nil, a default logger will be used.
func New(stores Stores, seeder Resetter, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		stores: stores,
		seeder: seeder,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With(slog.String("component", "console")),
	}
}

// Run asks for the startup mode and then serves the menu until the user
// chooses 0, the input ends or ctx is cancelled. It returns an error only if
// the demo data could not be loaded or ctx was cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.println("Добро пожаловать в Telecom App!")
	c.println("Выберите режим работы:")
	c.println("  1. Начать с чистой базой данных (заполнить тестовыми данными)")
	c.println("  2. Продолжить работу с существующими данными")

	mode, err := c.readLine("Ваш выбор [1 или 2]: ")
	if err != nil {
		return nil
	}

	switch mode {
	case "1":
		c.println("\nОчистка и заполнение базы данных тестовыми данными...")
		if _, err := c.seeder.Reset(c.actionContext(ctx, "reset")); err != nil {
			c.logger.Error("failed to load demo data", slog.String("error", redactedError(err)))
			c.printf("FATAL: Ошибка при заполнении базы данных: %s\n", userMessage(err))
			return fmt.Errorf("failed to load demo data: %w", err)
		}
		c.logger.Info("database re-initialized with demo data")
		c.println("База данных успешно заполнена тестовыми данными.")
	case "2":
		c.logger.Info("using existing data")
		c.println("\nПодключение к существующей базе данных...")
	default:
		c.println("Неверный выбор. Выход из приложения.")
		return nil
	}

	c.println("\n" + separator)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		line, err := c.readLine("Выберите опцию: ")
		if err != nil {
			return nil
		}

		choice, convErr := strconv.Atoi(line)
		if convErr == nil && choice == 0 {
			c.logger.Info("application shutting down")
			c.println("Выход из приложения.")
			return nil
		}

		action, ok := c.actions()[choice]
		if convErr != nil || !ok {
			c.println("Неверная опция, попробуйте снова.")
			c.println(separator)
			continue
		}

		actx := c.actionContext(ctx, strconv.Itoa(choice))
		if err := action(actx); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			c.report(actx, err)
		}
		c.println(separator)
	}
}

func (c *Console) actions() map[int]func(context.Context) error {
	return map[int]func(context.Context) error{
		1:  c.askAndShowSubscriberServices,
		2:  c.askAndShowSubscriberInvoices,
		3:  c.showAllServices,
		4:  c.payInvoice,
		5:  c.blockSubscriber,
		6:  c.showAllSubscribers,
		7:  c.showSubscriberDetails,
		8:  c.addSubscriber,
		9:  c.showUnpaidInvoices,
		10: c.connectServiceToSubscriber,
	}
}

func (c *Console) printMenu() {
	c.println("1. Показать услуги абонента")
	c.println("2. Показать счета абонента")
	c.println("3. Показать все доступные услуги")
	c.println("4. Оплатить счет")
	c.println("5. Заблокировать абонента")
	c.println("6. Показать всех абонентов")
	c.println("7. Детальная информация об абоненте")
	c.println("8. Добавить нового абонента")
	c.println("9. Показать неоплаченные счета")
	c.println("10. Подключить услугу абоненту")
	c.println("0. Выход")
}

// actionContext attaches a logger carrying a fresh correlation ID.
func (c *Console) actionContext(ctx context.Context, action string) context.Context {
	log := c.logger.With(
		slog.String("correlation_id", uuid.NewString()),
		slog.String("action", action),
	)
	return logger.WithLogger(ctx, log)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.logger.Error("failed to read input", slog.String("error", err.Error()))
		}
		c.println("")
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readID prompts for a numeric ID. ok is false if the input was not a number;
// the user has already been told.
func (c *Console) readID(prompt string) (id int64, ok bool, err error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.ParseInt(line, 10, 64)
	if convErr != nil {
		c.println("Некорректный ввод ID.")
		return 0, false, nil
	}
	return id, true, nil
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
