package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/platform/logger"
	"github.com/phrazzld/telecom-billing/internal/redact"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (c *Console) askAndShowSubscriberServices(ctx context.Context) error {
	id, ok, err := c.readID("Введите ID абонента: ")
	if err != nil || !ok {
		return err
	}
	return c.showSubscriberServices(ctx, id)
}

func (c *Console) showSubscriberServices(ctx context.Context, subscriberID int64) error {
	services, err := c.stores.Services.FindBySubscriberID(ctx, subscriberID)
	if err != nil {
		return err
	}

	if len(services) == 0 {
		c.printf("У абонента с ID %d нет подключенных услуг.\n", subscriberID)
		return nil
	}

	c.printf("Текущие услуги абонента ID %d:\n", subscriberID)
	for _, s := range services {
		c.printf("  - %s (%s руб./мес.)\n", s.Name, money(s.MonthlyFee))
	}
	return nil
}

func (c *Console) askAndShowSubscriberInvoices(ctx context.Context) error {
	id, ok, err := c.readID("Введите ID абонента: ")
	if err != nil || !ok {
		return err
	}
	return c.showSubscriberInvoices(ctx, id)
}

func (c *Console) showSubscriberInvoices(ctx context.Context, subscriberID int64) error {
	invoices, err := c.stores.Invoices.FindBySubscriberID(ctx, subscriberID)
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		c.printf("Счета для абонента с ID %d не найдены.\n", subscriberID)
		return nil
	}

	c.printf("Список счетов абонента ID %d:\n", subscriberID)
	for _, inv := range invoices {
		status := "НЕ ОПЛАЧЕН"
		if inv.Status() == domain.InvoicePaid {
			status = "Оплачен"
		}
		c.printf("  - Счет №%d от %s на сумму %s руб. Статус: %s\n",
			inv.ID, inv.IssueDate.Format(dateLayout), money(inv.Amount), status)
	}
	return nil
}

func (c *Console) showAllServices(ctx context.Context) error {
	services, err := c.stores.Services.FindAll(ctx)
	if err != nil {
		return err
	}

	if len(services) == 0 {
		c.println("Список услуг пуст.")
		return nil
	}

	c.println("Список всех доступных услуг:")
	for _, s := range services {
		c.printf("  - [ID: %d] %s (%s руб./мес.)\n", s.ID, s.Name, money(s.MonthlyFee))
	}
	return nil
}

func (c *Console) payInvoice(ctx context.Context) error {
	id, ok, err := c.readID("Введите ID счета для оплаты: ")
	if err != nil || !ok {
		return err
	}

	paid, err := c.stores.Invoices.Pay(ctx, id)
	if err != nil {
		return err
	}
	if !paid {
		return nil
	}

	logger.FromContextOrDefault(ctx, c.logger).Info("invoice paid from console", slog.Int64("invoice_id", id))
	c.printf("✅ Счет №%d был успешно оплачен.\n", id)

	subscriberID, err := c.stores.Invoices.FindSubscriberIDByInvoiceID(ctx, id)
	if err != nil {
		return err
	}
	if subscriberID == nil {
		return nil
	}
	return c.showSubscriberInvoices(ctx, *subscriberID)
}

func (c *Console) blockSubscriber(ctx context.Context) error {
	id, ok, err := c.readID("Введите ID абонента для блокировки: ")
	if err != nil || !ok {
		return err
	}

	if err := c.stores.Subscribers.Block(ctx, id); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, c.logger).Info("subscriber blocked from console", slog.Int64("subscriber_id", id))
	c.printf("Абонент с ID %d был заблокирован.\n", id)
	return nil
}

func (c *Console) showAllSubscribers(ctx context.Context) error {
	subscribers, err := c.stores.Subscribers.FindAll(ctx)
	if err != nil {
		return err
	}

	if len(subscribers) == 0 {
		c.println("В системе нет зарегистрированных абонентов.")
		return nil
	}

	c.println("Список всех абонентов:")
	c.printf("%-5s %-20s %-15s %-10s %-10s\n", "ID", "Имя", "Телефон", "Баланс", "Статус")
	for _, s := range subscribers {
		c.printf("%-5d %-20s %-15s %-10s %-10s\n", s.ID, s.Name, s.PhoneNumber, money(s.Balance), statusOf(s))
	}
	return nil
}

func statusOf(s *domain.Subscriber) string {
	if s.IsBlocked {
		return "Заблокирован"
	}
	return "Активен"
}

func (c *Console) showSubscriberDetails(ctx context.Context) error {
	id, ok, err := c.readID("Введите ID абонента: ")
	if err != nil || !ok {
		return err
	}

	sub, err := c.stores.Subscribers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		c.printf("Абонент с ID %d не найден.\n", id)
		return nil
	}

	c.printf("Детальная информация по абоненту ID %d:\n", sub.ID)
	c.printf("  Имя: %s\n", sub.Name)
	c.printf("  Телефон: %s\n", sub.PhoneNumber)
	c.printf("  Баланс: %s руб.\n", money(sub.Balance))
	c.printf("  Статус: %s\n", statusOf(sub))
	return nil
}

func (c *Console) addSubscriber(ctx context.Context) error {
	name, err := c.readLine("Введите имя нового абонента: ")
	if err != nil {
		return err
	}
	phone, err := c.readLine("Введите номер телефона (+375...): ")
	if err != nil {
		return err
	}

	sub, err := domain.NewSubscriber(name, phone, decimal.Zero)
	if err != nil {
		return err
	}

	created, err := c.stores.Subscribers.Add(ctx, sub)
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, c.logger).Info("subscriber added from console",
		slog.Int64("subscriber_id", created.ID),
		slog.String("phone_number", redact.Phone(created.PhoneNumber)))
	c.printf("Абонент успешно создан с ID: %d\n", created.ID)
	return nil
}

func (c *Console) showUnpaidInvoices(ctx context.Context) error {
	invoices, err := c.stores.Invoices.FindUnpaid(ctx)
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		c.println("Все счета оплачены.")
		return nil
	}

	c.println("Список неоплаченных счетов:")
	for _, inv := range invoices {
		owner := "—"
		if inv.SubscriberID != 0 {
			owner = fmt.Sprint(inv.SubscriberID)
		}
		c.printf("  - Счет №%d (абонент ID %s) на сумму %s руб.\n", inv.ID, owner, money(inv.Amount))
	}
	return nil
}

func (c *Console) connectServiceToSubscriber(ctx context.Context) error {
	c.println("Выберите абонента для подключения услуги:")
	if err := c.showAllSubscribers(ctx); err != nil {
		return err
	}
	subscriberID, ok, err := c.readID("Введите ID абонента: ")
	if err != nil || !ok {
		return err
	}

	c.println("\nВыберите услугу для подключения:")
	if err := c.showAllServices(ctx); err != nil {
		return err
	}
	serviceID, ok, err := c.readID("Введите ID услуги: ")
	if err != nil || !ok {
		return err
	}

	if err := c.stores.Services.LinkServiceToSubscriber(ctx, subscriberID, serviceID); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, c.logger).Info("service linked from console",
		slog.Int64("subscriber_id", subscriberID),
		slog.Int64("service_id", serviceID))
	c.println("Услуга успешно подключена абоненту.")
	return c.showSubscriberServices(ctx, subscriberID)
}
