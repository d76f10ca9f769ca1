package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// maxInFlight предел одновременно обрабатываемых напоминаний.
// Отправка письма занимает секунды, большее распараллеливание
// упирается в лимиты SMTP-сервера.
const maxInFlight = 10

// ConsumeReminders подписывается на очередь напоминаний и передает тело
// каждого сообщения обработчику. Подтверждение ручное: успешно
// обработанное напоминание подтверждается, при ошибке обработчика
// сообщение возвращается в очередь на повторную доставку.
func ConsumeReminders(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumeReminders"
	deliveries, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					settleReminder(d, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// settleReminder обрабатывает одно напоминание и подтверждает либо
// возвращает его в очередь.
func settleReminder(d amqp.Delivery, handler func([]byte) error) {
	if err := handler(d.Body); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Printf("failed to nack reminder: %v", nackErr)
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Printf("failed to ack reminder: %v", ackErr)
	}
}
