package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди конвейера напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminders.due_tomorrow", RoutingKey: "due_tomorrow"},
	}
}
