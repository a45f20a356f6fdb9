package notifier

import (
	"fmt"
	"log"
)

// Notifier abstracts the delivery channel (email, SMS, chat webhook).
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier writes notifications to the service log.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}

// HumanDateRange renders a closed date range for notification text.
func HumanDateRange(start, end string) string {
	if start == end {
		return start
	}
	return fmt.Sprintf("%s to %s", start, end)
}
