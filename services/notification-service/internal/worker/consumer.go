package worker

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/WillBBHM/ProgrammationWeb/pkg/mq"
	"github.com/WillBBHM/ProgrammationWeb/services/notification-service/internal/events"
	"github.com/WillBBHM/ProgrammationWeb/services/notification-service/internal/notifier"
)

type Worker struct {
	consumer *mq.Consumer
	notifier notifier.Notifier
}

func New(cfg mq.ConsumerConfig, n notifier.Notifier) *Worker {
	return &Worker{consumer: mq.NewConsumer(cfg), notifier: n}
}

func (w *Worker) Connect() error { return w.consumer.Connect() }
func (w *Worker) Close()         { w.consumer.Close() }

// Run consumes until ctx is cancelled. Failed handlers nack with requeue;
// the message retries until it lands in the DLQ.
func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				log.Printf("[notify] handle key=%s failed: %v", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKReservationCreated:
		ev, err := events.Unmarshal[events.ReservationCreated](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Reservation created",
			fmt.Sprintf("Reservation %s for boat %s by %s, %s",
				ev.ReservationID, ev.BoatID, ev.FullName, notifier.HumanDateRange(ev.Start, ev.End)))

	case events.RKReservationConfirmed:
		ev, err := events.Unmarshal[events.ReservationChanged](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Reservation confirmed",
			fmt.Sprintf("Reservation %s has been confirmed.", ev.ReservationID))

	case events.RKReservationCancelled:
		ev, err := events.Unmarshal[events.ReservationChanged](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Reservation cancelled",
			fmt.Sprintf("Reservation %s has been cancelled.", ev.ReservationID))

	case events.RKReservationUpdated:
		ev, err := events.Unmarshal[events.ReservationChanged](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Reservation updated",
			fmt.Sprintf("Reservation %s has been updated.", ev.ReservationID))

	case events.RKReservationDeleted:
		ev, err := events.Unmarshal[events.ReservationChanged](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Reservation deleted",
			fmt.Sprintf("Reservation %s has been deleted.", ev.ReservationID))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
