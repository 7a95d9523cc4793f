// Package services holds the background collaborators: the WhatsApp notifier
// worker and its retry scheduler.
package services

import (
	"fmt"
	"log"
	"time"

	"frenoshugo-backend/config"
	"frenoshugo-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const maxSendAttempts = 3

// ServiceRegisteredEvent is emitted after a service row has been committed.
type ServiceRegisteredEvent struct {
	Service models.Service
	Vehicle models.Vehicle
}

// MessageSender delivers one WhatsApp message. Abstracted so the worker can
// be exercised in tests without Twilio.
type MessageSender interface {
	Send(to, body string) error
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

func (t *twilioSender) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("WhatsApp message sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("WhatsApp message sent to %s, but no SID returned", to)
	}
	return nil
}

// Notifier consumes post-commit registration events and sends the owner a
// WhatsApp summary, best-effort. Every attempt is recorded in
// notification_logs; a cron job retries failed sends. Send failures never
// reach the request that produced the event.
type Notifier struct {
	db     *gorm.DB
	sender MessageSender
	events chan ServiceRegisteredEvent
	done   chan struct{}
	cron   *cron.Cron
}

func NewNotifier(db *gorm.DB, cfg config.Config) *Notifier {
	var sender MessageSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		sender = &twilioSender{
			client: twilio.NewRestClientWithParams(twilio.ClientParams{
				Username: cfg.TwilioAccountSID,
				Password: cfg.TwilioAuthToken,
			}),
			from: cfg.TwilioWhatsAppFrom,
		}
	} else {
		log.Println("Twilio credentials not set, WhatsApp notifications disabled")
	}
	return newNotifier(db, sender)
}

func newNotifier(db *gorm.DB, sender MessageSender) *Notifier {
	return &Notifier{
		db:     db,
		sender: sender,
		events: make(chan ServiceRegisteredEvent, 64),
		done:   make(chan struct{}),
		cron:   cron.New(),
	}
}

// Start launches the delivery worker and the retry scheduler.
func (n *Notifier) Start() {
	go func() {
		for ev := range n.events {
			n.deliver(ev)
		}
		close(n.done)
	}()

	// Retry failed sends every 10 minutes.
	n.cron.AddFunc("*/10 * * * *", n.RetryFailed)
	n.cron.Start()
	log.Println("Notifier started")
}

// Stop drains the event queue and halts the scheduler.
func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
	close(n.events)
	<-n.done
	log.Println("Notifier stopped")
}

// ServiceRegistered enqueues a notification for a freshly registered service.
// Never blocks: if the queue is full the event is dropped and logged.
func (n *Notifier) ServiceRegistered(service models.Service, vehicle models.Vehicle) {
	select {
	case n.events <- ServiceRegisteredEvent{Service: service, Vehicle: vehicle}:
	default:
		log.Printf("Notification queue full, dropping event for work order %d", service.WorkOrder)
	}
}

// RenderServiceMessage builds the owner-facing summary for one service.
func RenderServiceMessage(service models.Service) string {
	return fmt.Sprintf(
		"Frenos Hugo: orden de trabajo #%d registrada para el vehículo %s. Trabajo: %s. Costo: $%.2f. Fecha: %s.",
		service.WorkOrder,
		service.Plate,
		service.Work,
		service.Cost,
		service.ServiceDate.Format("02/01/2006"),
	)
}

func (n *Notifier) deliver(ev ServiceRegisteredEvent) {
	message := RenderServiceMessage(ev.Service)

	entry := models.NotificationLog{
		ServiceID: ev.Service.ID,
		Phone:     ev.Vehicle.Phone,
		Message:   message,
		Channel:   "whatsapp",
		Status:    "sent",
		Attempts:  1,
		SentAt:    time.Now(),
	}

	if n.sender == nil {
		entry.Status = "skipped"
	} else if err := n.sender.Send(ev.Vehicle.Phone, message); err != nil {
		log.Printf("Failed to send notification to %s: %v", ev.Vehicle.Phone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	}

	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for service %d: %v", ev.Service.ID, err)
	}
}

// RetryFailed re-sends failed notifications that still have attempts left.
func (n *Notifier) RetryFailed() {
	if n.sender == nil {
		return
	}

	var failed []models.NotificationLog
	err := n.db.
		Where("status = ? AND attempts < ?", "failed", maxSendAttempts).
		Find(&failed).Error
	if err != nil {
		log.Printf("Failed to fetch pending notifications: %v", err)
		return
	}

	for _, entry := range failed {
		entry.Attempts++
		entry.SentAt = time.Now()
		if err := n.sender.Send(entry.Phone, entry.Message); err != nil {
			log.Printf("Retry %d failed for notification %s: %v", entry.Attempts, entry.ID, err)
			entry.ErrorMessage = err.Error()
		} else {
			entry.Status = "sent"
			entry.ErrorMessage = ""
		}
		if err := n.db.Save(&entry).Error; err != nil {
			log.Printf("Failed to update notification %s: %v", entry.ID, err)
		}
	}
}
