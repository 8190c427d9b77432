package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"jobboard-service/internal/model"
)

type EventPublisher interface {
	PublishUserRegistered(user *model.User) error
	PublishOfferCreated(offer *model.JobOffer) error
	PublishOfferDeleted(offerID, authorID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type UserRegisteredEvent struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type OfferCreatedEvent struct {
	EventType string    `json:"event_type"`
	OfferID   uuid.UUID `json:"offer_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type OfferDeletedEvent struct {
	EventType string    `json:"event_type"`
	OfferID   uuid.UUID `json:"offer_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (p *NatsPublisher) PublishUserRegistered(user *model.User) error {
	event := UserRegisteredEvent{
		EventType: "user.registered",
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	return p.publish("user.registered", event)
}

func (p *NatsPublisher) PublishOfferCreated(offer *model.JobOffer) error {
	event := OfferCreatedEvent{
		EventType: "offer.created",
		OfferID:   offer.ID,
		AuthorID:  offer.AuthorID,
		Title:     offer.Title,
		CreatedAt: offer.CreatedAt,
	}

	return p.publish("offer.created", event)
}

func (p *NatsPublisher) PublishOfferDeleted(offerID, authorID uuid.UUID) error {
	event := OfferDeletedEvent{
		EventType: "offer.deleted",
		OfferID:   offerID,
		AuthorID:  authorID,
		DeletedAt: time.Now(),
	}

	return p.publish("offer.deleted", event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject)

	return nil
}
