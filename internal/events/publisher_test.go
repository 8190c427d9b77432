package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"jobboard-service/internal/events"
	"jobboard-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRegisteredEvent_Marshal(t *testing.T) {
	u := &model.User{ID: uuid.New(), Email: "john@x.com", CreatedAt: time.Now()}
	ev := events.UserRegisteredEvent{
		EventType: "user.registered",
		UserID:    u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "user.registered", decoded["event_type"])
	require.Equal(t, "john@x.com", decoded["email"])
}

func TestOfferCreatedEvent_Marshal(t *testing.T) {
	o := &model.JobOffer{ID: uuid.New(), AuthorID: uuid.New(), Title: "Offer", CreatedAt: time.Now()}
	ev := events.OfferCreatedEvent{
		EventType: "offer.created",
		OfferID:   o.ID,
		AuthorID:  o.AuthorID,
		Title:     o.Title,
		CreatedAt: o.CreatedAt,
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "offer.created", decoded["event_type"])
	require.Equal(t, o.ID.String(), decoded["offer_id"])
}

func TestOfferDeletedEvent_Marshal(t *testing.T) {
	offerID := uuid.New()
	authorID := uuid.New()
	ev := events.OfferDeletedEvent{
		EventType: "offer.deleted",
		OfferID:   offerID,
		AuthorID:  authorID,
		DeletedAt: time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "offer.deleted", decoded["event_type"])
	require.Equal(t, authorID.String(), decoded["author_id"])
}
