package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jobboard-service/internal/events"
	"jobboard-service/internal/model"
	"jobboard-service/internal/repository"
)

var (
	ErrOfferNotFound    = errors.New("job offer not found")
	ErrNotOwner         = errors.New("caller does not own this resource")
	ErrFieldNotEditable = errors.New("field is not editable")
)

// FieldEdit is one entry of a PATCH body: a field name and its new value.
type FieldEdit struct {
	PropName string      `json:"propName"`
	Value    interface{} `json:"value"`
}

// editableColumns maps patchable field names to their columns. id, authorId
// and date are deliberately absent: those fields are immutable after create.
var editableColumns = map[string]string{
	"title":       "title",
	"position":    "position",
	"firm":        "firm",
	"dimensions":  "dimensions",
	"description": "description",
	"city":        "city",
	"street":      "street",
	"number":      "number",
	"tags":        "tags",
}

type JobOfferService interface {
	List(ctx context.Context) ([]model.JobOffer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.JobOffer, error)
	Create(ctx context.Context, callerID uuid.UUID, offer *model.JobOffer) (*model.JobOffer, error)
	Patch(ctx context.Context, callerID, id uuid.UUID, edits []FieldEdit) error
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

type jobOfferService struct {
	offerRepo repository.JobOfferRepository
	publisher events.EventPublisher
}

func NewJobOfferService(offerRepo repository.JobOfferRepository, publisher events.EventPublisher) JobOfferService {
	return &jobOfferService{offerRepo: offerRepo, publisher: publisher}
}

func (s *jobOfferService) List(ctx context.Context) ([]model.JobOffer, error) {
	return s.offerRepo.ListByDateAsc(ctx)
}

func (s *jobOfferService) GetByID(ctx context.Context, id uuid.UUID) (*model.JobOffer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if offer == nil {
		return nil, ErrOfferNotFound
	}

	return offer, nil
}

func (s *jobOfferService) Create(ctx context.Context, callerID uuid.UUID, offer *model.JobOffer) (*model.JobOffer, error) {
	offer.AuthorID = callerID

	createdOffer, err := s.offerRepo.Create(ctx, offer)

	if err != nil {
		return nil, err
	}

	go s.publisher.PublishOfferCreated(createdOffer)

	return createdOffer, nil
}

// Patch applies the edits as a single set-update. Every edit must name an
// editable field; one bad entry rejects the whole patch.
func (s *jobOfferService) Patch(ctx context.Context, callerID, id uuid.UUID, edits []FieldEdit) error {
	offer, err := s.offerRepo.FindByID(ctx, id)

	if err != nil {
		return err
	}

	if offer == nil {
		return ErrOfferNotFound
	}

	if offer.AuthorID != callerID {
		return ErrNotOwner
	}

	columns := make(map[string]interface{}, len(edits))
	for _, edit := range edits {
		column, ok := editableColumns[edit.PropName]
		if !ok {
			return fmt.Errorf("%w: %q", ErrFieldNotEditable, edit.PropName)
		}

		value := edit.Value
		if edit.PropName == "tags" {
			tags, err := toTags(edit.Value)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrFieldNotEditable, edit.PropName)
			}
			value = tags
		}

		columns[column] = value
	}

	return s.offerRepo.Update(ctx, id, columns)
}

// Delete permits only the offer's author to remove it.
func (s *jobOfferService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	offer, err := s.offerRepo.FindByID(ctx, id)

	if err != nil {
		return err
	}

	if offer == nil {
		return ErrOfferNotFound
	}

	if offer.AuthorID != callerID {
		return ErrNotOwner
	}

	deleted, err := s.offerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrOfferNotFound
	}

	go s.publisher.PublishOfferDeleted(id, callerID)

	return nil
}

func toTags(value interface{}) (model.Tags, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, errors.New("tags must be a list of strings")
	}

	tags := make(model.Tags, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("tags must be a list of strings")
		}
		tags = append(tags, s)
	}

	return tags, nil
}
