package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrNoValidBlocks is returned by AssemblePayload when every activity block
// fails the submission gate.
var ErrNoValidBlocks = errors.New("at least one activity block with activity, description and a named service is required")

// FloorWire is the flattened per-floor entry carried on the wire as
// boq_activity_services_by_floors.
type FloorWire struct {
	FloorID   string `json:"floor_id"`
	FloorName string `json:"floor_name"`
	Quantity  int64  `json:"quantity"`
	Wastage   int64  `json:"wastage"`
}

// ServiceWire is one service row on the wire.
type ServiceWire struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	UOMID    string      `json:"uom_id"`
	Quantity int64       `json:"quantity"`
	Wastage  int64       `json:"wastage"`
	Floors   []FloorWire `json:"boq_activity_services_by_floors,omitempty"`
}

// ActivityWire is one activity block on the wire.
type ActivityWire struct {
	LabourActivityID string        `json:"labour_activity_id"`
	DescriptionID    string        `json:"description_id"`
	Services         []ServiceWire `json:"boq_activity_services"`
}

// ServiceBOQPayload is the request/response body for the service-boq
// endpoints. It mirrors the draft aggregate in its persisted nesting.
type ServiceBOQPayload struct {
	ID              string `json:"id,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`

	ProjectID string `json:"project_id"`
	SiteID    string `json:"site_id"`
	WingID    string `json:"wing_id"`

	CategoryPath

	Activities []ActivityWire `json:"boq_activities"`
}

// Validate checks the submittable shape of a draft: full location context,
// a level-1 category, and at least one valid activity block.
func (d *ServiceBOQDraft) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.ProjectID, validation.Required.Error("project is required")),
		validation.Field(&d.SiteID, validation.Required.Error("site is required")),
		validation.Field(&d.WingID, validation.Required.Error("wing is required")),
		validation.Field(&d.CategoryPath, validation.By(func(any) error {
			if d.CategoryPath.LevelOneID == "" {
				return errors.New("work category is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	for _, b := range d.Blocks {
		if b.IsValid() {
			return nil
		}
	}
	return ErrNoValidBlocks
}

// AssemblePayload validates the draft and converts it into the wire shape.
// Blocks that fail the submission gate are excluded entirely; rows without a
// name are silently filtered, preserving the order of the rest.
func AssemblePayload(d *ServiceBOQDraft) (ServiceBOQPayload, error) {
	if err := d.Validate(); err != nil {
		return ServiceBOQPayload{}, err
	}

	p := ServiceBOQPayload{
		ProjectID:    d.ProjectID,
		SiteID:       d.SiteID,
		WingID:       d.WingID,
		CategoryPath: d.CategoryPath,
	}

	for _, b := range d.Blocks {
		if !b.IsValid() {
			continue
		}
		aw := ActivityWire{
			LabourActivityID: b.LabourActivityID,
			DescriptionID:    b.DescriptionID,
		}
		for _, r := range b.Rows {
			if !r.HasName() {
				continue
			}
			sw := ServiceWire{
				ID:       r.ID,
				Name:     r.Name,
				UOMID:    r.UOMID,
				Quantity: r.Quantity,
				Wastage:  r.Wastage,
			}
			for _, f := range r.Floors {
				sw.Floors = append(sw.Floors, FloorWire{
					FloorID:   f.FloorID,
					FloorName: f.Name,
					Quantity:  f.Quantity,
					Wastage:   f.Wastage,
				})
			}
			aw.Services = append(aw.Services, sw)
		}
		p.Activities = append(p.Activities, aw)
	}

	return p, nil
}

// DraftFromPayload reconstructs an editable draft from a stored payload,
// preserving block and row order and every floor sub-row. Rows arriving
// without an id (hand-built payloads) get a fresh session id.
func DraftFromPayload(p ServiceBOQPayload) *ServiceBOQDraft {
	d := &ServiceBOQDraft{
		ProjectID:    p.ProjectID,
		SiteID:       p.SiteID,
		WingID:       p.WingID,
		CategoryPath: p.CategoryPath,
	}

	for _, aw := range p.Activities {
		b := ActivityBlock{
			LabourActivityID: aw.LabourActivityID,
			DescriptionID:    aw.DescriptionID,
		}
		for _, sw := range aw.Services {
			r := ServiceRow{
				ID:       sw.ID,
				Name:     sw.Name,
				UOMID:    sw.UOMID,
				Quantity: sw.Quantity,
				Wastage:  sw.Wastage,
			}
			if r.ID == "" {
				r.ID = NewServiceRow().ID
			}
			for _, f := range sw.Floors {
				r.Floors = append(r.Floors, FloorAllocation{
					FloorID:  f.FloorID,
					Name:     f.FloorName,
					Quantity: f.Quantity,
					Wastage:  f.Wastage,
				})
			}
			b.Rows = append(b.Rows, r)
		}
		d.Blocks = append(d.Blocks, b)
	}

	if len(d.Blocks) == 0 {
		d.Blocks = []ActivityBlock{newActivityBlock()}
	}
	return d
}
