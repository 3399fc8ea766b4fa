package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNoActivity is returned when a description is set on a block that
	// has no labour activity yet.
	ErrNoActivity = errors.New("labour activity must be selected before a description")

	// ErrRowNotFound is returned when a row id does not exist in a block.
	ErrRowNotFound = errors.New("service row not found")
)

// FloorAllocation is one floor's share of a service row's quantity and
// wastage. Name is denormalized so saved breakdowns survive floor renames.
type FloorAllocation struct {
	FloorID  string `json:"floor_id"`
	Name     string `json:"floor_name"`
	Quantity int64  `json:"quantity"`
	Wastage  int64  `json:"wastage"`
}

// ServiceRow is one line item within an activity block. ID is generated when
// the row is created and stays stable for the editing session. Floors is the
// optional materialized per-floor breakdown; when present, Quantity and
// Wastage equal the sums over it after every committed edit.
type ServiceRow struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	UOMID    string            `json:"uom_id"`
	Quantity int64             `json:"quantity"`
	Wastage  int64             `json:"wastage"`
	Floors   []FloorAllocation `json:"floors,omitempty"`
}

// HasName reports whether the row carries a non-blank name and therefore
// counts towards submission.
func (r ServiceRow) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// ActivityBlock groups service rows under one labour-activity/description
// pair. DescriptionID is only meaningful relative to LabourActivityID.
type ActivityBlock struct {
	LabourActivityID string       `json:"labour_activity_id"`
	DescriptionID    string       `json:"description_id"`
	Rows             []ServiceRow `json:"rows"`
}

// IsValid reports whether the block qualifies for submission: both the
// activity and description are set and at least one row has a name.
func (b ActivityBlock) IsValid() bool {
	if b.LabourActivityID == "" || b.DescriptionID == "" {
		return false
	}
	for _, r := range b.Rows {
		if r.HasName() {
			return true
		}
	}
	return false
}

// ServiceBOQDraft is the root aggregate of one form session: the location
// context, the category path and the activity blocks being edited.
type ServiceBOQDraft struct {
	ProjectID string `json:"project_id"`
	SiteID    string `json:"site_id"`
	WingID    string `json:"wing_id"`

	CategoryPath CategoryPath `json:"category_path"`

	Blocks []ActivityBlock `json:"blocks"`
}

// NewServiceRow returns an empty row with a fresh session-stable id.
func NewServiceRow() ServiceRow {
	return ServiceRow{ID: uuid.NewString()}
}

func newActivityBlock() ActivityBlock {
	return ActivityBlock{Rows: []ServiceRow{NewServiceRow()}}
}

// NewDraft creates an empty draft with one block holding one default row,
// the shape the form opens with in create mode.
func NewDraft() *ServiceBOQDraft {
	return &ServiceBOQDraft{Blocks: []ActivityBlock{newActivityBlock()}}
}

// AddBlock appends a new activity block with one default row.
func (d *ServiceBOQDraft) AddBlock() {
	d.Blocks = append(d.Blocks, newActivityBlock())
}

// RemoveBlock removes the block at index. Removing the final block is
// allowed; the draft simply becomes unsubmittable.
func (d *ServiceBOQDraft) RemoveBlock(index int) error {
	if index < 0 || index >= len(d.Blocks) {
		return fmt.Errorf("block index %d out of range", index)
	}
	d.Blocks = append(d.Blocks[:index], d.Blocks[index+1:]...)
	return nil
}

// AddRow appends a default row to the block at blockIndex.
func (d *ServiceBOQDraft) AddRow(blockIndex int) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	b.Rows = append(b.Rows, NewServiceRow())
	return nil
}

// RemoveRow removes exactly the row with the given id from the block.
// A block may end up with zero rows; submission validation catches that.
func (d *ServiceBOQDraft) RemoveRow(blockIndex int, rowID string) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	for i, r := range b.Rows {
		if r.ID == rowID {
			b.Rows = append(b.Rows[:i], b.Rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

// RemoveLastRow pops the block's last row but never empties the block;
// with one row left it is a no-op.
func (d *ServiceBOQDraft) RemoveLastRow(blockIndex int) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	if len(b.Rows) > 1 {
		b.Rows = b.Rows[:len(b.Rows)-1]
	}
	return nil
}

// SetActivity sets the block's labour activity and unsets its description,
// since description validity is scoped to the activity.
func (d *ServiceBOQDraft) SetActivity(blockIndex int, labourActivityID string) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	b.LabourActivityID = labourActivityID
	b.DescriptionID = ""
	return nil
}

// SetDescription sets the block's description; rejected while no labour
// activity is selected.
func (d *ServiceBOQDraft) SetDescription(blockIndex int, descriptionID string) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	if b.LabourActivityID == "" {
		return ErrNoActivity
	}
	b.DescriptionID = descriptionID
	return nil
}

// RowPatch carries the fields of a row edit; nil fields are left untouched.
type RowPatch struct {
	Name     *string
	UOMID    *string
	Quantity *int64
	Wastage  *int64
}

// UpdateRow shallow-merges patch into the row with the given id.
func (d *ServiceBOQDraft) UpdateRow(blockIndex int, rowID string, patch RowPatch) error {
	b, err := d.block(blockIndex)
	if err != nil {
		return err
	}
	for i := range b.Rows {
		if b.Rows[i].ID != rowID {
			continue
		}
		if patch.Name != nil {
			b.Rows[i].Name = *patch.Name
		}
		if patch.UOMID != nil {
			b.Rows[i].UOMID = *patch.UOMID
		}
		if patch.Quantity != nil {
			b.Rows[i].Quantity = *patch.Quantity
		}
		if patch.Wastage != nil {
			b.Rows[i].Wastage = *patch.Wastage
		}
		return nil
	}
	return ErrRowNotFound
}

func (d *ServiceBOQDraft) block(index int) (*ActivityBlock, error) {
	if index < 0 || index >= len(d.Blocks) {
		return nil, fmt.Errorf("block index %d out of range", index)
	}
	return &d.Blocks[index], nil
}
