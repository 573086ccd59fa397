package softdelete

import "time"

const (
	StateActive  = "active"
	StateDeleted = "deleted"
)

// Fields is embedded by every entity that participates in the soft-delete
// lifecycle. A row is either active (visible to all default queries and
// aggregates) or deleted (excluded, retained for audit and restore). There
// are no other states.
//
// The transitions here are idempotent: re-deleting a deleted row or
// re-restoring an active one is a no-op at this level. Services that need to
// reject redundant transitions check IsDeleted first and return a conflict.
type Fields struct {
	RecordState string     `gorm:"column:record_state;type:varchar(10);not null;default:'active'" json:"record_state"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (f *Fields) SoftDelete(now time.Time) {
	if f.RecordState == StateDeleted {
		return
	}
	f.RecordState = StateDeleted
	f.DeletedAt = &now
}

func (f *Fields) Restore() {
	f.RecordState = StateActive
	f.DeletedAt = nil
}

func (f *Fields) IsDeleted() bool {
	return f.RecordState == StateDeleted
}

// IdentityFields is Fields for tables whose natural key ends in
// record_state. The record_state column joins the table's composite unique
// index through the identity composite id: embedding entities tag their own
// key columns with `uniqueIndex:,composite:identity` and gorm derives a
// per-table index name. Tables without such a key embed plain Fields.
type IdentityFields struct {
	RecordState string     `gorm:"column:record_state;type:varchar(10);not null;default:'active';uniqueIndex:,composite:identity" json:"record_state"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (f *IdentityFields) SoftDelete(now time.Time) {
	if f.RecordState == StateDeleted {
		return
	}
	f.RecordState = StateDeleted
	f.DeletedAt = &now
}

func (f *IdentityFields) Restore() {
	f.RecordState = StateActive
	f.DeletedAt = nil
}

func (f *IdentityFields) IsDeleted() bool {
	return f.RecordState == StateDeleted
}
