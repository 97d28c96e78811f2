package models

import "time"

// Run is one completed reconciliation.
type Run struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UploadID        string    `gorm:"column:upload_id;type:varchar(36);index" json:"upload_id,omitempty"`
	IncomingName    string    `gorm:"column:incoming_name;type:varchar(255)" json:"incoming_name"`
	MasterName      string    `gorm:"column:master_name;type:varchar(255)" json:"master_name"`
	MasterFormat    string    `gorm:"column:master_format;type:varchar(8)" json:"master_format"`
	KeyColumn       string    `gorm:"column:key_column;type:varchar(255)" json:"key_column"`
	KeySource       string    `gorm:"column:key_source;type:varchar(16)" json:"key_source"`
	Changes         int       `gorm:"column:changes;type:int" json:"changes"`
	UpdatedRows     int       `gorm:"column:updated_rows;type:int" json:"updated_rows"`
	AppendedRows    int       `gorm:"column:appended_rows;type:int" json:"appended_rows"`
	PropagatedCells int       `gorm:"column:propagated_cells;type:int" json:"propagated_cells"`
	Warnings        int       `gorm:"column:warnings;type:int" json:"warnings"`
	ArtifactKey     string    `gorm:"column:artifact_key;type:varchar(512)" json:"artifact_key"`
	CreatedAt       time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
}

// TableName implements gorm's Tabler.
func (Run) TableName() string {
	return "reconcile_runs"
}
