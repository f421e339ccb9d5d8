package models

import "time"

type ImportJob struct {
	ID              string  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Kind            string  `gorm:"type:text;not null"`
	SourcePath      string  `gorm:"type:text;not null"`
	Mapping         string  `gorm:"type:jsonb;not null;default:'{}'"`
	PortfolioID     *string `gorm:"type:uuid"`
	PortfolioMeta   *string `gorm:"type:jsonb"`
	Status          string  `gorm:"type:text;not null"`
	ProcessedCount  int64   `gorm:"not null;default:0"`
	SuccessCount    int64   `gorm:"not null;default:0"`
	FailedCount     int64   `gorm:"not null;default:0"`
	Errors          string  `gorm:"type:jsonb;not null;default:'[]'"`
	Attempts        int     `gorm:"not null;default:0"`
	MaxAttempts     int     `gorm:"not null;default:5"`
	ErrorMessage    *string `gorm:"type:text"`
	HeartbeatAt     *time.Time
	LeaseExpiresAt  *time.Time
	StartedAt       *time.Time
	WritesStartedAt *time.Time
	FinishedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
