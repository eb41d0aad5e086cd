package models

import "time"

// Owning tables of the academic schema. Creation paths copy careers,
// specialities and subjects into the profiles schema as reference rows.

type Speciality struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null;size:150"`
	Description *string `json:"description" gorm:"type:text"`
}

func (Speciality) TableName() string {
	return "speciality"
}

type Career struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"uniqueIndex;not null;size:150"`
	TotalCicles   int    `json:"total_cicles" gorm:"not null"`
	DurationYears int    `json:"duration_years"`

	Subjects []Subject `json:"subjects,omitempty" gorm:"foreignKey:CareerID"`
}

func (Career) TableName() string {
	return "career"
}

// Cycle is an academic term, unique per (year, period).
type Cycle struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:20"`
	Year      int       `json:"year" gorm:"not null;uniqueIndex:idx_year_period"`
	Period    int       `json:"period" gorm:"not null;uniqueIndex:idx_year_period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active" gorm:"default:false;index"`
}

func (Cycle) TableName() string {
	return "cycle"
}

// Subject is taught in one career during one curriculum cycle number;
// the (career, cycle number, name) triple is unique.
type Subject struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:150;uniqueIndex:idx_career_cicle_name"`
	CareerID    uint   `json:"career_id" gorm:"not null;uniqueIndex:idx_career_cicle_name"`
	CicleNumber int    `json:"cicle_number" gorm:"not null;uniqueIndex:idx_career_cicle_name"`
	CycleID     *uint  `json:"cycle_id" gorm:"index"`

	Career Career `json:"career" gorm:"foreignKey:CareerID"`
	Cycle  *Cycle `json:"cycle,omitempty" gorm:"foreignKey:CycleID"`
}

func (Subject) TableName() string {
	return "subject"
}
