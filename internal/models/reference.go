package models

// Reference rows are schema-local denormalized copies of entities owned by a
// different schema. They exist so the profiles schema can filter and join
// without cross-schema queries. They are written once at creation time and
// never re-synchronized.

type UserReference struct {
	ID     uint       `json:"id" gorm:"primaryKey"`
	Name   string     `json:"name" gorm:"not null;size:100"`
	Email  string     `json:"email" gorm:"not null;size:255"`
	RoleID uint       `json:"role_id" gorm:"not null;index"`
	Status UserStatus `json:"status" gorm:"default:active;size:20;index"`

	StudentProfile *StudentProfile `json:"student_profile,omitempty" gorm:"foreignKey:UserID"`
	TeacherProfile *TeacherProfile `json:"teacher_profile,omitempty" gorm:"foreignKey:UserID"`
}

func (UserReference) TableName() string {
	return "user_reference"
}

type CareerReference struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:150"`
	TotalCicles int    `json:"total_cicles"`
}

func (CareerReference) TableName() string {
	return "career_reference"
}

type SpecialityReference struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:150"`
}

func (SpecialityReference) TableName() string {
	return "speciality_reference"
}

// SubjectReference mirrors an academic-schema Subject: the enrollment
// workflow resolves subjects entirely through this copy.
type SubjectReference struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:150"`
	CareerID    uint   `json:"career_id" gorm:"not null;index"`
	CicleNumber int    `json:"cicle_number" gorm:"not null;index"`

	Career CareerReference `json:"career" gorm:"foreignKey:CareerID"`
}

func (SubjectReference) TableName() string {
	return "subject_reference"
}
