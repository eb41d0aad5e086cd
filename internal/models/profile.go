package models

// StudentProfile is one-to-one with a UserReference whose role is student.
type StudentProfile struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	UserID       uint `json:"user_id" gorm:"uniqueIndex;not null"`
	CareerID     uint `json:"career_id" gorm:"not null;index"`
	CurrentCicle int  `json:"current_cicle" gorm:"not null"`

	User            *UserReference   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Career          CareerReference  `json:"career" gorm:"foreignKey:CareerID"`
	StudentSubjects []StudentSubject `json:"student_subjects,omitempty" gorm:"foreignKey:StudentProfileID"`
}

func (StudentProfile) TableName() string {
	return "student_profile"
}

// TeacherProfile is one-to-one with a UserReference whose role is teacher.
type TeacherProfile struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	UserID       uint `json:"user_id" gorm:"uniqueIndex;not null"`
	SpecialityID uint `json:"speciality_id" gorm:"not null;index"`
	CareerID     uint `json:"career_id" gorm:"not null;index"`

	User        *UserReference      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Speciality  SpecialityReference `json:"speciality" gorm:"foreignKey:SpecialityID"`
	Career      CareerReference     `json:"career" gorm:"foreignKey:CareerID"`
	Assignments []SubjectAssignment `json:"assignments,omitempty" gorm:"foreignKey:TeacherProfileID"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profile"
}

// SubjectAssignment links a teacher profile to a subject reference,
// unique per pair.
type SubjectAssignment struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	TeacherProfileID uint `json:"teacher_profile_id" gorm:"not null;uniqueIndex:idx_teacher_subject"`
	SubjectID        uint `json:"subject_id" gorm:"not null;uniqueIndex:idx_teacher_subject"`

	TeacherProfile *TeacherProfile  `json:"teacher_profile,omitempty" gorm:"foreignKey:TeacherProfileID"`
	Subject        SubjectReference `json:"subject" gorm:"foreignKey:SubjectID"`
}

func (SubjectAssignment) TableName() string {
	return "subject_assignment"
}
