// Seeds the three databases with a small, self-consistent test dataset:
// roles, careers, specialities, an active cycle, subjects, two teachers
// with assignments and four students with enrollments. Safe to run more
// than once.
package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SIS-2025/academic-records-service/internal/config"
	"github.com/SIS-2025/academic-records-service/internal/models"
	"github.com/SIS-2025/academic-records-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	databases, err := pkg.InitDatabases(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer databases.Close()

	if err := migrate(databases); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed(databases); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed completed")
	log.Println("Test credentials: admin@sudamericano.edu.ec / admin123,",
		"carlos.mendez@sudamericano.edu.ec / teacher123,",
		"juan.perez@sudamericano.edu.ec / student123")
}

func migrate(d *pkg.Databases) error {
	if err := d.Users.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.SyncOutbox{},
	); err != nil {
		return err
	}
	if err := d.Academic.AutoMigrate(
		&models.Speciality{},
		&models.Career{},
		&models.Cycle{},
		&models.Subject{},
	); err != nil {
		return err
	}
	return d.Profiles.AutoMigrate(
		&models.UserReference{},
		&models.CareerReference{},
		&models.SpecialityReference{},
		&models.SubjectReference{},
		&models.StudentProfile{},
		&models.TeacherProfile{},
		&models.SubjectAssignment{},
		&models.StudentSubject{},
	)
}

func seed(d *pkg.Databases) error {
	if err := seedRoles(d.Users); err != nil {
		return err
	}
	if err := seedAcademic(d.Academic); err != nil {
		return err
	}
	if err := seedReferences(d.Profiles); err != nil {
		return err
	}
	if err := seedAdmin(d); err != nil {
		return err
	}
	if err := seedTeachers(d); err != nil {
		return err
	}
	return seedStudents(d)
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: 1, Name: "ADMIN"},
		{ID: 2, Name: "TEACHER"},
		{ID: 3, Name: "STUDENT"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

func seedAcademic(db *gorm.DB) error {
	specialities := []models.Speciality{
		{ID: 1, Name: "Tecnología", Description: strPtr("Especialidad en tecnología")},
		{ID: 2, Name: "Salud", Description: strPtr("Especialidad en salud")},
		{ID: 3, Name: "Ciencias Sociales", Description: strPtr("Especialidad en ciencias sociales")},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&specialities).Error; err != nil {
		return err
	}

	careers := []models.Career{
		{ID: 1, Name: "Ingeniería en Software", TotalCicles: 10, DurationYears: 5},
		{ID: 2, Name: "Medicina", TotalCicles: 12, DurationYears: 6},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&careers).Error; err != nil {
		return err
	}

	cycle := models.Cycle{
		ID:        1,
		Name:      "2025-1",
		Year:      2025,
		Period:    1,
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cycle).Error; err != nil {
		return err
	}

	subjects := seedSubjects()
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&subjects).Error
}

func seedSubjects() []models.Subject {
	cycleID := uint(1)
	names := []struct {
		id    uint
		name  string
		cicle int
	}{
		{1, "Programación I", 1},
		{2, "Matemáticas I", 1},
		{3, "Introducción a la Ingeniería", 1},
		{4, "Programación II", 2},
		{5, "Estructuras de Datos", 2},
		{6, "Base de Datos", 3},
		{7, "Desarrollo Web", 3},
	}
	subjects := make([]models.Subject, 0, len(names))
	for _, s := range names {
		subjects = append(subjects, models.Subject{
			ID:          s.id,
			Name:        s.name,
			CareerID:    1,
			CicleNumber: s.cicle,
			CycleID:     &cycleID,
		})
	}
	return subjects
}

func seedReferences(db *gorm.DB) error {
	specialities := []models.SpecialityReference{
		{ID: 1, Name: "Tecnología"},
		{ID: 2, Name: "Salud"},
		{ID: 3, Name: "Ciencias Sociales"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&specialities).Error; err != nil {
		return err
	}

	careers := []models.CareerReference{
		{ID: 1, Name: "Ingeniería en Software", TotalCicles: 10},
		{ID: 2, Name: "Medicina", TotalCicles: 12},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&careers).Error; err != nil {
		return err
	}

	subjects := make([]models.SubjectReference, 0, 7)
	for _, s := range seedSubjects() {
		subjects = append(subjects, models.SubjectReference{
			ID:          s.ID,
			Name:        s.Name,
			CareerID:    s.CareerID,
			CicleNumber: s.CicleNumber,
		})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&subjects).Error
}

func seedAdmin(d *pkg.Databases) error {
	user := models.User{
		ID:     1,
		Name:   "Administrador",
		Email:  "admin@sudamericano.edu.ec",
		RoleID: models.RoleIDAdmin,
		Status: models.StatusActive,
	}
	if err := createUser(d, &user, "admin123"); err != nil {
		return err
	}
	log.Printf("Admin ready: %s", user.Email)
	return nil
}

func seedTeachers(d *pkg.Databases) error {
	teachers := []struct {
		user         models.User
		specialityID uint
		careerID     uint
		subjects     []uint
	}{
		{
			user: models.User{
				ID:     100,
				Name:   "Dr. Carlos Méndez",
				Email:  "carlos.mendez@sudamericano.edu.ec",
				RoleID: models.RoleIDTeacher,
				Status: models.StatusActive,
			},
			specialityID: 1,
			careerID:     1,
			subjects:     []uint{1, 4, 6},
		},
		{
			user: models.User{
				ID:     101,
				Name:   "Ing. María López",
				Email:  "maria.lopez@sudamericano.edu.ec",
				RoleID: models.RoleIDTeacher,
				Status: models.StatusActive,
			},
			specialityID: 1,
			careerID:     1,
			subjects:     []uint{2, 3},
		},
	}

	for _, t := range teachers {
		if err := createUser(d, &t.user, "teacher123"); err != nil {
			return err
		}

		var profile models.TeacherProfile
		err := d.Profiles.
			Where(models.TeacherProfile{UserID: t.user.ID}).
			Attrs(models.TeacherProfile{SpecialityID: t.specialityID, CareerID: t.careerID}).
			FirstOrCreate(&profile).Error
		if err != nil {
			return err
		}

		for _, subjectID := range t.subjects {
			assignment := models.SubjectAssignment{
				TeacherProfileID: profile.ID,
				SubjectID:        subjectID,
			}
			if err := d.Profiles.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error; err != nil {
				return err
			}
		}
		log.Printf("Teacher ready: %s (%d subjects)", t.user.Name, len(t.subjects))
	}
	return nil
}

func seedStudents(d *pkg.Databases) error {
	students := []struct {
		user         models.User
		careerID     uint
		currentCicle int
		enrollments  []uint
	}{
		{
			user: models.User{
				ID:     200,
				Name:   "Juan Pérez",
				Email:  "juan.perez@sudamericano.edu.ec",
				Phone:  strPtr("0987654321"),
				Age:    intPtr(20),
				RoleID: models.RoleIDStudent,
				Status: models.StatusActive,
			},
			careerID:     1,
			currentCicle: 1,
			enrollments:  []uint{1, 2, 3},
		},
		{
			user: models.User{
				ID:     201,
				Name:   "María García",
				Email:  "maria.garcia@sudamericano.edu.ec",
				Phone:  strPtr("0987654322"),
				Age:    intPtr(19),
				RoleID: models.RoleIDStudent,
				Status: models.StatusActive,
			},
			careerID:     1,
			currentCicle: 1,
			enrollments:  []uint{1, 2},
		},
		{
			user: models.User{
				ID:     202,
				Name:   "Pedro Sánchez",
				Email:  "pedro.sanchez@sudamericano.edu.ec",
				Phone:  strPtr("0987654323"),
				Age:    intPtr(21),
				RoleID: models.RoleIDStudent,
				Status: models.StatusActive,
			},
			careerID:     1,
			currentCicle: 2,
			enrollments:  []uint{4, 5},
		},
		{
			// Suspended student, kept around to exercise status filters.
			user: models.User{
				ID:     203,
				Name:   "Ana Rodríguez",
				Email:  "ana.rodriguez@sudamericano.edu.ec",
				Phone:  strPtr("0987654324"),
				Age:    intPtr(20),
				RoleID: models.RoleIDStudent,
				Status: models.StatusSuspended,
			},
			careerID:     1,
			currentCicle: 1,
		},
	}

	for _, s := range students {
		if err := createUser(d, &s.user, "student123"); err != nil {
			return err
		}

		var profile models.StudentProfile
		err := d.Profiles.
			Where(models.StudentProfile{UserID: s.user.ID}).
			Attrs(models.StudentProfile{CareerID: s.careerID, CurrentCicle: s.currentCicle}).
			FirstOrCreate(&profile).Error
		if err != nil {
			return err
		}

		for _, subjectID := range s.enrollments {
			enrollment := models.StudentSubject{
				StudentProfileID: profile.ID,
				SubjectID:        subjectID,
				Status:           models.EnrollmentEnrolled,
			}
			if err := d.Profiles.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
				return err
			}
		}
		log.Printf("Student ready: %s (%s, %d enrollments)", s.user.Name, s.user.Status, len(s.enrollments))
	}
	return nil
}

// createUser writes the owning users row and its profiles-schema reference
// copy, hashing the password on the way in.
func createUser(d *pkg.Databases, user *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)

	if err := d.Users.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
		return err
	}

	ref := models.UserReference{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RoleID: user.RoleID,
		Status: user.Status,
	}
	return d.Profiles.Clauses(clause.OnConflict{DoNothing: true}).Create(&ref).Error
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
