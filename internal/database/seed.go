// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// SeedInitialData creates the default admin account and the product catalog.
// The catalog is reference data: rows are inserted once and never updated by
// the seeder, so redeploys do not clobber rating rollups.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	if err := seedAdmin(db); err != nil {
		return err
	}

	if err := seedCatalog(db); err != nil {
		return err
	}

	log.Println("Initial data seeding completed")
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)
	if adminCount > 0 {
		return nil
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@elevendocs.com",
		UserType: models.UserTypeAdmin,
		Status:   models.UserStatusActive,
	}

	if err := admin.SetPassword("admin123!@#"); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("Default admin user created successfully")
	return nil
}

func seedCatalog(db *gorm.DB) error {
	products := catalogProducts()

	for _, product := range products {
		var count int64
		db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
		if count > 0 {
			continue
		}

		p := product
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.ID, err)
		}
	}

	return nil
}

// catalogProducts returns the storefront catalog in display order. Position
// doubles as the background generation order.
func catalogProducts() []models.Product {
	return []models.Product{
		{
			ID:               "golang-interview-prep",
			Name:             "Go Interview Preparation Guide",
			Description:      "A comprehensive guide covering Go fundamentals, concurrency patterns, and the questions interviewers actually ask.",
			Category:         models.CategoryCodingTech,
			Price:            649,
			Tags:             pq.StringArray{"go", "interviews", "concurrency"},
			ImageURL:         "/images/products/golang-interview-prep.png",
			ImageHint:        "gopher at whiteboard",
			HasStaticContent: true,
			Position:         1,
		},
		{
			ID:               "sql-exam-crash-course",
			Name:             "SQL Exam Crash Course",
			Description:      "Everything you need for a database exam: joins, normalization, transactions, and worked examples with solutions.",
			Category:         models.CategoryExamPrep,
			Price:            349,
			Tags:             pq.StringArray{"sql", "databases", "exams"},
			ImageURL:         "/images/products/sql-exam-crash-course.png",
			ImageHint:        "database diagram",
			HasStaticContent: true,
			Position:         2,
		},
		{
			ID:               "vscode-shortcuts-cheatsheet",
			Name:             "VS Code Shortcuts Cheatsheet",
			Description:      "Every keyboard shortcut worth knowing, organized by workflow, for Windows, macOS, and Linux.",
			Category:         models.CategoryCodingTech,
			Price:            149,
			Tags:             pq.StringArray{"vscode", "shortcuts", "productivity"},
			ImageURL:         "/images/products/vscode-shortcuts.png",
			ImageHint:        "keyboard closeup",
			HasStaticContent: true,
			Position:         3,
		},
		{
			ID:               "weekly-study-planner",
			Name:             "Weekly Study Planner",
			Description:      "A structured weekly planner with time-blocking templates, priority matrices, and review checklists.",
			Category:         models.CategoryPlannersOrganizers,
			Price:            199,
			Tags:             pq.StringArray{"planner", "productivity", "study"},
			ImageURL:         "/images/products/weekly-study-planner.png",
			ImageHint:        "open planner notebook",
			HasStaticContent: true,
			Position:         4,
		},
		{
			ID:               "habit-building-workbook",
			Name:             "Habit Building Workbook",
			Description:      "A practical workbook for building lasting habits, with trackers, reflection prompts, and weekly milestones.",
			Category:         models.CategoryPersonalGrowth,
			Price:            299,
			Tags:             pq.StringArray{"habits", "self-improvement", "workbook"},
			ImageURL:         "/images/products/habit-building-workbook.png",
			ImageHint:        "checklist and pen",
			HasStaticContent: true,
			Position:         5,
		},
		{
			ID:               "microeconomics-notes",
			Name:             "Microeconomics Lecture Notes",
			Description:      "Clean, structured notes covering supply and demand, elasticity, market structures, and welfare economics.",
			Category:         models.CategoryEconomics,
			Price:            399,
			Tags:             pq.StringArray{"economics", "lecture-notes", "university"},
			ImageURL:         "/images/products/microeconomics-notes.png",
			ImageHint:        "supply demand chart",
			HasStaticContent: true,
			Position:         6,
		},
		{
			ID:               "cognitive-biases-field-guide",
			Name:             "Cognitive Biases Field Guide",
			Description:      "An illustrated guide to the most common cognitive biases, with real-world examples and countermeasures.",
			Category:         models.CategoryPsychology,
			Price:            449,
			Tags:             pq.StringArray{"psychology", "biases", "decision-making"},
			ImageURL:         "/images/products/cognitive-biases-guide.png",
			ImageHint:        "brain illustration",
			HasStaticContent: true,
			Position:         7,
		},
		{
			ID:               "react-hooks-library",
			Name:             "React Hooks Utility Library",
			Description:      "A curated collection of production-ready React hooks with usage notes, edge cases, and testing tips.",
			Category:         models.CategoryCodeLibraries,
			Price:            1049,
			Tags:             pq.StringArray{"react", "hooks", "typescript"},
			ImageURL:         "/images/products/react-hooks-library.png",
			ImageHint:        "code editor screen",
			HasStaticContent: true,
			Position:         8,
		},
		{
			ID:               "calculus-exam-notes",
			Name:             "Calculus I Exam Notes",
			Description:      "Condensed exam notes for Calculus I: limits, derivatives, integrals, and the theorems that tie them together.",
			Category:         models.CategoryAcademicNotes,
			Price:            299,
			Tags:             pq.StringArray{"calculus", "math", "exam-notes"},
			ImageURL:         "/images/products/calculus-exam-notes.png",
			ImageHint:        "math formulas chalkboard",
			HasStaticContent: true,
			Position:         9,
		},
		{
			ID:               "public-speaking-course",
			Name:             "Public Speaking Skill Builder",
			Description:      "A self-paced program for becoming a confident speaker, from structuring a talk to handling Q&A under pressure.",
			Category:         models.CategorySkillDevelopment,
			Price:            699,
			Tags:             pq.StringArray{"speaking", "communication", "confidence"},
			ImageURL:         "/images/products/public-speaking-course.png",
			ImageHint:        "person at podium",
			HasStaticContent: true,
			Position:         10,
		},
		{
			ID:               "gratitude-journal-digital",
			Name:             "Digital Gratitude Journal",
			Description:      "A beautifully structured digital journal with daily prompts, monthly reviews, and mood tracking pages.",
			Category:         models.CategoryDigitalJournals,
			Price:            179,
			Tags:             pq.StringArray{"journal", "gratitude", "wellness"},
			ImageURL:         "/images/products/gratitude-journal.png",
			ImageHint:        "journal with coffee",
			HasStaticContent: false,
			Position:         11,
		},
		{
			ID:               "student-success-bundle",
			Name:             "Student Success Bundle",
			Description:      "The planner, the study notes, and the exam prep guides together at a bundle price.",
			Category:         models.CategoryBundles,
			Price:            1199,
			Tags:             pq.StringArray{"bundle", "students", "value"},
			ImageURL:         "/images/products/student-success-bundle.png",
			ImageHint:        "stack of books",
			HasStaticContent: false,
			Position:         12,
		},
		{
			ID:               "cornell-notes-notebook",
			Name:             "Cornell Notes Digital Notebook",
			Description:      "A hyperlinked digital notebook using the Cornell method, ready for tablet note-taking apps.",
			Category:         models.CategoryDigitalNotebooks,
			Price:            249,
			Tags:             pq.StringArray{"notebook", "cornell-method", "tablet"},
			ImageURL:         "/images/products/cornell-notes-notebook.png",
			ImageHint:        "tablet with stylus",
			HasStaticContent: false,
			Position:         13,
		},
	}
}
