package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
)

const usage = "Usage: go run ./cmd/seed [doctors|attractions <xlsx_file_path>]"

func main() {
	if len(os.Args) != 1 && len(os.Args) != 3 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "warn", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Categories and the first SUPER_ADMIN come with the schema.
	if err := db.Migrate(&cfg.Admin); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if len(os.Args) == 1 {
		fmt.Println("Base seed completed.")
		return
	}

	kind, filePath := os.Args[1], os.Args[2]
	if kind != "doctors" && kind != "attractions" {
		log.Fatal(usage)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readSheet(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	gormDB := db.GetDB()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	attractionCategoryRepo := repository.NewAttractionCategoryRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	im := &importer{
		categoryRepo:           categoryRepo,
		attractionCategoryRepo: attractionCategoryRepo,
		categoryService:        service.NewCategoryService(categoryRepo, attractionCategoryRepo),
		doctorService:          service.NewDoctorService(repository.NewDoctorRepository(gormDB), categoryRepo, subjectRepo, reviewRepo, nil),
		attractionService:      service.NewAttractionService(repository.NewAttractionRepository(gormDB), attractionCategoryRepo, subjectRepo, reviewRepo, nil),
	}

	summary := &importSummary{}
	var doctors []doctorRow
	var attractions []attractionRow
	if kind == "doctors" {
		doctors = parseDoctorRows(rows, summary)
		fmt.Printf("Total doctors to import: %d\n", len(doctors))
	} else {
		attractions = parseAttractionRows(rows, summary)
		fmt.Printf("Total attractions to import: %d\n", len(attractions))
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if kind == "doctors" {
		im.importDoctors(doctors, summary)
	} else {
		im.importAttractions(attractions, summary)
	}

	fmt.Println("Import completed.")
	fmt.Printf("Rows read: %d, imported: %d, skipped: %d\n", summary.Rows, summary.Imported, len(summary.Skipped))
	for _, s := range summary.Skipped {
		fmt.Println("  " + s)
	}
}
