// Package seed loads the default JuniorCars content. Seeding is idempotent:
// records are matched by slug (users by email) and skipped when present, and
// individual failures are logged without aborting the run.
package seed

import (
	"log"
	"os"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"juniorcars/admin"
	"juniorcars/models"
)

func Run(db *gorm.DB) error {
	seedAdminUser(db)
	seedPages(db)
	seedCarSeries(db)
	seedNavigation(db)
	log.Println("Seeding finished")
	return nil
}

func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@juniorcars.example"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me"
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("seed: user %s exists, skipping", email)
		return
	}

	hash, err := admin.HashPassword(password)
	if err != nil {
		log.Printf("seed: hash password: %v", err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("seed: create user %s: %v", email, err)
		return
	}
	log.Printf("seed: created admin user %s", email)
}

func seedPages(db *gorm.DB) {
	pages := []models.Page{
		{
			Title:     "Home",
			Slug:      "home",
			Content:   "Handcrafted junior cars, built to drive.",
			HeroData:  datatypes.JSON(`{"title":"Handcrafted Junior Cars","subtitle":"Scale replicas of classic racing legends, built to drive","ctaLabel":"Explore the series","ctaUrl":"/series"}`),
			SEOData:   datatypes.JSON(`{"title":"JuniorCars - Handcrafted Junior Cars","description":"Scale replicas of classic racing cars, handcrafted and drivable."}`),
			Published: true,
		},
		{
			Title:     "About JuniorCars",
			Slug:      "about",
			Content:   "JuniorCars builds handcrafted, drivable scale replicas of classic racing cars.\n\nEvery car leaves the workshop tested and numbered.",
			Published: true,
		},
		{
			Title:     "Contact",
			Slug:      "contact",
			Content:   "Questions about a series or a custom build? Write us.",
			Published: true,
		},
		{
			Title:     "Wall Art",
			Slug:      "wall-art",
			Content:   "Automotive art prints from the JuniorCars workshop.",
			Published: true,
		},
		{
			Title:     "Privacy Policy",
			Slug:      "privacy",
			Content:   "We store only what the contact form sends us.",
			Published: true,
		},
		{
			Title:     "Imprint",
			Slug:      "imprint",
			Content:   "JuniorCars workshop. Responsible for content per applicable law.",
			Published: true,
		},
	}

	for _, page := range pages {
		var existing models.Page
		if err := db.Where("slug = ?", page.Slug).First(&existing).Error; err == nil {
			log.Printf("seed: page %q exists, skipping", page.Slug)
			continue
		}
		if err := db.Create(&page).Error; err != nil {
			log.Printf("seed: create page %q: %v", page.Slug, err)
			continue
		}
		log.Printf("seed: created page %q", page.Slug)
	}
}

func seedCarSeries(db *gorm.DB) {
	series := []models.CarSeries{
		{
			Name:           "Classic Racer",
			Slug:           "classic-racer",
			Description:    "Our original junior car, modeled on the grand prix racers of the 1950s.",
			Specifications: datatypes.JSON(`{"engine":"110cc four-stroke","power":"5.2 kW","transmission":"automatic","acceleration":"9.5 s to 45 km/h","topSpeed":"45 km/h","features":["hand-beaten aluminium body","leather seat","working headlights"]}`),
			Price:          29500,
			Published:      true,
		},
		{
			Name:           "Silver Arrow Junior",
			Slug:           "silver-arrow-junior",
			Description:    "A tribute to the silver racing icons, scaled for younger drivers.",
			Specifications: datatypes.JSON(`{"engine":"110cc four-stroke","power":"5.2 kW","transmission":"automatic","acceleration":"9.0 s to 45 km/h","topSpeed":"45 km/h","features":["polished aluminium body","analogue gauges"]}`),
			Price:          35000,
			Published:      true,
		},
		{
			Name:           "Roadster Edition",
			Slug:           "roadster-edition",
			Description:    "Open-wheel roadster styling with the same drivable mechanics.",
			Specifications: datatypes.JSON(`{"engine":"125cc four-stroke","power":"6.0 kW","transmission":"automatic","acceleration":"8.5 s to 50 km/h","topSpeed":"50 km/h","features":["two-tone paint","chrome details"]}`),
			Price:          38500,
			Published:      true,
		},
	}

	for _, item := range series {
		var existing models.CarSeries
		if err := db.Where("slug = ?", item.Slug).First(&existing).Error; err == nil {
			log.Printf("seed: car series %q exists, skipping", item.Slug)
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("seed: create car series %q: %v", item.Slug, err)
			continue
		}
		log.Printf("seed: created car series %q", item.Slug)
	}
}

func seedNavigation(db *gorm.DB) {
	var count int64
	db.Model(&models.NavigationItem{}).Count(&count)
	if count > 0 {
		log.Println("seed: navigation exists, skipping")
		return
	}

	roots := []models.NavigationItem{
		{Label: "Home", URL: "/", OrderIndex: 0, IsActive: true},
		{Label: "Car Series", URL: "/series", OrderIndex: 1, IsActive: true},
		{Label: "Wall Art", URL: "/wall-art", OrderIndex: 2, IsActive: true},
		{Label: "About", URL: "/about", OrderIndex: 3, IsActive: true},
		{Label: "Contact", URL: "/contact", OrderIndex: 4, IsActive: true},
	}

	var seriesParent *models.NavigationItem
	for i := range roots {
		if err := db.Create(&roots[i]).Error; err != nil {
			log.Printf("seed: create navigation %q: %v", roots[i].Label, err)
			continue
		}
		if roots[i].Label == "Car Series" {
			seriesParent = &roots[i]
		}
	}

	if seriesParent == nil {
		return
	}

	var series []models.CarSeries
	db.Where("published = ?", true).Order("name ASC").Find(&series)
	for i, item := range series {
		child := models.NavigationItem{
			Label:      item.Name,
			URL:        "/series/" + item.Slug,
			ParentID:   &seriesParent.ID,
			OrderIndex: i,
			IsActive:   true,
		}
		if err := db.Create(&child).Error; err != nil {
			log.Printf("seed: create navigation child %q: %v", item.Name, err)
		}
	}
	log.Println("seed: created navigation tree")
}
