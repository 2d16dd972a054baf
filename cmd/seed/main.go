package main

import (
	"log"
	"os"

	"farmmarket-be/internal/model"
	"farmmarket-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo farmer, a demo buyer and a few products so the assistant has
// something to talk about on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	farmerId := seedUser(db, "farmer@farmmarket.dev", "Ravi Kumar", true)
	buyerId := seedUser(db, "buyer@farmmarket.dev", "Anita Shah", false)
	green.Printf("Users ready: farmer=%s buyer=%s\n", farmerId, buyerId)

	products := []model.Product{
		{FarmerId: farmerId, Name: "Tomatoes", Category: "vegetables", Price: 25, Quantity: 120, Unit: "kg", Location: "Nashik"},
		{FarmerId: farmerId, Name: "Onions", Category: "vegetables", Price: 18, Quantity: 300, Unit: "kg", Location: "Nashik"},
		{FarmerId: farmerId, Name: "Alphonso Mangoes", Category: "fruits", Price: 450, Quantity: 40, Unit: "dozen", Location: "Ratnagiri"},
		{FarmerId: farmerId, Name: "Basmati Rice", Category: "grains", Price: 95, Quantity: 500, Unit: "kg", Location: "Karnal"},
	}

	for _, p := range products {
		var existing model.Product
		if err := db.Where("farmer_id = ? AND name = ?", p.FarmerId, p.Name).First(&existing).Error; err == nil {
			yellow.Printf("Product '%s' already exists, skipping...\n", p.Name)
			continue
		}

		p.Id = uuid.New()
		if err := db.Omit("Code").Create(&p).Error; err != nil {
			log.Printf("Error creating product '%s': %v", p.Name, err)
			continue
		}

		// Re-read for the generated code so the output is usable in chat.
		db.First(&p, "id = ?", p.Id)
		green.Printf("Created product #%d: %s (₹%.0f/%s)\n", p.Code, p.Name, p.Price, p.Unit)
	}

	green.Println("Seeding completed!")
}

func seedUser(db *gorm.DB, email, fullName string, isFarmer bool) uuid.UUID {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return existing.Id
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error creating user '%s': %v", email, err)
	}

	profile := model.Profile{
		Id:       user.Id,
		FullName: fullName,
		IsFarmer: isFarmer,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("Error creating profile '%s': %v", email, err)
	}

	return user.Id
}
