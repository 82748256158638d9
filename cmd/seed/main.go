package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/oggyb/qr-message-service/internal/config"
	"github.com/oggyb/qr-message-service/internal/db/gormdb"
	domain "github.com/oggyb/qr-message-service/internal/domain/message"
	"github.com/oggyb/qr-message-service/internal/qr"
	mesgRepo "github.com/oggyb/qr-message-service/internal/repository/gorm/message"
	"github.com/oggyb/qr-message-service/internal/service"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()

	// Load application configuration (DB, Redis, etc.) from env/.env.
	cfg := config.New()

	// Open a Postgres connection through our GORM adapter.
	gormAdapter, err := gormdb.New(cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("[Seed] Failed to connect to database: %v", err)
	}

	log.Printf("[Seed] Connected to database %q", cfg.DB.Name)

	// 1) AutoMigrate: make sure the messages table exists.
	// We go through the adapter to access the underlying *gorm.DB.
	rawDB := gormAdapter.Conn().(*gorm.DB)

	if err := rawDB.AutoMigrate(&mesgRepo.MessageModel{}); err != nil {
		log.Fatalf("[Seed] AutoMigrate failed: %v", err)
	}
	log.Println("[Seed] Messages table is up to date (AutoMigrate completed).")

	// 2) Primitive seeding: insert N demo messages, each with a real QR image.
	const seedCount = 10

	repo := mesgRepo.NewRepository(gormAdapter)
	encoder := qr.NewPNGEncoder(cfg.QR.Size)
	host := fmt.Sprintf("localhost:%s", cfg.API.Port)

	log.Printf("[Seed] Inserting %d demo messages...", seedCount)

	for i := 0; i < seedCount; i++ {
		// Use the domain constructor so validation and id minting apply,
		// the same path the service takes at runtime.
		msg, err := domain.NewMessage(randomText(i + 1))
		if err != nil {
			log.Fatalf("[Seed] Failed to build message #%d: %v", i+1, err)
		}

		msg.ViewURL = service.ViewURL(host, msg.ID)

		image, err := encoder.Encode(msg.ViewURL)
		if err != nil {
			log.Fatalf("[Seed] Failed to encode QR for message #%d: %v", i+1, err)
		}
		msg.QRImage = image

		if err := repo.Insert(ctx, msg); err != nil {
			log.Fatalf("[Seed] Failed to save message #%d: %v", i+1, err)
		}

		log.Printf("[Seed] Created message #%d: id=%s url=%s", i+1, msg.ID, msg.ViewURL)
	}

	log.Printf("[Seed] Done. Inserted %d messages into table 'messages'.", seedCount)
}

var samples = []string{
	"Meet me at the usual place at noon.",
	"Happy birthday! Scan me for a surprise.",
	"The wifi password is swordfish42.",
	"Lunch is on me today.",
	"Don't forget to water the plants.",
}

// randomText generates a short demo message body for seeding.
func randomText(i int) string {
	return fmt.Sprintf("%s (seed #%d)", samples[rand.Intn(len(samples))], i)
}
