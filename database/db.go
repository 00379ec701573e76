package database

import (
	"fmt"
	"os"

	"runoot/logger"
	"runoot/models/eventrequest"
	"runoot/models/listing"
	"runoot/models/log"
	"runoot/models/message"
	"runoot/models/notification"
	"runoot/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.Profile{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&eventrequest.EventRequest{},
		&listing.Listing{},
		&notification.Notification{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Models with dependencies on Stage 2
	stage3Models := []interface{}{
		&eventrequest.RequestUpdate{},
		&eventrequest.Quote{},
		&listing.SavedListing{},
		&message.Conversation{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		&message.Message{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Profile indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_uuid ON profiles(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create profile uuid index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email)").Error; err != nil {
		return fmt.Errorf("failed to create profile email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role)").Error; err != nil {
		return fmt.Errorf("failed to create profile role index: %w", err)
	}

	// Event request indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_requests_team_leader_id ON event_requests(team_leader_id)").Error; err != nil {
		return fmt.Errorf("failed to create event request team_leader_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_requests_status ON event_requests(status)").Error; err != nil {
		return fmt.Errorf("failed to create event request status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_requests_created_at ON event_requests(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create event request created_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_request_updates_request_created ON event_request_updates(event_request_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create event request update index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_request_quotes_request_id ON event_request_quotes(event_request_id)").Error; err != nil {
		return fmt.Errorf("failed to create event request quote index: %w", err)
	}

	// Notification indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_recipient_read ON notifications(recipient_id, read_at)").Error; err != nil {
		return fmt.Errorf("failed to create notification recipient index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_data_kind ON notifications((data->>'kind'))").Error; err != nil {
		return fmt.Errorf("failed to create notification kind index: %w", err)
	}

	// Listing indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status)").Error; err != nil {
		return fmt.Errorf("failed to create listing status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_listings_kind ON listings(kind)").Error; err != nil {
		return fmt.Errorf("failed to create listing kind index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_listings_event_name ON listings(event_name)").Error; err != nil {
		return fmt.Errorf("failed to create listing event_name index: %w", err)
	}

	// Conversation and message indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_conversations_last_message_at ON conversations(last_message_at)").Error; err != nil {
		return fmt.Errorf("failed to create conversation last_message_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages(conversation_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create message conversation index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_event_requests_team_leader",
			sql: `ALTER TABLE event_requests ADD CONSTRAINT fk_event_requests_team_leader
				  FOREIGN KEY (team_leader_id) REFERENCES profiles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_event_request_updates_request",
			sql: `ALTER TABLE event_request_updates ADD CONSTRAINT fk_event_request_updates_request
				  FOREIGN KEY (event_request_id) REFERENCES event_requests(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_event_request_quotes_request",
			sql: `ALTER TABLE event_request_quotes ADD CONSTRAINT fk_event_request_quotes_request
				  FOREIGN KEY (event_request_id) REFERENCES event_requests(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_notifications_recipient",
			sql: `ALTER TABLE notifications ADD CONSTRAINT fk_notifications_recipient
				  FOREIGN KEY (recipient_id) REFERENCES profiles(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_listings_owner",
			sql: `ALTER TABLE listings ADD CONSTRAINT fk_listings_owner
				  FOREIGN KEY (owner_id) REFERENCES profiles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_saved_listings_listing",
			sql: `ALTER TABLE saved_listings ADD CONSTRAINT fk_saved_listings_listing
				  FOREIGN KEY (listing_id) REFERENCES listings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_conversations_listing",
			sql: `ALTER TABLE conversations ADD CONSTRAINT fk_conversations_listing
				  FOREIGN KEY (listing_id) REFERENCES listings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_messages_conversation",
			sql: `ALTER TABLE messages ADD CONSTRAINT fk_messages_conversation
				  FOREIGN KEY (conversation_id) REFERENCES conversations(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
