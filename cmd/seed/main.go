// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"agriaccount/internal/config"
	"agriaccount/internal/infrastructure/storage/postgres"
	"agriaccount/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	log.Info("admin user ready")

	if err := seedEntryProfiles(ctx, pool); err != nil {
		log.Fatalw("failed to seed entry profiles", "error", err)
	}
	log.Info("entry profiles ready")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data ready")
	}

	log.Info("seed complete")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, full_name, role, is_admin, is_active)
		VALUES ('admin', $1, 'Administrator', 'admin', true, true)
		ON CONFLICT (username) DO NOTHING`,
		string(hash),
	)
	return err
}

func seedEntryProfiles(ctx context.Context, pool *postgres.Pool) error {
	profiles := []struct {
		name            string
		transactionType string
	}{
		{"Global", "Global"},
		{"Credit Note", "CreditNote"},
		{"Receipt Voucher", "ReceiptEntry"},
		{"Payment Settlement", "PaymentSettlement"},
	}

	for _, p := range profiles {
		_, err := pool.Exec(ctx, `
			INSERT INTO entry_profiles (name, transaction_type)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`,
			p.name, p.transactionType,
		)
		if err != nil {
			return fmt.Errorf("insert profile %q: %w", p.name, err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool) error {
	statements := []string{
		`INSERT INTO master_groups (group_name, is_active)
		 VALUES ('Bank Accounts', true), ('Cash Accounts', true)
		 ON CONFLICT DO NOTHING`,

		`INSERT INTO sub_group_ledgers (ledger_name, master_group_id, is_active)
		 SELECT 'Current Accounts', id, true FROM master_groups WHERE group_name = 'Bank Accounts'
		 ON CONFLICT DO NOTHING`,

		`INSERT INTO bank_masters (account_name, group_id, branch_name, is_active, created_by)
		 SELECT 'Main Operating Account', id, 'Head Office', true, 'seed'
		 FROM sub_group_ledgers WHERE ledger_name = 'Current Accounts'
		 ON CONFLICT DO NOTHING`,

		`INSERT INTO grower_groups (group_code, group_name, village, is_active)
		 VALUES ('GG2601001', 'Demo Grower Group', 'Demo Village', true)
		 ON CONFLICT DO NOTHING`,

		`INSERT INTO farmers (farmer_code, farmer_name, group_id, village, is_active)
		 SELECT 'GG001', 'Demo Farmer', id, 'Demo Village', true
		 FROM grower_groups WHERE group_code = 'GG2601001'
		 ON CONFLICT DO NOTHING`,

		`INSERT INTO vendors (vendor_code, vendor_name, vendor_group, is_active)
		 VALUES ('V001', 'Demo Vendor', 'Transport', true)
		 ON CONFLICT DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
