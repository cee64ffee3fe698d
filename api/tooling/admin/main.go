// This program performs administrative tasks for the kangaroute service.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companydb"
	"github.com/jcpaschoal/kangaroute/business/sdk/migrate"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
	"github.com/jcpaschoal/kangaroute/foundation/keystore"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries the subset of the service settings the tool needs.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"kangaroute"`
		Schema       string `envconfig:"DB_SCHEMA" default:""`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys/"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("KANGAROUTE", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, migrate-status, rollback, genkey, create-company")
		return nil
	}

	switch os.Args[1] {
	case "genkey":
		return runGenKey(cfg.Auth.KeysFolder)

	case "migrate":
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if err := migrate.Migrate(ctx, log, dbConfig(cfg)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		fmt.Println("migrations complete")
		return nil

	case "migrate-status":
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		status, err := migrate.Status(ctx, log, dbConfig(cfg))
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}

		fmt.Printf("current version: %d\n", status.CurrentVersion)
		fmt.Printf("pending migrations: %v\n", status.PendingMigrations)
		return nil

	case "rollback":
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if err := migrate.Rollback(ctx, log, dbConfig(cfg)); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}

		fmt.Println("rollback complete")
		return nil

	case "create-company":
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		companyBus := companybus.NewCore(log, companydb.NewStore(log, db))
		return runCreateCompany(ctx, companyBus, os.Args[2:])

	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func dbConfig(cfg Config) sqldb.Config {
	return sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		Schema:       cfg.DB.Schema,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	}
}

func openDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqldb.Open(dbConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	return db, nil
}

// runGenKey writes a new RSA private key named after a fresh kid.
func runGenKey(folder string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	privatePEM, err := keystore.EncodePrivateKey(privateKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(folder, 0o700); err != nil {
		return fmt.Errorf("creating keys folder: %w", err)
	}

	kid := uuid.NewString()
	file := filepath.Join(folder, kid+".pem")

	if err := os.WriteFile(file, []byte(privatePEM), 0o600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	fmt.Printf("private key file: %s\n", file)
	fmt.Printf("set KANGAROUTE_AUTH_ACTIVE_KID=%s\n", kid)

	return nil
}

func runCreateCompany(ctx context.Context, cb *companybus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (Required)")
	userStr := cmd.String("username", "", "Admin username (Required)")
	passStr := cmd.String("password", "", "Admin password (Required)")
	emailStr := cmd.String("email", "", "Contact email (Required)")
	phoneStr := cmd.String("phone", "", "Contact phone (Required)")
	addrStr := cmd.String("address", "", "Address (Required)")
	taxStr := cmd.String("tax-id", "", "Tax ID (Required)")
	siteStr := cmd.String("website", "", "Website")
	cmd.Parse(args)

	if *nameStr == "" || *userStr == "" || *passStr == "" || *emailStr == "" || *phoneStr == "" || *addrStr == "" || *taxStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	nme, err := name.Parse(*nameStr)
	if err != nil {
		return err
	}

	pass, err := password.Parse(*passStr)
	if err != nil {
		return err
	}

	ph, err := phone.Parse(*phoneStr)
	if err != nil {
		return err
	}

	cmp, err := cb.Create(ctx, companybus.NewCompany{
		CompanyName:   nme,
		AdminUsername: *userStr,
		Password:      pass,
		Email:         *emailStr,
		Phone:         ph,
		Address:       *addrStr,
		TaxID:         *taxStr,
		Website:       *siteStr,
	})
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	fmt.Printf("company created: id[%d] username[%s]\n", cmp.ID, cmp.AdminUsername)
	return nil
}
