// This program provides admin operations against a running database:
// creating users, provisioning tenants, and generating auth keys.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/memberbus/stores/memberdb"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/domain/tenantbus/stores/tenantdb"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/domain/userbus/stores/usercache"
	"github.com/negocio360/platform/business/domain/userbus/stores/userdb"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/password"
	"github.com/negocio360/platform/foundation/logger"
)

type Config struct {
	Platform struct {
		Host string `envconfig:"PLATFORM_HOST" default:"negocio360.com"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"negocio360"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-user, provision-tenant, keygen")
		return nil
	}

	// keygen does not touch the database.
	if os.Args[1] == "keygen" {
		return runKeygen(os.Args[2:])
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(log, usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
	memberBus := memberbus.NewCore(log, memberdb.NewStore(log, db), userBus)
	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db), memberBus, cfg.Platform.Host)

	switch os.Args[1] {
	case "create-user":
		return runCreateUser(ctx, userBus, os.Args[2:])
	case "provision-tenant":
		return runProvisionTenant(ctx, sqldb.NewBeginner(db), tenantBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		Name:     n,
		Email:    *addr,
		Password: p,
	})
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\n", usr.ID, usr.Email.Address)
	return nil
}

func runProvisionTenant(ctx context.Context, db sqldb.Beginner, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("provision-tenant", flag.ExitOnError)
	ownerIDStr := cmd.String("owner-id", "", "Owner user UUID (Required)")
	segmentIDStr := cmd.String("segment-id", "", "Segment UUID (Required)")
	nameStr := cmd.String("name", "", "Business name (Required)")
	cmd.Parse(args)

	if *ownerIDStr == "" || *segmentIDStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	ownerID, err := uuid.Parse(*ownerIDStr)
	if err != nil {
		return fmt.Errorf("invalid owner uuid: %w", err)
	}

	segmentID, err := uuid.Parse(*segmentIDStr)
	if err != nil {
		return fmt.Errorf("invalid segment uuid: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tran: %w", err)
	}

	txBus, err := tb.NewWithTx(tx)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("tran bus: %w", err)
	}

	t, err := txBus.Create(ctx, tenantbus.NewTenant{
		OwnerID:   ownerID,
		SegmentID: segmentID,
		Name:      n,
	})
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("provision tenant failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tran: %w", err)
	}

	fmt.Printf("\nSUCCESS: Tenant provisioned!\nID: %s\nSubdomain: %s\n", t.ID, t.Subdomain)
	return nil
}

func runKeygen(args []string) error {
	cmd := flag.NewFlagSet("keygen", flag.ExitOnError)
	folder := cmd.String("folder", "foundation/zarf/keys", "Folder to write the private key to")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	kid := uuid.NewString()

	if err := os.MkdirAll(*folder, 0o755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	privateFile, err := os.Create(filepath.Join(*folder, kid+".pem"))
	if err != nil {
		return fmt.Errorf("creating private file: %w", err)
	}
	defer privateFile.Close()

	privateBlock := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(privateFile, &privateBlock); err != nil {
		return fmt.Errorf("encoding private file: %w", err)
	}

	publicFile, err := os.Create(filepath.Join(*folder, kid+".pub"))
	if err != nil {
		return fmt.Errorf("creating public file: %w", err)
	}
	defer publicFile.Close()

	asn1Bytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("marshaling public key: %w", err)
	}

	publicBlock := pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: asn1Bytes,
	}

	if err := pem.Encode(publicFile, &publicBlock); err != nil {
		return fmt.Errorf("encoding public file: %w", err)
	}

	fmt.Printf("\nSUCCESS: Key pair generated!\nKID: %s\n", kid)
	return nil
}
