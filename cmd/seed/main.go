package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/merchview/backend-go/internal/config"
	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
	"github.com/andresuchdata/merchview/backend-go/internal/repository/mongodb"
)

type dbKeyType struct{}

var dbKey dbKeyType

func newMongoFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mongo-uri",
			Usage:   "MongoDB connection string",
			Value:   "mongodb://localhost:27017",
			EnvVars: []string{"MONGO_URI"},
		},
		&cli.StringFlag{
			Name:    "db-name",
			Usage:   "Database name",
			Value:   "merchview",
			EnvVars: []string{"MONGO_DBNAME"},
		},
	}
}

func initDB(c *cli.Context) error {
	db, err := mongodb.NewDB(&config.MongoConfig{
		URI:    c.String("mongo-uri"),
		DBName: c.String("db-name"),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*mongodb.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func getDB(c *cli.Context) *mongodb.DB {
	return c.Context.Value(dbKey).(*mongodb.DB)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:  "master",
				Usage: "Seed master data (outlets and products)",
				Flags: append(newMongoFlags(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed data",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				),
				Before: initDB,
				After:  closeDB,
				Action: seedMaster,
			},
			{
				Name:  "expiries",
				Usage: "Seed the expiry ledger",
				Flags: append(newMongoFlags(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing expiry seed data",
						Value:   "./data/seeds/expiries",
						EnvVars: []string{"SEED_EXPIRY_DIR"},
					},
				),
				Before: initDB,
				After:  closeDB,
				Action: seedExpiries,
			},
			{
				Name:  "all",
				Usage: "Seed master data and the expiry ledger",
				Flags: append(newMongoFlags(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed data",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.StringFlag{
						Name:    "expiry-dir",
						Usage:   "Directory containing expiry seed data",
						Value:   "./data/seeds/expiries",
						EnvVars: []string{"SEED_EXPIRY_DIR"},
					},
				),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := seedMaster(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := seedExpiries(c); err != nil {
						return fmt.Errorf("error seeding expiries: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seedMaster loads outlets.csv and products.csv and records the mapping
// from CSV name to generated id so the expiry seeder can reference them.
func seedMaster(c *cli.Context) error {
	db := getDB(c)
	dataDir := c.String("data-dir")
	ctx := c.Context

	outletRepo := mongodb.NewOutletRepository(db)
	if err := seedOutlets(ctx, outletRepo, filepath.Join(dataDir, "outlets.csv")); err != nil {
		return fmt.Errorf("failed to seed outlets: %w", err)
	}

	productRepo := mongodb.NewProductRepository(db)
	if err := seedProducts(ctx, productRepo, filepath.Join(dataDir, "products.csv")); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("Master data seeding completed successfully!")
	return nil
}

func seedOutlets(ctx context.Context, repo repository.OutletRepository, path string) error {
	log.Printf("Seeding outlets from %s\n", path)

	rows, err := readCSV(path, []string{"name", "location", "notes"})
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		outlet := domain.Outlet{
			Name:     row["name"],
			Location: row["location"],
			Notes:    row["notes"],
			Products: map[string]bool{},
		}
		if _, err := repo.Create(ctx, outlet); err != nil {
			return fmt.Errorf("failed to insert outlet %q: %w", outlet.Name, err)
		}
		count++
	}

	log.Printf("Successfully seeded %d outlets\n", count)
	return nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository, path string) error {
	log.Printf("Seeding products from %s\n", path)

	rows, err := readCSV(path, []string{"name", "sku", "category", "batchNo", "notes"})
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		product := domain.Product{
			Name:     row["name"],
			SKU:      row["sku"],
			Category: row["category"],
			BatchNo:  row["batchNo"],
			Notes:    row["notes"],
		}
		if _, err := repo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", product.SKU, err)
		}
		count++
	}

	log.Printf("Successfully seeded %d products\n", count)
	return nil
}

// seedExpiries resolves outlet and product names to the ids created by
// the master seed, so the CSV can reference rows by name instead of id.
func seedExpiries(c *cli.Context) error {
	db := getDB(c)
	dataDir := c.String("data-dir")
	if c.IsSet("expiry-dir") {
		dataDir = c.String("expiry-dir")
	}
	ctx := c.Context
	path := filepath.Join(dataDir, "expiries.csv")

	log.Printf("Seeding expiries from %s\n", path)

	outlets, err := mongodb.NewOutletRepository(db).Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load outlets: %w", err)
	}
	products, err := mongodb.NewProductRepository(db).Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	outletIDs := make(map[string]string, len(outlets))
	for _, o := range outlets {
		outletIDs[o.Name] = o.ID.Hex()
	}
	productIDs := make(map[string]string, len(products))
	productSKUs := make(map[string]string, len(products))
	for _, p := range products {
		productIDs[p.Name] = p.ID.Hex()
		productSKUs[p.Name] = p.SKU
	}

	rows, err := readCSV(path, []string{"outlet", "product", "batchNo", "expiryDate", "quantity", "notes"})
	if err != nil {
		return err
	}

	expiryRepo := mongodb.NewExpiryRepository(db)
	count := 0
	for _, row := range rows {
		outletID, ok := outletIDs[row["outlet"]]
		if !ok {
			return fmt.Errorf("outlet %q not found, run the master seed first", row["outlet"])
		}
		productID, ok := productIDs[row["product"]]
		if !ok {
			return fmt.Errorf("product %q not found, run the master seed first", row["product"])
		}

		qty := 0
		if row["quantity"] != "" {
			qty, err = strconv.Atoi(row["quantity"])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", row["quantity"], err)
			}
		}

		entry := domain.ExpiryEntry{
			OutletID:   outletID,
			ProductID:  productID,
			SKU:        productSKUs[row["product"]],
			BatchNo:    row["batchNo"],
			ExpiryDate: row["expiryDate"],
			Quantity:   qty,
			Notes:      row["notes"],
		}
		if _, err := expiryRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to insert expiry entry: %w", err)
		}
		count++
	}

	log.Printf("Successfully seeded %d expiry entries\n", count)
	return nil
}

// readCSV maps each record onto the named columns via the header row.
// Missing columns resolve to empty strings.
func readCSV(path string, columns []string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(map[string]string, len(columns))
		for _, col := range columns {
			idx, ok := index[col]
			if !ok || idx >= len(record) {
				row[col] = ""
				continue
			}
			row[col] = strings.TrimSpace(record[idx])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
