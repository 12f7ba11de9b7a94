// Command seed loads a JSON fixture into the storefront database. Products in
// the fixture carry a "key" slug so looks can reference them before ObjectIDs
// exist; the seeder assigns IDs and resolves the references.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"urbanpantry/internal/database"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type fixtureProduct struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	Images      []string               `json:"images"`
	Category    string                 `json:"category"`
	Featured    bool                   `json:"featured"`
	Description string                 `json:"description"`
	Details     []models.ProductDetail `json:"details"`
}

type fixtureLook struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MainImage   string   `json:"mainImage"`
	Products    []string `json:"products"`
}

type fixtureAdmin struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type fixture struct {
	Categories   []models.Category    `json:"categories"`
	Products     []fixtureProduct     `json:"products"`
	Looks        []fixtureLook        `json:"looks"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Admin        *fixtureAdmin        `json:"admin"`
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a storefront fixture into MongoDB",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl := slog.LevelInfo
		switch strings.ToLower(viper.GetString("log-level")) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn", "warning":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		}
		slog.SetDefault(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
		))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().String("file", "seed.json", "fixture file")
	rootCmd.Flags().String("mongo-uri", "mongodb://localhost:27017", "mongo connection string")
	rootCmd.Flags().String("mongo-db", "urbanpantry", "database name")
	rootCmd.Flags().Bool("drop", false, "drop seeded collections first")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	viper.BindPFlag("mongo-uri", rootCmd.Flags().Lookup("mongo-uri"))
	viper.BindPFlag("mongo-db", rootCmd.Flags().Lookup("mongo-db"))
	viper.BindPFlag("drop", rootCmd.Flags().Lookup("drop"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("SEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func run(ctx context.Context) error {
	raw, err := os.ReadFile(viper.GetString("file"))
	if err != nil {
		return err
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	products, byKey, err := buildProducts(fx.Products)
	if err != nil {
		return err
	}
	looks, err := buildLooks(fx.Looks, byKey)
	if err != nil {
		return err
	}

	client := database.Connect(viper.GetString("mongo-uri"))
	defer client.Disconnect(context.Background())
	db := client.Database(viper.GetString("mongo-db"))

	if viper.GetBool("drop") {
		for _, name := range []string{"categories", "products", "looks", "testimonials"} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("dropping %s: %w", name, err)
			}
		}
		slog.Info("dropped seeded collections")
	}

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	now := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		docs := make([]interface{}, 0, len(fx.Categories))
		for _, cat := range fx.Categories {
			cat.CreatedAt, cat.UpdatedAt = now, now
			docs = append(docs, cat)
		}
		return insertMany(gctx, db.Collection("categories"), docs)
	})
	g.Go(func() error {
		docs := make([]interface{}, 0, len(products))
		for _, p := range products {
			docs = append(docs, p)
		}
		return insertMany(gctx, db.Collection("products"), docs)
	})
	g.Go(func() error {
		docs := make([]interface{}, 0, len(looks))
		for _, l := range looks {
			docs = append(docs, l)
		}
		return insertMany(gctx, db.Collection("looks"), docs)
	})
	g.Go(func() error {
		docs := make([]interface{}, 0, len(fx.Testimonials))
		for _, t := range fx.Testimonials {
			t.CreatedAt, t.UpdatedAt = now, now
			docs = append(docs, t)
		}
		return insertMany(gctx, db.Collection("testimonials"), docs)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if fx.Admin != nil {
		users := repository.NewUserRepository(db.Collection("users"))
		admin := models.User{
			FullName: fx.Admin.FullName,
			Username: fx.Admin.Username,
			Email:    fx.Admin.Email,
			Password: fx.Admin.Password,
			Role:     models.RoleAdmin,
		}
		switch err := users.Create(ctx, &admin); {
		case errors.Is(err, repository.ErrUserExists):
			slog.Info("admin user already present", "email", fx.Admin.Email)
		case err != nil:
			return fmt.Errorf("creating admin user: %w", err)
		default:
			slog.Info("admin user created", "email", fx.Admin.Email)
		}
	}

	slog.Info("seed complete",
		"categories", len(fx.Categories),
		"products", len(products),
		"looks", len(looks),
		"testimonials", len(fx.Testimonials),
	)
	return nil
}

// buildProducts assigns ObjectIDs up front and returns a slug index for look
// references.
func buildProducts(in []fixtureProduct) ([]models.Product, map[string]primitive.ObjectID, error) {
	now := time.Now()
	byKey := make(map[string]primitive.ObjectID, len(in))
	products := make([]models.Product, 0, len(in))
	for _, fp := range in {
		if fp.Key == "" {
			return nil, nil, fmt.Errorf("product %q has no key", fp.Name)
		}
		if _, dup := byKey[fp.Key]; dup {
			return nil, nil, fmt.Errorf("duplicate product key %q", fp.Key)
		}
		id := primitive.NewObjectID()
		byKey[fp.Key] = id
		products = append(products, models.Product{
			ID:          id,
			Name:        fp.Name,
			Price:       fp.Price,
			Images:      fp.Images,
			Category:    fp.Category,
			Featured:    fp.Featured,
			Description: fp.Description,
			Details:     fp.Details,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products, byKey, nil
}

func buildLooks(in []fixtureLook, byKey map[string]primitive.ObjectID) ([]models.Look, error) {
	now := time.Now()
	looks := make([]models.Look, 0, len(in))
	for _, fl := range in {
		ids := make([]primitive.ObjectID, 0, len(fl.Products))
		for _, key := range fl.Products {
			id, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("look %q references unknown product %q", fl.Title, key)
			}
			ids = append(ids, id)
		}
		looks = append(looks, models.Look{
			Title:       fl.Title,
			Description: fl.Description,
			MainImage:   fl.MainImage,
			Products:    ids,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return looks, nil
}

func insertMany(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", coll.Name(), err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
