package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/phofinder/phofinder-services/api/internal/infrastructure/mongo"
	publicapp "github.com/phofinder/phofinder-services/api/internal/public/application"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

type seedOptions struct {
	envFile         string
	restaurantCount int
	reviewCount     int
	ratingCount     int
	dropCollections bool
	randomSeed      int64
}

// seed データはドメインサービス経由で投入する。集計値を直接書かず
// Aggregator に再計算させることで、本番と同じ経路で整合させる。
func main() {
	opts := parseFlags()

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
		}
	} else {
		_ = godotenv.Load()
	}

	restaurantCollection := envOrDefault("RESTAURANT_COLLECTION", "restaurants")
	reviewCollection := envOrDefault("REVIEW_COLLECTION", "reviews")
	ratingCollection := envOrDefault("RATING_COLLECTION", "ratings")
	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "phofinder")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		for _, name := range []string{restaurantCollection, reviewCollection, ratingCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Printf("コレクション %s の削除に失敗（未作成の可能性）: %v", name, err)
			}
		}
		log.Printf("既存コレクションを削除しました")
	}

	restaurantRepo := mongodoc.NewRestaurantRepository(db, restaurantCollection)
	reviewRepo := mongodoc.NewReviewRepository(db, reviewCollection)
	ratingRepo := mongodoc.NewRatingRepository(db, ratingCollection)
	aggregator := publicapp.NewAggregator(restaurantRepo, reviewRepo, ratingRepo)

	restaurantCommands := publicapp.NewRestaurantCommandService(restaurantRepo)
	reviewService := publicapp.NewReviewService(reviewRepo, aggregator)
	ratingService := publicapp.NewRatingService(ratingRepo, aggregator)

	rng := rand.New(rand.NewSource(opts.randomSeed))

	restaurants := make([]*domain.Restaurant, 0, opts.restaurantCount)
	for i := 0; i < opts.restaurantCount; i++ {
		cmd := generateRestaurant(rng, i)
		restaurant, err := restaurantCommands.Submit(ctx, cmd)
		if err != nil {
			log.Fatalf("店舗データの投入に失敗しました: %v", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	userIDs := make([]string, 8)
	for i := range userIDs {
		userIDs[i] = uuid.NewString()
	}

	for i := 0; i < opts.reviewCount; i++ {
		target := restaurants[rng.Intn(len(restaurants))]
		if _, err := reviewService.Submit(ctx, generateReview(rng, target.ID, userIDs)); err != nil {
			log.Fatalf("レビューの投入に失敗しました: %v", err)
		}
	}

	for i := 0; i < opts.ratingCount; i++ {
		target := restaurants[rng.Intn(len(restaurants))]
		err := ratingService.Upsert(ctx, publicapp.UpsertRatingCommand{
			RestaurantID: target.ID,
			UserID:       userIDs[rng.Intn(len(userIDs))],
			Rating:       float64(rng.Intn(5) + 1),
		})
		if err != nil {
			log.Fatalf("評価の投入に失敗しました: %v", err)
		}
	}

	log.Printf("Seed 完了: restaurants=%d reviews=%d ratings=%d", len(restaurants), opts.reviewCount, opts.ratingCount)
	log.Printf("Mongo: %s / %s", mongoURI, dbName)
}

var seedCities = []struct {
	City  string
	State string
	Area  string
}{
	{"San Jose", "California", "408"},
	{"Garden Grove", "California", "714"},
	{"Houston", "Texas", "713"},
	{"Seattle", "Washington", "206"},
	{"Portland", "Oregon", "503"},
	{"Philadelphia", "Pennsylvania", "215"},
	{"Boston", "Massachusetts", "617"},
	{"Falls Church", "Virginia", "703"},
}

var seedNames = []string{
	"Pho Saigon", "Pho 79", "Pho Ha Noi", "Pho Hoa", "Pho Bac",
	"Pho Thanh", "Pho Lotus", "Pho Golden Bowl", "Pho Kim Long", "Pho Viet",
}

func generateRestaurant(rng *rand.Rand, index int) publicapp.SubmitRestaurantCommand {
	place := seedCities[rng.Intn(len(seedCities))]
	name := fmt.Sprintf("%s #%d", seedNames[rng.Intn(len(seedNames))], index+1)
	return publicapp.SubmitRestaurantCommand{
		Name:        name,
		Address:     fmt.Sprintf("%d Main St", 100+rng.Intn(9000)),
		City:        place.City,
		State:       place.State,
		ZipCode:     fmt.Sprintf("%05d", 10000+rng.Intn(89999)),
		Phone:       fmt.Sprintf("(%s) %03d-%04d", place.Area, rng.Intn(1000), rng.Intn(10000)),
		Website:     fmt.Sprintf("https://example.com/%d", index+1),
		Description: "Family-run pho kitchen with slow-simmered broth.",
	}
}

var seedComments = []string{
	"Broth was rich and aromatic, noodles perfectly chewy.",
	"Decent bowl, a bit light on the herbs.",
	"Best pho in the neighborhood, huge portions.",
	"Service was slow but the food made up for it.",
	"Solid tai chin, clean dining room.",
}

func generateReview(rng *rand.Rand, restaurantID string, userIDs []string) publicapp.SubmitReviewCommand {
	rating := float64(rng.Intn(4) + 2)
	cmd := publicapp.SubmitReviewCommand{
		RestaurantID: restaurantID,
		UserID:       userIDs[rng.Intn(len(userIDs))],
		UserName:     fmt.Sprintf("phofan%02d", rng.Intn(100)),
		Rating:       rating,
		Comment:      seedComments[rng.Intn(len(seedComments))],
	}
	if rng.Intn(2) == 0 {
		cmd.DetailedRatings = &domain.DetailedRatings{
			Overall:    rating,
			Broth:      float64(rng.Intn(5) + 1),
			Noodles:    float64(rng.Intn(5) + 1),
			Meat:       float64(rng.Intn(5) + 1),
			Vegetables: float64(rng.Intn(5) + 1),
		}
	}
	return cmd
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env-file", "", "読み込む env ファイル (省略時は .env)")
	flag.IntVar(&opts.restaurantCount, "restaurants", 10, "生成する店舗数")
	flag.IntVar(&opts.reviewCount, "reviews", 40, "生成するレビュー数")
	flag.IntVar(&opts.ratingCount, "ratings", 60, "生成する評価数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.restaurantCount <= 0 {
		log.Fatal("restaurants は 1 以上を指定してください")
	}
	if opts.reviewCount < 0 {
		opts.reviewCount = 0
	}
	if opts.ratingCount < 0 {
		opts.ratingCount = 0
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
