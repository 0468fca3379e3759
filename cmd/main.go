package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"BoothMap-App/internal/config"
	"BoothMap-App/internal/domain/repository"
	"BoothMap-App/internal/domain/service"
	"BoothMap-App/internal/handler"
	"BoothMap-App/internal/infrastructure/database"
	repoImpl "BoothMap-App/internal/repository"
	"BoothMap-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	layers, err := buildLayerRepository(cfg)
	if err != nil {
		log.Fatalf("failed to initialize data source: %v", err)
	}

	sampler := service.NewBoothSamplingService(
		service.NewKMeansClusterer(),
		service.NewCentroidDistanceSelector(),
	)
	samplingUseCase := usecase.NewBoothSamplingUseCase(
		layers,
		service.NewContainmentValidator(),
		sampler,
	)

	r := gin.Default()
	handler.NewSamplingHandler(samplingUseCase).RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("BoothMap-App server starting on %s (source: %s)...\n", addr, cfg.Data.Source)
	log.Fatal(r.Run(addr))
}

func buildLayerRepository(cfg *config.Config) (repository.LayerRepository, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		client, err := database.NewPostgreSQLClient()
		if err != nil {
			return nil, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, err
		}
		fmt.Println("✅ PostgreSQL connection successful!")
		return repoImpl.NewPostgresLayerRepository(client), nil

	case config.SourceSupabase:
		client, err := database.NewSupabaseClient()
		if err != nil {
			return nil, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, err
		}
		fmt.Println("✅ Connected to Supabase storage")
		return repoImpl.NewSupabaseLayerRepository(client, cfg.Data.Bucket), nil

	default:
		return repoImpl.NewLocalLayerRepository(cfg.Data.Dir), nil
	}
}
