package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	// Object store for artwork images
	S3_ENDPOINT       string
	S3_BUCKET_NAME    string
	S3_REGION         string
	S3_ACCESS_KEY     string
	S3_SECRET_KEY     string
	S3_USE_PATH_STYLE bool

	// Optional Google sign-in
	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	FRONTEND_URL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	S3_ENDPOINT = mustEnv("S3_ENDPOINT")
	S3_BUCKET_NAME = getEnv("S3_BUCKET_NAME", "artworks")
	S3_REGION = getEnv("AWS_REGION", "us-east-1")
	S3_ACCESS_KEY = mustEnv("AWS_ACCESS_KEY_ID")
	S3_SECRET_KEY = mustEnv("AWS_SECRET_ACCESS_KEY")
	S3_USE_PATH_STYLE = getEnv("S3_USE_PATH_STYLE", "true") == "true"

	// Google sign-in is optional; routes are only registered when configured.
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	FRONTEND_URL = getEnv("FRONTEND_URL", "http://localhost:5173")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
