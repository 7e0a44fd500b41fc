package app

import (
	"time"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	SessionTTL     time.Duration
	ExportDir      string
	LatexBin       string
	LatexEnabled   bool
	EmailEnabled   bool
	Port           string
	Environment    string
	Version        string
}

func LoadConfig(log *logger.Logger) Config {
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	sessionTTLSeconds := utils.GetEnvAsInt("SESSION_TTL", 86400, log)
	return Config{
		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: time.Duration(accessTTLSeconds) * time.Second,
		SessionTTL:     time.Duration(sessionTTLSeconds) * time.Second,
		ExportDir:      utils.GetEnv("EXPORT_DIR", "/tmp/packet_exports", log),
		LatexBin:       utils.GetEnv("LATEX_BIN", "pdflatex", log),
		LatexEnabled:   utils.GetEnvAsBool("EXPORT_LATEX_ENABLED", false, log),
		EmailEnabled:   utils.GetEnvAsBool("EMAIL_ENABLED", false, log),
		Port:           utils.GetEnv("PORT", "8080", log),
		Environment:    utils.GetEnv("APP_ENV", "development", log),
		Version:        utils.GetEnv("APP_VERSION", "dev", log),
	}
}
