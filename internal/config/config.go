package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера и калькулятора
type Config struct {
	Port             int
	MinSIPAmount     float64
	MinLumpsumAmount float64
	MaxAmount        float64
	MaxRate          float64
	MinYears         int
	MaxYears         int
	MaxPhaseYears    int
	MaxHoldingMonths int
	TaxRulesFile     string
	TaxFiscalYear    string
	OTELEndpoint     string
	OTELServiceName  string
	LogLevel         string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvInt("PORT", 8000),
		MinSIPAmount:     getEnvFloat("MIN_SIP_AMOUNT", 500),
		MinLumpsumAmount: getEnvFloat("MIN_LUMPSUM_AMOUNT", 1000),
		MaxAmount:        getEnvFloat("MAX_AMOUNT", 1e9),
		MaxRate:          getEnvFloat("MAX_RATE", 30),
		MinYears:         getEnvInt("MIN_YEARS", 1),
		MaxYears:         getEnvInt("MAX_YEARS", 40),
		MaxPhaseYears:    getEnvInt("MAX_PHASE_YEARS", 30),
		MaxHoldingMonths: getEnvInt("MAX_HOLDING_MONTHS", 600),
		TaxRulesFile:     getEnvString("TAX_RULES_FILE", ""),
		TaxFiscalYear:    getEnvString("TAX_FISCAL_YEAR", "FY 2026-27"),
		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "mcp-mutualfund-server"),
		LogLevel:         getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
